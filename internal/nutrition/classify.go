package nutrition

// Classify derives the meal-timing category and dietary tags for a macro
// profile from its calorie split (4 kcal per gram of protein and carbs,
// 9 kcal per gram of fat). The timing chain is a coarse heuristic, not
// nutritional ground truth: carb-heavy meals are pre-workout fuel,
// protein-heavy meals post-workout recovery, everything else breakfast.
func Classify(m Macros) (mealTiming string, tags []string) {
	total := float64(m.Protein*4 + m.Carbs*4 + m.Fat*9)
	if total < 1 {
		total = 1
	}
	proteinPct := float64(m.Protein*4) / total
	carbPct := float64(m.Carbs*4) / total
	fatPct := float64(m.Fat*9) / total

	switch {
	case carbPct > 0.5:
		mealTiming = MealTimingPreWorkout
	case proteinPct > 0.3:
		mealTiming = MealTimingPostWorkout
	default:
		mealTiming = MealTimingBreakfast
	}

	tags = []string{}
	if proteinPct > 0.25 {
		tags = append(tags, "high-protein")
	}
	if carbPct > 0.5 {
		tags = append(tags, "high-carb")
	}
	if fatPct > 0.4 {
		tags = append(tags, "high-fat")
	}
	if m.Calories > 600 {
		tags = append(tags, "bulking")
	} else if m.Calories < 400 {
		tags = append(tags, "cutting")
	}
	return mealTiming, tags
}
