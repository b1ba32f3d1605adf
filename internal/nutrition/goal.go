package nutrition

import (
	"math"
	"time"
)

// Activity levels accepted by the calorie goal calculator.
const (
	ActivitySedentary        = "sedentary"
	ActivityLightlyActive    = "lightly_active"
	ActivityModeratelyActive = "moderately_active"
	ActivityVeryActive       = "very_active"
	ActivityExtremelyActive  = "extremely_active"
)

// Fitness goals accepted by the calorie goal calculator.
const (
	GoalGym            = "gym"
	GoalLoseWeight     = "lose_weight"
	GoalGainWeight     = "gain_weight"
	GoalMaintainWeight = "maintain_weight"
)

// activityMultipliers maps activity levels to their TDEE multiplier. This is
// the single source of truth for valid activity levels.
var activityMultipliers = map[string]float64{
	ActivitySedentary:        1.2,
	ActivityLightlyActive:    1.375,
	ActivityModeratelyActive: 1.55,
	ActivityVeryActive:       1.725,
	ActivityExtremelyActive:  1.9,
}

// minimumDailyCalories is the floor applied to every computed goal.
const minimumDailyCalories = 1200

// kcalPerKg is the rough energy content of one kilogram of body weight.
const kcalPerKg = 7700

// AgeAt returns full years between birthDate and now, accounting for a
// birthday that has not yet occurred this year.
func AgeAt(birthDate, now time.Time) int {
	age := now.Year() - birthDate.Year()
	if now.Month() < birthDate.Month() ||
		(now.Month() == birthDate.Month() && now.Day() < birthDate.Day()) {
		age--
	}
	return age
}

// BMR computes the basal metabolic rate via the revised Harris-Benedict
// equation. Gender "female" gets the female coefficients; "male" and any
// other value get the male ones.
func BMR(gender string, weightKg, heightCm float64, age int) float64 {
	if gender == "female" {
		return 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*float64(age)
	}
	return 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*float64(age)
}

// DailyCalorieGoal computes the daily calorie target for a user profile.
//
// TDEE is BMR times the activity multiplier; unknown activity levels fall
// back to sedentary. Gym-goers are assumed at least moderately active, so
// their multiplier is floored at 1.55 and they get a flat surplus of 400
// (at or above 75kg) or 300 kcal. Lose/gain goals with a target weight and
// timeframe spread the weight delta at 7700 kcal/kg over the target weeks,
// forced into a deficit for losing and a surplus for gaining. The result
// never drops below 1200 kcal.
func DailyCalorieGoal(gender string, weightKg, heightCm float64, birthDate time.Time, activityLevel, fitnessGoal string, targetWeightKg *float64, targetWeeks *int) int {
	age := AgeAt(birthDate, time.Now())
	bmr := BMR(gender, weightKg, heightCm, age)

	multiplier, ok := activityMultipliers[activityLevel]
	if !ok {
		multiplier = activityMultipliers[ActivitySedentary]
	}
	if fitnessGoal == GoalGym && multiplier < 1.55 {
		multiplier = 1.55
	}
	tdee := bmr * multiplier

	var adjustment float64
	switch {
	case fitnessGoal == GoalGym:
		if weightKg >= 75 {
			adjustment = 400
		} else {
			adjustment = 300
		}
	case fitnessGoal == GoalMaintainWeight:
		adjustment = 0
	case targetWeightKg != nil && targetWeeks != nil && *targetWeeks > 0:
		dailyChange := (*targetWeightKg - weightKg) * kcalPerKg / float64(*targetWeeks*7)
		if fitnessGoal == GoalLoseWeight {
			adjustment = -math.Abs(dailyChange)
		} else if fitnessGoal == GoalGainWeight {
			adjustment = math.Abs(dailyChange)
		}
	}

	goal := int(math.Round(tdee + adjustment))
	if goal < minimumDailyCalories {
		return minimumDailyCalories
	}
	return goal
}
