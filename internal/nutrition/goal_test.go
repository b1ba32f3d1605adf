package nutrition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAgeAt(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	t.Run("birthday already passed this year", func(t *testing.T) {
		assert.Equal(t, 30, AgeAt(time.Date(1996, time.March, 1, 0, 0, 0, 0, time.UTC), now))
	})

	t.Run("birthday not yet reached this year", func(t *testing.T) {
		assert.Equal(t, 29, AgeAt(time.Date(1996, time.December, 1, 0, 0, 0, 0, time.UTC), now))
	})

	t.Run("day-of-month boundary", func(t *testing.T) {
		assert.Equal(t, 29, AgeAt(time.Date(1996, time.June, 16, 0, 0, 0, 0, time.UTC), now))
		assert.Equal(t, 30, AgeAt(time.Date(1996, time.June, 15, 0, 0, 0, 0, time.UTC), now))
	})
}

func TestBMR(t *testing.T) {
	t.Run("male equation", func(t *testing.T) {
		got := BMR("male", 80, 180, 30)
		assert.InDelta(t, 88.362+13.397*80+4.799*180-5.677*30, got, 0.001)
	})

	t.Run("female equation", func(t *testing.T) {
		got := BMR("female", 60, 165, 30)
		assert.InDelta(t, 447.593+9.247*60+3.098*165-4.330*30, got, 0.001)
	})

	t.Run("other uses male coefficients", func(t *testing.T) {
		assert.Equal(t, BMR("male", 70, 175, 25), BMR("other", 70, 175, 25))
	})
}

func TestDailyCalorieGoal(t *testing.T) {
	birthDate := time.Now().AddDate(-30, 0, -1)

	t.Run("gym goal floors the activity multiplier at moderately active", func(t *testing.T) {
		sedentaryGym := DailyCalorieGoal("male", 80, 180, birthDate, ActivitySedentary, GoalGym, nil, nil)
		moderateGym := DailyCalorieGoal("male", 80, 180, birthDate, ActivityModeratelyActive, GoalGym, nil, nil)
		assert.Equal(t, moderateGym, sedentaryGym)
	})

	t.Run("gym surplus depends on body weight", func(t *testing.T) {
		heavy := DailyCalorieGoal("male", 80, 180, birthDate, ActivityModeratelyActive, GoalGym, nil, nil)
		maintain := DailyCalorieGoal("male", 80, 180, birthDate, ActivityModeratelyActive, GoalMaintainWeight, nil, nil)
		assert.Equal(t, 400, heavy-maintain)

		light := DailyCalorieGoal("male", 70, 180, birthDate, ActivityModeratelyActive, GoalGym, nil, nil)
		lightMaintain := DailyCalorieGoal("male", 70, 180, birthDate, ActivityModeratelyActive, GoalMaintainWeight, nil, nil)
		assert.Equal(t, 300, light-lightMaintain)
	})

	t.Run("lose weight applies a deficit", func(t *testing.T) {
		target := 75.0
		weeks := 10
		lose := DailyCalorieGoal("male", 80, 180, birthDate, ActivityModeratelyActive, GoalLoseWeight, &target, &weeks)
		maintain := DailyCalorieGoal("male", 80, 180, birthDate, ActivityModeratelyActive, GoalMaintainWeight, nil, nil)
		assert.Less(t, lose, maintain)
		// 5kg over 10 weeks: 5*7700/70 = 550 kcal/day
		assert.Equal(t, maintain-550, lose)
	})

	t.Run("gain weight applies a surplus even with inverted delta sign", func(t *testing.T) {
		target := 85.0
		weeks := 10
		gain := DailyCalorieGoal("male", 80, 180, birthDate, ActivityModeratelyActive, GoalGainWeight, &target, &weeks)
		maintain := DailyCalorieGoal("male", 80, 180, birthDate, ActivityModeratelyActive, GoalMaintainWeight, nil, nil)
		assert.Equal(t, maintain+550, gain)
	})

	t.Run("never drops below 1200", func(t *testing.T) {
		target := 40.0
		weeks := 1
		goal := DailyCalorieGoal("female", 45, 150, birthDate, ActivitySedentary, GoalLoseWeight, &target, &weeks)
		assert.Equal(t, 1200, goal)
	})

	t.Run("missing target fields leave lose goal unadjusted", func(t *testing.T) {
		lose := DailyCalorieGoal("male", 80, 180, birthDate, ActivityModeratelyActive, GoalLoseWeight, nil, nil)
		maintain := DailyCalorieGoal("male", 80, 180, birthDate, ActivityModeratelyActive, GoalMaintainWeight, nil, nil)
		assert.Equal(t, maintain, lose)
	})
}
