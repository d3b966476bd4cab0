package planner

import (
	"math"
	"testing"
)

func TestComputeTargets(t *testing.T) {
	t.Run("Sedentary Female", func(t *testing.T) {
		profile := UserProfile{
			Gender:   "female",
			Age:      30,
			HeightCM: 165,
			WeightKG: 60,
			Activity: "sedentary",
			Goal:     "maintain",
		}
		targets := ComputeTargets(profile)

		if targets.BMI != 22.04 {
			t.Errorf("Expected BMI 22.04, got %v", targets.BMI)
		}
		// Harris-Benedict BMR 1383.68 * 1.2 = 1660.42
		if targets.DailyCalories != 1660 {
			t.Errorf("Expected 1660 daily calories, got %d", targets.DailyCalories)
		}
		if targets.DailyProtein != 72 {
			t.Errorf("Expected 72g daily protein, got %d", targets.DailyProtein)
		}
		if got := targets.SlotCalories[SlotBreakfast]; got != 415 {
			t.Errorf("Expected 415 breakfast calories, got %d", got)
		}
		if got := targets.SlotCalories[SlotLunch]; got != 581 {
			t.Errorf("Expected 581 lunch calories, got %d", got)
		}
	})

	t.Run("Active Male Gaining", func(t *testing.T) {
		profile := UserProfile{
			Gender:   "male",
			Age:      30,
			HeightCM: 180,
			WeightKG: 80,
			Activity: "moderate",
			Goal:     "gain",
		}
		targets := ComputeTargets(profile)

		// BMR 1853.63 * 1.55 + 500 = 3373.13
		if targets.DailyCalories != 3373 {
			t.Errorf("Expected 3373 daily calories, got %d", targets.DailyCalories)
		}
		// 1.6 g/kg for moderate activity
		if targets.DailyProtein != 128 {
			t.Errorf("Expected 128g daily protein, got %d", targets.DailyProtein)
		}
	})

	t.Run("Defaults Applied", func(t *testing.T) {
		targets := ComputeTargets(UserProfile{})

		// female, 25y, 165cm, 65kg, sedentary
		if targets.BMI != 23.88 {
			t.Errorf("Expected BMI 23.88, got %v", targets.BMI)
		}
		if targets.DailyCalories != 1742 {
			t.Errorf("Expected 1742 daily calories, got %d", targets.DailyCalories)
		}
		if targets.DailyProtein != 78 {
			t.Errorf("Expected 78g daily protein, got %d", targets.DailyProtein)
		}
	})

	t.Run("Floors", func(t *testing.T) {
		profile := UserProfile{
			Gender:   "female",
			Age:      80,
			HeightCM: 150,
			WeightKG: 30,
			Activity: "sedentary",
			Goal:     "lose",
		}
		targets := ComputeTargets(profile)

		if targets.DailyCalories != calorieFloor {
			t.Errorf("Expected calorie floor %d, got %d", calorieFloor, targets.DailyCalories)
		}
		if targets.DailyProtein != proteinFloor {
			t.Errorf("Expected protein floor %d, got %d", proteinFloor, targets.DailyProtein)
		}
	})

	t.Run("Overrides Win", func(t *testing.T) {
		profile := UserProfile{
			CaloriesOverride: 2000,
			ProteinOverride:  120,
		}
		targets := ComputeTargets(profile)

		if targets.DailyCalories != 2000 {
			t.Errorf("Expected 2000 daily calories, got %d", targets.DailyCalories)
		}
		if targets.DailyProtein != 120 {
			t.Errorf("Expected 120g daily protein, got %d", targets.DailyProtein)
		}
		if got := targets.SlotCalories[SlotLunch]; got != 700 {
			t.Errorf("Expected 700 lunch calories, got %d", got)
		}
		if got := targets.SlotCalories[SlotSnack]; got != 300 {
			t.Errorf("Expected 300 snack calories, got %d", got)
		}
	})

	t.Run("Long Form Goal And Activity", func(t *testing.T) {
		profile := UserProfile{
			Gender:   "male",
			Age:      40,
			HeightCM: 175,
			WeightKG: 85,
			Activity: "lightly active",
			Goal:     "lose weight",
		}
		targets := ComputeTargets(profile)

		// BMR 1839.85 * 1.375 - 500 = 2029.80
		if targets.DailyCalories != 2030 {
			t.Errorf("Expected 2030 daily calories, got %d", targets.DailyCalories)
		}
	})
}

func TestSlotSharesSumToOne(t *testing.T) {
	var sum float64
	for _, slot := range SlotOrder {
		sum += slotShare[slot]
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("Slot shares sum to %v, want 1.0", sum)
	}
}

func TestComputeBMI(t *testing.T) {
	if got := computeBMI(60, 0); got != 0 {
		t.Errorf("Expected BMI 0 for zero height, got %v", got)
	}
	if got := computeBMI(70, 175); got != 22.86 {
		t.Errorf("Expected BMI 22.86, got %v", got)
	}
}

func TestNormalizeGoal(t *testing.T) {
	cases := map[string]string{
		"lose":        "lose",
		"lose weight": "lose",
		"Gain Muscle": "gain",
		"maintain":    "maintain",
		"":            "maintain",
		"anything":    "maintain",
	}
	for in, want := range cases {
		if got := normalizeGoal(in); got != want {
			t.Errorf("normalizeGoal(%q) = %q, want %q", in, got, want)
		}
	}
}
