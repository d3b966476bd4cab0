package planner

import (
	"math"
	"strings"
)

// Profile defaults applied when fields are absent.
const (
	defaultGender   = "female"
	defaultAge      = 25
	defaultHeightCM = 165.0
	defaultWeightKG = 65.0
	defaultActivity = "sedentary"
	defaultGoal     = "maintain"
	defaultPref     = "vegetarian"
)

// Daily floors: targets never drop below these regardless of biometrics.
const (
	calorieFloor = 1200
	proteinFloor = 50
)

// goalCalorieAdjust is the flat kcal/day shift for weight goals.
const goalCalorieAdjust = 500

// activityFactors maps activity level to its TDEE multiplier. The long
// forms ("lightly active" etc.) are accepted for imported profiles; unknown
// levels fall back to sedentary.
var activityFactors = map[string]float64{
	"sedentary":         1.2,
	"light":             1.375,
	"lightly active":    1.375,
	"moderate":          1.55,
	"moderately active": 1.55,
	"active":            1.725,
	"very active":       1.725,
}

// withDefaults fills absent profile fields with the documented defaults.
func (p UserProfile) withDefaults() UserProfile {
	if p.Gender == "" {
		p.Gender = defaultGender
	}
	if p.Age <= 0 {
		p.Age = defaultAge
	}
	if p.HeightCM <= 0 {
		p.HeightCM = defaultHeightCM
	}
	if p.WeightKG <= 0 {
		p.WeightKG = defaultWeightKG
	}
	if p.Activity == "" {
		p.Activity = defaultActivity
	}
	if p.Goal == "" {
		p.Goal = defaultGoal
	}
	if p.FoodPreference == "" {
		p.FoodPreference = defaultPref
	}
	return p
}

// ComputeTargets derives BMI and the daily and per-slot calorie/protein
// targets for a profile. Explicit profile overrides win over computed
// values; floors still apply to computed values only.
func ComputeTargets(profile UserProfile) NutritionTargets {
	profile = profile.withDefaults()

	dailyCal := profile.CaloriesOverride
	if dailyCal <= 0 {
		dailyCal = dailyCalories(profile)
	}
	dailyProt := profile.ProteinOverride
	if dailyProt <= 0 {
		dailyProt = dailyProtein(profile)
	}

	targets := NutritionTargets{
		BMI:           computeBMI(profile.WeightKG, profile.HeightCM),
		DailyCalories: dailyCal,
		DailyProtein:  dailyProt,
		SlotCalories:  make(map[Slot]int, len(SlotOrder)),
		SlotProtein:   make(map[Slot]int, len(SlotOrder)),
	}
	for _, slot := range SlotOrder {
		targets.SlotCalories[slot] = int(math.Round(float64(dailyCal) * slotShare[slot]))
		targets.SlotProtein[slot] = int(math.Round(float64(dailyProt) * slotShare[slot]))
	}
	return targets
}

// computeBMI returns weight/height² rounded to 2 decimals, 0 when height
// is unset.
func computeBMI(weightKG, heightCM float64) float64 {
	m := heightCM / 100
	if m == 0 {
		return 0
	}
	return math.Round(weightKG/(m*m)*100) / 100
}

// dailyCalories estimates the daily calorie target via the Harris-Benedict
// basal metabolic rate, scaled by activity and shifted by the weight goal.
func dailyCalories(p UserProfile) int {
	w, h, a := p.WeightKG, p.HeightCM, float64(p.Age)

	var bmr float64
	if strings.ToLower(p.Gender) == "male" {
		bmr = 88.362 + 13.397*w + 4.799*h - 5.677*a
	} else {
		bmr = 447.593 + 9.247*w + 3.098*h - 4.330*a
	}

	factor, ok := activityFactors[strings.ToLower(p.Activity)]
	if !ok {
		factor = activityFactors["sedentary"]
	}
	tdee := bmr * factor

	switch normalizeGoal(p.Goal) {
	case "lose":
		tdee -= goalCalorieAdjust
	case "gain":
		tdee += goalCalorieAdjust
	}

	return int(math.Max(calorieFloor, math.Round(tdee)))
}

// dailyProtein estimates the daily protein target in grams: 1.6 g/kg for
// high activity or a gain goal, else 1.2 g/kg.
func dailyProtein(p UserProfile) int {
	activity := strings.ToLower(p.Activity)
	active := activity == "moderate" || activity == "moderately active" ||
		activity == "active" || activity == "very active"
	gaining := normalizeGoal(p.Goal) == "gain"

	perKG := 1.2
	if active || gaining {
		perKG = 1.6
	}
	return int(math.Max(proteinFloor, math.Round(p.WeightKG*perKG)))
}

// normalizeGoal maps both the short ("lose") and imported long forms
// ("lose weight") onto the short enum.
func normalizeGoal(goal string) string {
	g := strings.ToLower(goal)
	switch {
	case strings.HasPrefix(g, "lose"):
		return "lose"
	case strings.HasPrefix(g, "gain"):
		return "gain"
	default:
		return "maintain"
	}
}
