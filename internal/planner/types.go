// Package planner implements the constraint-based daily meal recommendation
// engine: nutrition target calculation, candidate filtering, scoring and
// randomized top-K selection, and the substitution/redaction pipeline that
// personalizes the chosen recipe.
package planner

import (
	"context"
	"encoding/json"
	"fmt"

	"nutriplan/internal/catalog"
)

// Slot is one of the four meal periods of a day.
type Slot string

const (
	SlotBreakfast Slot = "Breakfast"
	SlotLunch     Slot = "Lunch"
	SlotSnack     Slot = "Snack"
	SlotDinner    Slot = "Dinner"
)

// SlotOrder is the fixed order slots are planned in.
var SlotOrder = []Slot{SlotBreakfast, SlotLunch, SlotSnack, SlotDinner}

// slotShare splits the daily calorie and protein targets across slots.
// This is a policy constant, not a nutritional guarantee; the shares must
// sum to 1.0.
var slotShare = map[Slot]float64{
	SlotBreakfast: 0.25,
	SlotLunch:     0.35,
	SlotSnack:     0.15,
	SlotDinner:    0.25,
}

// memoryDepth bounds the per-slot exclusion memory.
const memoryDepth = 5

// UserProfile is the immutable input to a planning run. Zero-valued fields
// fall back to defaults (female, 25y, 165cm, 65kg, sedentary, maintain,
// vegetarian).
type UserProfile struct {
	Gender         string   `json:"gender"`          // male | female
	Age            int      `json:"age"`             // years
	HeightCM       float64  `json:"height_cm"`
	WeightKG       float64  `json:"weight_kg"`
	Activity       string   `json:"activity"`        // sedentary | light | moderate | active
	Goal           string   `json:"goal"`            // lose | maintain | gain
	FoodPreference string   `json:"food_preference"` // vegetarian | vegan | non-vegetarian
	Dislikes       []string `json:"dislikes"`        // ingredient slugs
	HealthIssues   []string `json:"health_issues"`   // health condition slugs

	// Explicit overrides take precedence over computed targets when > 0.
	CaloriesOverride int `json:"calories_override,omitempty"`
	ProteinOverride  int `json:"protein_override,omitempty"`
}

// NutritionTargets holds the daily and per-slot calorie/protein targets
// derived once per planning run.
type NutritionTargets struct {
	BMI           float64      `json:"bmi"`
	DailyCalories int          `json:"daily_calories"`
	DailyProtein  int          `json:"daily_protein"`
	SlotCalories  map[Slot]int `json:"slot_calories"`
	SlotProtein   map[Slot]int `json:"slot_protein"`
}

// ExclusionMemory holds, per slot, up to memoryDepth recently served recipe
// slugs, most recent first. It is caller-supplied pass-through state; the
// engine returns an updated copy and never persists it itself.
type ExclusionMemory map[Slot][]string

// Clone returns an independent copy.
func (m ExclusionMemory) Clone() ExclusionMemory {
	out := make(ExclusionMemory, len(m))
	for slot, slugs := range m {
		out[slot] = append([]string(nil), slugs...)
	}
	return out
}

// MarkKind annotates an ingredient on a per-selection recipe copy.
type MarkKind int

const (
	MarkNormal MarkKind = iota
	MarkHidden
	MarkCaution
	MarkSubstituted
)

// String returns the wire form of the mark.
func (k MarkKind) String() string {
	switch k {
	case MarkHidden:
		return "hidden"
	case MarkCaution:
		return "caution"
	case MarkSubstituted:
		return "substituted"
	default:
		return "normal"
	}
}

// MarshalJSON encodes the mark as its wire form.
func (k MarkKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON decodes the wire form produced by MarshalJSON.
func (k *MarkKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "normal":
		*k = MarkNormal
	case "hidden":
		*k = MarkHidden
	case "caution":
		*k = MarkCaution
	case "substituted":
		*k = MarkSubstituted
	default:
		return fmt.Errorf("unknown mark kind %q", s)
	}
	return nil
}

// PlannedIngredient is a per-selection copy of a recipe ingredient with its
// annotation. Annotations exist only on the planned copy, never on catalog
// records.
type PlannedIngredient struct {
	catalog.RecipeIngredient
	Mark           MarkKind `json:"mark"`
	SubstituteSlug string   `json:"substitute_slug,omitempty"`
	CautionOptions []string `json:"caution_options,omitempty"`
}

// PlannedRecipe is the personalized copy of a chosen recipe: annotated
// ingredient list plus redacted steps and notes. The embedded catalog copy's
// own ingredient list is cleared; Ingredients here is authoritative.
type PlannedRecipe struct {
	catalog.Recipe
	Ingredients []PlannedIngredient `json:"ingredients"`
}

// VisibleIngredients returns the ingredients safe to render: everything not
// marked hidden. Forbidden ingredients must never surface here.
func (r *PlannedRecipe) VisibleIngredients() []PlannedIngredient {
	var out []PlannedIngredient
	for _, ing := range r.Ingredients {
		if ing.Mark == MarkHidden {
			continue
		}
		out = append(out, ing)
	}
	return out
}

// SlotResult is the outcome for one slot. Recipe is nil when no candidate
// satisfied even the relaxed constraints.
type SlotResult struct {
	Recipe        *PlannedRecipe      `json:"recipe"`
	Hidden        []string            `json:"hidden,omitempty"`
	Cautions      []string            `json:"cautions,omitempty"`
	Substitutions []string            `json:"substitutions,omitempty"` // "original->replacement"
	CautionSubs   map[string][]string `json:"caution_subs,omitempty"`
}

// Audit is the per-run trail of what the engine hid, flagged, swapped,
// blocked or waived.
type Audit struct {
	Hidden        map[Slot][]string            `json:"hidden"`
	Cautions      map[Slot][]string            `json:"cautions"`
	Substitutions map[Slot][]string            `json:"substitutions"`
	CautionSubs   map[Slot]map[string][]string `json:"caution_subs"`
	Blocked       []Slot                       `json:"blocked"`
	SafetyWaived  []Slot                       `json:"safety_waived"`
}

// PlanResult is the full outcome of a planning run.
type PlanResult struct {
	Targets NutritionTargets    `json:"targets"`
	Meals   map[Slot]SlotResult `json:"meals"`
	Audit   Audit               `json:"audit"`
	Memory  ExclusionMemory     `json:"memory"`
}

// RecipeSource fetches slot- and diet-appropriate recipes (read-only).
type RecipeSource interface {
	FindRecipes(ctx context.Context, slot, diet string) ([]catalog.Recipe, error)
}

// SubstituteSource resolves ingredient slugs to their ordered substitute
// lists (read-only).
type SubstituteSource interface {
	FindSubstitutes(ctx context.Context, slugs []string) (map[string][]string, error)
}

// ConstraintSource expands health-condition slugs into forbidden/caution
// ingredient sets (read-only).
type ConstraintSource interface {
	FindHealthConstraints(ctx context.Context, conditionSlugs []string) (catalog.Constraints, error)
}
