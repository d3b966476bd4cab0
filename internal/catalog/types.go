package catalog

import (
	"bytes"
	"strconv"
	"strings"
)

// Number is a calorie/protein/carb/fat value coerced from possibly-malformed
// source data. Strings, nulls and garbage decode to 0; negative values are
// clamped to 0. Decoded values are always finite and non-negative.
type Number float64

// UnmarshalJSON accepts JSON numbers, numeric strings ("250", "250 kcal"),
// and anything else (coerced to 0).
func (n *Number) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		unquoted, err := strconv.Unquote(s)
		if err != nil {
			*n = 0
			return nil
		}
		s = unquoted
	}
	// Take the leading numeric prefix so "250 kcal" still parses.
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == '+' {
			end++
			continue
		}
		break
	}
	v, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || v < 0 {
		*n = 0
		return nil
	}
	*n = Number(v)
	return nil
}

// RecipeIngredient is one entry of a recipe's ingredient list. Importance
// runs 1..5; >=3 is treated as essential.
type RecipeIngredient struct {
	Slug       string `json:"slug"`
	Quantity   string `json:"quantity"`
	Importance int    `json:"importance"`
	Optional   bool   `json:"optional"`
	StapleSlot bool   `json:"staple_slot"`
	Notes      string `json:"notes"`
}

// Recipe is a catalog recipe. Catalog records are read-only reference data;
// the planner annotates per-selection copies, never these.
type Recipe struct {
	Slug          string             `json:"slug"`
	Name          string             `json:"recipe_name"`
	MealType      string             `json:"meal_type"`
	DietaryType   string             `json:"dietary_type"`
	Calories      Number             `json:"calories"`
	Protein       Number             `json:"protein"`
	Carbs         Number             `json:"carbs"`
	Fat           Number             `json:"fat"`
	TimeMinutes   int                `json:"time_minutes"`
	Servings      int                `json:"servings"`
	Tags          []string           `json:"tags"`
	ImageURL      string             `json:"image_url"`
	Ingredients   []RecipeIngredient `json:"ingredients"`
	StapleOptions []string           `json:"staple_options"`
	Steps         []string           `json:"steps"`
	Notes         string             `json:"notes"`
}

// Clone returns a deep copy safe to annotate per selection.
func (r *Recipe) Clone() *Recipe {
	cp := *r
	cp.Tags = append([]string(nil), r.Tags...)
	cp.Ingredients = append([]RecipeIngredient(nil), r.Ingredients...)
	cp.StapleOptions = append([]string(nil), r.StapleOptions...)
	cp.Steps = append([]string(nil), r.Steps...)
	return &cp
}

// IsNonVeg reports whether the dietary classification is non-vegetarian.
func (r *Recipe) IsNonVeg() bool {
	t := strings.ToLower(r.DietaryType)
	return strings.Contains(t, "non") && strings.Contains(t, "veg")
}

// Ingredient is a catalog ingredient with its ordered substitute list
// (first entry is preferred).
type Ingredient struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"ingredient_name"`
	Type        string   `json:"type"`
	Allergens   []string `json:"allergens"`
	Substitutes []string `json:"substitutes"`
}

// HealthCondition maps a condition slug to its forbidden and caution
// ingredient lists.
type HealthCondition struct {
	Slug      string   `json:"slug"`
	Name      string   `json:"condition_name"`
	Forbidden []string `json:"forbidden"`
	Caution   []string `json:"caution"`
	Notes     string   `json:"notes"`
}

// Constraints is the union of forbidden/caution ingredient slugs across a
// user's health conditions. Slugs are lowercased.
type Constraints struct {
	Forbidden map[string]struct{}
	Caution   map[string]struct{}
}

// NewConstraints returns an empty constraint set.
func NewConstraints() Constraints {
	return Constraints{
		Forbidden: make(map[string]struct{}),
		Caution:   make(map[string]struct{}),
	}
}

// Meta summarizes the catalog for UI filter menus.
type Meta struct {
	Total     int      `json:"total"`
	MealTypes []string `json:"meal_types"`
	Diets     []string `json:"diets"`
	Tags      []string `json:"tags"`
}

// LookupEntry is a name/slug pair for dropdown lookups.
type LookupEntry struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}
