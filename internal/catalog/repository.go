package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"nutriplan/internal/catalog/db"
)

// fetchCap bounds how many recipes a single slot query may return.
const fetchCap = 1000

// Repository is a database-backed repository for catalog reference data:
// recipes, ingredients and health conditions. All reads are safe for
// concurrent use; the planner treats the results as read-only.
type Repository struct {
	queries *db.Queries
	db      *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{
		queries: db.New(d),
		db:      d,
	}
}

// FindRecipes returns recipes tagged with the given meal slot, restricted by
// dietary preference: "vegetarian" admits vegetarian and vegan recipes,
// "vegan" admits vegan only, anything else imposes no restriction. The diet
// predicate runs in the query, before the fetch cap, so a restricted pool is
// never truncated by unrelated rows. An empty result is not an error.
func (r *Repository) FindRecipes(ctx context.Context, slot, diet string) ([]Recipe, error) {
	var (
		dbRecipes []db.Recipe
		err       error
	)
	if diets := allowedDiets(diet); diets != nil {
		dbRecipes, err = r.queries.ListRecipesByMealTypeAndDiets(ctx, db.ListRecipesByMealTypeAndDietsParams{
			MealType: strings.TrimSpace(slot),
			Diets:    diets,
			Limit:    fetchCap,
		})
	} else {
		dbRecipes, err = r.queries.ListRecipesByMealType(ctx, db.ListRecipesByMealTypeParams{
			MealType: strings.TrimSpace(slot),
			Limit:    fetchCap,
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes for slot %s: %w", slot, err)
	}

	var recipes []Recipe
	for _, dbRec := range dbRecipes {
		rec, err := rowToRecipe(dbRec)
		if err != nil {
			log.Printf("Warning: skipping recipe %s: %v", dbRec.Slug, err)
			continue
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

// GetBySlug retrieves a recipe by its slug. Returns (nil, nil) when absent.
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*Recipe, error) {
	dbRec, err := r.queries.GetRecipeBySlug(ctx, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Recipe not found
		}
		return nil, fmt.Errorf("failed to get recipe by slug: %w", err)
	}
	rec, err := rowToRecipe(dbRec)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// List retrieves a page of recipes ordered by slug.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]Recipe, error) {
	dbRecipes, err := r.queries.ListRecipes(ctx, db.ListRecipesParams{
		Limit:  int64(limit),
		Offset: int64(offset),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	var recipes []Recipe
	for _, dbRec := range dbRecipes {
		rec, err := rowToRecipe(dbRec)
		if err != nil {
			log.Printf("Warning: skipping recipe %s: %v", dbRec.Slug, err)
			continue
		}
		recipes = append(recipes, rec)
	}
	return recipes, nil
}

// Count returns the number of recipes in the catalog.
func (r *Repository) Count(ctx context.Context) (int, error) {
	count, err := r.queries.CountRecipes(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count recipes: %w", err)
	}
	return int(count), nil
}

// FindSubstitutes returns the ordered substitute list for each of the given
// ingredient slugs. Keys and values are lowercased; slugs with no catalog
// entry are simply absent from the result.
func (r *Repository) FindSubstitutes(ctx context.Context, slugs []string) (map[string][]string, error) {
	result := make(map[string][]string)
	if len(slugs) == 0 {
		return result, nil
	}

	dbIngs, err := r.queries.GetIngredientsBySlugs(ctx, lowerAll(slugs))
	if err != nil {
		return nil, fmt.Errorf("failed to look up ingredient substitutes: %w", err)
	}
	for _, ing := range dbIngs {
		var subs []string
		if err := json.Unmarshal([]byte(ing.Substitutes), &subs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal substitutes for %s: %w", ing.Slug, err)
		}
		result[strings.ToLower(ing.Slug)] = lowerAll(subs)
	}
	return result, nil
}

// FindHealthConstraints unions the forbidden and caution ingredient lists of
// the given health-condition slugs, case-insensitively. Empty input yields
// empty sets.
func (r *Repository) FindHealthConstraints(ctx context.Context, conditionSlugs []string) (Constraints, error) {
	constraints := NewConstraints()
	if len(conditionSlugs) == 0 {
		return constraints, nil
	}

	dbConds, err := r.queries.GetHealthConditionsBySlugs(ctx, lowerAll(conditionSlugs))
	if err != nil {
		return Constraints{}, fmt.Errorf("failed to look up health conditions: %w", err)
	}
	for _, cond := range dbConds {
		var forbidden, caution []string
		if err := json.Unmarshal([]byte(cond.Forbidden), &forbidden); err != nil {
			return Constraints{}, fmt.Errorf("failed to unmarshal forbidden list for %s: %w", cond.Slug, err)
		}
		if err := json.Unmarshal([]byte(cond.Caution), &caution); err != nil {
			return Constraints{}, fmt.Errorf("failed to unmarshal caution list for %s: %w", cond.Slug, err)
		}
		for _, f := range forbidden {
			constraints.Forbidden[strings.ToLower(f)] = struct{}{}
		}
		for _, c := range caution {
			constraints.Caution[strings.ToLower(c)] = struct{}{}
		}
	}
	return constraints, nil
}

// GetMeta summarizes the catalog for filter menus.
func (r *Repository) GetMeta(ctx context.Context) (*Meta, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, err
	}
	mealTypes, err := r.queries.ListDistinctMealTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list meal types: %w", err)
	}
	diets, err := r.queries.ListDistinctDiets(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list diets: %w", err)
	}

	tagRows, err := r.queries.ListRecipeTags(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	seen := make(map[string]struct{})
	var tags []string
	for _, raw := range tagRows {
		var rowTags []string
		if err := json.Unmarshal([]byte(raw), &rowTags); err != nil {
			continue
		}
		for _, tag := range rowTags {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	return &Meta{
		Total:     total,
		MealTypes: mealTypes,
		Diets:     diets,
		Tags:      tags,
	}, nil
}

// GetLookups returns name/slug pairs for all ingredients and health
// conditions, for profile-editing dropdowns.
func (r *Repository) GetLookups(ctx context.Context) (ingredients, conditions []LookupEntry, err error) {
	dbIngs, err := r.queries.ListIngredients(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	for _, ing := range dbIngs {
		ingredients = append(ingredients, LookupEntry{Name: ing.IngredientName, Slug: ing.Slug})
	}

	dbConds, err := r.queries.ListHealthConditions(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list health conditions: %w", err)
	}
	for _, cond := range dbConds {
		conditions = append(conditions, LookupEntry{Name: cond.ConditionName, Slug: cond.Slug})
	}
	return ingredients, conditions, nil
}

// SaveRecipe inserts or updates a catalog recipe.
func (r *Repository) SaveRecipe(ctx context.Context, rec Recipe) error {
	tags, err := json.Marshal(emptyIfNil(rec.Tags))
	if err != nil {
		return fmt.Errorf("failed to marshal tags: %w", err)
	}
	if rec.Ingredients == nil {
		rec.Ingredients = []RecipeIngredient{}
	}
	ings, err := json.Marshal(rec.Ingredients)
	if err != nil {
		return fmt.Errorf("failed to marshal ingredients: %w", err)
	}
	staples, err := json.Marshal(emptyIfNil(rec.StapleOptions))
	if err != nil {
		return fmt.Errorf("failed to marshal staple options: %w", err)
	}
	steps, err := json.Marshal(emptyIfNil(rec.Steps))
	if err != nil {
		return fmt.Errorf("failed to marshal steps: %w", err)
	}
	return r.queries.UpsertRecipe(ctx, db.UpsertRecipeParams{
		Slug:          strings.ToLower(rec.Slug),
		RecipeName:    rec.Name,
		MealType:      rec.MealType,
		DietaryType:   rec.DietaryType,
		Calories:      float64(rec.Calories),
		Protein:       float64(rec.Protein),
		Carbs:         float64(rec.Carbs),
		Fat:           float64(rec.Fat),
		TimeMinutes:   int64(rec.TimeMinutes),
		Servings:      int64(rec.Servings),
		Tags:          string(tags),
		ImageUrl:      rec.ImageURL,
		Ingredients:   string(ings),
		StapleOptions: string(staples),
		Steps:         string(steps),
		Notes:         rec.Notes,
		UpdatedAt:     time.Now().UTC(),
	})
}

// SaveIngredient inserts or updates a catalog ingredient.
func (r *Repository) SaveIngredient(ctx context.Context, ing Ingredient) error {
	allergens, err := json.Marshal(emptyIfNil(ing.Allergens))
	if err != nil {
		return fmt.Errorf("failed to marshal allergens: %w", err)
	}
	subs, err := json.Marshal(emptyIfNil(lowerAll(ing.Substitutes)))
	if err != nil {
		return fmt.Errorf("failed to marshal substitutes: %w", err)
	}
	return r.queries.UpsertIngredient(ctx, db.UpsertIngredientParams{
		Slug:           strings.ToLower(ing.Slug),
		IngredientName: ing.Name,
		Type:           ing.Type,
		Allergens:      string(allergens),
		Substitutes:    string(subs),
	})
}

// SaveCondition inserts or updates a health condition.
func (r *Repository) SaveCondition(ctx context.Context, cond HealthCondition) error {
	forbidden, err := json.Marshal(emptyIfNil(lowerAll(cond.Forbidden)))
	if err != nil {
		return fmt.Errorf("failed to marshal forbidden list: %w", err)
	}
	caution, err := json.Marshal(emptyIfNil(lowerAll(cond.Caution)))
	if err != nil {
		return fmt.Errorf("failed to marshal caution list: %w", err)
	}
	return r.queries.UpsertHealthCondition(ctx, db.UpsertHealthConditionParams{
		Slug:          strings.ToLower(cond.Slug),
		ConditionName: cond.Name,
		Forbidden:     string(forbidden),
		Caution:       string(caution),
		Notes:         cond.Notes,
	})
}

func rowToRecipe(row db.Recipe) (Recipe, error) {
	rec := Recipe{
		Slug:        row.Slug,
		Name:        row.RecipeName,
		MealType:    row.MealType,
		DietaryType: row.DietaryType,
		Calories:    coerceNonNegative(row.Calories),
		Protein:     coerceNonNegative(row.Protein),
		Carbs:       coerceNonNegative(row.Carbs),
		Fat:         coerceNonNegative(row.Fat),
		TimeMinutes: int(row.TimeMinutes),
		Servings:    int(row.Servings),
		ImageURL:    row.ImageUrl,
		Notes:       row.Notes,
	}
	if err := json.Unmarshal([]byte(row.Tags), &rec.Tags); err != nil {
		return Recipe{}, fmt.Errorf("bad tags JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Ingredients), &rec.Ingredients); err != nil {
		return Recipe{}, fmt.Errorf("bad ingredients JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(row.StapleOptions), &rec.StapleOptions); err != nil {
		return Recipe{}, fmt.Errorf("bad staple options JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(row.Steps), &rec.Steps); err != nil {
		return Recipe{}, fmt.Errorf("bad steps JSON: %w", err)
	}
	return rec, nil
}

func coerceNonNegative(v float64) Number {
	if v < 0 || v != v { // negative or NaN
		return 0
	}
	return Number(v)
}

// allowedDiets maps a dietary preference to the dietary types it admits;
// nil means unrestricted.
func allowedDiets(pref string) []string {
	switch strings.ToLower(strings.TrimSpace(pref)) {
	case "vegetarian":
		return []string{"vegetarian", "vegan"}
	case "vegan":
		return []string{"vegan"}
	default:
		return nil
	}
}

func lowerAll(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
