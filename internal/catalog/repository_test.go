package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"nutriplan/internal/database"
)

func newTestRepo(t *testing.T) *Repository {
	t.Helper()
	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewRepository(db.SQL)
}

func TestSaveAndGetRecipe(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	rec := Recipe{
		Slug:        "Masala_Oats",
		Name:        "Masala Oats",
		MealType:    "Breakfast",
		DietaryType: "vegetarian",
		Calories:    310,
		Protein:     12,
		TimeMinutes: 15,
		Servings:    1,
		Tags:        []string{"quick"},
		Ingredients: []RecipeIngredient{
			{Slug: "oats", Quantity: "1 cup", Importance: 5},
			{Slug: "peanut", Quantity: "2 tbsp", Importance: 2, Optional: true},
		},
		StapleOptions: []string{"millet"},
		Steps:         []string{"Toast the oats.", "Simmer with spices."},
	}
	if err := repo.SaveRecipe(ctx, rec); err != nil {
		t.Fatalf("SaveRecipe returned error: %v", err)
	}

	// Slugs are stored lowercased.
	got, err := repo.GetBySlug(ctx, "masala_oats")
	if err != nil {
		t.Fatalf("GetBySlug returned error: %v", err)
	}
	if got == nil {
		t.Fatal("Expected recipe, got nil")
	}
	if got.Name != "Masala Oats" || got.Calories != 310 {
		t.Errorf("Round trip lost fields: %+v", got)
	}
	if len(got.Ingredients) != 2 || got.Ingredients[0].Slug != "oats" || !got.Ingredients[1].Optional {
		t.Errorf("Ingredients did not survive round trip: %+v", got.Ingredients)
	}
	if len(got.StapleOptions) != 1 || got.StapleOptions[0] != "millet" {
		t.Errorf("Staple options did not survive round trip: %v", got.StapleOptions)
	}

	missing, err := repo.GetBySlug(ctx, "nope")
	if err != nil {
		t.Fatalf("GetBySlug for missing slug returned error: %v", err)
	}
	if missing != nil {
		t.Errorf("Expected nil for missing slug, got %+v", missing)
	}
}

func TestFindRecipesDietFilter(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seed := []Recipe{
		{Slug: "veg_curry", Name: "Veg Curry", MealType: "Lunch", DietaryType: "vegetarian"},
		{Slug: "vegan_bowl", Name: "Vegan Bowl", MealType: "Lunch", DietaryType: "vegan"},
		{Slug: "chicken_rice", Name: "Chicken Rice", MealType: "Lunch", DietaryType: "non-vegetarian"},
		{Slug: "omelette", Name: "Omelette", MealType: "Breakfast", DietaryType: "non-vegetarian"},
	}
	for _, rec := range seed {
		if err := repo.SaveRecipe(ctx, rec); err != nil {
			t.Fatalf("SaveRecipe returned error: %v", err)
		}
	}

	t.Run("Vegetarian Admits Vegan", func(t *testing.T) {
		recipes, err := repo.FindRecipes(ctx, "Lunch", "vegetarian")
		if err != nil {
			t.Fatalf("FindRecipes returned error: %v", err)
		}
		if len(recipes) != 2 {
			t.Fatalf("Expected 2 recipes, got %d", len(recipes))
		}
		for _, rec := range recipes {
			if rec.IsNonVeg() {
				t.Errorf("Non-veg recipe %s passed the vegetarian filter", rec.Slug)
			}
		}
	})

	t.Run("Vegan Strict", func(t *testing.T) {
		recipes, err := repo.FindRecipes(ctx, "Lunch", "vegan")
		if err != nil {
			t.Fatalf("FindRecipes returned error: %v", err)
		}
		if len(recipes) != 1 || recipes[0].Slug != "vegan_bowl" {
			t.Errorf("Expected only vegan_bowl, got %+v", recipes)
		}
	})

	t.Run("Non Vegetarian Unrestricted", func(t *testing.T) {
		recipes, err := repo.FindRecipes(ctx, "Lunch", "non-vegetarian")
		if err != nil {
			t.Fatalf("FindRecipes returned error: %v", err)
		}
		if len(recipes) != 3 {
			t.Errorf("Expected all 3 lunch recipes, got %d", len(recipes))
		}
	})

	t.Run("Slot Scoped", func(t *testing.T) {
		recipes, err := repo.FindRecipes(ctx, "Breakfast", "non-vegetarian")
		if err != nil {
			t.Fatalf("FindRecipes returned error: %v", err)
		}
		if len(recipes) != 1 || recipes[0].Slug != "omelette" {
			t.Errorf("Expected only omelette for breakfast, got %+v", recipes)
		}
	})
}

func TestFindRecipesRestrictedPoolBeyondFetchCap(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	// Fill the slot past the fetch cap with non-veg rows, then add a single
	// vegan recipe last.
	for i := 0; i < fetchCap; i++ {
		rec := Recipe{
			Slug:        fmt.Sprintf("filler_%04d", i),
			Name:        "Filler",
			MealType:    "Lunch",
			DietaryType: "non-vegetarian",
		}
		if err := repo.SaveRecipe(ctx, rec); err != nil {
			t.Fatalf("SaveRecipe returned error: %v", err)
		}
	}
	if err := repo.SaveRecipe(ctx, Recipe{
		Slug: "vegan_bowl", Name: "Vegan Bowl", MealType: "Lunch", DietaryType: "vegan",
	}); err != nil {
		t.Fatalf("SaveRecipe returned error: %v", err)
	}

	recipes, err := repo.FindRecipes(ctx, "Lunch", "vegetarian")
	if err != nil {
		t.Fatalf("FindRecipes returned error: %v", err)
	}
	if len(recipes) != 1 || recipes[0].Slug != "vegan_bowl" {
		t.Errorf("Expected the vegan recipe despite %d non-veg rows, got %d recipes", fetchCap, len(recipes))
	}
}

func TestFindSubstitutes(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.SaveIngredient(ctx, Ingredient{
		Slug:        "Paneer",
		Name:        "Paneer",
		Substitutes: []string{"Tofu", "mushroom"},
	}); err != nil {
		t.Fatalf("SaveIngredient returned error: %v", err)
	}

	subs, err := repo.FindSubstitutes(ctx, []string{"PANEER", "unknown"})
	if err != nil {
		t.Fatalf("FindSubstitutes returned error: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("Expected 1 entry, got %d", len(subs))
	}
	got := subs["paneer"]
	if len(got) != 2 || got[0] != "tofu" || got[1] != "mushroom" {
		t.Errorf("Expected lowercased ordered substitutes, got %v", got)
	}

	empty, err := repo.FindSubstitutes(ctx, nil)
	if err != nil {
		t.Fatalf("FindSubstitutes(nil) returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected empty map for no slugs, got %v", empty)
	}
}

func TestFindHealthConstraints(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	conds := []HealthCondition{
		{Slug: "diabetes", Name: "Diabetes", Forbidden: []string{"Sugar"}, Caution: []string{"white_rice"}},
		{Slug: "hypertension", Name: "Hypertension", Forbidden: []string{"sugar", "pickle"}, Caution: []string{"salt"}},
	}
	for _, cond := range conds {
		if err := repo.SaveCondition(ctx, cond); err != nil {
			t.Fatalf("SaveCondition returned error: %v", err)
		}
	}

	got, err := repo.FindHealthConstraints(ctx, []string{"Diabetes", "hypertension", "unknown"})
	if err != nil {
		t.Fatalf("FindHealthConstraints returned error: %v", err)
	}
	if len(got.Forbidden) != 2 {
		t.Errorf("Expected forbidden union of 2, got %v", got.Forbidden)
	}
	if _, ok := got.Forbidden["sugar"]; !ok {
		t.Error("Expected sugar in forbidden set")
	}
	if len(got.Caution) != 2 {
		t.Errorf("Expected caution union of 2, got %v", got.Caution)
	}

	none, err := repo.FindHealthConstraints(ctx, nil)
	if err != nil {
		t.Fatalf("FindHealthConstraints(nil) returned error: %v", err)
	}
	if len(none.Forbidden) != 0 || len(none.Caution) != 0 {
		t.Errorf("Expected empty constraints, got %+v", none)
	}
}

func TestGetMetaAndLookups(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	recipes := []Recipe{
		{Slug: "a", Name: "A", MealType: "Breakfast", DietaryType: "vegetarian", Tags: []string{"quick", "comfort"}},
		{Slug: "b", Name: "B", MealType: "Lunch", DietaryType: "vegan", Tags: []string{"quick"}},
	}
	for _, rec := range recipes {
		if err := repo.SaveRecipe(ctx, rec); err != nil {
			t.Fatalf("SaveRecipe returned error: %v", err)
		}
	}
	if err := repo.SaveIngredient(ctx, Ingredient{Slug: "oats", Name: "Oats"}); err != nil {
		t.Fatalf("SaveIngredient returned error: %v", err)
	}
	if err := repo.SaveCondition(ctx, HealthCondition{Slug: "diabetes", Name: "Diabetes"}); err != nil {
		t.Fatalf("SaveCondition returned error: %v", err)
	}

	meta, err := repo.GetMeta(ctx)
	if err != nil {
		t.Fatalf("GetMeta returned error: %v", err)
	}
	if meta.Total != 2 || len(meta.MealTypes) != 2 || len(meta.Diets) != 2 {
		t.Errorf("Unexpected meta: %+v", meta)
	}
	if len(meta.Tags) != 2 {
		t.Errorf("Expected 2 distinct tags, got %v", meta.Tags)
	}

	ingredients, conditions, err := repo.GetLookups(ctx)
	if err != nil {
		t.Fatalf("GetLookups returned error: %v", err)
	}
	if len(ingredients) != 1 || ingredients[0].Slug != "oats" {
		t.Errorf("Unexpected ingredient lookups: %+v", ingredients)
	}
	if len(conditions) != 1 || conditions[0].Name != "Diabetes" {
		t.Errorf("Unexpected condition lookups: %+v", conditions)
	}
}

func TestSeedFromDir(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	dir := t.TempDir()
	writeSeedFile(t, dir, "recipes.json", []Recipe{
		{Slug: "dal", Name: "Dal", MealType: "Lunch", DietaryType: "vegetarian"},
		{Slug: "oats", Name: "Oats", MealType: "Breakfast", DietaryType: "vegan"},
	})
	writeSeedFile(t, dir, "ingredients.json", []Ingredient{
		{Slug: "paneer", Name: "Paneer", Substitutes: []string{"tofu"}},
	})
	// health_conditions.json intentionally absent.

	result, err := repo.SeedFromDir(ctx, dir)
	if err != nil {
		t.Fatalf("SeedFromDir returned error: %v", err)
	}
	if result.Recipes != 2 || result.Ingredients != 1 || result.Conditions != 0 {
		t.Errorf("Expected 2/1/0, got %d/%d/%d", result.Recipes, result.Ingredients, result.Conditions)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count returned error: %v", err)
	}
	if count != 2 {
		t.Errorf("Expected 2 seeded recipes, got %d", count)
	}

	// Seeding is idempotent upsert, not append.
	if _, err := repo.SeedFromDir(ctx, dir); err != nil {
		t.Fatalf("second SeedFromDir returned error: %v", err)
	}
	count, _ = repo.Count(ctx)
	if count != 2 {
		t.Errorf("Expected 2 recipes after re-seed, got %d", count)
	}
}

func writeSeedFile(t *testing.T, dir, name string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0644); err != nil {
		t.Fatal(err)
	}
}
