package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SeedResult reports how many records a seed run loaded.
type SeedResult struct {
	Recipes     int
	Ingredients int
	Conditions  int
}

// SeedFromDir loads catalog reference data from JSON files in dir:
// recipes.json, ingredients.json and health_conditions.json. Missing files
// are skipped so partial seed directories are usable.
func (r *Repository) SeedFromDir(ctx context.Context, dir string) (*SeedResult, error) {
	result := &SeedResult{}

	var recipes []Recipe
	if err := readSeedFile(filepath.Join(dir, "recipes.json"), &recipes); err != nil {
		return nil, err
	}
	for _, rec := range recipes {
		if err := r.SaveRecipe(ctx, rec); err != nil {
			return nil, fmt.Errorf("failed to seed recipe %s: %w", rec.Slug, err)
		}
		result.Recipes++
	}

	var ingredients []Ingredient
	if err := readSeedFile(filepath.Join(dir, "ingredients.json"), &ingredients); err != nil {
		return nil, err
	}
	for _, ing := range ingredients {
		if err := r.SaveIngredient(ctx, ing); err != nil {
			return nil, fmt.Errorf("failed to seed ingredient %s: %w", ing.Slug, err)
		}
		result.Ingredients++
	}

	var conditions []HealthCondition
	if err := readSeedFile(filepath.Join(dir, "health_conditions.json"), &conditions); err != nil {
		return nil, err
	}
	for _, cond := range conditions {
		if err := r.SaveCondition(ctx, cond); err != nil {
			return nil, fmt.Errorf("failed to seed health condition %s: %w", cond.Slug, err)
		}
		result.Conditions++
	}

	return result, nil
}

func readSeedFile(path string, target interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read seed file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to unmarshal seed file %s: %w", path, err)
	}
	return nil
}
