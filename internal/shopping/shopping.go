// Package shopping derives a shopping list from a built meal plan and
// persists it alongside the plan.
package shopping

import (
	"strings"
	"time"

	"nutriplan/internal/planner"
)

// Item is one shopping list entry, aggregated across the day's meals.
type Item struct {
	Slug       string   `json:"slug"`
	Name       string   `json:"name"`
	Quantities []string `json:"quantities,omitempty"`
	Recipes    []string `json:"recipes"`
}

// ShoppingList represents a shopping list for a meal plan.
type ShoppingList struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	MealPlanID int64     `json:"meal_plan_id"`
	Items      []Item    `json:"items"`
	CreatedAt  time.Time `json:"created_at"`
}

// BuildItems aggregates the visible ingredients of every planned meal into a
// deduplicated list, in first-seen order. Hidden ingredients never appear;
// substituted ingredients appear under their replacement.
func BuildItems(plan *planner.PlanResult) []Item {
	index := make(map[string]int)
	var items []Item

	for _, slot := range planner.SlotOrder {
		meal := plan.Meals[slot]
		if meal.Recipe == nil {
			continue
		}
		for _, ing := range meal.Recipe.VisibleIngredients() {
			slug := strings.ToLower(ing.Slug)
			if ing.Mark == planner.MarkSubstituted && ing.SubstituteSlug != "" {
				slug = strings.ToLower(ing.SubstituteSlug)
			}

			i, seen := index[slug]
			if !seen {
				index[slug] = len(items)
				items = append(items, Item{Slug: slug, Name: displayName(slug)})
				i = len(items) - 1
			}
			if q := strings.TrimSpace(ing.Quantity); q != "" {
				items[i].Quantities = append(items[i].Quantities, q)
			}
			items[i].Recipes = appendUnique(items[i].Recipes, meal.Recipe.Name)
		}
	}
	return items
}

func displayName(slug string) string {
	words := strings.Fields(strings.ReplaceAll(slug, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}
