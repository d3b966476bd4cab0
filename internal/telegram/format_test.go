package telegram

import (
	"strings"
	"testing"

	"nutriplan/internal/catalog"
	"nutriplan/internal/planner"
	"nutriplan/internal/shopping"
)

func testPlan() *planner.PlanResult {
	oats := planner.PlannedIngredient{
		RecipeIngredient: catalog.RecipeIngredient{Slug: "oats", Quantity: "1 cup"},
	}
	peanut := planner.PlannedIngredient{
		RecipeIngredient: catalog.RecipeIngredient{Slug: "peanut", Quantity: "2 tbsp"},
		Mark:             planner.MarkHidden,
	}
	tofu := planner.PlannedIngredient{
		RecipeIngredient: catalog.RecipeIngredient{Slug: "paneer", Quantity: "100 g"},
		Mark:             planner.MarkSubstituted,
		SubstituteSlug:   "tofu",
	}

	return &planner.PlanResult{
		Targets: planner.NutritionTargets{
			BMI:           22.04,
			DailyCalories: 1660,
			DailyProtein:  72,
		},
		Meals: map[planner.Slot]planner.SlotResult{
			planner.SlotBreakfast: {
				Recipe: &planner.PlannedRecipe{
					Recipe:      catalog.Recipe{Name: "Masala Oats", Calories: 410, Protein: 16},
					Ingredients: []planner.PlannedIngredient{oats, peanut},
				},
			},
			planner.SlotLunch: {
				Recipe: &planner.PlannedRecipe{
					Recipe:      catalog.Recipe{Name: "Paneer Wrap", Calories: 580, Protein: 28},
					Ingredients: []planner.PlannedIngredient{tofu},
				},
				Substitutions: []string{"paneer->tofu"},
			},
			planner.SlotSnack:  {},
			planner.SlotDinner: {},
		},
		Audit: planner.Audit{Blocked: []planner.Slot{planner.SlotSnack, planner.SlotDinner}},
	}
}

func TestFormatPlanMarkdown(t *testing.T) {
	text := formatPlanMarkdown(testPlan())

	if !strings.Contains(text, "1660 kcal / 72g protein") {
		t.Errorf("Expected targets header, got:\n%s", text)
	}
	if !strings.Contains(text, "*Masala Oats* (410 kcal, 16g protein)") {
		t.Errorf("Expected breakfast recipe line, got:\n%s", text)
	}
	if strings.Contains(text, "peanut") {
		t.Error("Hidden ingredient leaked into the message")
	}
	if strings.Contains(text, "• paneer") {
		t.Error("Substituted ingredient rendered under its original name")
	}
	if !strings.Contains(text, "• tofu — 100 g") {
		t.Errorf("Expected substitute rendered with quantity, got:\n%s", text)
	}
	if !strings.Contains(text, "_swapped paneer for tofu_") {
		t.Errorf("Expected swap note, got:\n%s", text)
	}
	if !strings.Contains(text, "no suitable recipe today") {
		t.Errorf("Expected blocked slot placeholder, got:\n%s", text)
	}
	if !strings.Contains(text, "Blocked slots: Snack, Dinner") {
		t.Errorf("Expected blocked summary, got:\n%s", text)
	}

	// Serving order.
	if strings.Index(text, "Breakfast") > strings.Index(text, "Lunch") {
		t.Error("Expected breakfast before lunch")
	}
}

func TestFormatShoppingList(t *testing.T) {
	text := formatShoppingList([]shopping.Item{
		{Slug: "oats", Name: "Oats", Quantities: []string{"1 cup", "half cup"}},
		{Slug: "tofu", Name: "Tofu", Quantities: []string{"100 g"}},
	})

	if !strings.Contains(text, "*Oats*: 1 cup + half cup") {
		t.Errorf("Expected merged quantities, got:\n%s", text)
	}
	if !strings.Contains(text, "*Tofu*: 100 g") {
		t.Errorf("Expected tofu line, got:\n%s", text)
	}

	if got := formatShoppingList(nil); !strings.Contains(got, "empty") {
		t.Errorf("Expected empty-list message, got %q", got)
	}
}
