package telegram

import (
	"fmt"
	"strings"

	"nutriplan/internal/planner"
	"nutriplan/internal/shopping"
)

var slotEmoji = map[planner.Slot]string{
	planner.SlotBreakfast: "🌅",
	planner.SlotLunch:     "🌞",
	planner.SlotSnack:     "🫖",
	planner.SlotDinner:    "🌙",
}

// formatPlanMarkdown renders a plan as a Telegram Markdown message: targets
// header, one section per slot in serving order, and any swaps or cautions
// the run produced.
func formatPlanMarkdown(result *planner.PlanResult) string {
	var sb strings.Builder

	sb.WriteString("🍽 *Today's Plan*\n")
	sb.WriteString(fmt.Sprintf("_%d kcal / %dg protein (BMI %.1f)_\n",
		result.Targets.DailyCalories, result.Targets.DailyProtein, result.Targets.BMI))

	for _, slot := range planner.SlotOrder {
		meal := result.Meals[slot]
		sb.WriteString(fmt.Sprintf("\n%s *%s*", slotEmoji[slot], slot))
		if meal.Recipe == nil {
			sb.WriteString(" — _no suitable recipe today_\n")
			continue
		}

		sb.WriteString(fmt.Sprintf("\n*%s* (%.0f kcal, %.0fg protein)\n",
			meal.Recipe.Name, float64(meal.Recipe.Calories), float64(meal.Recipe.Protein)))
		for _, ing := range meal.Recipe.VisibleIngredients() {
			name := strings.ReplaceAll(ing.Slug, "_", " ")
			if ing.Mark == planner.MarkSubstituted && ing.SubstituteSlug != "" {
				name = strings.ReplaceAll(ing.SubstituteSlug, "_", " ")
			}
			line := "• " + name
			if ing.Quantity != "" {
				line += " — " + ing.Quantity
			}
			if ing.Mark == planner.MarkCaution {
				line += " ⚠️"
			}
			sb.WriteString(line + "\n")
		}
		for _, swap := range meal.Substitutions {
			sb.WriteString(fmt.Sprintf("_swapped %s_\n", strings.ReplaceAll(swap, "->", " for ")))
		}
	}

	if len(result.Audit.Blocked) > 0 {
		var names []string
		for _, slot := range result.Audit.Blocked {
			names = append(names, string(slot))
		}
		sb.WriteString(fmt.Sprintf("\n⚠️ Blocked slots: %s. Relax your exclusions or add recipes.\n",
			strings.Join(names, ", ")))
	}

	sb.WriteString("\nSend /shopping for the shopping list.")
	return sb.String()
}

// formatShoppingList renders the consolidated shopping list.
func formatShoppingList(items []shopping.Item) string {
	if len(items) == 0 {
		return "🛒 The shopping list is empty."
	}

	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")
	for _, item := range items {
		sb.WriteString("• *" + item.Name + "*")
		if len(item.Quantities) > 0 {
			sb.WriteString(": " + strings.Join(item.Quantities, " + "))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
