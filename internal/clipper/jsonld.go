package clipper

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractJSONLD scans the page's ld+json blocks for a schema.org Recipe
// node. Returns nil when none is present.
func extractJSONLD(doc *goquery.Document) *ExtractedRecipe {
	var found *ExtractedRecipe
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(i int, s *goquery.Selection) bool {
		var raw interface{}
		if err := json.Unmarshal([]byte(s.Text()), &raw); err != nil {
			return true
		}
		if node := findRecipeNode(raw); node != nil {
			found = recipeFromNode(node)
			return false
		}
		return true
	})
	return found
}

// findRecipeNode walks a decoded ld+json value, descending into lists and
// @graph containers, and returns the first node typed Recipe.
func findRecipeNode(raw interface{}) map[string]interface{} {
	switch v := raw.(type) {
	case map[string]interface{}:
		if hasType(v, "Recipe") {
			return v
		}
		if graph, ok := v["@graph"]; ok {
			return findRecipeNode(graph)
		}
	case []interface{}:
		for _, item := range v {
			if node := findRecipeNode(item); node != nil {
				return node
			}
		}
	}
	return nil
}

func hasType(node map[string]interface{}, want string) bool {
	switch t := node["@type"].(type) {
	case string:
		return t == want
	case []interface{}:
		for _, v := range t {
			if s, ok := v.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}

func recipeFromNode(node map[string]interface{}) *ExtractedRecipe {
	e := &ExtractedRecipe{
		Title:    asString(node["name"]),
		PrepTime: asString(node["totalTime"]),
		Servings: asString(node["recipeYield"]),
	}
	if e.PrepTime == "" {
		e.PrepTime = asString(node["prepTime"])
	}
	e.Ingredients = asStringList(node["recipeIngredient"])
	e.Steps = collectInstructions(node["recipeInstructions"])
	return e
}

// collectInstructions flattens recipeInstructions: plain strings, HowToStep
// nodes ("text"), and HowToSection nodes ("itemListElement") all appear on
// real pages.
func collectInstructions(raw interface{}) []string {
	var out []string
	switch v := raw.(type) {
	case string:
		if s := strings.TrimSpace(v); s != "" {
			out = append(out, s)
		}
	case []interface{}:
		for _, item := range v {
			out = append(out, collectInstructions(item)...)
		}
	case map[string]interface{}:
		if text := asString(v["text"]); text != "" {
			out = append(out, strings.TrimSpace(text))
		} else if items, ok := v["itemListElement"]; ok {
			out = append(out, collectInstructions(items)...)
		}
	}
	return out
}

func asString(raw interface{}) string {
	switch v := raw.(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strings.TrimSuffix(fmt.Sprintf("%v", v), ".0")
	case []interface{}:
		if len(v) > 0 {
			return asString(v[0])
		}
	}
	return ""
}

func asStringList(raw interface{}) []string {
	items, ok := raw.([]interface{})
	if !ok {
		return nil
	}
	var out []string
	for _, item := range items {
		if s, ok := item.(string); ok {
			s = strings.TrimSpace(s)
			if s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
