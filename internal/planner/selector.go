package planner

import (
	"math"
	"sort"
	"strings"

	"nutriplan/internal/catalog"
)

// Selection tuning constants.
const (
	topK = 5 // random pick happens within the best topK candidates

	pass1CalTol  = 0.12
	pass1ProtTol = 0.20
	pass2CalTol  = 0.40
	pass2ProtTol = 0.50

	// Breakfast and snack catalogs are sparse; their calorie band is always
	// this wide regardless of pass.
	lightSlotCalTol = 0.80

	weightCal             = 0.75
	weightProt            = 0.25
	penaltyDislike        = 0.06
	penaltyMissingProtein = 0.10
)

// buildPool removes recently served recipes from the slot pool. An empty
// result is an expected outcome, not an error.
func buildPool(recipes []catalog.Recipe, excludeSlugs []string) []catalog.Recipe {
	exclude := slugSet(excludeSlugs)
	var pool []catalog.Recipe
	for _, r := range recipes {
		if _, skip := exclude[strings.ToLower(r.Slug)]; skip {
			continue
		}
		pool = append(pool, r)
	}
	return pool
}

// applySafetyFilter drops recipes containing any forbidden ingredient. When
// that would empty the pool the filter is waived and the full pool returned,
// trading strict safety for availability; waived reports that so the caller
// can record it in the audit trail.
func applySafetyFilter(pool []catalog.Recipe, forbidden map[string]struct{}) (safe []catalog.Recipe, waived bool) {
	if len(forbidden) == 0 {
		return pool, false
	}
	for _, r := range pool {
		if !containsAny(r.Ingredients, forbidden) {
			safe = append(safe, r)
		}
	}
	if len(safe) == 0 && len(pool) > 0 {
		return pool, true
	}
	return safe, false
}

func containsAny(ingredients []catalog.RecipeIngredient, set map[string]struct{}) bool {
	for _, ing := range ingredients {
		if _, ok := set[strings.ToLower(ing.Slug)]; ok {
			return true
		}
	}
	return false
}

// fitsTolerance reports whether a recipe sits within the given relative
// bands around the slot targets.
func fitsTolerance(r catalog.Recipe, slot Slot, calTarget, protTarget int, calTol, protTol float64) bool {
	if slot == SlotBreakfast || slot == SlotSnack {
		calTol = lightSlotCalTol
	}
	calOK := relErr(float64(r.Calories), calTarget) <= calTol
	protOK := relErr(float64(r.Protein), protTarget) <= protTol
	return calOK && protOK
}

func relErr(value float64, target int) float64 {
	t := float64(target)
	if t == 0 {
		t = 1
	}
	return math.Abs((value - t) / t)
}

// filterByTolerance applies the two-pass widening bands; when both passes
// yield nothing the whole pool passes through unfiltered.
func filterByTolerance(pool []catalog.Recipe, slot Slot, calTarget, protTarget int) []catalog.Recipe {
	passes := []struct{ calTol, protTol float64 }{
		{pass1CalTol, pass1ProtTol},
		{pass2CalTol, pass2ProtTol},
	}
	for _, pass := range passes {
		var candidates []catalog.Recipe
		for _, r := range pool {
			if fitsTolerance(r, slot, calTarget, protTarget, pass.calTol, pass.protTol) {
				candidates = append(candidates, r)
			}
		}
		if len(candidates) > 0 {
			return candidates
		}
	}
	return pool
}

// scoreRecipe computes the selection cost: weighted squared relative errors
// plus dislike and missing-protein penalties. Lower is better.
func scoreRecipe(r catalog.Recipe, calTarget, protTarget int, dislikes map[string]struct{}) float64 {
	calErr := relErr(float64(r.Calories), calTarget)
	protErr := relErr(float64(r.Protein), protTarget)

	dislikeCount := 0
	for _, ing := range r.Ingredients {
		if _, ok := dislikes[strings.ToLower(ing.Slug)]; ok {
			dislikeCount++
		}
	}

	score := weightCal*calErr*calErr + weightProt*protErr*protErr + float64(dislikeCount)*penaltyDislike
	if r.Protein == 0 {
		score += penaltyMissingProtein
	}
	return score
}

// rankCandidates sorts candidates ascending by cost. For a non-vegetarian
// preference the sorted list is stably partitioned with non-veg recipes
// first; relative order within each partition is preserved.
func rankCandidates(pool []catalog.Recipe, calTarget, protTarget int, dislikes map[string]struct{}, foodPref string) []catalog.Recipe {
	ranked := append([]catalog.Recipe(nil), pool...)
	scores := make(map[string]float64, len(ranked))
	for _, r := range ranked {
		scores[r.Slug] = scoreRecipe(r, calTarget, protTarget, dislikes)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return scores[ranked[i].Slug] < scores[ranked[j].Slug]
	})

	pref := strings.ToLower(foodPref)
	if pref == "non-vegetarian" || pref == "non vegetarian" {
		var nonVeg, veg []catalog.Recipe
		for _, r := range ranked {
			if r.IsNonVeg() {
				nonVeg = append(nonVeg, r)
			} else {
				veg = append(veg, r)
			}
		}
		ranked = append(nonVeg, veg...)
	}
	return ranked
}

// pickTopK selects uniformly at random among the best topK entries (or
// fewer when the list is shorter). This is the engine's only source of
// run-to-run variability.
func (p *Planner) pickTopK(ranked []catalog.Recipe) *catalog.Recipe {
	if len(ranked) == 0 {
		return nil
	}
	n := topK
	if len(ranked) < n {
		n = len(ranked)
	}
	p.mu.Lock()
	idx := p.rng.Intn(n)
	p.mu.Unlock()
	return &ranked[idx]
}
