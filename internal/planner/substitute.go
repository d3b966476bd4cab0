package planner

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strings"

	"nutriplan/internal/catalog"
)

// staplePrefs maps a health condition to preferred replacements for staple
// ingredients, ordered best-first. Extending coverage to a new condition
// means adding a row here.
var staplePrefs = map[string]map[string][]string{
	"diabetes": {
		"white_rice":        {"brown_rice", "millet", "quinoa"},
		"bread_white":       {"whole_wheat", "bread_whole_wheat"},
		"whole_wheat_bread": {"whole_wheat", "bread_whole_wheat"},
		"pasta":             {"whole_wheat", "gluten_free_pasta", "pasta"},
	},
}

// safeKnownStaples is a small allowlist of staples safe to swap in even when
// the recipe and ingredient catalog don't list them.
var safeKnownStaples = map[string]struct{}{
	"brown_rice":        {},
	"millet":            {},
	"quinoa":            {},
	"whole_wheat":       {},
	"bread_whole_wheat": {},
	"gluten_free_pasta": {},
	"oats":              {},
}

var (
	boldRe  = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	spaceRe = regexp.MustCompile(`\s+`)
)

// substitution is the output of the personalization pipeline for one chosen
// recipe.
type substitution struct {
	Recipe        *PlannedRecipe
	Hidden        []string
	Cautions      []string
	Substitutions []string
	CautionSubs   map[string][]string
}

// personalize rewrites a per-selection copy of the chosen recipe against the
// user's constraints: forbidden ingredients are hidden, caution ingredients
// annotated with their substitute options, disliked ingredients swapped for
// their preferred substitute (or hidden when none exists), condition-specific
// staples swapped, and the step/notes text redacted to match. The catalog
// record itself is never touched.
func (p *Planner) personalize(ctx context.Context, chosen catalog.Recipe, cons catalog.Constraints, dislikes, healthIssues map[string]struct{}) (*substitution, error) {
	// One substitute lookup covers dislikes, cautions and staple swaps.
	var need []string
	for _, ing := range chosen.Ingredients {
		s := strings.ToLower(ing.Slug)
		_, disliked := dislikes[s]
		_, caution := cons.Caution[s]
		if disliked || caution || ing.StapleSlot {
			need = append(need, s)
		}
	}
	subsMap, err := p.substitutes.FindSubstitutes(ctx, need)
	if err != nil {
		return nil, fmt.Errorf("substitute lookup failed: %w", err)
	}

	result := &substitution{CautionSubs: make(map[string][]string)}
	applied := make(map[string]string) // original slug -> replacement slug

	// Every forbidden identifier is redacted from prose, including ones the
	// structured ingredient list never carries.
	omit := make(map[string]struct{}, len(cons.Forbidden))
	for s := range cons.Forbidden {
		omit[s] = struct{}{}
	}

	planned := make([]PlannedIngredient, 0, len(chosen.Ingredients))
	for _, ing := range chosen.Ingredients {
		s := strings.ToLower(ing.Slug)
		pi := PlannedIngredient{RecipeIngredient: ing}

		switch {
		case member(cons.Forbidden, s):
			pi.Mark = MarkHidden
			result.Hidden = append(result.Hidden, s)

		case member(cons.Caution, s):
			pi.Mark = MarkCaution
			pi.CautionOptions = subsMap[s]
			result.Cautions = append(result.Cautions, s)
			if len(subsMap[s]) > 0 {
				result.CautionSubs[s] = subsMap[s]
			}

		case member(dislikes, s):
			if subs := subsMap[s]; len(subs) > 0 {
				pi.Mark = MarkSubstituted
				pi.SubstituteSlug = subs[0]
				applied[s] = subs[0]
				result.Substitutions = append(result.Substitutions, s+"->"+subs[0])
			} else {
				// No substitute available: treat as hidden and redact.
				pi.Mark = MarkHidden
				result.Hidden = append(result.Hidden, s)
				omit[s] = struct{}{}
			}
		}

		planned = append(planned, pi)
	}

	p.optimizeStaples(chosen, planned, healthIssues, dislikes, cons, subsMap, applied, result)

	result.Hidden = uniq(result.Hidden)
	result.Cautions = uniq(result.Cautions)
	result.Substitutions = uniq(result.Substitutions)

	repl := buildReplacements(applied, omit)
	rx := compileSanitizer(repl)

	copyRec := chosen.Clone()
	copyRec.Ingredients = nil // the annotated list below is authoritative
	for i, step := range copyRec.Steps {
		copyRec.Steps[i] = sanitizeText(step, rx, repl)
	}
	copyRec.Notes = sanitizeText(copyRec.Notes, rx, repl)

	result.Recipe = &PlannedRecipe{
		Recipe:      *copyRec,
		Ingredients: planned,
	}
	return result, nil
}

// optimizeStaples swaps staple-slot ingredients per the user's
// health-condition staple preferences. Candidates are tried in three tiers:
// staples the recipe explicitly allows, the ingredient's own substitutes,
// then the safe-known allowlist.
func (p *Planner) optimizeStaples(chosen catalog.Recipe, planned []PlannedIngredient, healthIssues, dislikes map[string]struct{}, cons catalog.Constraints, subsMap map[string][]string, applied map[string]string, result *substitution) {
	allowed := slugSet(chosen.StapleOptions)

	for condition := range healthIssues {
		prefsBySlug, ok := staplePrefs[condition]
		if !ok {
			continue
		}
		for i := range planned {
			pi := &planned[i]
			if !pi.StapleSlot || pi.Mark != MarkNormal {
				continue
			}
			s := strings.ToLower(pi.Slug)
			prefs := prefsBySlug[s]
			if len(prefs) == 0 {
				continue
			}

			ingSubs := slugSet(subsMap[s])
			var pick string
			for _, tier := range []map[string]struct{}{allowed, ingSubs, safeKnownStaples} {
				for _, cand := range prefs {
					_, inTier := tier[cand]
					if !inTier || member(cons.Forbidden, cand) || member(dislikes, cand) {
						continue
					}
					pick = cand
					break
				}
				if pick != "" {
					break
				}
			}
			if pick == "" {
				continue
			}

			pi.Mark = MarkSubstituted
			pi.SubstituteSlug = pick
			applied[s] = pick
			result.Substitutions = append(result.Substitutions, s+"->"+pick)
		}
	}
}

// buildReplacements constructs the free-text replacement table: applied
// substitutions map the original name, its plural and the substitute's own
// slug to the substitute's display name; omitted slugs (forbidden plus
// unsubstitutable dislikes) map to the empty string. Both underscore and
// space forms of every key are included.
func buildReplacements(applied map[string]string, omit map[string]struct{}) map[string]string {
	repl := make(map[string]string)

	addForms := func(slug, value string) {
		for _, form := range []string{slug, strings.ReplaceAll(slug, "_", " ")} {
			form = strings.ToLower(form)
			repl[form] = value
			repl[form+"s"] = value
		}
	}

	for original, replacement := range applied {
		display := titleCase(replacement)
		addForms(original, display)
		addForms(replacement, display)
	}
	for slug := range omit {
		addForms(slug, "")
	}
	return repl
}

// compileSanitizer builds one case-insensitive whole-word matcher over all
// replacement keys, longest keys first to avoid partial-word collisions.
// Returns nil when there is nothing to replace.
func compileSanitizer(repl map[string]string) *regexp.Regexp {
	if len(repl) == 0 {
		return nil
	}
	keys := make([]string, 0, len(repl))
	for k := range repl {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	for i, k := range keys {
		keys[i] = regexp.QuoteMeta(k)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(keys, "|") + `)\b`)
}

// sanitizeText applies the replacement pass to one free-text field, collapses
// the whitespace runs blanking leaves behind, and strips markdown bold
// markers.
func sanitizeText(text string, rx *regexp.Regexp, repl map[string]string) string {
	if text == "" {
		return text
	}
	if rx == nil {
		return stripBold(text)
	}
	out := rx.ReplaceAllStringFunc(text, func(match string) string {
		replacement := repl[strings.ToLower(match)]
		if replacement == "" {
			return " "
		}
		return replacement
	})
	out = strings.TrimSpace(spaceRe.ReplaceAllString(out, " "))
	return stripBold(out)
}

func stripBold(text string) string {
	return boldRe.ReplaceAllString(text, "$1")
}

// titleCase turns an ingredient slug into a display name: underscores become
// spaces and each word is capitalized.
func titleCase(slug string) string {
	words := strings.Fields(strings.ReplaceAll(slug, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func member(set map[string]struct{}, key string) bool {
	_, ok := set[key]
	return ok
}

func uniq(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	var out []string
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
