package planner

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"nutriplan/internal/catalog"
)

// Planner builds one-day meal plans from read-only catalog sources. It is
// safe for concurrent use: the embedded rng is mutex-guarded, so one Planner
// can be shared between HTTP handlers and bot goroutines.
type Planner struct {
	recipes     RecipeSource
	substitutes SubstituteSource
	constraints ConstraintSource

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// NewPlanner wires a Planner over its catalog sources. A nil rng gets a
// time-seeded one; tests pass a fixed seed for deterministic picks.
func NewPlanner(recipes RecipeSource, substitutes SubstituteSource, constraints ConstraintSource, rng *rand.Rand) *Planner {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Planner{
		recipes:     recipes,
		substitutes: substitutes,
		constraints: constraints,
		rng:         rng,
	}
}

// BuildPlan runs one full planning pass: targets once, constraints once,
// then every slot in fixed order. Slot recipe lookups that fail abort the
// run; a slot whose pool comes up empty is recorded as blocked and planning
// continues. The returned memory is an updated copy, the input is never
// mutated.
func (p *Planner) BuildPlan(ctx context.Context, profile UserProfile, memory ExclusionMemory) (*PlanResult, error) {
	targets := ComputeTargets(profile)

	cons, err := p.resolveConstraints(ctx, profile.HealthIssues)
	if err != nil {
		return nil, err
	}

	dislikes := slugSet(profile.Dislikes)
	healthIssues := slugSet(profile.HealthIssues)

	result := &PlanResult{
		Targets: targets,
		Meals:   make(map[Slot]SlotResult, len(SlotOrder)),
		Audit: Audit{
			Hidden:        make(map[Slot][]string),
			Cautions:      make(map[Slot][]string),
			Substitutions: make(map[Slot][]string),
			CautionSubs:   make(map[Slot]map[string][]string),
		},
		Memory: memory.Clone(),
	}
	if result.Memory == nil {
		result.Memory = make(ExclusionMemory, len(SlotOrder))
	}

	for _, slot := range SlotOrder {
		sel, waived, err := p.selectForSlot(ctx, slot, profile, targets, cons, dislikes, result.Memory[slot])
		if err != nil {
			return nil, err
		}
		if waived {
			result.Audit.SafetyWaived = append(result.Audit.SafetyWaived, slot)
		}
		if sel == nil {
			// Nothing to serve; memory for the slot stays as it was.
			result.Meals[slot] = SlotResult{}
			result.Audit.Blocked = append(result.Audit.Blocked, slot)
			continue
		}

		sub, err := p.personalize(ctx, *sel, cons, dislikes, healthIssues)
		if err != nil {
			return nil, err
		}

		result.Meals[slot] = SlotResult{
			Recipe:        sub.Recipe,
			Hidden:        sub.Hidden,
			Cautions:      sub.Cautions,
			Substitutions: sub.Substitutions,
			CautionSubs:   sub.CautionSubs,
		}
		if len(sub.Hidden) > 0 {
			result.Audit.Hidden[slot] = sub.Hidden
		}
		if len(sub.Cautions) > 0 {
			result.Audit.Cautions[slot] = sub.Cautions
		}
		if len(sub.Substitutions) > 0 {
			result.Audit.Substitutions[slot] = sub.Substitutions
		}
		if len(sub.CautionSubs) > 0 {
			result.Audit.CautionSubs[slot] = sub.CautionSubs
		}

		result.Memory[slot] = pushMemory(result.Memory[slot], sel.Slug)
	}

	return result, nil
}

// selectForSlot fetches the slot pool, applies exclusion memory, the safety
// filter and the tolerance passes, then picks randomly among the top-ranked
// candidates. A nil recipe with nil error means the slot is blocked.
func (p *Planner) selectForSlot(ctx context.Context, slot Slot, profile UserProfile, targets NutritionTargets, cons catalog.Constraints, dislikes map[string]struct{}, recent []string) (*catalog.Recipe, bool, error) {
	profile = profile.withDefaults()

	recipes, err := p.recipes.FindRecipes(ctx, string(slot), profile.FoodPreference)
	if err != nil {
		return nil, false, fmt.Errorf("recipe lookup for %s failed: %w", strings.ToLower(string(slot)), err)
	}

	pool := buildPool(recipes, recent)
	if len(pool) == 0 {
		return nil, false, nil
	}

	pool, waived := applySafetyFilter(pool, cons.Forbidden)

	calTarget := targets.SlotCalories[slot]
	protTarget := targets.SlotProtein[slot]

	candidates := filterByTolerance(pool, slot, calTarget, protTarget)
	ranked := rankCandidates(candidates, calTarget, protTarget, dislikes, profile.FoodPreference)

	return p.pickTopK(ranked), waived, nil
}

// pushMemory prepends slug to the slot memory, dropping any older occurrence
// and truncating to memoryDepth.
func pushMemory(recent []string, slug string) []string {
	slug = strings.ToLower(slug)
	out := make([]string, 0, memoryDepth)
	out = append(out, slug)
	for _, s := range recent {
		if strings.ToLower(s) == slug {
			continue
		}
		out = append(out, s)
		if len(out) == memoryDepth {
			break
		}
	}
	return out
}
