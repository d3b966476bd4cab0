package planner

import (
	"context"
	"fmt"
	"strings"

	"nutriplan/internal/catalog"
)

// resolveConstraints expands the profile's health-condition slugs into the
// forbidden/caution ingredient sets. An empty condition list never touches
// the source and yields empty sets.
func (p *Planner) resolveConstraints(ctx context.Context, conditionSlugs []string) (catalog.Constraints, error) {
	slugs := normalizeSlugs(conditionSlugs)
	if len(slugs) == 0 {
		return catalog.NewConstraints(), nil
	}
	constraints, err := p.constraints.FindHealthConstraints(ctx, slugs)
	if err != nil {
		return catalog.Constraints{}, fmt.Errorf("health constraint lookup failed: %w", err)
	}
	return constraints, nil
}

// normalizeSlugs lowercases and drops empty entries.
func normalizeSlugs(values []string) []string {
	var out []string
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// slugSet builds a membership set from normalized slugs.
func slugSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range normalizeSlugs(values) {
		set[v] = struct{}{}
	}
	return set
}
