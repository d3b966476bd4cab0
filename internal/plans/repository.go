// Package plans persists built meal plans and the per-user exclusion memory.
// The recommendation engine treats memory as pass-through state; this
// repository is its host-side owner.
package plans

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nutriplan/internal/planner"
	plandb "nutriplan/internal/plans/db"
)

// StoredPlan is a persisted plan with its metadata.
type StoredPlan struct {
	ID        int64              `json:"id"`
	UserID    int64              `json:"user_id"`
	CreatedAt time.Time          `json:"created_at"`
	Plan      planner.PlanResult `json:"plan"`
}

type Repository struct {
	q *plandb.Queries
}

func NewRepository(sqlDB *sql.DB) *Repository {
	return &Repository{q: plandb.New(sqlDB)}
}

// SavePlan stores the full plan result as a JSON document and returns the
// new plan id.
func (r *Repository) SavePlan(ctx context.Context, userID int64, plan *planner.PlanResult) (int64, error) {
	data, err := json.Marshal(plan)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal plan: %w", err)
	}
	id, err := r.q.CreateMealPlan(ctx, plandb.CreateMealPlanParams{
		UserID:    userID,
		PlanData:  string(data),
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to save plan: %w", err)
	}
	return id, nil
}

// GetByID returns a stored plan, or nil when it does not exist.
func (r *Repository) GetByID(ctx context.Context, id int64) (*StoredPlan, error) {
	row, err := r.q.GetMealPlan(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get plan %d: %w", id, err)
	}
	return rowToStoredPlan(row)
}

// History returns the user's most recent plans, newest first.
func (r *Repository) History(ctx context.Context, userID int64, limit int) ([]StoredPlan, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.q.ListMealPlansByUser(ctx, plandb.ListMealPlansByUserParams{
		UserID: userID,
		Limit:  int64(limit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	out := make([]StoredPlan, 0, len(rows))
	for _, row := range rows {
		sp, err := rowToStoredPlan(row)
		if err != nil {
			return nil, err
		}
		out = append(out, *sp)
	}
	return out, nil
}

// LoadMemory reads the user's per-slot exclusion memory. A user with no
// stored memory gets an empty map.
func (r *Repository) LoadMemory(ctx context.Context, userID int64) (planner.ExclusionMemory, error) {
	rows, err := r.q.GetRecentMeals(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load exclusion memory: %w", err)
	}
	memory := make(planner.ExclusionMemory, len(rows))
	for _, row := range rows {
		var slugs []string
		if err := json.Unmarshal([]byte(row.Slugs), &slugs); err != nil {
			return nil, fmt.Errorf("corrupt exclusion memory for slot %s: %w", row.Slot, err)
		}
		memory[planner.Slot(row.Slot)] = slugs
	}
	return memory, nil
}

// SaveMemory upserts every slot entry of the updated memory.
func (r *Repository) SaveMemory(ctx context.Context, userID int64, memory planner.ExclusionMemory) error {
	now := time.Now().UTC()
	for slot, slugs := range memory {
		data, err := json.Marshal(slugs)
		if err != nil {
			return fmt.Errorf("failed to marshal exclusion memory: %w", err)
		}
		err = r.q.UpsertRecentMeals(ctx, plandb.UpsertRecentMealsParams{
			UserID:    userID,
			Slot:      string(slot),
			Slugs:     string(data),
			UpdatedAt: now,
		})
		if err != nil {
			return fmt.Errorf("failed to save exclusion memory for %s: %w", slot, err)
		}
	}
	return nil
}

func rowToStoredPlan(row plandb.MealPlan) (*StoredPlan, error) {
	sp := &StoredPlan{
		ID:        row.ID,
		UserID:    row.UserID,
		CreatedAt: row.CreatedAt,
	}
	if err := json.Unmarshal([]byte(row.PlanData), &sp.Plan); err != nil {
		return nil, fmt.Errorf("corrupt plan %d: %w", row.ID, err)
	}
	return sp, nil
}
