// Package metrics records per-run planning telemetry to SQLite.
package metrics

import (
	"context"
	"database/sql"
	"time"

	metricsdb "nutriplan/internal/metrics/db"
)

// PlanMetric records metadata for a single plan build.
type PlanMetric struct {
	UserID       int64
	DurationMS   int64
	BlockedSlots int
	SafetyWaived int
	Timestamp    time.Time
}

// Store handles persistence of metrics to SQLite.
type Store struct {
	queries *metricsdb.Queries
}

// NewStore initializes the Store with an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{queries: metricsdb.New(db)}
}

// Record saves a metric to the database.
func (s *Store) Record(ctx context.Context, m PlanMetric) error {
	ts := m.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return s.queries.InsertPlanMetric(ctx, metricsdb.InsertPlanMetricParams{
		UserID:       m.UserID,
		DurationMs:   m.DurationMS,
		BlockedSlots: int64(m.BlockedSlots),
		SafetyWaived: int64(m.SafetyWaived),
		CreatedAt:    ts,
	})
}

// DailySummary represents plan-build totals for a single day.
type DailySummary struct {
	Date          string
	Plans         int
	AvgDurationMS float64
	BlockedSlots  int
	SafetyWaived  int
}

// Summary retrieves per-day totals for the last N days.
func (s *Store) Summary(ctx context.Context, days int) ([]DailySummary, error) {
	since := time.Now().UTC().AddDate(0, 0, -days)
	rows, err := s.queries.GetDailySummary(ctx, since)
	if err != nil {
		return nil, err
	}

	var results []DailySummary
	for _, r := range rows {
		d := DailySummary{Plans: int(r.Count)}
		if day, ok := r.Day.(string); ok {
			d.Date = day
		} else {
			d.Date = "Unknown"
		}
		if r.AvgDuration.Valid {
			d.AvgDurationMS = r.AvgDuration.Float64
		}
		if r.Blocked.Valid {
			d.BlockedSlots = int(r.Blocked.Float64)
		}
		if r.Waived.Valid {
			d.SafetyWaived = int(r.Waived.Float64)
		}
		results = append(results, d)
	}
	return results, nil
}

// Cleanup removes records older than the specified number of days and
// returns how many were deleted.
func (s *Store) Cleanup(ctx context.Context, olderThanDays int) (int64, error) {
	threshold := time.Now().UTC().AddDate(0, 0, -olderThanDays)
	return s.queries.CleanupPlanMetrics(ctx, threshold)
}
