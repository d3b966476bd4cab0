package auth

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	userdb "nutriplan/internal/auth/db"
	"nutriplan/internal/planner"
)

// User is an account with its nutrition profile. PasswordHash never leaves
// this package.
type User struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Gender           string    `json:"gender"`
	Age              int       `json:"age"`
	HeightCM         float64   `json:"height_cm"`
	WeightKG         float64   `json:"weight_kg"`
	Activity         string    `json:"activity"`
	Goal             string    `json:"goal"`
	FoodPreference   string    `json:"food_preference"`
	Dislikes         []string  `json:"dislikes"`
	HealthIssues     []string  `json:"health_issues"`
	CaloriesOverride int       `json:"calories_override,omitempty"`
	ProteinOverride  int       `json:"protein_override,omitempty"`
	CreatedAt        time.Time `json:"created_at"`

	passwordHash string
}

// PlannerProfile maps the stored profile onto the engine's input type.
func (u *User) PlannerProfile() planner.UserProfile {
	return planner.UserProfile{
		Gender:           u.Gender,
		Age:              u.Age,
		HeightCM:         u.HeightCM,
		WeightKG:         u.WeightKG,
		Activity:         u.Activity,
		Goal:             u.Goal,
		FoodPreference:   u.FoodPreference,
		Dislikes:         u.Dislikes,
		HealthIssues:     u.HealthIssues,
		CaloriesOverride: u.CaloriesOverride,
		ProteinOverride:  u.ProteinOverride,
	}
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name             string   `json:"name"`
	Gender           string   `json:"gender"`
	Age              int      `json:"age"`
	HeightCM         float64  `json:"height_cm"`
	WeightKG         float64  `json:"weight_kg"`
	Activity         string   `json:"activity"`
	Goal             string   `json:"goal"`
	FoodPreference   string   `json:"food_preference"`
	Dislikes         []string `json:"dislikes"`
	HealthIssues     []string `json:"health_issues"`
	CaloriesOverride int      `json:"calories_override"`
	ProteinOverride  int      `json:"protein_override"`
}

type UserRepository struct {
	q *userdb.Queries
}

func NewUserRepository(sqlDB *sql.DB) *UserRepository {
	return &UserRepository{q: userdb.New(sqlDB)}
}

// Create stores a new account and returns its id. Emails are stored
// lowercased; uniqueness is enforced by the schema.
func (r *UserRepository) Create(ctx context.Context, name, email, passwordHash string) (int64, error) {
	id, err := r.q.CreateUser(ctx, userdb.CreateUserParams{
		Name:         name,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetByEmail returns the user, or nil when no account exists.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	row, err := r.q.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return rowToUser(row)
}

// GetByID returns the user, or nil when no account exists.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return rowToUser(row)
}

// UpdateProfile overwrites the editable profile fields.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) error {
	dislikes, err := json.Marshal(lowerAll(update.Dislikes))
	if err != nil {
		return fmt.Errorf("failed to marshal dislikes: %w", err)
	}
	healthIssues, err := json.Marshal(lowerAll(update.HealthIssues))
	if err != nil {
		return fmt.Errorf("failed to marshal health issues: %w", err)
	}
	err = r.q.UpdateUserProfile(ctx, userdb.UpdateUserProfileParams{
		Name:             update.Name,
		Gender:           strings.ToLower(update.Gender),
		Age:              int64(update.Age),
		HeightCm:         update.HeightCM,
		WeightKg:         update.WeightKG,
		Activity:         strings.ToLower(update.Activity),
		Goal:             strings.ToLower(update.Goal),
		FoodPreference:   strings.ToLower(update.FoodPreference),
		Dislikes:         string(dislikes),
		HealthIssues:     string(healthIssues),
		CaloriesOverride: int64(update.CaloriesOverride),
		ProteinOverride:  int64(update.ProteinOverride),
		ID:               id,
	})
	if err != nil {
		return fmt.Errorf("failed to update profile for user %d: %w", id, err)
	}
	return nil
}

func rowToUser(row userdb.User) (*User, error) {
	u := &User{
		ID:               row.ID,
		Name:             row.Name,
		Email:            row.Email,
		Gender:           row.Gender,
		Age:              int(row.Age),
		HeightCM:         row.HeightCm,
		WeightKG:         row.WeightKg,
		Activity:         row.Activity,
		Goal:             row.Goal,
		FoodPreference:   row.FoodPreference,
		CaloriesOverride: int(row.CaloriesOverride),
		ProteinOverride:  int(row.ProteinOverride),
		CreatedAt:        row.CreatedAt,
		passwordHash:     row.PasswordHash,
	}
	if err := json.Unmarshal([]byte(row.Dislikes), &u.Dislikes); err != nil {
		return nil, fmt.Errorf("corrupt dislikes for user %d: %w", row.ID, err)
	}
	if err := json.Unmarshal([]byte(row.HealthIssues), &u.HealthIssues); err != nil {
		return nil, fmt.Errorf("corrupt health issues for user %d: %w", row.ID, err)
	}
	return u, nil
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.ToLower(strings.TrimSpace(v))
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
