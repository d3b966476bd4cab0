package shopping

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	shoppingdb "nutriplan/internal/shopping/db"
)

// Repository handles persistence of shopping lists.
type Repository struct {
	queries *shoppingdb.Queries
}

// NewRepository creates a new shopping list repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{queries: shoppingdb.New(d)}
}

// Save creates a new shopping list in the database.
func (r *Repository) Save(ctx context.Context, userID, mealPlanID int64, items []Item) (int64, error) {
	if items == nil {
		items = []Item{}
	}
	itemsJSON, err := json.Marshal(items)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal shopping list items: %w", err)
	}

	id, err := r.queries.InsertShoppingList(ctx, shoppingdb.InsertShoppingListParams{
		UserID:     userID,
		MealPlanID: mealPlanID,
		Items:      string(itemsJSON),
		CreatedAt:  time.Now().UTC(),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert shopping list: %w", err)
	}
	return id, nil
}

// GetByMealPlanID retrieves a shopping list by meal plan ID, nil when none
// exists.
func (r *Repository) GetByMealPlanID(ctx context.Context, mealPlanID int64) (*ShoppingList, error) {
	dbList, err := r.queries.GetShoppingListByMealPlanID(ctx, mealPlanID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shopping list by meal plan ID: %w", err)
	}

	var items []Item
	if err := json.Unmarshal([]byte(dbList.Items), &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shopping list items: %w", err)
	}

	return &ShoppingList{
		ID:         dbList.ID,
		UserID:     dbList.UserID,
		MealPlanID: dbList.MealPlanID,
		Items:      items,
		CreatedAt:  dbList.CreatedAt,
	}, nil
}

// DeleteByMealPlanID deletes a shopping list by meal plan ID.
func (r *Repository) DeleteByMealPlanID(ctx context.Context, mealPlanID int64) error {
	return r.queries.DeleteShoppingListByMealPlanID(ctx, mealPlanID)
}
