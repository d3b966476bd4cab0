package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"nutriplan/internal/auth"
	"nutriplan/internal/catalog"
	"nutriplan/internal/database"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/plans"
	"nutriplan/internal/shopping"
)

// newTestServer stands up the full stack on a temp-dir database, with a
// seeded catalog and a fixed selection seed.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	db, err := database.NewDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	cat := catalog.NewRepository(db.SQL)
	seedCatalog(t, cat)

	userRepo := auth.NewUserRepository(db.SQL)
	authSvc := auth.NewService(userRepo, "test-secret")
	p := planner.NewPlanner(cat, cat, cat, rand.New(rand.NewSource(1)))

	srv := New(
		authSvc,
		userRepo,
		cat,
		p,
		plans.NewRepository(db.SQL),
		shopping.NewRepository(db.SQL),
		metrics.NewStore(db.SQL),
		nil,
	)

	mux := http.NewServeMux()
	srv.RegisterHandlers(mux)
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func seedCatalog(t *testing.T, cat *catalog.Repository) {
	t.Helper()
	ctx := context.Background()

	slots := map[string]struct {
		calories float64
		protein  float64
	}{
		"Breakfast": {420, 18},
		"Lunch":     {580, 26},
		"Snack":     {250, 11},
		"Dinner":    {430, 18},
	}
	for slot, macro := range slots {
		for i := 0; i < 3; i++ {
			rec := catalog.Recipe{
				Slug:        fmt.Sprintf("%s_%d", slot, i),
				Name:        fmt.Sprintf("%s Recipe %d", slot, i),
				MealType:    slot,
				DietaryType: "vegetarian",
				Calories:    catalog.Number(macro.calories),
				Protein:     catalog.Number(macro.protein),
				Ingredients: []catalog.RecipeIngredient{
					{Slug: "rice", Quantity: "1 cup", Importance: 3},
					{Slug: "paneer", Quantity: "100 g", Importance: 3},
				},
				Steps: []string{"Cook the rice.", "Add the paneer."},
			}
			if err := cat.SaveRecipe(ctx, rec); err != nil {
				t.Fatalf("failed to seed recipe: %v", err)
			}
		}
	}

	if err := cat.SaveIngredient(ctx, catalog.Ingredient{
		Slug:        "paneer",
		Name:        "Paneer",
		Substitutes: []string{"tofu"},
	}); err != nil {
		t.Fatalf("failed to seed ingredient: %v", err)
	}
}

func postJSON(t *testing.T, url, token string, payload interface{}) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	return resp
}

func getJSON(t *testing.T, url, token string, dst interface{}) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatal(err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if dst != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			t.Fatal(err)
		}
	}
	return resp.StatusCode
}

func signupAndLogin(t *testing.T, baseURL string) string {
	t.Helper()
	resp := postJSON(t, baseURL+"/api/users/signup", "", map[string]string{
		"name":     "Asha",
		"email":    "asha@example.com",
		"password": "correct-horse",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("signup returned %d", resp.StatusCode)
	}

	resp = postJSON(t, baseURL+"/api/users/login", "", map[string]string{
		"email":    "asha@example.com",
		"password": "correct-horse",
	})
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login returned %d", resp.StatusCode)
	}
	var loginResp struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		t.Fatal(err)
	}
	if loginResp.Token == "" {
		t.Fatal("login returned empty token")
	}
	return loginResp.Token
}

func TestHealthAndCatalogRoutes(t *testing.T) {
	ts := newTestServer(t)

	if code := getJSON(t, ts.URL+"/health", "", nil); code != http.StatusOK {
		t.Errorf("health returned %d", code)
	}

	var listResp struct {
		Total   int              `json:"total"`
		Recipes []catalog.Recipe `json:"recipes"`
	}
	if code := getJSON(t, ts.URL+"/api/recipes?limit=5", "", &listResp); code != http.StatusOK {
		t.Fatalf("recipes returned %d", code)
	}
	if listResp.Total != 12 || len(listResp.Recipes) != 5 {
		t.Errorf("Expected total 12 with 5 returned, got %d/%d", listResp.Total, len(listResp.Recipes))
	}

	var rec catalog.Recipe
	if code := getJSON(t, ts.URL+"/api/recipes/breakfast_0", "", &rec); code != http.StatusOK {
		t.Fatalf("recipe get returned %d", code)
	}
	if rec.MealType != "Breakfast" {
		t.Errorf("Expected Breakfast meal type, got %q", rec.MealType)
	}

	if code := getJSON(t, ts.URL+"/api/recipes/nope", "", nil); code != http.StatusNotFound {
		t.Errorf("Expected 404 for unknown recipe, got %d", code)
	}

	var meta catalog.Meta
	if code := getJSON(t, ts.URL+"/api/meta", "", &meta); code != http.StatusOK {
		t.Fatalf("meta returned %d", code)
	}
	if meta.Total != 12 || len(meta.MealTypes) != 4 {
		t.Errorf("Unexpected meta: %+v", meta)
	}
}

func TestAuthRequired(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts.URL+"/api/mealplan", "", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", resp.StatusCode)
	}

	if code := getJSON(t, ts.URL+"/api/users/me", "garbage-token", nil); code != http.StatusUnauthorized {
		t.Errorf("Expected 401 with bad token, got %d", code)
	}
}

func TestMealPlanFlow(t *testing.T) {
	ts := newTestServer(t)
	token := signupAndLogin(t, ts.URL)

	// Set a profile with a dislike that has a substitute.
	req, err := http.NewRequest(http.MethodPut, ts.URL+"/api/users/me", bytes.NewReader(mustJSON(t, auth.ProfileUpdate{
		Name:           "Asha",
		Gender:         "female",
		Age:            30,
		HeightCM:       165,
		WeightKG:       60,
		Activity:       "sedentary",
		Goal:           "maintain",
		FoodPreference: "vegetarian",
		Dislikes:       []string{"paneer"},
	})))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	profileResp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	profileResp.Body.Close()
	if profileResp.StatusCode != http.StatusOK {
		t.Fatalf("profile update returned %d", profileResp.StatusCode)
	}

	planResp := postJSON(t, ts.URL+"/api/mealplan", token, nil)
	defer planResp.Body.Close()
	if planResp.StatusCode != http.StatusOK {
		t.Fatalf("mealplan returned %d", planResp.StatusCode)
	}

	var built struct {
		PlanID       int64              `json:"plan_id"`
		Plan         planner.PlanResult `json:"plan"`
		ShoppingList []shopping.Item    `json:"shopping_list"`
	}
	if err := json.NewDecoder(planResp.Body).Decode(&built); err != nil {
		t.Fatal(err)
	}

	if built.PlanID == 0 {
		t.Error("Expected a persisted plan id")
	}
	if len(built.Plan.Meals) != 4 {
		t.Fatalf("Expected 4 meals, got %d", len(built.Plan.Meals))
	}
	if built.Plan.Targets.DailyCalories != 1660 {
		t.Errorf("Expected 1660 daily calories, got %d", built.Plan.Targets.DailyCalories)
	}
	for slot, meal := range built.Plan.Meals {
		if meal.Recipe == nil {
			t.Fatalf("Expected a recipe for %s", slot)
		}
		if len(meal.Substitutions) != 1 || meal.Substitutions[0] != "paneer->tofu" {
			t.Errorf("Expected paneer->tofu in %s, got %v", slot, meal.Substitutions)
		}
	}

	// Disliked-with-substitute never shows up in the shopping list.
	for _, item := range built.ShoppingList {
		if item.Slug == "paneer" {
			t.Error("Disliked ingredient appeared in shopping list")
		}
	}

	// Shopping list is retrievable by plan id.
	var list shopping.ShoppingList
	url := fmt.Sprintf("%s/api/mealplan/%d/shopping", ts.URL, built.PlanID)
	if code := getJSON(t, url, token, &list); code != http.StatusOK {
		t.Fatalf("shopping list returned %d", code)
	}
	if len(list.Items) == 0 {
		t.Error("Expected shopping list items")
	}

	// History shows the persisted plan.
	var history []plans.StoredPlan
	if code := getJSON(t, ts.URL+"/api/mealplan/history", token, &history); code != http.StatusOK {
		t.Fatalf("history returned %d", code)
	}
	if len(history) != 1 || history[0].ID != built.PlanID {
		t.Errorf("Expected one stored plan %d, got %+v", built.PlanID, history)
	}

	// A second run must exclude the first run's picks per slot.
	firstPicks := make(map[planner.Slot]string)
	for slot, meal := range built.Plan.Meals {
		firstPicks[slot] = meal.Recipe.Slug
	}
	planResp2 := postJSON(t, ts.URL+"/api/mealplan", token, nil)
	defer planResp2.Body.Close()
	var built2 struct {
		Plan planner.PlanResult `json:"plan"`
	}
	if err := json.NewDecoder(planResp2.Body).Decode(&built2); err != nil {
		t.Fatal(err)
	}
	for slot, meal := range built2.Plan.Meals {
		if meal.Recipe.Slug == firstPicks[slot] {
			t.Errorf("Slot %s repeated %s despite exclusion memory", slot, firstPicks[slot])
		}
	}
}

func mustJSON(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	return data
}
