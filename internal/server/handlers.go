package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"nutriplan/internal/auth"
	"nutriplan/internal/metrics"
	"nutriplan/internal/shopping"
)

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	user, err := s.auth.Signup(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !readJSON(w, r, &req) {
		return
	}

	token, user, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		log.Printf("login failed: %v", err)
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"token": token, "user": user})
}

func (s *Server) handleGetMe(w http.ResponseWriter, r *http.Request) {
	user, err := s.users.GetByID(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		log.Printf("get user failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleUpdateMe(w http.ResponseWriter, r *http.Request) {
	var update auth.ProfileUpdate
	if !readJSON(w, r, &update) {
		return
	}

	uid := auth.UserID(r.Context())
	if err := s.users.UpdateProfile(r.Context(), uid, update); err != nil {
		log.Printf("profile update failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}
	user, err := s.users.GetByID(r.Context(), uid)
	if err != nil || user == nil {
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (s *Server) handleListRecipes(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	skip := queryInt(r, "skip", 0)

	recipes, err := s.catalog.List(r.Context(), limit, skip)
	if err != nil {
		log.Printf("recipe list failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	total, err := s.catalog.Count(r.Context())
	if err != nil {
		log.Printf("recipe count failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to list recipes")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"total": total, "recipes": recipes})
}

func (s *Server) handleGetRecipe(w http.ResponseWriter, r *http.Request) {
	rec, err := s.catalog.GetBySlug(r.Context(), r.PathValue("slug"))
	if err != nil {
		log.Printf("recipe get failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load recipe")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "recipe not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleMeta(w http.ResponseWriter, r *http.Request) {
	meta, err := s.catalog.GetMeta(r.Context())
	if err != nil {
		log.Printf("meta failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load meta")
		return
	}
	writeJSON(w, http.StatusOK, meta)
}

func (s *Server) handleLookups(w http.ResponseWriter, r *http.Request) {
	ingredients, conditions, err := s.catalog.GetLookups(r.Context())
	if err != nil {
		log.Printf("lookups failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load lookups")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"ingredients":       ingredients,
		"health_conditions": conditions,
	})
}

// handleBuildPlan is the main flow: load profile and exclusion memory, build
// the plan, persist plan + memory + shopping list, record telemetry.
func (s *Server) handleBuildPlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	uid := auth.UserID(ctx)

	user, err := s.users.GetByID(ctx, uid)
	if err != nil {
		log.Printf("plan: load user failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if user == nil {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}

	memory, err := s.plans.LoadMemory(ctx, uid)
	if err != nil {
		log.Printf("plan: load memory failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load plan history")
		return
	}

	start := time.Now()
	result, err := s.planner.BuildPlan(ctx, user.PlannerProfile(), memory)
	if err != nil {
		log.Printf("plan build failed for user %d: %v", uid, err)
		writeError(w, http.StatusInternalServerError, "failed to build plan")
		return
	}

	planID, err := s.plans.SavePlan(ctx, uid, result)
	if err != nil {
		log.Printf("plan save failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save plan")
		return
	}
	if err := s.plans.SaveMemory(ctx, uid, result.Memory); err != nil {
		log.Printf("memory save failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save plan")
		return
	}

	items := shopping.BuildItems(result)
	if _, err := s.shopping.Save(ctx, uid, planID, items); err != nil {
		log.Printf("shopping list save failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save shopping list")
		return
	}

	// Telemetry is best-effort; a plan is not failed over it.
	if err := s.metrics.Record(ctx, metrics.PlanMetric{
		UserID:       uid,
		DurationMS:   time.Since(start).Milliseconds(),
		BlockedSlots: len(result.Audit.Blocked),
		SafetyWaived: len(result.Audit.SafetyWaived),
	}); err != nil {
		log.Printf("metrics record failed: %v", err)
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"plan_id":       planID,
		"plan":          result,
		"shopping_list": items,
	})
}

func (s *Server) handlePlanHistory(w http.ResponseWriter, r *http.Request) {
	history, err := s.plans.History(r.Context(), auth.UserID(r.Context()), queryInt(r, "limit", 10))
	if err != nil {
		log.Printf("plan history failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load plan history")
		return
	}
	writeJSON(w, http.StatusOK, history)
}

func (s *Server) handleShoppingList(w http.ResponseWriter, r *http.Request) {
	planID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid plan id")
		return
	}

	plan, err := s.plans.GetByID(r.Context(), planID)
	if err != nil {
		log.Printf("plan get failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load plan")
		return
	}
	if plan == nil || plan.UserID != auth.UserID(r.Context()) {
		writeError(w, http.StatusNotFound, "plan not found")
		return
	}

	list, err := s.shopping.GetByMealPlanID(r.Context(), planID)
	if err != nil {
		log.Printf("shopping list get failed: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load shopping list")
		return
	}
	if list == nil {
		writeError(w, http.StatusNotFound, "shopping list not found")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleClip(w http.ResponseWriter, r *http.Request) {
	if s.clipper == nil {
		writeError(w, http.StatusServiceUnavailable, "recipe clipping is not configured")
		return
	}
	var req struct {
		URL string `json:"url"`
	}
	if !readJSON(w, r, &req) {
		return
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		writeError(w, http.StatusBadRequest, "a http(s) url is required")
		return
	}

	rec, err := s.clipper.ClipURL(r.Context(), req.URL)
	if err != nil {
		log.Printf("clip failed for %s: %v", req.URL, err)
		writeError(w, http.StatusUnprocessableEntity, "failed to import recipe")
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
