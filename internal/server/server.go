// Package server exposes the HTTP API: accounts, catalog browsing, plan
// building and recipe clipping.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"nutriplan/internal/auth"
	"nutriplan/internal/catalog"
	"nutriplan/internal/clipper"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/plans"
	"nutriplan/internal/shopping"
)

// Server wires the HTTP handlers to their services.
type Server struct {
	auth     *auth.Service
	users    *auth.UserRepository
	catalog  *catalog.Repository
	planner  *planner.Planner
	plans    *plans.Repository
	shopping *shopping.Repository
	metrics  *metrics.Store
	clipper  *clipper.Clipper // nil when clipping is not configured
}

func New(authSvc *auth.Service, users *auth.UserRepository, cat *catalog.Repository, p *planner.Planner, planRepo *plans.Repository, shoppingRepo *shopping.Repository, metricsStore *metrics.Store, clip *clipper.Clipper) *Server {
	return &Server{
		auth:     authSvc,
		users:    users,
		catalog:  cat,
		planner:  p,
		plans:    planRepo,
		shopping: shoppingRepo,
		metrics:  metricsStore,
		clipper:  clip,
	}
}

// RegisterHandlers attaches all routes to the given mux.
func (s *Server) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/users/signup", s.handleSignup)
	mux.HandleFunc("POST /api/users/login", s.handleLogin)
	mux.HandleFunc("GET /api/users/me", s.auth.Middleware(s.handleGetMe))
	mux.HandleFunc("PUT /api/users/me", s.auth.Middleware(s.handleUpdateMe))

	mux.HandleFunc("GET /api/recipes", s.handleListRecipes)
	mux.HandleFunc("GET /api/recipes/{slug}", s.handleGetRecipe)
	mux.HandleFunc("GET /api/meta", s.handleMeta)
	mux.HandleFunc("GET /api/meta/lookups", s.handleLookups)

	mux.HandleFunc("POST /api/mealplan", s.auth.Middleware(s.handleBuildPlan))
	mux.HandleFunc("GET /api/mealplan/history", s.auth.Middleware(s.handlePlanHistory))
	mux.HandleFunc("GET /api/mealplan/{id}/shopping", s.auth.Middleware(s.handleShoppingList))

	mux.HandleFunc("POST /api/clip", s.auth.Middleware(s.handleClip))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
