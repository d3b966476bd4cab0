package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nutriplan/internal/auth"
	"nutriplan/internal/catalog"
	"nutriplan/internal/clipper"
	"nutriplan/internal/config"
	"nutriplan/internal/database"
	"nutriplan/internal/llm"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/plans"
	"nutriplan/internal/server"
	"nutriplan/internal/shopping"
	"nutriplan/internal/telegram"
)

func main() {
	cfg, err := config.NewFromEnv(true)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	catalogRepo := catalog.NewRepository(db.SQL)
	userRepo := auth.NewUserRepository(db.SQL)
	planRepo := plans.NewRepository(db.SQL)
	shoppingRepo := shopping.NewRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	authSvc := auth.NewService(userRepo, cfg.JWTSecret)
	mealPlanner := planner.NewPlanner(catalogRepo, catalogRepo, catalogRepo, nil)

	// The clipper works without an extraction model; JSON-LD pages still import.
	var textGen llm.TextGenerator
	if cfg.GeminiAPIKey != "" {
		textGen, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
		if err != nil {
			log.Fatalf("Failed to create Gemini client: %v", err)
		}
		defer textGen.(llm.Closer).Close()
	}
	recipeClipper := clipper.NewClipper(catalogRepo, textGen)

	mux := http.NewServeMux()
	srv := server.New(authSvc, userRepo, catalogRepo, mealPlanner, planRepo, shoppingRepo, metricsStore, recipeClipper)
	srv.RegisterHandlers(mux)

	if cfg.TelegramEnabled() {
		bot, err := telegram.NewBot(cfg, userRepo, mealPlanner, planRepo, shoppingRepo, metricsStore, recipeClipper)
		if err != nil {
			log.Fatalf("Failed to initialize Telegram Bot: %v", err)
		}
		bot.RegisterHandlers(mux)
	}

	httpSrv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.Port)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctxShutdown); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting")
}
