package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"nutriplan/internal/auth"
	"nutriplan/internal/catalog"
	"nutriplan/internal/clipper"
	"nutriplan/internal/config"
	"nutriplan/internal/database"
	"nutriplan/internal/llm"
	"nutriplan/internal/metrics"
	"nutriplan/internal/planner"
	"nutriplan/internal/plans"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv(false)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	catalogRepo := catalog.NewRepository(db.SQL)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "seed":
		result, err := catalogRepo.SeedFromDir(ctx, cfg.SeedDataDir)
		if err != nil {
			log.Fatalf("Seeding failed: %v", err)
		}
		fmt.Printf("Seeded %d recipes, %d ingredients, %d health conditions.\n",
			result.Recipes, result.Ingredients, result.Conditions)

	case "import":
		if len(os.Args) < 3 {
			log.Fatal("Usage: nutriplan import <url>")
		}
		var textGen llm.TextGenerator
		if cfg.GeminiAPIKey != "" {
			textGen, err = llm.NewGeminiClient(ctx, cfg.GeminiAPIKey)
			if err != nil {
				log.Fatalf("Failed to create Gemini client: %v", err)
			}
			defer textGen.(llm.Closer).Close()
		}
		rec, err := clipper.NewClipper(catalogRepo, textGen).ClipURL(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Import failed: %v", err)
		}
		fmt.Printf("Imported %q as %s. Tag its meal type to include it in plans.\n", rec.Name, rec.Slug)

	case "plan":
		planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
		email := planCmd.String("email", "", "Account to build the plan for")
		planCmd.Parse(os.Args[2:])
		if *email == "" {
			log.Fatal("Usage: nutriplan plan -email <address>")
		}
		if err := buildPlan(ctx, db, catalogRepo, *email); err != nil {
			log.Fatalf("Plan failed: %v", err)
		}

	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metrics.NewStore(db.SQL).Cleanup(ctx, *days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)

	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// buildPlan runs a full planning pass for the account and prints the result
// as JSON. The plan and exclusion memory are persisted like an API run.
func buildPlan(ctx context.Context, db *database.DB, catalogRepo *catalog.Repository, email string) error {
	userRepo := auth.NewUserRepository(db.SQL)
	user, err := userRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("no account for %s", email)
	}

	planRepo := plans.NewRepository(db.SQL)
	memory, err := planRepo.LoadMemory(ctx, user.ID)
	if err != nil {
		return err
	}

	p := planner.NewPlanner(catalogRepo, catalogRepo, catalogRepo, nil)
	result, err := p.BuildPlan(ctx, user.PlannerProfile(), memory)
	if err != nil {
		return err
	}

	if _, err := planRepo.SavePlan(ctx, user.ID, result); err != nil {
		return err
	}
	if err := planRepo.SaveMemory(ctx, user.ID, result.Memory); err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

func printUsage() {
	fmt.Println("Usage: nutriplan <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  seed               Load catalog reference data from the seed directory")
	fmt.Println("  import <url>       Clip a recipe from a web page into the catalog")
	fmt.Println("  plan -email <a>    Build and print today's plan for an account")
	fmt.Println("  metrics-cleanup    Remove old metric records")
}
