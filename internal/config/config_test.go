package config

import (
	"os"
	"testing"
)

func TestNewFromEnv(t *testing.T) {
	// Helper function to set environment variables for a test
	setEnv := func(key, value string) {
		t.Helper()
		t.Setenv(key, value)
	}

	t.Run("Defaults", func(t *testing.T) {
		os.Unsetenv("NUTRIPLAN_DB_PATH")
		os.Unsetenv("PORT")
		os.Unsetenv("SEED_DATA_DIR")
		setEnv("JWT_SECRET", "s3cret")

		cfg, err := NewFromEnv(true)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.DatabasePath != "data/nutriplan.db" {
			t.Errorf("Expected default DatabasePath, got '%s'", cfg.DatabasePath)
		}
		if cfg.Port != "8080" {
			t.Errorf("Expected default Port 8080, got '%s'", cfg.Port)
		}
		if cfg.SeedDataDir != "data/seed" {
			t.Errorf("Expected default SeedDataDir, got '%s'", cfg.SeedDataDir)
		}
		if cfg.JWTSecret != "s3cret" {
			t.Errorf("Expected JWTSecret to be 's3cret', got '%s'", cfg.JWTSecret)
		}
	})

	t.Run("MissingJWTSecret", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")

		_, err := NewFromEnv(true)
		if err == nil {
			t.Fatal("Expected an error for missing JWT_SECRET, got nil")
		}
		expectedError := "JWT_SECRET environment variable not set"
		if err.Error() != expectedError {
			t.Errorf("Expected error '%s', got '%s'", expectedError, err.Error())
		}
	})

	t.Run("JWTSecretOptionalForCLI", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")

		cfg, err := NewFromEnv(false)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.JWTSecret != "" {
			t.Errorf("Expected empty JWTSecret, got '%s'", cfg.JWTSecret)
		}
	})

	t.Run("TelegramAllowedIDs", func(t *testing.T) {
		setEnv("JWT_SECRET", "s3cret")
		setEnv("TELEGRAM_ALLOW_USER_IDS", "123, 456,789")

		cfg, err := NewFromEnv(true)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(cfg.TelegramAllowedIDs) != 3 {
			t.Fatalf("Expected 3 allowed IDs, got %d", len(cfg.TelegramAllowedIDs))
		}
		if cfg.TelegramAllowedIDs[1] != 456 {
			t.Errorf("Expected second ID 456, got %d", cfg.TelegramAllowedIDs[1])
		}
	})

	t.Run("InvalidTelegramAllowedIDs", func(t *testing.T) {
		setEnv("JWT_SECRET", "s3cret")
		setEnv("TELEGRAM_ALLOW_USER_IDS", "123,abc")

		_, err := NewFromEnv(true)
		if err == nil {
			t.Fatal("Expected an error for invalid TELEGRAM_ALLOW_USER_IDS, got nil")
		}
	})

	t.Run("TelegramEnabled", func(t *testing.T) {
		setEnv("JWT_SECRET", "s3cret")
		setEnv("TELEGRAM_BOT_TOKEN", "token")
		os.Unsetenv("TELEGRAM_WEBHOOK_URL")
		os.Unsetenv("TELEGRAM_ALLOW_USER_IDS")

		cfg, err := NewFromEnv(true)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if cfg.TelegramEnabled() {
			t.Error("Expected TelegramEnabled to be false without webhook URL")
		}

		setEnv("TELEGRAM_WEBHOOK_URL", "https://bot.test/webhook")
		cfg, err = NewFromEnv(true)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if !cfg.TelegramEnabled() {
			t.Error("Expected TelegramEnabled to be true with token and webhook URL")
		}
	})
}
