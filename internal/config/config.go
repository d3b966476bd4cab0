package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds the configuration for the application.
type Config struct {
	DatabasePath string
	SeedDataDir  string
	Port         string

	// Auth
	JWTSecret string

	// Optional: enables the clipper's LLM fallback when set.
	GeminiAPIKey string

	// Telegram Config (optional; enables the bot when token and webhook are set)
	TelegramBotToken    string
	TelegramWebhookURL  string
	TelegramAllowedIDs  []int64
	TelegramLinkedEmail string
}

// NewFromEnv creates a new Config object from environment variables.
// requireAuth controls whether JWT_SECRET must be present; the server
// needs it, the seed/import CLI paths do not.
func NewFromEnv(requireAuth bool) (*Config, error) {
	dbPath := os.Getenv("NUTRIPLAN_DB_PATH")
	if dbPath == "" {
		dbPath = "data/nutriplan.db"
	}

	seedDir := os.Getenv("SEED_DATA_DIR")
	if seedDir == "" {
		seedDir = "data/seed"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if requireAuth && jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable not set")
	}

	var allowedIDs []int64
	if raw := os.Getenv("TELEGRAM_ALLOW_USER_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid TELEGRAM_ALLOW_USER_IDS entry %q: %w", part, err)
			}
			allowedIDs = append(allowedIDs, id)
		}
	}

	return &Config{
		DatabasePath:        dbPath,
		SeedDataDir:         seedDir,
		Port:                port,
		JWTSecret:           jwtSecret,
		GeminiAPIKey:        os.Getenv("GEMINI_API_KEY"),
		TelegramBotToken:    os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramWebhookURL:  os.Getenv("TELEGRAM_WEBHOOK_URL"),
		TelegramAllowedIDs:  allowedIDs,
		TelegramLinkedEmail: os.Getenv("TELEGRAM_LINKED_EMAIL"),
	}, nil
}

// TelegramEnabled reports whether the bot should be started.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramBotToken != "" && c.TelegramWebhookURL != ""
}
