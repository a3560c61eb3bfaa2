// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL             string
	Port                    int
	LogLevel                string
	CronSecret              string
	CronSchedule            string
	YahooBaseURL            string
	GeminiAPIKey            string
	GeminiBaseURL           string
	FirebaseCredentialsPath string
	Symbols                 []string
	BatchPacing             time.Duration
}

// Default symbol universe, used when SCREENER_SYMBOLS is unset.
var defaultSymbols = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "AVGO",
	"AMD", "NFLX", "CRM", "ORCL", "ADBE", "COST", "LLY", "V", "MA",
	"JPM", "UNH", "XOM",
}

// Load reads .env (if present) and builds the configuration. Only
// DATABASE_URL is mandatory.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:             os.Getenv("DATABASE_URL"),
		Port:                    envInt("PORT", 8080),
		LogLevel:                envString("LOG_LEVEL", "info"),
		CronSecret:              os.Getenv("CRON_SECRET"),
		CronSchedule:            envString("CRON_SCHEDULE", "0 30 21 * * MON-FRI"),
		YahooBaseURL:            os.Getenv("YAHOO_BASE_URL"),
		GeminiAPIKey:            os.Getenv("GEMINI_API_KEY"),
		GeminiBaseURL:           os.Getenv("GEMINI_BASE_URL"),
		FirebaseCredentialsPath: os.Getenv("FIREBASE_CREDENTIALS_PATH"),
		Symbols:                 envSymbols("SCREENER_SYMBOLS"),
		BatchPacing:             envDuration("BATCH_PACING", 2*time.Second),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	return cfg, nil
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func envSymbols(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultSymbols
	}

	var symbols []string
	for _, part := range strings.Split(v, ",") {
		if s := strings.ToUpper(strings.TrimSpace(part)); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		return defaultSymbols
	}
	return symbols
}
