package config

import (
	"fmt"
	"os"
)

// Config holds the externally supplied settings. It is built once at startup
// and passed to components explicitly; business logic never reads the
// environment directly.
type Config struct {
	DatabaseURL  string
	GeminiAPIKey string
	Port         string
}

// Load reads configuration from the environment. A missing database URL or
// Gemini credential makes startup fail.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		Port:         os.Getenv("PORT"),
	}

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is not set")
	}
	if cfg.GeminiAPIKey == "" {
		return Config{}, fmt.Errorf("GEMINI_API_KEY is not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8000"
	}

	return cfg, nil
}
