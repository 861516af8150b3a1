// Package config loads runtime configuration from the environment, with an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Provider names.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds everything the application reads from the environment.
type Config struct {
	DBPath   string
	Provider string // gemini or openai
	APIKey   string
	Model    string
	Host     string // override endpoint, mainly for self-hosted gateways
}

// Load reads configuration from the environment. A .env file in the working
// directory is honored when present.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		DBPath:   os.Getenv("SYNAPSE_DB"),
		Provider: envOrDefault("SYNAPSE_PROVIDER", ProviderGemini),
		Host:     os.Getenv("SYNAPSE_GATEWAY_HOST"),
	}

	if cfg.DBPath == "" {
		home, _ := os.UserHomeDir()
		cfg.DBPath = filepath.Join(home, ".synapse", "synapse.db")
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		cfg.Model = envOrDefault("SYNAPSE_MODEL", "gpt-4o-mini")
	default:
		cfg.Provider = ProviderGemini
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		cfg.Model = envOrDefault("SYNAPSE_MODEL", "gemini-2.0-flash")
	}

	return cfg
}

// RequireAPIKey returns an error when the selected provider has no API key
// configured.
func (c Config) RequireAPIKey() error {
	if c.APIKey == "" {
		name := "GEMINI_API_KEY"
		if c.Provider == ProviderOpenAI {
			name = "OPENAI_API_KEY"
		}
		return fmt.Errorf("%s is not set", name)
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
