// Package config loads process configuration from the environment once at
// startup. The resulting Config is passed explicitly to the components that
// need it; nothing reads ambient globals after boot.
package config

import (
	"fmt"
	"os"
)

// Config carries everything the binaries need to construct their clients.
type Config struct {
	// SupabaseURL is the base URL of the external store's PostgREST endpoint.
	SupabaseURL string
	// SupabaseKey is the API key used for both the apikey header and bearer auth.
	SupabaseKey string
	// GeminiModel overrides the default model name when set.
	GeminiModel string
}

// Load reads configuration from the environment. The Gemini API key itself is
// consumed by the genai client; it is checked here so a missing key fails at
// startup instead of on the first model call.
func Load() (*Config, error) {
	if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" {
		return nil, fmt.Errorf("config: GEMINI_API_KEY is not set")
	}

	cfg := &Config{
		SupabaseURL: os.Getenv("SUPABASE_URL"),
		SupabaseKey: os.Getenv("SUPABASE_KEY"),
		GeminiModel: os.Getenv("GEMINI_MODEL"),
	}
	if cfg.SupabaseURL == "" || cfg.SupabaseKey == "" {
		return nil, fmt.Errorf("config: SUPABASE_URL and SUPABASE_KEY must be set")
	}
	return cfg, nil
}
