package config

import (
	"os"
	"strings"
)

// Config carries all process-wide settings, read once at startup.
// Credentials are handed to the individual clients at construction time
// rather than looked up from the environment at call sites.
type Config struct {
	Port         string
	SerpAPIKey   string
	AIAPIKey     string
	AIBaseURL    string
	AIModel      string
	FrontendURLs []string
}

func Load() *Config {
	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		SerpAPIKey: os.Getenv("SERPAPI_API_KEY"),
		AIAPIKey:   os.Getenv("AI_GATEWAY_API_KEY"),
		AIBaseURL:  os.Getenv("AI_GATEWAY_URL"),
		AIModel:    os.Getenv("AI_MODEL"),
	}

	// Local dev frontends are always allowed; production origins come from env.
	cfg.FrontendURLs = []string{"http://localhost:5173", "http://localhost:3000"}
	if urls := os.Getenv("FRONTEND_URL"); urls != "" {
		for _, u := range strings.Split(urls, ",") {
			u = strings.TrimSpace(u)
			if u != "" {
				cfg.FrontendURLs = append(cfg.FrontendURLs, u)
			}
		}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
