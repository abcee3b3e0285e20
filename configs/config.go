package config

import (
	"os"
)

// Config holds the application configuration
type Config struct {
	Port          string
	Environment   string
	GeminiAPIKey  string
	GeminiModel   string
	APIKey        string
	InsightDBPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		GeminiAPIKey:  getEnv("GEMINI_API_KEY", ""),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		APIKey:        getEnv("API_KEY", ""),
		InsightDBPath: getEnv("INSIGHT_DB_PATH", "data/insights.json"),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
