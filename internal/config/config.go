package config

import (
	"os"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// Pad persistence
	DataDir     string
	DatabaseURL string // When set, the pad is stored in Postgres instead of a local file
	TablePrefix string
	// Logging
	LogDir string // When set, logs are also written to timestamped files here
	// LLM Configuration
	AnthropicAPIKey string
	DefaultModel    string
	// Debug flags
	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		DataDir:     getEnv("DATA_DIR", "./data"),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		TablePrefix: getTablePrefix(env),
		LogDir:      getEnv("LOG_DIR", ""),
		// LLM Configuration
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		DefaultModel:    getEnv("DEFAULT_MODEL", defaultModel(env)),
		// Debug flags - default to true in dev/test, false in production
		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// defaultModel returns the default generation model for an environment.
// Dev and test default to the lorem mock so the app runs without API keys.
func defaultModel(env string) string {
	if env == "prod" {
		return "claude-haiku-4-5-20251001"
	}
	return "lorem-fast"
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
