package config

import (
	"fmt"
	"os"
	"strconv"

	// Load environment variables from .env files when present.
	_ "github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Extraction ExtractionConfig
	Output     OutputConfig
	Watch      WatchConfig
	Logging    LoggingConfig
}

type ExtractionConfig struct {
	// ProfilesPath points at a JSON profile file; empty means built-in profiles.
	ProfilesPath string
	InputDir     string
}

type OutputConfig struct {
	// Format is one of csv, json, xlsx.
	Format string
	Path   string
}

type WatchConfig struct {
	Enabled bool
	// Spec is a standard 5-field cron expression.
	Spec string
}

type LoggingConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Extraction: ExtractionConfig{
			ProfilesPath: getEnv("EXTRACTOR_PROFILES", ""),
			InputDir:     getEnv("EXTRACTOR_INPUT_DIR", ""),
		},
		Output: OutputConfig{
			Format: getEnv("EXTRACTOR_FORMAT", "json"),
			Path:   getEnv("EXTRACTOR_OUTPUT", ""),
		},
		Watch: WatchConfig{
			Enabled: getEnvAsBool("EXTRACTOR_WATCH", false),
			Spec:    getEnv("EXTRACTOR_WATCH_SPEC", "*/5 * * * *"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
	}

	switch cfg.Output.Format {
	case "csv", "json", "xlsx":
	default:
		return nil, fmt.Errorf("EXTRACTOR_FORMAT must be csv, json or xlsx, got %q", cfg.Output.Format)
	}

	if cfg.Output.Format == "xlsx" && cfg.Output.Path == "" {
		return nil, fmt.Errorf("EXTRACTOR_OUTPUT is required for xlsx output")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
