package config

import "os"

// Config holds all configuration for the secret-tool CLI.
type Config struct {
	MetricsAddr string
	LogLevel    string
}

// Load creates a Config from environment variables with defaults. An empty
// MetricsAddr disables the metrics endpoint.
func Load() *Config {
	return &Config{
		MetricsAddr: getEnv("METRICS_ADDR", ""),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
