// Package config provides centralized configuration management.
//
// Configuration can be loaded from:
//  1. YAML file (config.yaml)
//  2. Environment variables (fallback)
//
// Example usage:
//
//	cfg := config.LoadOrEnv()
//	port := cfg.Server.Port
//	threshold := cfg.Engine.FuzzyThreshold
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the entire application configuration
type Config struct {
	Engine        EngineConfig        `yaml:"engine"`
	Server        ServerConfig        `yaml:"server"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// EngineConfig holds the matching-engine knobs
type EngineConfig struct {
	AmountTolerance   float64 `yaml:"amount_tolerance"`
	DateToleranceDays int     `yaml:"date_tolerance_days"`
	FuzzyThreshold    float64 `yaml:"fuzzy_threshold"`
	Workers           int     `yaml:"workers"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	RunHistory     int      `yaml:"run_history"`
}

// ObservabilityConfig holds observability settings
type ObservabilityConfig struct {
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads and parses the config file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables (e.g., ${RECONCILE_PORT})
	expanded := os.ExpandEnv(string(data))

	cfg := defaults()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from environment variables only
func LoadFromEnv() *Config {
	cfg := defaults()
	cfg.Engine.AmountTolerance = getEnvFloat("RECONCILE_AMOUNT_TOLERANCE", cfg.Engine.AmountTolerance)
	cfg.Engine.DateToleranceDays = getEnvInt("RECONCILE_DATE_TOLERANCE_DAYS", cfg.Engine.DateToleranceDays)
	cfg.Engine.FuzzyThreshold = getEnvFloat("RECONCILE_FUZZY_THRESHOLD", cfg.Engine.FuzzyThreshold)
	cfg.Engine.Workers = getEnvInt("RECONCILE_WORKERS", cfg.Engine.Workers)
	cfg.Server.Port = getEnvInt("RECONCILE_PORT", cfg.Server.Port)
	cfg.Server.RunHistory = getEnvInt("RECONCILE_RUN_HISTORY", cfg.Server.RunHistory)
	cfg.Observability.Logging.Level = getEnv("LOG_LEVEL", cfg.Observability.Logging.Level)
	cfg.Observability.Logging.Format = getEnv("LOG_FORMAT", cfg.Observability.Logging.Format)
	return cfg
}

// LoadOrEnv tries to load from config.yaml, falls back to environment variables
func LoadOrEnv() *Config {
	return LoadOrEnvWithPath("config.yaml")
}

// LoadOrEnvWithPath tries to load from specified path, falls back to environment variables
func LoadOrEnvWithPath(path string) *Config {
	if cfg, err := Load(path); err == nil {
		return cfg
	}
	return LoadFromEnv()
}

// defaults returns the configuration the app runs with when nothing is set
func defaults() *Config {
	return &Config{
		Engine: EngineConfig{
			AmountTolerance:   0.01,
			DateToleranceDays: 3,
			FuzzyThreshold:    0.8,
			Workers:           1,
		},
		Server: ServerConfig{
			Port:           8080,
			AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
			RunHistory:     100,
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
		},
	}
}

// getEnv retrieves an environment variable with a fallback default
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// getEnvInt retrieves an integer environment variable with a fallback default
func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		var result int
		if _, err := fmt.Sscanf(val, "%d", &result); err == nil {
			return result
		}
	}
	return fallback
}

// getEnvFloat retrieves a float environment variable with a fallback default
func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		var result float64
		if _, err := fmt.Sscanf(val, "%g", &result); err == nil {
			return result
		}
	}
	return fallback
}
