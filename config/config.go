// Package config reads the application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/etnz/fundperf"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      int
	Debug     bool
	LogLevel  string
	DataPaths []string // candidate workbook locations, in order
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Port:      getEnvAsInt("PORT", 8050),
		Debug:     getEnvAsBool("DEBUG", false),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		DataPaths: getEnvAsList("DATA_PATHS", fundperf.DefaultPaths),
	}
	if cfg.Debug {
		cfg.LogLevel = "debug"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks if the configuration is usable
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be in 1..65535, got %d", c.Port)
	}
	if len(c.DataPaths) == 0 {
		return fmt.Errorf("DATA_PATHS is required")
	}
	return nil
}

// Addr returns the listen address of the server.
func (c *Config) Addr() string { return ":" + strconv.Itoa(c.Port) }

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
