package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Batch BatchConfig
	Log   LogConfig
}

// BatchConfig holds batch-driver configuration
type BatchConfig struct {
	Workers    int
	RowIndex   int
	PolicyPath string
	Recursive  bool
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Batch: BatchConfig{
			Workers:    getEnvAsInt("DR_WORKERS", 4),
			RowIndex:   getEnvAsInt("DR_ROW_INDEX", 12),
			PolicyPath: getEnv("DR_POLICY_FILE", ""),
			Recursive:  getEnvAsBool("DR_RECURSIVE", false),
		},
		Log: LogConfig{
			Level: getEnv("DR_LOG_LEVEL", "info"),
		},
	}
}

// Helper functions for environment variable parsing
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

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Batch.Workers < 1 {
		return NewAppError("CONFIG_ERROR", "DR_WORKERS must be >= 1", ErrInvalidInput)
	}
	if c.Batch.RowIndex < 1 {
		return NewAppError("CONFIG_ERROR", "DR_ROW_INDEX must be >= 1", ErrInvalidInput)
	}
	return nil
}
