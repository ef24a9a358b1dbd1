package config

import (
	"os"
	"strconv"
	"strings"

	"riskbook/domain/core"
	"riskbook/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Data     DataConfig
	Analysis AnalysisConfig
	Model    ModelConfig
	Database DatabaseConfig
	Server   ServerConfig
}

// DataConfig holds source file settings
type DataConfig struct {
	FilePath  string
	Delimiter string // "|" for the raw book, "," for processed samples, "" to sniff
	ExportDir string
}

// AnalysisConfig holds metric engine and test runner settings
type AnalysisConfig struct {
	Alpha          float64
	MinGroupSize   int
	TopPostalCodes int
	Dimensions     []core.Dimension
}

// ModelConfig holds baseline trainer settings
type ModelConfig struct {
	TestFraction float64
	Seed         int64
	LogisticIters int
	LearningRate  float64
}

// DatabaseConfig holds optional Postgres settings for run persistence
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Data:     loadDataConfig(),
		Analysis: loadAnalysisConfig(),
		Model:    loadModelConfig(),
		Database: loadDatabaseConfig(),
		Server:   loadServerConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return config, nil
}

func loadDataConfig() DataConfig {
	return DataConfig{
		FilePath:  getEnvOrDefault("DATA_FILE", "data/MachineLearningRating_v3.txt"),
		Delimiter: getEnvOrDefault("DATA_DELIMITER", ""),
		ExportDir: getEnvOrDefault("EXPORT_DIR", "outputs"),
	}
}

func loadAnalysisConfig() AnalysisConfig {
	dims := []core.Dimension{"Province", "PostalCode", "Gender", "VehicleType", "CoverType"}
	if raw := os.Getenv("ANALYSIS_DIMENSIONS"); raw != "" {
		dims = dims[:0]
		for _, d := range strings.Split(raw, ",") {
			if dim, err := core.ParseDimension(d); err == nil {
				dims = append(dims, dim)
			}
		}
	}
	return AnalysisConfig{
		Alpha:          getEnvFloatOrDefault("ANALYSIS_ALPHA", 0.05),
		MinGroupSize:   getEnvIntOrDefault("ANALYSIS_MIN_GROUP_SIZE", 30),
		TopPostalCodes: getEnvIntOrDefault("ANALYSIS_TOP_POSTAL_CODES", 10),
		Dimensions:     dims,
	}
}

func loadModelConfig() ModelConfig {
	return ModelConfig{
		TestFraction:  getEnvFloatOrDefault("MODEL_TEST_FRACTION", 0.2),
		Seed:          int64(getEnvIntOrDefault("MODEL_SEED", 42)),
		LogisticIters: getEnvIntOrDefault("MODEL_LOGISTIC_ITERS", 500),
		LearningRate:  getEnvFloatOrDefault("MODEL_LEARNING_RATE", 0.1),
	}
}

func loadDatabaseConfig() DatabaseConfig {
	url := os.Getenv("DATABASE_URL")
	return DatabaseConfig{
		URL:     url,
		Enabled: url != "",
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func validateConfig(config *Config) error {
	if config.Data.FilePath == "" {
		return errors.ConfigInvalid("DATA_FILE is required")
	}
	if config.Analysis.Alpha <= 0 || config.Analysis.Alpha >= 1 {
		return errors.ConfigInvalid("ANALYSIS_ALPHA must be in (0, 1)")
	}
	if config.Analysis.MinGroupSize < 2 {
		return errors.ConfigInvalid("ANALYSIS_MIN_GROUP_SIZE must be at least 2")
	}
	if config.Model.TestFraction <= 0 || config.Model.TestFraction >= 1 {
		return errors.ConfigInvalid("MODEL_TEST_FRACTION must be in (0, 1)")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
