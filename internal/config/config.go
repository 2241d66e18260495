package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Paths    PathsConfig    `yaml:"paths" envconfig:"PATHS"`
	Pipeline PipelineConfig `yaml:"pipeline" envconfig:"PIPELINE"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	InputFile string `yaml:"input_file" envconfig:"INPUT_FILE"`
	OutputDir string `yaml:"output_dir" envconfig:"OUTPUT_DIR" default:"reports"`
}

// PipelineConfig contains the knobs of the analysis pipeline
type PipelineConfig struct {
	IncludeNonSales bool    `yaml:"include_non_sales" envconfig:"INCLUDE_NON_SALES" default:"false"`
	MinSupport      float64 `yaml:"min_support" envconfig:"MIN_SUPPORT" default:"0.001"`
	TopProducts     int     `yaml:"top_products" envconfig:"TOP_PRODUCTS" default:"20"`
}

// Load loads configuration from environment variables and config file
func Load() (*Config, error) {
	var cfg Config

	// Load from environment variables first
	if err := envconfig.Process("SALESPULSE", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	// Load from config file if exists
	configFile := getConfigFilePath()
	if configFile != "" {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Logging.Level == "" {
		envConfig.Logging.Level = fileConfig.Logging.Level
	}
	if envConfig.Logging.Format == "" {
		envConfig.Logging.Format = fileConfig.Logging.Format
	}
	if envConfig.Paths.InputFile == "" {
		envConfig.Paths.InputFile = fileConfig.Paths.InputFile
	}
	if envConfig.Paths.OutputDir == "" {
		envConfig.Paths.OutputDir = fileConfig.Paths.OutputDir
	}
	if !envConfig.Pipeline.IncludeNonSales {
		envConfig.Pipeline.IncludeNonSales = fileConfig.Pipeline.IncludeNonSales
	}
	if envConfig.Pipeline.MinSupport == 0 {
		envConfig.Pipeline.MinSupport = fileConfig.Pipeline.MinSupport
	}
	if envConfig.Pipeline.TopProducts == 0 {
		envConfig.Pipeline.TopProducts = fileConfig.Pipeline.TopProducts
	}

	return envConfig
}

// validate validates the configuration
func (c *Config) validate() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}

	if c.Logging.Format != "json" && c.Logging.Format != "text" {
		c.Logging.Format = "json"
	}

	if c.Pipeline.MinSupport < 0 || c.Pipeline.MinSupport > 1 {
		return fmt.Errorf("min support must be within [0, 1], got %g", c.Pipeline.MinSupport)
	}

	if c.Pipeline.TopProducts < 0 {
		return fmt.Errorf("top products must be non-negative, got %d", c.Pipeline.TopProducts)
	}

	return nil
}

// GetOutputDir returns the resolved output directory path.
func (c *Config) GetOutputDir() string {
	if filepath.IsAbs(c.Paths.OutputDir) {
		return c.Paths.OutputDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return c.Paths.OutputDir
	}
	return filepath.Join(wd, c.Paths.OutputDir)
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	// Check for config file in common locations
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return "" // No config file found, use env vars only
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Paths: PathsConfig{
			OutputDir: "reports",
		},
		Pipeline: PipelineConfig{
			IncludeNonSales: false,
			MinSupport:      0.001,
			TopProducts:     20,
		},
	}
}
