// Package config provides centralized configuration management for the
// sales analysis pipeline. It handles loading configuration from multiple
// sources, validation, and provides a type-safe API for accessing
// configuration values throughout the application.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. Configuration files (YAML)
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern SALESPULSE_* for namespacing:
//
//	SALESPULSE_LOGGING_LEVEL=info
//	SALESPULSE_PATHS_OUTPUT_DIR=reports
//	SALESPULSE_PIPELINE_MIN_SUPPORT=0.001
//	SALESPULSE_PIPELINE_INCLUDE_NON_SALES=true
//
// # Usage
//
// Load configuration at application startup:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
