// Package config provides centralized configuration management for the
// dashboard. It loads configuration from multiple sources, validates it and
// resolves file system paths relative to the executable.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority), including a local .env file
//	2. A YAML configuration file
//	3. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern NETFLIX_<SECTION>_<FIELD>:
//
//	NETFLIX_SERVER_PORT=8080
//	NETFLIX_DATA_DIR=/srv/netflix/data
//	NETFLIX_DASHBOARD_JITTER_SEED=42
//	NETFLIX_LOGGING_LEVEL=debug
//
// NETFLIX_CONFIG names the YAML file; otherwise config.yaml and
// configs/config.yaml are tried.
//
// # Validation
//
// Struct tags are checked with go-playground/validator at load time, so a
// bad port, an unknown log level or an undersized chart fails fast.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	dataset, err := cfg.DatasetPath()
package config
