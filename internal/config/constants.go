package config

import "time"

// Application constants
const (
	AppName = "Netflix Data Analysis Dashboard"

	// EnvPrefix namespaces every environment variable, e.g. NETFLIX_SERVER_PORT
	EnvPrefix = "NETFLIX"

	// ConfigFileEnv names the variable that points at a YAML config file
	ConfigFileEnv = "NETFLIX_CONFIG"

	// File paths (relative to executable)
	DefaultDataDir   = "data"
	DefaultDataFile  = "netflix_final_merged.csv"
	DefaultExportDir = "exports"
	DefaultLogsDir   = "logs"

	// Rate limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Timeouts
	DefaultHTTPTimeout  = 15 * time.Second
	DefaultBuildTimeout = 2 * time.Minute

	// Log settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// API endpoints
	ChartsEndpoint    = "/api/charts"
	DashboardEndpoint = "/api/dashboard"
	HealthEndpoint    = "/api/health"
	VersionEndpoint   = "/api/version"
	MetricsEndpoint   = "/metrics"
)
