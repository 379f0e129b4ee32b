package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	Dashboard DashboardConfig `yaml:"dashboard" envconfig:"DASHBOARD"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s" validate:"gt=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"15s" validate:"gt=0"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES" default:"1048576"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s" validate:"gt=0"`
}

// DataConfig locates the merged dataset
type DataConfig struct {
	Dir       string `yaml:"dir" envconfig:"DIR" default:"data" validate:"required"`
	File      string `yaml:"file" envconfig:"FILE" default:"netflix_final_merged.csv" validate:"required"`
	ExportDir string `yaml:"export_dir" envconfig:"EXPORT_DIR" default:"exports"`
}

// DashboardConfig controls chart computation and rendering
type DashboardConfig struct {
	// JitterSeed seeds the hit-show plotting jitter; 0 seeds from the clock
	JitterSeed   int64         `yaml:"jitter_seed" envconfig:"JITTER_SEED" default:"0"`
	ChartWidth   int           `yaml:"chart_width" envconfig:"CHART_WIDTH" default:"1000" validate:"min=200,max=4000"`
	ChartHeight  int           `yaml:"chart_height" envconfig:"CHART_HEIGHT" default:"500" validate:"min=150,max=3000"`
	BuildTimeout time.Duration `yaml:"build_timeout" envconfig:"BUILD_TIMEOUT" default:"2m" validate:"gt=0"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS" default:"http://localhost:8080"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS" default:"true"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"100" validate:"gte=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"50" validate:"gte=0"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format   string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console" validate:"oneof=console file both"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/app.log"`
}

// TelemetryConfig controls metrics and tracing
type TelemetryConfig struct {
	ServiceName    string `yaml:"service_name" envconfig:"SERVICE_NAME" default:"netflix-dashboard"`
	MetricsEnabled bool   `yaml:"metrics_enabled" envconfig:"METRICS_ENABLED" default:"true"`
	TracingEnabled bool   `yaml:"tracing_enabled" envconfig:"TRACING_ENABLED" default:"false"`
}

var structValidator = validator.New()

// Load loads configuration from a .env file, environment variables and the
// config file named by NETFLIX_CONFIG or found in a default location
func Load() (*Config, error) {
	return LoadFile(getConfigFilePath())
}

// LoadFile loads configuration with an explicit YAML file. An empty path
// skips the file. Environment variables take precedence over the file.
func LoadFile(configFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

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

// mergeConfigs overlays non-zero file values onto envConfig, except where the
// matching environment variable is set. A false or zero in the file cannot
// override a default.
func mergeConfigs(fileConfig, envConfig Config) Config {
	s, f := &envConfig.Server, fileConfig.Server
	overlay(&s.Port, f.Port, "SERVER_PORT")
	overlay(&s.ReadTimeout, f.ReadTimeout, "SERVER_READ_TIMEOUT")
	overlay(&s.WriteTimeout, f.WriteTimeout, "SERVER_WRITE_TIMEOUT")
	overlay(&s.IdleTimeout, f.IdleTimeout, "SERVER_IDLE_TIMEOUT")
	overlay(&s.MaxHeaderBytes, f.MaxHeaderBytes, "SERVER_MAX_HEADER_BYTES")
	overlay(&s.ShutdownTimeout, f.ShutdownTimeout, "SERVER_SHUTDOWN_TIMEOUT")

	d, fd := &envConfig.Data, fileConfig.Data
	overlay(&d.Dir, fd.Dir, "DATA_DIR")
	overlay(&d.File, fd.File, "DATA_FILE")
	overlay(&d.ExportDir, fd.ExportDir, "DATA_EXPORT_DIR")

	db, fdb := &envConfig.Dashboard, fileConfig.Dashboard
	overlay(&db.JitterSeed, fdb.JitterSeed, "DASHBOARD_JITTER_SEED")
	overlay(&db.ChartWidth, fdb.ChartWidth, "DASHBOARD_CHART_WIDTH")
	overlay(&db.ChartHeight, fdb.ChartHeight, "DASHBOARD_CHART_HEIGHT")
	overlay(&db.BuildTimeout, fdb.BuildTimeout, "DASHBOARD_BUILD_TIMEOUT")

	l, fl := &envConfig.Logging, fileConfig.Logging
	overlay(&l.Level, fl.Level, "LOGGING_LEVEL")
	overlay(&l.Format, fl.Format, "LOGGING_FORMAT")
	overlay(&l.Output, fl.Output, "LOGGING_OUTPUT")
	overlay(&l.FilePath, fl.FilePath, "LOGGING_FILE_PATH")

	sec, fsec := &envConfig.Security, fileConfig.Security
	if len(fsec.AllowedOrigins) > 0 && !envSet("SECURITY_ALLOWED_ORIGINS") {
		sec.AllowedOrigins = fsec.AllowedOrigins
	}
	overlay(&sec.EnableCORS, fsec.EnableCORS, "SECURITY_ENABLE_CORS")
	overlay(&sec.RateLimit.Enabled, fsec.RateLimit.Enabled, "SECURITY_RATE_LIMIT_ENABLED")
	overlay(&sec.RateLimit.RPS, fsec.RateLimit.RPS, "SECURITY_RATE_LIMIT_RPS")
	overlay(&sec.RateLimit.Burst, fsec.RateLimit.Burst, "SECURITY_RATE_LIMIT_BURST")

	tel, ftel := &envConfig.Telemetry, fileConfig.Telemetry
	overlay(&tel.ServiceName, ftel.ServiceName, "TELEMETRY_SERVICE_NAME")
	overlay(&tel.MetricsEnabled, ftel.MetricsEnabled, "TELEMETRY_METRICS_ENABLED")
	overlay(&tel.TracingEnabled, ftel.TracingEnabled, "TELEMETRY_TRACING_ENABLED")

	return envConfig
}

func overlay[T comparable](dst *T, fileValue T, envKey string) {
	var zero T
	if fileValue == zero || envSet(envKey) {
		return
	}
	*dst = fileValue
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(EnvPrefix + "_" + key)
	return ok
}

// validate validates the configuration
func (c *Config) validate() error {
	if err := structValidator.Struct(c); err != nil {
		return err
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		return path
	}

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

// DatasetPath resolves the dataset file. A relative data directory is
// taken relative to the executable.
func (c *Config) DatasetPath() (string, error) {
	if filepath.IsAbs(c.Data.File) {
		return c.Data.File, nil
	}
	if filepath.IsAbs(c.Data.Dir) {
		return filepath.Join(c.Data.Dir, c.Data.File), nil
	}
	paths, err := GetPaths()
	if err != nil {
		return "", fmt.Errorf("failed to get paths: %w", err)
	}
	return paths.Resolve(filepath.Join(c.Data.Dir, c.Data.File)), nil
}

// ExportDir resolves the export directory the same way as DatasetPath
func (c *Config) ExportDir() (string, error) {
	if filepath.IsAbs(c.Data.ExportDir) {
		return c.Data.ExportDir, nil
	}
	paths, err := GetPaths()
	if err != nil {
		return "", fmt.Errorf("failed to get paths: %w", err)
	}
	return paths.Resolve(c.Data.ExportDir), nil
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     DefaultHTTPTimeout,
			WriteTimeout:    DefaultHTTPTimeout,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
		},
		Data: DataConfig{
			Dir:       DefaultDataDir,
			File:      DefaultDataFile,
			ExportDir: DefaultExportDir,
		},
		Dashboard: DashboardConfig{
			ChartWidth:   1000,
			ChartHeight:  500,
			BuildTimeout: DefaultBuildTimeout,
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   DefaultLogFormat,
			Output:   "console",
			FilePath: DefaultLogsDir + "/app.log",
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Telemetry: TelemetryConfig{
			ServiceName:    "netflix-dashboard",
			MetricsEnabled: true,
		},
	}
}
