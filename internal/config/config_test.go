package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "default configuration with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
				assert.Equal(t, "data", cfg.Data.Dir)
				assert.Equal(t, "netflix_final_merged.csv", cfg.Data.File)
				assert.Equal(t, int64(0), cfg.Dashboard.JitterSeed)
				assert.Equal(t, 1000, cfg.Dashboard.ChartWidth)
				assert.Equal(t, 500, cfg.Dashboard.ChartHeight)
				assert.Equal(t, 2*time.Minute, cfg.Dashboard.BuildTimeout)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, []string{"http://localhost:8080"}, cfg.Security.AllowedOrigins)
				assert.True(t, cfg.Security.RateLimit.Enabled)
				assert.Equal(t, 100.0, cfg.Security.RateLimit.RPS)
				assert.True(t, cfg.Telemetry.MetricsEnabled)
				assert.False(t, cfg.Telemetry.TracingEnabled)
			},
		},
		{
			name: "custom environment variables",
			env: map[string]string{
				"NETFLIX_SERVER_PORT":              "9090",
				"NETFLIX_SECURITY_ALLOWED_ORIGINS": "http://example.com,https://example.com",
				"NETFLIX_DASHBOARD_JITTER_SEED":    "42",
				"NETFLIX_LOGGING_LEVEL":            "debug",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, []string{"http://example.com", "https://example.com"}, cfg.Security.AllowedOrigins)
				assert.Equal(t, int64(42), cfg.Dashboard.JitterSeed)
				assert.Equal(t, "debug", cfg.Logging.Level)
			},
		},
		{
			name: "file values fill in where env is unset",
			env:  map[string]string{"NETFLIX_LOGGING_LEVEL": "warn"},
			file: `
server:
  port: 7000
data:
  dir: /srv/netflix
  file: merged.xlsx
logging:
  level: debug
dashboard:
  chart_width: 1200
security:
  allowed_origins:
    - https://dashboard.example.com
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 7000, cfg.Server.Port)
				assert.Equal(t, "/srv/netflix", cfg.Data.Dir)
				assert.Equal(t, "merged.xlsx", cfg.Data.File)
				assert.Equal(t, "warn", cfg.Logging.Level)
				assert.Equal(t, 1200, cfg.Dashboard.ChartWidth)
				assert.Equal(t, 500, cfg.Dashboard.ChartHeight)
				assert.Equal(t, []string{"https://dashboard.example.com"}, cfg.Security.AllowedOrigins)
			},
		},
		{
			name:    "invalid port number",
			env:     map[string]string{"NETFLIX_SERVER_PORT": "99999"},
			wantErr: true,
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"NETFLIX_LOGGING_LEVEL": "verbose"},
			wantErr: true,
		},
		{
			name:    "chart too small",
			env:     map[string]string{"NETFLIX_DASHBOARD_CHART_WIDTH": "10"},
			wantErr: true,
		},
		{
			name:    "malformed env value",
			env:     map[string]string{"NETFLIX_SERVER_READ_TIMEOUT": "soon"},
			wantErr: true,
		},
		{
			name:    "malformed yaml",
			file:    "server: [port",
			wantErr: true,
		},
		{
			name:    "invalid value from file",
			file:    "logging:\n  format: xml\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.file != "" {
				path = writeConfigFile(t, tt.file)
			}

			cfg, err := LoadFile(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadUsesConfigEnv(t *testing.T) {
	path := writeConfigFile(t, "server:\n  port: 8181\n")
	t.Setenv(ConfigFileEnv, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8181, cfg.Server.Port)
}

func TestMergeConfigs(t *testing.T) {
	t.Setenv("NETFLIX_SERVER_PORT", "9000")

	env := *Default()
	env.Server.Port = 9000
	file := Config{
		Server:    ServerConfig{Port: 7000, ReadTimeout: 5 * time.Second},
		Dashboard: DashboardConfig{JitterSeed: 7},
		Telemetry: TelemetryConfig{TracingEnabled: true},
	}

	merged := mergeConfigs(file, env)
	assert.Equal(t, 9000, merged.Server.Port)
	assert.Equal(t, 5*time.Second, merged.Server.ReadTimeout)
	assert.Equal(t, int64(7), merged.Dashboard.JitterSeed)
	assert.True(t, merged.Telemetry.TracingEnabled)
	assert.Equal(t, DefaultDataFile, merged.Data.File)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(*Config) {}, false},
		{"zero port", func(c *Config) { c.Server.Port = 0 }, true},
		{"empty data file", func(c *Config) { c.Data.File = "" }, true},
		{"cors without origins", func(c *Config) { c.Security.AllowedOrigins = nil }, true},
		{"no origins with cors disabled", func(c *Config) {
			c.Security.AllowedOrigins = nil
			c.Security.EnableCORS = false
		}, false},
		{"negative rate", func(c *Config) { c.Security.RateLimit.RPS = -1 }, true},
		{"zero build timeout", func(c *Config) { c.Dashboard.BuildTimeout = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDatasetPath(t *testing.T) {
	cfg := Default()

	cfg.Data.File = "/abs/merged.csv"
	path, err := cfg.DatasetPath()
	require.NoError(t, err)
	assert.Equal(t, "/abs/merged.csv", path)

	cfg.Data.Dir = "/srv/data"
	cfg.Data.File = "merged.csv"
	path, err = cfg.DatasetPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/data", "merged.csv"), path)

	cfg.Data.Dir = "data"
	path, err = cfg.DatasetPath()
	require.NoError(t, err)
	paths, err := GetPaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.ExecutableDir, "data", "merged.csv"), path)
}
