package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Address)
	require.Equal(t, "/diet/{userId}/{date}", cfg.Upstream.DietPath)
	require.Equal(t, "/diet/updatediet", cfg.Upstream.LogMealPath)
	require.Len(t, cfg.Dashboard.Limits, 4)
	require.Equal(t, LimitConfig{Nutrient: "calories", Min: 1800, Max: 2200}, cfg.Dashboard.Limits[0])
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yamlBody := `
upstream:
  baseUrl: https://diet.example.com/api
  timeout: 3s
  dietPath: /diet/getuserdiet/{userId}/{date}
dashboard:
  timezone: Asia/Kolkata
  limits:
    - nutrient: protein
      min: 60
      max: 90
    - nutrient: calories
      min: 2000
      max: 2500
cache:
  enabled: true
  addr: localhost:6379
`
	require.NoError(t, os.WriteFile(path, []byte(yamlBody), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DASHBOARD_CACHE_TTL", "90s")
	t.Setenv("HTTP_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://diet.example.com/api", cfg.Upstream.BaseURL)
	require.Equal(t, 3*time.Second, cfg.Upstream.Timeout)
	require.Equal(t, "/diet/getuserdiet/{userId}/{date}", cfg.Upstream.DietPath)
	require.Equal(t, "/user/{username}", cfg.Upstream.UserPath)
	require.Equal(t, "Asia/Kolkata", cfg.Dashboard.Timezone)
	require.Equal(t, 90*time.Second, cfg.Dashboard.CacheTTL)
	require.Equal(t, []LimitConfig{
		{Nutrient: "protein", Min: 60, Max: 90},
		{Nutrient: "calories", Min: 2000, Max: 2500},
	}, cfg.Dashboard.Limits)
	require.True(t, cfg.Cache.Enabled)
	require.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.HTTP.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "min above max",
			mutate:  func(c *Config) { c.Dashboard.Limits[1] = LimitConfig{Nutrient: "protein", Min: 90, Max: 60} },
			wantErr: "protein min 90 exceeds max 60",
		},
		{
			name:    "unknown nutrient",
			mutate:  func(c *Config) { c.Dashboard.Limits[0].Nutrient = "sodium" },
			wantErr: "unknown nutrient",
		},
		{
			name:    "duplicate nutrient",
			mutate:  func(c *Config) { c.Dashboard.Limits[2].Nutrient = "calories" },
			wantErr: "duplicate nutrient",
		},
		{
			name:    "negative min",
			mutate:  func(c *Config) { c.Dashboard.Limits[3].Min = -1 },
			wantErr: "cannot be negative",
		},
		{
			name:    "empty limits",
			mutate:  func(c *Config) { c.Dashboard.Limits = nil },
			wantErr: "dashboard.limits cannot be empty",
		},
		{
			name:    "cache without addr",
			mutate:  func(c *Config) { c.Cache.Enabled = true },
			wantErr: "cache.addr",
		},
		{
			name:    "missing upstream",
			mutate:  func(c *Config) { c.Upstream.BaseURL = " " },
			wantErr: "upstream.baseUrl",
		},
		{
			name:    "reports without bucket",
			mutate:  func(c *Config) { c.Reports.Endpoint = "https://r2.example.com"; c.Reports.Bucket = "" },
			wantErr: "reports.bucket",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
