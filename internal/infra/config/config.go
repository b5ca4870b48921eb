package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Cache     CacheConfig     `yaml:"cache"`
	Reports   ReportsConfig   `yaml:"reports"`
	Auth      AuthConfig      `yaml:"auth"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
	Retry          RetryConfig     `yaml:"retry"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// RetryConfig configures best-effort retries for POST requests.
type RetryConfig struct {
	Enabled     bool          `yaml:"enabled"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
	Exclude     []string      `yaml:"exclude"` // path.Match patterns
}

// UpstreamConfig points at the diet API.
type UpstreamConfig struct {
	BaseURL      string        `yaml:"baseUrl"`
	Timeout      time.Duration `yaml:"timeout"`
	UserPath     string        `yaml:"userPath"`
	DietPath     string        `yaml:"dietPath"`
	ExercisePath string        `yaml:"exercisePath"`
	LogMealPath  string        `yaml:"logMealPath"`
}

// DashboardConfig tunes the dashboard service.
type DashboardConfig struct {
	Timezone string        `yaml:"timezone"`
	CacheTTL time.Duration `yaml:"cacheTtl"`
	Limits   []LimitConfig `yaml:"limits"`
}

// LimitConfig is one row of the nutrient target table.
type LimitConfig struct {
	Nutrient string  `yaml:"nutrient"`
	Min      float64 `yaml:"min"`
	Max      float64 `yaml:"max"`
}

// CacheConfig selects the analysis memo backend.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Prefix  string `yaml:"prefix"`
}

// ReportsConfig holds S3-compatible storage settings for exported reports.
type ReportsConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
}

// AuthConfig holds the shared secret for verifying bearer tokens.
type AuthConfig struct {
	TokenSecret string `yaml:"tokenSecret"`
	Issuer      string `yaml:"issuer"`
}

var knownNutrients = map[string]struct{}{
	"calories":      {},
	"protein":       {},
	"fat":           {},
	"carbohydrates": {},
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_ENABLED"); v != "" {
		cfg.HTTP.Retry.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RETRY_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.Retry.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("HTTP_RETRY_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.HTTP.Retry.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("DIET_API_BASE_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := os.Getenv("DIET_API_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Upstream.Timeout = parsed
		}
	}
	if v := os.Getenv("DASHBOARD_TIMEZONE"); v != "" {
		cfg.Dashboard.Timezone = v
	}
	if v := os.Getenv("DASHBOARD_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Dashboard.CacheTTL = parsed
		}
	}
	if v := os.Getenv("VALKEY_ENABLED"); v != "" {
		cfg.Cache.Enabled = parseBool(v)
	}
	if v := os.Getenv("VALKEY_ADDR"); v != "" {
		cfg.Cache.Addr = v
	}
	if v := os.Getenv("VALKEY_PREFIX"); v != "" {
		cfg.Cache.Prefix = v
	}
	if v := os.Getenv("REPORTS_ENDPOINT"); v != "" {
		cfg.Reports.Endpoint = v
	}
	if v := os.Getenv("REPORTS_ACCESS_KEY"); v != "" {
		cfg.Reports.AccessKey = v
	}
	if v := os.Getenv("REPORTS_SECRET_KEY"); v != "" {
		cfg.Reports.SecretKey = v
	}
	if v := os.Getenv("REPORTS_BUCKET"); v != "" {
		cfg.Reports.Bucket = v
	}
	if v := os.Getenv("REPORTS_REGION"); v != "" {
		cfg.Reports.Region = v
	}
	if v := os.Getenv("AUTH_TOKEN_SECRET"); v != "" {
		cfg.Auth.TokenSecret = v
	}
	if v := os.Getenv("AUTH_TOKEN_ISSUER"); v != "" {
		cfg.Auth.Issuer = v
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 15 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 120,
				Burst:             30,
			},
			Retry: RetryConfig{
				Enabled:     true,
				MaxAttempts: 3,
				BaseBackoff: 150 * time.Millisecond,
				Exclude: []string{
					"/api/v1/dashboard/compute",
				},
			},
		},
		Upstream: UpstreamConfig{
			BaseURL:      "http://localhost:4000",
			Timeout:      10 * time.Second,
			UserPath:     "/user/{username}",
			DietPath:     "/diet/{userId}/{date}",
			ExercisePath: "/userexercise/{userId}",
			LogMealPath:  "/diet/updatediet",
		},
		Dashboard: DashboardConfig{
			Timezone: "UTC",
			CacheTTL: 10 * time.Minute,
			Limits: []LimitConfig{
				{Nutrient: "calories", Min: 1800, Max: 2200},
				{Nutrient: "protein", Min: 50, Max: 70},
				{Nutrient: "fat", Min: 50, Max: 70},
				{Nutrient: "carbohydrates", Min: 225, Max: 325},
			},
		},
		Cache: CacheConfig{
			Enabled: false,
			Prefix:  "dietdash",
		},
		Reports: ReportsConfig{
			Bucket: "dietdash-reports",
			Region: "auto",
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if strings.TrimSpace(c.Upstream.BaseURL) == "" {
		return errors.New("upstream.baseUrl cannot be empty")
	}
	if c.Upstream.Timeout <= 0 {
		return errors.New("upstream.timeout must be positive")
	}
	if c.Dashboard.CacheTTL < 0 {
		return errors.New("dashboard.cacheTtl cannot be negative")
	}
	if err := validateLimits(c.Dashboard.Limits); err != nil {
		return err
	}
	if c.Cache.Enabled && strings.TrimSpace(c.Cache.Addr) == "" {
		return errors.New("cache.addr cannot be empty when cache is enabled")
	}
	if strings.TrimSpace(c.Reports.Endpoint) != "" && strings.TrimSpace(c.Reports.Bucket) == "" {
		return errors.New("reports.bucket cannot be empty when reports.endpoint is set")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.HTTP.Retry.Enabled {
		if c.HTTP.Retry.MaxAttempts <= 0 {
			return errors.New("http.retry.maxAttempts must be positive")
		}
		if c.HTTP.Retry.BaseBackoff <= 0 {
			return errors.New("http.retry.baseBackoff must be positive")
		}
	}
	return nil
}

// validateLimits enforces min <= max per row. The advisory rules assume it.
func validateLimits(limits []LimitConfig) error {
	if len(limits) == 0 {
		return errors.New("dashboard.limits cannot be empty")
	}
	seen := make(map[string]struct{}, len(limits))
	for _, l := range limits {
		if _, ok := knownNutrients[l.Nutrient]; !ok {
			return fmt.Errorf("dashboard.limits: unknown nutrient %q", l.Nutrient)
		}
		if _, dup := seen[l.Nutrient]; dup {
			return fmt.Errorf("dashboard.limits: duplicate nutrient %q", l.Nutrient)
		}
		seen[l.Nutrient] = struct{}{}
		if l.Min < 0 {
			return fmt.Errorf("dashboard.limits: %s min cannot be negative", l.Nutrient)
		}
		if l.Min > l.Max {
			return fmt.Errorf("dashboard.limits: %s min %g exceeds max %g", l.Nutrient, l.Min, l.Max)
		}
	}
	return nil
}
