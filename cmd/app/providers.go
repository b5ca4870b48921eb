package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/dietdash/internal/domain/auth"
	"github.com/yanqian/dietdash/internal/domain/dashboard"
	"github.com/yanqian/dietdash/internal/domain/nutrition"
	"github.com/yanqian/dietdash/internal/infra/config"
	"github.com/yanqian/dietdash/internal/infra/dashboardstore"
	"github.com/yanqian/dietdash/internal/infra/dietapi"
	"github.com/yanqian/dietdash/internal/infra/objectstore"
)

func provideDashboardConfig(cfg *config.Config) dashboard.Config {
	limits := make(nutrition.Limits, 0, len(cfg.Dashboard.Limits))
	for _, l := range cfg.Dashboard.Limits {
		limits = append(limits, nutrition.Limit{
			Nutrient: nutrition.Nutrient(l.Nutrient),
			Range:    nutrition.Range{Min: l.Min, Max: l.Max},
		})
	}
	return dashboard.Config{
		Limits:   limits,
		CacheTTL: cfg.Dashboard.CacheTTL,
		Timezone: cfg.Dashboard.Timezone,
	}
}

func provideDietClient(cfg *config.Config, logger *slog.Logger) *dietapi.Client {
	logger.Info("diet api configured", "base_url", cfg.Upstream.BaseURL, "timeout", cfg.Upstream.Timeout)
	return dietapi.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, dietapi.Paths{
		User:     cfg.Upstream.UserPath,
		Diet:     cfg.Upstream.DietPath,
		Exercise: cfg.Upstream.ExercisePath,
		LogMeal:  cfg.Upstream.LogMealPath,
	})
}

func provideDashboardStore(cfg *config.Config, logger *slog.Logger) dashboard.Store {
	if !cfg.Cache.Enabled {
		return dashboardstore.NewMemoryStore()
	}
	opt, err := buildValkeyOptions(cfg.Cache.Addr)
	if err != nil {
		logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
		return dashboardstore.NewMemoryStore()
	}
	client, err := valkey.NewClient(opt)
	if err != nil {
		logger.Error("failed to create valkey client, falling back to memory store", "error", err)
		return dashboardstore.NewMemoryStore()
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		logger.Error("valkey ping failed, falling back to memory store", "error", err)
		client.Close()
		return dashboardstore.NewMemoryStore()
	}
	logger.Info("dashboard valkey store enabled", "addr", cfg.Cache.Addr)
	return dashboardstore.NewValkeyStore(client, cfg.Cache.Prefix)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

func provideObjectStorage(cfg *config.Config, logger *slog.Logger) dashboard.ObjectStorage {
	rc := cfg.Reports
	if strings.TrimSpace(rc.Endpoint) == "" {
		logger.Info("reports endpoint not set, keeping exported reports in memory")
		return objectstore.NewMemoryStorage()
	}
	storage, err := objectstore.NewMinioStorage(rc.Endpoint, rc.AccessKey, rc.SecretKey, rc.Bucket, rc.Region, logger)
	if err != nil {
		logger.Error("failed to initialize report storage, keeping reports in memory", "error", err)
		return objectstore.NewMemoryStorage()
	}
	logger.Info("report object storage enabled", "endpoint", rc.Endpoint, "bucket", rc.Bucket)
	return storage
}

// provideAuthService returns nil when no token secret is configured so the
// router leaves token-scoped routes unregistered.
func provideAuthService(cfg *config.Config, logger *slog.Logger) auth.Service {
	if strings.TrimSpace(cfg.Auth.TokenSecret) == "" {
		return nil
	}
	return auth.NewService(auth.Config{Secret: cfg.Auth.TokenSecret, Issuer: cfg.Auth.Issuer}, logger)
}
