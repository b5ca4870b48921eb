package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/dietdash/internal/domain/nutrition"
	"github.com/yanqian/dietdash/internal/infra/config"
	"github.com/yanqian/dietdash/internal/infra/dashboardstore"
	"github.com/yanqian/dietdash/internal/infra/objectstore"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestProvideDashboardConfigKeepsLimitOrder(t *testing.T) {
	cfg := &config.Config{Dashboard: config.DashboardConfig{
		Timezone: "Asia/Kolkata",
		Limits: []config.LimitConfig{
			{Nutrient: "protein", Min: 50, Max: 175},
			{Nutrient: "calories", Min: 1800, Max: 2200},
		},
	}}

	got := provideDashboardConfig(cfg)
	require.Equal(t, "Asia/Kolkata", got.Timezone)
	require.Equal(t, nutrition.Limits{
		{Nutrient: nutrition.Protein, Range: nutrition.Range{Min: 50, Max: 175}},
		{Nutrient: nutrition.Calories, Range: nutrition.Range{Min: 1800, Max: 2200}},
	}, got.Limits)
}

func TestProvideFallbacks(t *testing.T) {
	cfg := &config.Config{}

	require.IsType(t, &dashboardstore.MemoryStore{}, provideDashboardStore(cfg, discardLogger()))
	require.IsType(t, &objectstore.MemoryStorage{}, provideObjectStorage(cfg, discardLogger()))
	require.Nil(t, provideAuthService(cfg, discardLogger()))

	cfg.Auth.TokenSecret = "s3cret"
	require.NotNil(t, provideAuthService(cfg, discardLogger()))
}

func TestBuildValkeyOptions(t *testing.T) {
	opt, err := buildValkeyOptions("localhost:6379")
	require.NoError(t, err)
	require.Equal(t, []string{"localhost:6379"}, opt.InitAddress)

	opt, err = buildValkeyOptions("redis://cache:6380/0")
	require.NoError(t, err)
	require.Equal(t, []string{"cache:6380"}, opt.InitAddress)
}
