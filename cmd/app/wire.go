//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/dietdash/internal/bootstrap"
	"github.com/yanqian/dietdash/internal/domain/dashboard"
	"github.com/yanqian/dietdash/internal/infra/config"
	"github.com/yanqian/dietdash/internal/infra/dietapi"
	httpiface "github.com/yanqian/dietdash/internal/interface/http"
	"github.com/yanqian/dietdash/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideDashboardConfig,
		provideDietClient,
		provideDashboardStore,
		provideObjectStorage,
		provideAuthService,
		dashboard.NewService,
		wire.Bind(new(dashboard.DietClient), new(*dietapi.Client)),
		httpiface.NewDashboardHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
