package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanqian/dietdash/internal/domain/auth"
	"github.com/yanqian/dietdash/internal/infra/config"
)

// mealRoutes post new records upstream and are never replayed.
var mealRoutes = []string{"/api/v1/users/*/meals", "/api/v1/me/meals"}

// NewRouter wires up the HTTP handlers and returns a configured server.
// authSvc may be nil: /me is then not registered and the admin view is left open,
// which is only suitable behind a trusted network boundary.
func NewRouter(cfg *config.Config, handler *DashboardHandler, authSvc auth.Service, logger *slog.Logger) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestIDMiddleware(),
		requestLogger(logger),
		corsMiddleware(cfg.HTTP.AllowedOrigins),
		errorHandlingMiddleware(logger),
		rateLimitMiddleware(cfg.HTTP.RateLimit, logger),
	)

	router.GET("/healthz", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	{
		api.GET("/users/:username/dashboard", handler.UserDashboard)
		api.POST("/users/:username/dashboard/export", handler.Export)
		api.POST("/users/:username/meals", handler.LogMeal)
		api.POST("/dashboard/compute", handler.Compute)
		api.GET("/reports/*key", handler.DownloadReport)
	}
	if authSvc != nil {
		me := api.Group("/me", authMiddleware(authSvc))
		me.GET("/dashboard", handler.MyDashboard)
		me.POST("/meals", handler.LogMyMeal)
		api.GET("/admin/users/:uid/dashboard", authMiddleware(authSvc), requireAdmin(), handler.AdminDashboard)
	} else {
		api.GET("/admin/users/:uid/dashboard", handler.AdminDashboard)
	}

	retryCfg := cfg.HTTP.Retry
	retryCfg.Exclude = append(append([]string(nil), retryCfg.Exclude...), mealRoutes...)

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        withRetry(router, retryCfg, logger),
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
