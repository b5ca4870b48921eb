package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/dietdash/internal/domain/dashboard"
)

const reportRoute = "/api/v1/reports"

// DashboardHandler exposes dashboard endpoints.
type DashboardHandler struct {
	svc    dashboard.Service
	logger *slog.Logger
}

// NewDashboardHandler constructs a DashboardHandler.
func NewDashboardHandler(svc dashboard.Service, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{svc: svc, logger: logger.With("component", "http.dashboard")}
}

type exportView struct {
	dashboard.ExportResponse
	DownloadURL string `json:"downloadUrl"`
}

// Health reports liveness.
func (h *DashboardHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// UserDashboard handles GET /api/v1/users/:username/dashboard.
func (h *DashboardHandler) UserDashboard(c *gin.Context) {
	h.build(c, dashboard.Request{Username: c.Param("username"), Date: c.Query("date")})
}

// AdminDashboard handles GET /api/v1/admin/users/:uid/dashboard.
func (h *DashboardHandler) AdminDashboard(c *gin.Context) {
	uid, err := strconv.ParseInt(c.Param("uid"), 10, 64)
	if err != nil || uid <= 0 {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "uid must be a positive integer", err))
		return
	}
	h.build(c, dashboard.Request{UserID: uid, Date: c.Query("date")})
}

// MyDashboard handles GET /api/v1/me/dashboard using the verified token claims.
func (h *DashboardHandler) MyDashboard(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}
	h.build(c, dashboard.Request{Username: claims.Username, UserID: claims.UserID, Date: c.Query("date")})
}

func (h *DashboardHandler) build(c *gin.Context, req dashboard.Request) {
	resp, err := h.svc.Build(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Compute handles POST /api/v1/dashboard/compute.
func (h *DashboardHandler) Compute(c *gin.Context) {
	var req dashboard.ComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid JSON payload", err))
		return
	}
	resp, err := h.svc.Compute(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export handles POST /api/v1/users/:username/dashboard/export.
func (h *DashboardHandler) Export(c *gin.Context) {
	resp, err := h.svc.Export(c.Request.Context(), dashboard.Request{Username: c.Param("username"), Date: c.Query("date")})
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusCreated, exportView{
		ExportResponse: resp,
		DownloadURL:    reportRoute + "/" + strings.TrimPrefix(resp.Report.Key, "reports/"),
	})
}

// LogMeal handles POST /api/v1/users/:username/meals.
func (h *DashboardHandler) LogMeal(c *gin.Context) {
	h.logMeal(c, c.Param("username"), 0)
}

// LogMyMeal handles POST /api/v1/me/meals using the verified token claims.
func (h *DashboardHandler) LogMyMeal(c *gin.Context) {
	claims, ok := getClaims(c)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusUnauthorized, "unauthorized", "missing credentials", nil))
		return
	}
	h.logMeal(c, claims.Username, claims.UserID)
}

func (h *DashboardHandler) logMeal(c *gin.Context, username string, userID int64) {
	var req dashboard.LogMealRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid JSON payload", err))
		return
	}
	req.Username = username
	req.UserID = userID
	entry, err := h.svc.LogMeal(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusCreated, entry)
}

// DownloadReport handles GET /api/v1/reports/*key.
func (h *DashboardHandler) DownloadReport(c *gin.Context) {
	key := "reports" + c.Param("key")
	rc, err := h.svc.OpenReport(c.Request.Context(), key)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	defer rc.Close()
	c.DataFromReader(http.StatusOK, -1, "text/csv", rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", path.Base(key)),
	})
}
