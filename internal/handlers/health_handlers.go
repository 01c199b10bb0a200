package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"saasnotes/internal/caching"
	"saasnotes/internal/repositories"
)

// HealthHandlers exposes liveness and readiness probes.
type HealthHandlers struct {
	db       repositories.Database
	cacheSvc caching.CacheService
}

func NewHealthHandlers(db repositories.Database, cacheSvc caching.CacheService) *HealthHandlers {
	return &HealthHandlers{db: db, cacheSvc: cacheSvc}
}

// HealthCheck handles GET /health
func (h *HealthHandlers) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// ReadinessStatus reports per-dependency readiness.
type ReadinessStatus struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// ReadinessCheck handles GET /health/ready and verifies the store and cache
// are reachable.
func (h *HealthHandlers) ReadinessCheck(c echo.Context) error {
	ctx := c.Request().Context()

	status := &ReadinessStatus{
		Status:    "ready",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services:  make(map[string]string),
	}

	if err := h.db.QueryRow(ctx, "SELECT 1").Scan(new(int)); err != nil {
		status.Services["database"] = "unhealthy"
		status.Status = "degraded"
	} else {
		status.Services["database"] = "healthy"
	}

	if err := h.cacheSvc.Ping(ctx); err != nil {
		status.Services["redis"] = "unhealthy"
		status.Status = "degraded"
	} else {
		status.Services["redis"] = "healthy"
	}

	code := http.StatusOK
	if status.Status != "ready" {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, status)
}
