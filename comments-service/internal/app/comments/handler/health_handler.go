package handler

import (
	"context"
	"net/http"
	"time"

	"commentwidget/comments-service/internal/app/comments/entity"

	"github.com/gin-gonic/gin"
)

// Pinger - зависимость, доступность которой проверяет readiness
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger // nil - Redis не настроен
}

func NewHealthHandler(db Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Liveness - GET /api/health, хранилище не трогает
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, entity.HealthResponse{
		Status:    "OK",
		Timestamp: time.Now(),
	})
}

// Readiness - GET /api/health/ready
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string)
	overallStatus := "OK"

	if err := h.db.Ping(ctx); err != nil {
		checks["database"] = "unhealthy"
		overallStatus = "UNAVAILABLE"
	} else {
		checks["database"] = "healthy"
	}

	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			checks["redis"] = "unhealthy"
			overallStatus = "UNAVAILABLE"
		} else {
			checks["redis"] = "healthy"
		}
	}

	status := http.StatusOK
	if overallStatus != "OK" {
		status = http.StatusServiceUnavailable
	}

	c.JSON(status, entity.ReadinessResponse{
		Status:    overallStatus,
		Checks:    checks,
		Timestamp: time.Now(),
	})
}
