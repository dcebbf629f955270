package handlers

import (
	"context"
	"net/http"
	"time"

	"dua-reminders/internal/scheduler"
	"dua-reminders/internal/storage"
	"dua-reminders/pkg/logger"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 3 * time.Second

type HealthHandler struct {
	store     storage.KeyValueStore
	scheduler scheduler.Scheduler
	logger    *logger.Logger
	now       func() time.Time
}

// NewHealthHandler creates a health handler. sched may be nil when the dispatcher is disabled.
func NewHealthHandler(store storage.KeyValueStore, sched scheduler.Scheduler, logger *logger.Logger) *HealthHandler {
	return &HealthHandler{
		store:     store,
		scheduler: sched,
		logger:    logger,
		now:       time.Now,
	}
}

func (h *HealthHandler) Check(c *gin.Context) {
	status := "ok"
	statusCode := http.StatusOK

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	storageStatus := "ok"
	if err := h.store.Ping(ctx); err != nil {
		h.logger.Errorw("Storage health check failed", "error", err)
		status = "error"
		storageStatus = "error"
		statusCode = http.StatusServiceUnavailable
	}

	response := gin.H{
		"status":    status,
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"service":   "dua-reminders",
		"storage":   storageStatus,
	}

	if h.scheduler != nil {
		health := h.scheduler.GetMetrics().GetHealthStatus()
		response["scheduler"] = gin.H{
			"running": h.scheduler.IsRunning(),
			"health":  health,
		}
		if !health.IsHealthy && status == "ok" {
			status = "degraded"
			response["status"] = status
		}
	}

	c.JSON(statusCode, response)
}
