package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/studio-site/internal/models"
	"go.uber.org/zap"
)

type SystemHandler struct {
	storage StorageStatus
	queue   DerivativeQueue
	logger  *zap.Logger
}

func NewSystemHandler(storage StorageStatus, queue DerivativeQueue, logger *zap.Logger) *SystemHandler {
	return &SystemHandler{
		storage: storage,
		queue:   queue,
		logger:  logger,
	}
}

func (h *SystemHandler) HealthCheck(c *gin.Context) {
	services := h.storage.HealthCheck(c.Request.Context())
	if h.queue != nil {
		services["rabbitmq"] = h.queue.HealthCheck()
	} else {
		services["rabbitmq"] = notConfigured
	}

	overall := calculateOverallHealth(services)

	statusCode := http.StatusOK
	if overall == unhealthy {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, models.APIResponse{
		Success: overall == healthy,
		Data: models.HealthCheck{
			Status:    overall,
			Timestamp: time.Now(),
			Services:  services,
		},
	})
}

func (h *SystemHandler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now(),
	}

	cacheStats, err := h.storage.GetCacheStats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get cache stats", zap.Error(err))
	} else {
		stats["cache"] = cacheStats
	}

	if h.queue != nil {
		queueStats, err := h.queue.GetQueueStats()
		if err != nil {
			h.logger.Error("Failed to get queue stats", zap.Error(err))
		} else {
			stats["queue"] = queueStats
		}
	}

	respondData(c, http.StatusOK, stats)
}
