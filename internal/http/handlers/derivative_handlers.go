package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/studio-site/internal/models"
	"github.com/phambaophuc/studio-site/internal/services/storage"
	"go.uber.org/zap"
)

type DerivativeHandler struct {
	queue  DerivativeQueue
	jobs   JobStore
	logger *zap.Logger
}

// NewDerivativeHandler builds the handler. queue may be nil when RabbitMQ is
// unavailable; submissions then answer 503.
func NewDerivativeHandler(queue DerivativeQueue, jobs JobStore, logger *zap.Logger) *DerivativeHandler {
	return &DerivativeHandler{
		queue:  queue,
		jobs:   jobs,
		logger: logger,
	}
}

func (h *DerivativeHandler) Create(c *gin.Context) {
	if h.queue == nil {
		respondError(c, http.StatusServiceUnavailable, "Derivative queue is not available")
		return
	}

	var req models.DerivativeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	job, err := h.queue.Submit(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Failed to submit derivative job", zap.String("image_url", req.ImageURL), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to queue job")
		return
	}

	c.Header("Location", "/api/v1/derivatives/"+job.ID)
	respondData(c, http.StatusAccepted, job)
}

func (h *DerivativeHandler) Get(c *gin.Context) {
	id := c.Param("id")

	job, err := h.jobs.GetJob(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrJobNotFound) {
			respondError(c, http.StatusNotFound, "Job not found")
			return
		}
		h.logger.Error("Failed to load job", zap.String("job_id", id), zap.Error(err))
		respondError(c, http.StatusInternalServerError, "Failed to load job")
		return
	}

	respondData(c, http.StatusOK, job)
}
