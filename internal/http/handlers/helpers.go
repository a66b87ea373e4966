package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/phambaophuc/studio-site/internal/models"
)

const (
	healthy       = "healthy"
	unhealthy     = "unhealthy"
	notConfigured = "not configured"
)

func respondError(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, models.APIResponse{
		Success: false,
		Error:   message,
	})
}

func respondData(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, models.APIResponse{
		Success: true,
		Data:    data,
	})
}

func calculateOverallHealth(services map[string]string) string {
	for _, status := range services {
		if status != healthy && status != notConfigured {
			return unhealthy
		}
	}
	return healthy
}
