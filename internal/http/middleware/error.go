package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorHandler handles panics and errors
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(ctx *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", ctx.Request.URL.Path),
			zap.String("method", ctx.Request.Method),
		)

		if strings.HasPrefix(ctx.Request.URL.Path, "/api/") {
			ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "Internal server error",
			})
			return
		}

		ctx.Data(http.StatusInternalServerError, "text/html; charset=utf-8",
			[]byte("<!DOCTYPE html><title>Something went wrong</title><h1>Something went wrong</h1>"))
		ctx.Abort()
	})
}
