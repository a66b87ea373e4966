package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RequireJSON rejects request bodies that are not declared as JSON.
func RequireJSON() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		contentType := ctx.GetHeader("Content-Type")

		if !strings.HasPrefix(strings.ToLower(contentType), "application/json") {
			ctx.AbortWithStatusJSON(http.StatusUnsupportedMediaType, gin.H{
				"success": false,
				"error":   "Content-Type must be application/json",
			})
			return
		}

		ctx.Next()
	}
}
