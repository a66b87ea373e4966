package middleware

import "github.com/gin-gonic/gin"

// CacheControl sets a default Cache-Control header before the handler runs.
// Handlers override it on responses that must not be cached.
func CacheControl(value string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("Cache-Control", value)
		ctx.Next()
	}
}
