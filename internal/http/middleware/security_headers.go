package middleware

import "github.com/gin-gonic/gin"

// SecurityHeaders adds security headers
func SecurityHeaders() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		ctx.Header("X-Frame-Options", "DENY")
		ctx.Header("X-Content-Type-Options", "nosniff")
		ctx.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		ctx.Header("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		ctx.Header("Content-Security-Policy",
			"default-src 'self'; img-src 'self' https://res.cloudinary.com https:; style-src 'self'; style-src-attr 'unsafe-inline'; script-src 'self'")
		ctx.Next()
	}
}
