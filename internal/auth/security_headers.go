package auth

import "github.com/gin-gonic/gin"

// SecurityHeadersMiddleware sets baseline security headers on every
// response, including the unauthenticated share view.
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		// Shared views must not be indexed
		h.Set("X-Robots-Tag", "noindex")
		c.Next()
	}
}
