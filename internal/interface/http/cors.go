package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// corsMiddleware lets the directory frontend call the API. An empty allow list
// means any origin; otherwise unknown origins get no CORS headers at all.
func corsMiddleware(allowed []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin, ok := resolveOrigin(c.GetHeader("Origin"), allowed)
		headers := c.Writer.Header()
		if ok {
			headers.Set("Access-Control-Allow-Origin", origin)
			headers.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			headers.Set("Access-Control-Allow-Headers", "Content-Type, Authorization, "+requestIDHeader)
			headers.Set("Access-Control-Expose-Headers", requestIDHeader)
			headers.Set("Access-Control-Max-Age", "600")
			if origin != "*" {
				headers.Add("Vary", "Origin")
			}
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func resolveOrigin(requestOrigin string, allowed []string) (string, bool) {
	if len(allowed) == 0 {
		return "*", true
	}
	for _, candidate := range allowed {
		if candidate == "*" {
			return "*", true
		}
		if requestOrigin != "" && strings.EqualFold(strings.TrimRight(candidate, "/"), requestOrigin) {
			return requestOrigin, true
		}
	}
	return "", false
}
