package middleware

import (
	"lead-intake/internal/intake"

	"github.com/gin-gonic/gin"
)

const clientMetaKey = "client_meta"

// InjectClient records who sent the request: client IP (as resolved by gin's
// trusted proxy settings) and user agent.
func InjectClient() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(clientMetaKey, intake.RequestMeta{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		})
		c.Next()
	}
}

// Client returns the metadata set by InjectClient, computing it on the fly
// when the middleware did not run.
func Client(c *gin.Context) intake.RequestMeta {
	if v, ok := c.Get(clientMetaKey); ok {
		if meta, ok := v.(intake.RequestMeta); ok {
			return meta
		}
	}
	return intake.RequestMeta{IP: c.ClientIP(), UserAgent: c.Request.UserAgent()}
}
