package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Index is the service banner at "/".
func (h *Handler) Index(c *gin.Context) {
	prefix := h.cfg.APIPrefix
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to " + h.cfg.AppName,
		"version": h.cfg.AppVersion,
		"endpoints": gin.H{
			"health":             prefix + "/health",
			"submit_application": "POST " + prefix + "/apply",
			"submit_project":     "POST " + prefix + "/projects/submit",
			"submit_inquiry":     "POST " + prefix + "/inquiries/submit",
			"request_trial":      "POST " + prefix + "/trial",
			"contact":            "POST " + prefix + "/contact",
			"stats":              prefix + "/applications/stats",
			"get_job_openings":   "GET " + prefix + "/jobs/openings",
		},
	})
}

// Health reports liveness and whether the database answers a ping.
func (h *Handler) Health(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	if err := h.ping(c); err != nil {
		status, code = "degraded", http.StatusServiceUnavailable
	}
	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   h.cfg.AppName,
		"version":   h.cfg.AppVersion,
	})
}

// APIHealth lists the submission endpoints.
func (h *Handler) APIHealth(c *gin.Context) {
	prefix := h.cfg.APIPrefix
	endpoint := func(method, path string) gin.H {
		return gin.H{"path": prefix + path, "method": method, "status": "active"}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   h.cfg.AppName,
		"endpoints": []gin.H{
			endpoint(http.MethodPost, "/apply"),
			endpoint(http.MethodPost, "/projects/submit"),
			endpoint(http.MethodPost, "/inquiries/submit"),
			endpoint(http.MethodPost, "/trial"),
			endpoint(http.MethodPost, "/contact"),
			endpoint(http.MethodGet, "/jobs/openings"),
			endpoint(http.MethodGet, "/applications/stats"),
		},
	})
}

func (h *Handler) ping(c *gin.Context) error {
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(c.Request.Context())
}
