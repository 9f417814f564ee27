package server

import (
	"net/http"

	"lead-intake/internal/config"
	"lead-intake/internal/handlers"
	"lead-intake/internal/logger"
	"lead-intake/internal/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func NewRouter(cfg *config.Config, h *handlers.Handler, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.MaxMultipartMemory = cfg.Uploads.MaxUploadSize

	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(log))
	r.Use(logger.Recovery(log))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.AllowedOrigins)))
	r.Use(middleware.BodyLimit(cfg.MaxRequestBody))
	r.Use(middleware.InjectClient())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"detail":     "Not found",
			"code":       "NOT_FOUND",
			"request_id": c.GetString("request_id"),
		})
	})

	// SERVICE
	r.GET("/", h.Index)
	r.HEAD("/", h.Index)
	r.GET("/health", h.Health)
	r.HEAD("/health", h.Health)

	api := r.Group(cfg.APIPrefix)
	api.GET("/health", h.APIHealth)
	api.HEAD("/health", h.APIHealth)

	// JOB APPLICATIONS
	api.POST("/apply", h.SubmitApplication)
	api.GET("/applications", h.ListApplications)
	api.GET("/applications/stats", h.ApplicationStats)
	api.GET("/applications/:application_id", h.GetApplication)
	api.PATCH("/applications/:application_id", h.UpdateApplication)
	api.GET("/download/resume/:application_id", h.DownloadResume)
	api.GET("/departments", h.Departments)
	api.GET("/jobs/openings", h.JobOpenings)

	// PROJECT REQUESTS
	api.POST("/projects/submit", h.SubmitProject)
	api.GET("/projects", h.ListProjects)
	api.GET("/projects/:project_id", h.GetProject)
	api.PATCH("/projects/:project_id", h.UpdateProject)

	// PRODUCT INQUIRIES
	api.POST("/inquiries/submit", h.SubmitInquiry)
	api.GET("/inquiries", h.ListInquiries)
	api.GET("/inquiries/:id", h.GetInquiry)
	api.PATCH("/inquiries/:id", h.UpdateInquiry)
	api.DELETE("/inquiries/:id", h.DeleteInquiry)

	// FREE TRIALS
	api.POST("/trial", h.SubmitTrial)
	api.GET("/trials", h.ListTrials)
	api.GET("/trials/:id", h.GetTrial)

	// CONTACT
	api.POST("/contact", h.SubmitContact)
	api.GET("/contacts", h.ListContacts)
	api.GET("/contacts/:id", h.GetContact)

	// STATS
	api.GET("/stats/inquiries", h.InquiryStats)
	api.GET("/stats/trials", h.TrialStats)
	api.GET("/stats/overview", h.Overview)

	return r
}
