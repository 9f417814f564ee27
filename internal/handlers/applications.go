package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"path"
	"strings"

	"lead-intake/internal/apperr"
	"lead-intake/internal/blobstore"
	"lead-intake/internal/intake"
	"lead-intake/internal/middleware"
	"lead-intake/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SubmitApplication handles POST /apply (multipart, resume file required).
func (h *Handler) SubmitApplication(c *gin.Context) {
	var in intake.ApplicationInput
	if err := c.ShouldBind(&in); err != nil {
		h.respondError(c, apperr.Validation("invalid form data"))
		return
	}

	var resume *intake.Upload
	if fh, err := c.FormFile("resume"); err == nil {
		u := intake.UploadFromHeader(fh)
		resume = &u
	} else if !errors.Is(err, http.ErrMissingFile) {
		h.respondError(c, apperr.Validation("invalid resume upload"))
		return
	}

	app, err := h.pipeline.SubmitApplication(c.Request.Context(), in, resume, middleware.Client(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

// ListApplications returns active applications, newest first.
func (h *Handler) ListApplications(c *gin.Context) {
	p, err := h.pagination(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.JobApplication{}).Where("is_active = ?", true)
	if dept := c.Query("department"); dept != "" {
		q = q.Where("department = ?", dept)
	}
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	apps, err := listPage[models.JobApplication](c, q, p)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// GetApplication looks an application up by application_id. Inactive
// applications are hidden unless ?include_inactive=true.
func (h *Handler) GetApplication(c *gin.Context) {
	app, err := h.findApplication(c, c.Query("include_inactive") == "true")
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

type applicationUpdate struct {
	Status     *string `json:"status"`
	Department *string `json:"department" validate:"omitempty,max=100"`
}

// UpdateApplication handles PATCH: status must be a known status; department
// is free text, empty clears it.
func (h *Handler) UpdateApplication(c *gin.Context) {
	var body applicationUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, apperr.Validation("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(body); err != nil {
		h.respondError(c, err)
		return
	}

	changes := map[string]any{}
	if body.Status != nil {
		status, ok := models.Parse(*body.Status, models.ApplicationStatuses)
		if !ok {
			h.respondError(c, apperr.Validation("invalid status %q", *body.Status))
			return
		}
		changes["status"] = status
	}
	if body.Department != nil {
		changes["department"] = nullable(*body.Department)
	}

	app, err := h.findApplication(c, true)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.applyChanges(c, app, changes); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

type ApplicationStats struct {
	Total       int64            `json:"total"`
	Pending     int64            `json:"pending"`
	Reviewed    int64            `json:"reviewed"`
	Shortlisted int64            `json:"shortlisted"`
	Hired       int64            `json:"hired"`
	Rejected    int64            `json:"rejected"`
	ByStatus    map[string]int64 `json:"by_status"`
	Departments map[string]int64 `json:"departments"`
}

// ApplicationStats aggregates active applications by status and department.
func (h *Handler) ApplicationStats(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.JobApplication{}).Where("is_active = ?", true)

	var stats ApplicationStats
	if err := q.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		h.respondError(c, apperr.Internal("failed to count applications", err))
		return
	}

	byStatus, err := countBy(q, "status")
	if err != nil {
		h.respondError(c, err)
		return
	}
	depts, err := countBy(q, "department")
	if err != nil {
		h.respondError(c, err)
		return
	}

	stats.ByStatus = make(map[string]int64, len(models.ApplicationStatuses))
	for _, s := range models.ApplicationStatuses {
		stats.ByStatus[string(s)] = byStatus[string(s)]
	}
	stats.Pending = byStatus[string(models.ApplicationPending)]
	stats.Reviewed = byStatus[string(models.ApplicationReviewed)]
	stats.Shortlisted = byStatus[string(models.ApplicationShortlisted)]
	stats.Hired = byStatus[string(models.ApplicationHired)]
	stats.Rejected = byStatus[string(models.ApplicationRejected)]
	stats.Departments = depts

	c.JSON(http.StatusOK, stats)
}

// DownloadResume streams the stored resume. Both the record and the blob
// must exist.
func (h *Handler) DownloadResume(c *gin.Context) {
	var app models.JobApplication
	err := h.db.WithContext(c.Request.Context()).
		Where("application_id = ?", c.Param("application_id")).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && app.ResumePath == "") {
		h.respondError(c, apperr.NotFound("Resume not found"))
		return
	}
	if err != nil {
		h.respondError(c, apperr.Internal("failed to load application", err))
		return
	}

	body, size, err := h.blobs.Open(c.Request.Context(), app.ResumePath)
	if errors.Is(err, blobstore.ErrNotFound) {
		h.respondError(c, apperr.NotFound("Resume file not found"))
		return
	}
	if err != nil {
		h.respondError(c, apperr.Internal("failed to open resume", err))
		return
	}
	defer body.Close()

	c.DataFromReader(http.StatusOK, size, "application/octet-stream", body, map[string]string{
		"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, path.Base(app.ResumePath)),
	})
}

// Departments lists the distinct departments of active applications.
func (h *Handler) Departments(c *gin.Context) {
	depts := []string{}
	err := h.db.WithContext(c.Request.Context()).
		Model(&models.JobApplication{}).
		Where("is_active = ? AND department IS NOT NULL AND department <> ''", true).
		Distinct().
		Order("department").
		Pluck("department", &depts).Error
	if err != nil {
		h.respondError(c, apperr.Internal("failed to list departments", err))
		return
	}
	c.JSON(http.StatusOK, depts)
}

func (h *Handler) findApplication(c *gin.Context, includeInactive bool) (*models.JobApplication, error) {
	q := h.db.WithContext(c.Request.Context()).Where("application_id = ?", c.Param("application_id"))
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}

	var app models.JobApplication
	if err := q.First(&app).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Application not found")
		}
		return nil, apperr.Internal("failed to load application", err)
	}
	return &app, nil
}

// applyChanges writes changes to rec and reloads it. An empty change set is
// a no-op.
func (h *Handler) applyChanges(c *gin.Context, rec any, changes map[string]any) error {
	if len(changes) == 0 {
		return nil
	}
	changes["updated_at"] = h.pipeline.Now()

	db := h.db.WithContext(c.Request.Context())
	if err := db.Model(rec).Updates(changes).Error; err != nil {
		return apperr.Internal("failed to update record", err)
	}
	if err := db.First(rec).Error; err != nil {
		return apperr.Internal("failed to reload record", err)
	}
	return nil
}

func nullable(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
