package handlers

import (
	"errors"
	"net/http"

	"lead-intake/internal/apperr"
	"lead-intake/internal/intake"
	"lead-intake/internal/middleware"
	"lead-intake/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

//
// PROJECT REQUESTS
//

// SubmitProject handles POST /projects/submit. Attachments come in as zero
// or more "files" parts.
func (h *Handler) SubmitProject(c *gin.Context) {
	var in intake.ProjectInput
	if err := c.ShouldBind(&in); err != nil {
		h.respondError(c, apperr.Validation("invalid form data"))
		return
	}

	var files []intake.Upload
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, fh := range form.File["files"] {
			files = append(files, intake.UploadFromHeader(fh))
		}
	}

	req, err := h.pipeline.SubmitProject(c.Request.Context(), in, files, middleware.Client(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

// ListProjects supports ?status.
func (h *Handler) ListProjects(c *gin.Context) {
	p, err := h.pagination(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.ProjectRequest{}).Where("is_active = ?", true)
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	projects, err := listPage[models.ProjectRequest](c, q, p)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.findProject(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

//
// STATUS / NOTES
//

// UpdateProject takes form fields status and notes. A status field, when
// sent, must be a known project status; an empty notes field clears the notes.
func (h *Handler) UpdateProject(c *gin.Context) {
	changes := map[string]any{}

	if raw, ok := c.GetPostForm("status"); ok {
		status, ok := models.Parse(raw, models.ProjectStatuses)
		if !ok {
			h.respondError(c, apperr.Validation("invalid status %q", raw))
			return
		}
		changes["status"] = status
	}
	if notes, ok := c.GetPostForm("notes"); ok {
		changes["notes"] = nullable(notes)
	}

	project, err := h.findProject(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.applyChanges(c, project, changes); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

func (h *Handler) findProject(c *gin.Context) (*models.ProjectRequest, error) {
	var project models.ProjectRequest
	err := h.db.WithContext(c.Request.Context()).
		Where("project_id = ? AND is_active = ?", c.Param("project_id"), true).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Project not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load project", err)
	}
	return &project, nil
}
