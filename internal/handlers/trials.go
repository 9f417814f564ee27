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

// SubmitTrial handles POST /trial.
func (h *Handler) SubmitTrial(c *gin.Context) {
	var in intake.TrialInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondError(c, apperr.Validation("invalid JSON body"))
		return
	}

	trial, err := h.pipeline.SubmitTrial(c.Request.Context(), in, middleware.Client(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trial)
}

func (h *Handler) ListTrials(c *gin.Context) {
	p, err := h.pagination(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.FreeTrialRequest{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	items, err := listPage[models.FreeTrialRequest](c, q, p)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetTrial(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var trial models.FreeTrialRequest
	err = h.db.WithContext(c.Request.Context()).First(&trial, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		h.respondError(c, apperr.NotFound("Trial request not found"))
		return
	}
	if err != nil {
		h.respondError(c, apperr.Internal("failed to load trial request", err))
		return
	}
	c.JSON(http.StatusOK, trial)
}
