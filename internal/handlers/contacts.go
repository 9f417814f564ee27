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

// SubmitContact handles POST /contact.
func (h *Handler) SubmitContact(c *gin.Context) {
	var in intake.ContactInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondError(c, apperr.Validation("invalid JSON body"))
		return
	}

	msg, err := h.pipeline.SubmitContact(c.Request.Context(), in, middleware.Client(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

// ListContacts supports ?subject.
func (h *Handler) ListContacts(c *gin.Context) {
	p, err := h.pagination(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.ContactInquiry{})
	if subject := c.Query("subject"); subject != "" {
		q = q.Where("subject = ?", subject)
	}

	items, err := listPage[models.ContactInquiry](c, q, p)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetContact(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.respondError(c, err)
		return
	}

	var msg models.ContactInquiry
	err = h.db.WithContext(c.Request.Context()).First(&msg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		h.respondError(c, apperr.NotFound("Contact message not found"))
		return
	}
	if err != nil {
		h.respondError(c, apperr.Internal("failed to load contact message", err))
		return
	}
	c.JSON(http.StatusOK, msg)
}
