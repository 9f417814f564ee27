package handlers

import (
	"errors"
	"net/http"
	"strings"

	"lead-intake/internal/apperr"
	"lead-intake/internal/intake"
	"lead-intake/internal/middleware"
	"lead-intake/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SubmitInquiry handles POST /inquiries/submit.
func (h *Handler) SubmitInquiry(c *gin.Context) {
	var in intake.InquiryInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.respondError(c, apperr.Validation("invalid JSON body"))
		return
	}

	inq, err := h.pipeline.SubmitInquiry(c.Request.Context(), in, middleware.Client(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, inq)
}

// ListInquiries supports ?status and ?product.
func (h *Handler) ListInquiries(c *gin.Context) {
	p, err := h.pagination(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	q := h.db.WithContext(c.Request.Context()).Model(&models.ProductInquiry{})
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}
	if product := c.Query("product"); product != "" {
		q = q.Where("product = ?", product)
	}

	items, err := listPage[models.ProductInquiry](c, q, p)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) GetInquiry(c *gin.Context) {
	inq, err := h.findInquiry(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inq)
}

// Status and priority are free strings on inquiries.
type inquiryUpdate struct {
	Status   *string `json:"status" validate:"omitempty,max=20"`
	Priority *string `json:"priority" validate:"omitempty,max=10"`
}

func (h *Handler) UpdateInquiry(c *gin.Context) {
	var body inquiryUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		h.respondError(c, apperr.Validation("invalid JSON body"))
		return
	}
	if err := h.validate.Struct(body); err != nil {
		h.respondError(c, err)
		return
	}

	changes := map[string]any{}
	if body.Status != nil && strings.TrimSpace(*body.Status) != "" {
		changes["status"] = strings.TrimSpace(*body.Status)
	}
	if body.Priority != nil && strings.TrimSpace(*body.Priority) != "" {
		changes["priority"] = strings.TrimSpace(*body.Priority)
	}

	inq, err := h.findInquiry(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.applyChanges(c, inq, changes); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, inq)
}

// DeleteInquiry removes the row for good.
func (h *Handler) DeleteInquiry(c *gin.Context) {
	inq, err := h.findInquiry(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if err := h.db.WithContext(c.Request.Context()).Delete(inq).Error; err != nil {
		h.respondError(c, apperr.Internal("failed to delete inquiry", err))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) findInquiry(c *gin.Context) (*models.ProductInquiry, error) {
	id, err := parseID(c, "id")
	if err != nil {
		return nil, err
	}

	var inq models.ProductInquiry
	err = h.db.WithContext(c.Request.Context()).First(&inq, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Inquiry not found")
	}
	if err != nil {
		return nil, apperr.Internal("failed to load inquiry", err)
	}
	return &inq, nil
}
