package handlers

import (
	"net/http"
	"time"

	"lead-intake/internal/apperr"
	"lead-intake/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Stats are recomputed on every call.

type InquiryStats struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByProduct  map[string]int64 `json:"by_product"`
	ByPriority map[string]int64 `json:"by_priority"`
}

func (h *Handler) InquiryStats(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.ProductInquiry{})

	var (
		stats InquiryStats
		err   error
	)
	if err = q.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		h.respondError(c, apperr.Internal("failed to count inquiries", err))
		return
	}
	if stats.ByStatus, err = countBy(q, "status"); err != nil {
		h.respondError(c, err)
		return
	}
	if stats.ByProduct, err = countBy(q, "product"); err != nil {
		h.respondError(c, err)
		return
	}
	if stats.ByPriority, err = countBy(q, "priority"); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type TrialStats struct {
	Total       int64            `json:"total"`
	ByStatus    map[string]int64 `json:"by_status"`
	ByEmployees map[string]int64 `json:"by_employees"`
}

func (h *Handler) TrialStats(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).Model(&models.FreeTrialRequest{})

	var (
		stats TrialStats
		err   error
	)
	if err = q.Session(&gorm.Session{}).Count(&stats.Total).Error; err != nil {
		h.respondError(c, apperr.Internal("failed to count trial requests", err))
		return
	}
	if stats.ByStatus, err = countBy(q, "status"); err != nil {
		h.respondError(c, err)
		return
	}
	if stats.ByEmployees, err = countBy(q, "employees"); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

type KindTotals struct {
	Total   int64 `json:"total"`
	Last24h int64 `json:"last_24h"`
}

// Overview counts every submission kind, overall and over the last 24h.
// Job applications count active rows only.
func (h *Handler) Overview(c *gin.Context) {
	since := h.pipeline.Now().Add(-24 * time.Hour)
	db := h.db.WithContext(c.Request.Context())

	kinds := []struct {
		name string
		q    *gorm.DB
	}{
		{"applications", db.Model(&models.JobApplication{}).Where("is_active = ?", true)},
		{"projects", db.Model(&models.ProjectRequest{}).Where("is_active = ?", true)},
		{"inquiries", db.Model(&models.ProductInquiry{})},
		{"trials", db.Model(&models.FreeTrialRequest{})},
		{"contacts", db.Model(&models.ContactInquiry{})},
	}

	out := make(map[string]KindTotals, len(kinds))
	for _, k := range kinds {
		q := k.q.Session(&gorm.Session{})

		var t KindTotals
		if err := q.Count(&t.Total).Error; err != nil {
			h.respondError(c, apperr.Internal("failed to count "+k.name, err))
			return
		}
		if err := q.Where("created_at >= ?", since).Count(&t.Last24h).Error; err != nil {
			h.respondError(c, apperr.Internal("failed to count "+k.name, err))
			return
		}
		out[k.name] = t
	}
	c.JSON(http.StatusOK, out)
}
