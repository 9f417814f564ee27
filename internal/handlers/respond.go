package handlers

import (
	"fmt"
	"strconv"

	"lead-intake/internal/apperr"
	"lead-intake/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// respondError writes the error body {"detail","code","request_id"}. Server
// side failures are logged with their cause and reported generically.
func (h *Handler) respondError(c *gin.Context, err error) {
	kind := apperr.KindOf(err)
	detail := apperr.PublicMessage(err)

	if kind.Status() >= 500 {
		logger.FromContext(c.Request.Context(), h.log).Error("request failed",
			zap.String("code", kind.String()), zap.Error(err))
		detail = "Internal server error"
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(kind.Status(), gin.H{
		"detail":     detail,
		"code":       kind.String(),
		"request_id": c.GetString("request_id"),
	})
}

type page struct {
	skip  int
	limit int
}

// pagination reads ?skip&limit. limit defaults to DEFAULT_PAGE_SIZE and is
// capped at maxPageSize.
func (h *Handler) pagination(c *gin.Context) (page, error) {
	p := page{limit: h.cfg.Intake.DefaultPageSize}

	if raw := c.Query("skip"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return page{}, apperr.Validation("skip must be a non-negative integer")
		}
		p.skip = n
	}
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return page{}, apperr.Validation("limit must be a positive integer")
		}
		p.limit = n
	}
	if p.limit > maxPageSize {
		p.limit = maxPageSize
	}
	return p, nil
}

// listPage runs q twice: once for X-Total-Count and once for the requested
// page, newest first.
func listPage[T any](c *gin.Context, q *gorm.DB, p page) ([]T, error) {
	q = q.Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Internal("failed to count records", err)
	}

	items := make([]T, 0, p.limit)
	if err := q.Order("created_at DESC, id DESC").Offset(p.skip).Limit(p.limit).Find(&items).Error; err != nil {
		return nil, apperr.Internal("failed to list records", err)
	}

	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	return items, nil
}

// parseID reads a numeric surrogate key from the path.
func parseID(c *gin.Context, name string) (uint, error) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		return 0, apperr.Validation("%s must be a positive integer", name)
	}
	return uint(n), nil
}

type bucket struct {
	Label string
	Total int64
}

// countBy groups the rows of q by column. NULL and empty labels are dropped.
func countBy(q *gorm.DB, column string) (map[string]int64, error) {
	var rows []bucket
	err := q.Session(&gorm.Session{}).
		Select(fmt.Sprintf("%s AS label, COUNT(*) AS total", column)).
		Where(fmt.Sprintf("%s IS NOT NULL AND %s <> ''", column, column)).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Internal("failed to aggregate by "+column, err)
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Label] = r.Total
	}
	return out, nil
}
