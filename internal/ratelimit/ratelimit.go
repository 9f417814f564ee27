// Package ratelimit guards the submission endpoints with count queries
// against the record tables. Checks are advisory: they read before the
// insert without locking, so two simultaneous requests can both pass.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"lead-intake/internal/apperr"

	"gorm.io/gorm"
)

// Identity selects the rows that belong to one requester, column -> value.
// Applied as equality conditions, e.g. {"email": e, "product": p}.
type Identity map[string]any

// Policy describes one guard. Window zero means "since local midnight"
// (a calendar-day count); a positive window is a rolling lookback from now.
type Policy struct {
	Model   any
	Limit   int
	Window  time.Duration
	Message string
}

// DailyCount allows limit rows per identity per calendar day.
func DailyCount(model any, limit int, message string) Policy {
	return Policy{Model: model, Limit: limit, Message: message}
}

// Rolling allows limit rows per identity within the trailing window.
func Rolling(model any, window time.Duration, limit int, message string) Policy {
	return Policy{Model: model, Limit: limit, Window: window, Message: message}
}

type Limiter struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB, now func() time.Time) *Limiter {
	if now == nil {
		now = time.Now
	}
	return &Limiter{db: db, now: now}
}

// Since is the lower created_at bound the policy counts from.
func (l *Limiter) Since(p Policy) time.Time {
	now := l.now()
	if p.Window > 0 {
		return now.Add(-p.Window)
	}
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

// Count returns how many rows for id fall inside the policy's window.
func (l *Limiter) Count(ctx context.Context, p Policy, id Identity) (int64, error) {
	q := l.db.WithContext(ctx).Model(p.Model).Where("created_at >= ?", l.Since(p))
	for col, val := range id {
		q = q.Where(fmt.Sprintf("%s = ?", col), val)
	}

	var n int64
	if err := q.Count(&n).Error; err != nil {
		return 0, apperr.Internal("rate limit check failed", err)
	}
	return n, nil
}

// Check returns a RateLimited error when id has already reached the limit.
func (l *Limiter) Check(ctx context.Context, p Policy, id Identity) error {
	n, err := l.Count(ctx, p, id)
	if err != nil {
		return err
	}
	if n >= int64(p.Limit) {
		return apperr.RateLimited("%s", p.Message)
	}
	return nil
}
