// Package intake runs the submission pipeline shared by every lead form:
// validate, rate-limit, persist files, generate an identifier, insert.
// Each step short-circuits the rest on failure.
package intake

import (
	"context"
	"errors"
	"strings"
	"time"

	"lead-intake/internal/apperr"
	"lead-intake/internal/blobstore"
	"lead-intake/internal/config"
	"lead-intake/internal/idgen"
	"lead-intake/internal/logger"
	"lead-intake/internal/ratelimit"
	"lead-intake/internal/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Settings is the slice of configuration the pipeline reads.
type Settings struct {
	MaxApplicationsPerDay  int
	MaxUploadSize          int64
	AllowedFileTypes       []string
	MaxFileNameLength      int
	CleanupOrphanedUploads bool
}

func SettingsFrom(cfg *config.Config) Settings {
	return Settings{
		MaxApplicationsPerDay:  cfg.Intake.MaxApplicationsPerDay,
		MaxUploadSize:          cfg.Uploads.MaxUploadSize,
		AllowedFileTypes:       cfg.Uploads.AllowedFileTypes,
		MaxFileNameLength:      cfg.Uploads.MaxFileNameLength,
		CleanupOrphanedUploads: cfg.Intake.CleanupOrphanedUploads,
	}
}

// RequestMeta is the request-derived audit data stored with each record.
type RequestMeta struct {
	IP        string
	UserAgent string
}

type Pipeline struct {
	db       *gorm.DB
	blobs    blobstore.Store
	ids      *idgen.Generator
	validate *validation.Validator
	limiter  *ratelimit.Limiter
	settings Settings
	log      *zap.Logger
	now      func() time.Time
}

type Option func(*Pipeline)

// WithClock replaces time.Now for timestamps, identifiers and rate windows.
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) { p.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

func WithIDGenerator(g *idgen.Generator) Option {
	return func(p *Pipeline) { p.ids = g }
}

func New(db *gorm.DB, blobs blobstore.Store, settings Settings, opts ...Option) *Pipeline {
	p := &Pipeline{
		db:       db,
		blobs:    blobs,
		validate: validation.New(),
		settings: settings,
		log:      zap.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.ids == nil {
		p.ids = idgen.New(p.now)
	}
	p.limiter = ratelimit.New(db, p.now)
	p.log = p.log.Named("intake")
	return p
}

// Now is the pipeline clock.
func (p *Pipeline) Now() time.Time { return p.now() }

func (p *Pipeline) logger(ctx context.Context) *zap.Logger {
	return logger.FromContext(ctx, p.log)
}

// insert writes rec in its own transaction. A unique violation can only come
// from a generated identifier colliding and is reported as a conflict.
func (p *Pipeline) insert(ctx context.Context, rec any, what string) error {
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(rec).Error
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperr.Conflict("identifier collision while saving "+what, err)
	default:
		return apperr.Internal("failed to save "+what, err)
	}
}

// abandon handles blobs written for a submission that then failed. They are
// left in place and logged unless cleanup is enabled.
func (p *Pipeline) abandon(ctx context.Context, paths []string, cause error) {
	if len(paths) == 0 {
		return
	}
	log := p.logger(ctx)

	if !p.settings.CleanupOrphanedUploads {
		log.Warn("uploads orphaned by failed submission", zap.Strings("paths", paths), zap.Error(cause))
		return
	}

	ctx = context.WithoutCancel(ctx)
	for _, path := range paths {
		if err := p.blobs.Delete(ctx, path); err != nil {
			log.Error("failed to remove orphaned upload", zap.String("path", path), zap.Error(err))
			continue
		}
		log.Info("removed orphaned upload", zap.String("path", path))
	}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
