// Package handlers exposes the intake pipeline and the read side over HTTP.
package handlers

import (
	"lead-intake/internal/blobstore"
	"lead-intake/internal/config"
	"lead-intake/internal/intake"
	"lead-intake/internal/validation"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxPageSize = 100

type Handler struct {
	db       *gorm.DB
	pipeline *intake.Pipeline
	blobs    blobstore.Store
	validate *validation.Validator
	cfg      *config.Config
	log      *zap.Logger
}

func New(db *gorm.DB, pipeline *intake.Pipeline, blobs blobstore.Store, cfg *config.Config, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		db:       db,
		pipeline: pipeline,
		blobs:    blobs,
		validate: validation.New(),
		cfg:      cfg,
		log:      log.Named("http"),
	}
}
