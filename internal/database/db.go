package database

import (
	"fmt"
	"time"

	"lead-intake/internal/logger"
	"lead-intake/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	maxAttempts  = 10
	retryBackoff = 2 * time.Second
)

// Connect opens the postgres database, retrying while the server comes up,
// and migrates the schema.
func Connect(dsn string, log *zap.Logger, logLevel string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	for i := 1; i <= maxAttempts; i++ {
		log.Info("connecting to database", zap.Int("attempt", i), zap.Int("max_attempts", maxAttempts))

		db, err = gorm.Open(postgres.Open(dsn), Options(log, logLevel))
		if err == nil {
			log.Info("connected to database")
			break
		}

		log.Warn("failed to connect to database", zap.Error(err))
		time.Sleep(retryBackoff)
	}
	if err != nil {
		return nil, fmt.Errorf("connect after %d attempts: %w", maxAttempts, err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Options is the gorm configuration shared by every dialector. Duplicate-key
// violations are translated to gorm.ErrDuplicatedKey.
func Options(log *zap.Logger, logLevel string) *gorm.Config {
	return &gorm.Config{
		Logger:         logger.NewGormLogger(log, logger.GormLevel(logLevel)),
		TranslateError: true,
	}
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.JobApplication{},
		&models.ProjectRequest{},
		&models.ProductInquiry{},
		&models.FreeTrialRequest{},
		&models.ContactInquiry{},
	)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
