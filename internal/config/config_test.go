package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("fails without DB_DSN", func(t *testing.T) {
		t.Setenv("DB_DSN", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "DB_DSN")
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("DB_DSN", "host=localhost dbname=leads")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.ServerPort)
		assert.Equal(t, "/api/v1", cfg.APIPrefix)
		assert.Equal(t, int64(5<<20), cfg.Uploads.MaxUploadSize)
		assert.Equal(t, []string{".pdf", ".doc", ".docx"}, cfg.Uploads.AllowedFileTypes)
		assert.Equal(t, 255, cfg.Uploads.MaxFileNameLength)
		assert.Equal(t, 3, cfg.Intake.MaxApplicationsPerDay)
		assert.Equal(t, 20, cfg.Intake.DefaultPageSize)
		assert.False(t, cfg.Intake.CleanupOrphanedUploads)
		assert.Equal(t, "local", cfg.Storage.Driver)
		assert.Contains(t, cfg.AllowedOrigins, "http://localhost:5173")
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("DB_DSN", "host=localhost dbname=leads")
		t.Setenv("MAX_APPLICATIONS_PER_DAY", "5")
		t.Setenv("ALLOWED_FILE_TYPES", ".PDF ,.txt")
		t.Setenv("ALLOWED_ORIGINS", "https://example.com")
		t.Setenv("CLEANUP_ORPHANED_UPLOADS", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 5, cfg.Intake.MaxApplicationsPerDay)
		assert.Equal(t, []string{".pdf", ".txt"}, cfg.Uploads.AllowedFileTypes)
		assert.Equal(t, []string{"https://example.com"}, cfg.AllowedOrigins)
		assert.True(t, cfg.Intake.CleanupOrphanedUploads)
	})

	t.Run("s3 driver requires a bucket", func(t *testing.T) {
		t.Setenv("DB_DSN", "host=localhost dbname=leads")
		t.Setenv("STORAGE_DRIVER", "S3")
		t.Setenv("S3_BUCKET", "")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "S3_BUCKET")
	})
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList(" a, b,,c "))
	assert.Nil(t, splitList(""))
}
