package blobstore

import (
	"context"
	"testing"

	"lead-intake/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewS3Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("missing bucket", func(t *testing.T) {
		_, err := NewS3(ctx, config.StorageConfig{Driver: "s3"}, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket is required")
	})

	t.Run("half a key pair", func(t *testing.T) {
		_, err := NewS3(ctx, config.StorageConfig{Driver: "s3", S3Bucket: "leads", S3AccessKey: "k"}, zap.NewNop())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "set together")
	})

	t.Run("static credentials and custom endpoint", func(t *testing.T) {
		store, err := NewS3(ctx, config.StorageConfig{
			Driver:      "s3",
			S3Bucket:    "leads",
			S3Endpoint:  "localhost:9000",
			S3AccessKey: "k",
			S3SecretKey: "s",
			S3PathStyle: true,
		}, nil)
		require.NoError(t, err)
		assert.Equal(t, "leads", store.Bucket())
	})
}

func TestNewPicksBackend(t *testing.T) {
	ctx := context.Background()

	store, err := New(ctx, config.StorageConfig{Driver: "local"}, t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &Local{}, store)

	_, err = New(ctx, config.StorageConfig{Driver: "ftp"}, t.TempDir(), zap.NewNop())
	assert.Error(t, err)
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "https://minio:9000", endpointURL("minio:9000"))
	assert.Equal(t, "http://minio:9000", endpointURL("http://minio:9000"))
}
