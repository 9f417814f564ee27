// Package blobstore keeps uploaded resumes and project documents. Objects are
// addressed by a relative path "<subdir>/<name>" which is what records store.
package blobstore

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"lead-intake/internal/config"

	"go.uber.org/zap"
	"golang.org/x/crypto/blake2b"
)

const (
	DirResumes     = "resumes"
	DirProjectDocs = "project_docs"
)

var (
	ErrNotFound    = errors.New("blob not found")
	ErrInvalidPath = errors.New("invalid blob path")
)

// Object is what Save reports about a stored blob.
type Object struct {
	Path     string
	Size     int64
	Checksum string
}

type Store interface {
	Save(ctx context.Context, subdir, name string, data []byte) (Object, error)
	// Open returns the blob body and its size. Missing blobs yield ErrNotFound.
	Open(ctx context.Context, p string) (io.ReadCloser, int64, error)
	// Delete is idempotent.
	Delete(ctx context.Context, p string) error
}

// New picks the backend named by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig, uploadDir string, log *zap.Logger) (Store, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocal(uploadDir)
	case "s3":
		return NewS3(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// Checksum is the hex blake2b-256 digest of data.
func Checksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// objectKey validates subdir and name and joins them. Both must be single
// flat path elements.
func objectKey(subdir, name string) (string, error) {
	for _, part := range []string{subdir, name} {
		if part == "" || part == "." || part == ".." || strings.ContainsAny(part, `/\`) {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, part)
		}
	}
	return path.Join(subdir, name), nil
}

// cleanKey normalizes a stored relative path. Absolute paths and ".."
// segments are rejected.
func cleanKey(p string) (string, error) {
	p = strings.ReplaceAll(p, `\`, "/")
	if p == "" || strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%w: %q", ErrInvalidPath, p)
		}
	}
	return path.Clean(p), nil
}
