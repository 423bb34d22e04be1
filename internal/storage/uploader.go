// Package storage publishes database export copies to an S3-compatible bucket
package storage

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/thenoetrevino/clubhouse/internal/models"
)

// ErrNotConfigured is returned when a publish is requested without a bucket
var ErrNotConfigured = errors.New("backup storage is not configured")

// ContentType is sent with every uploaded database copy
const ContentType = "application/vnd.sqlite3"

type UploadResult struct {
	Key      string `json:"key"`
	Location string `json:"location,omitempty"`
	ETag     string `json:"etag,omitempty"`
	Size     int64  `json:"size"`
}

type Uploader interface {
	Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*UploadResult, error)

	Delete(ctx context.Context, key string) error

	GetPublicURL(key string) string
}

// ObjectKey builds a collision-free key for filename under prefix
func ObjectKey(prefix, filename string) string {
	return path.Join(prefix, uuid.NewString()+"-"+filepath.Base(filename))
}

// PublishFile uploads the file at p under prefix with u.
func PublishFile(ctx context.Context, u Uploader, prefix, p string) (*UploadResult, error) {
	if u == nil {
		return nil, ErrNotConfigured
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, &models.IOError{Op: "open export", Path: p, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &models.IOError{Op: "stat export", Path: p, Err: err}
	}

	key := ObjectKey(prefix, p)
	result, err := u.Upload(ctx, key, ContentType, f)
	if err != nil {
		slog.Error("failed to publish export", "path", p, "key", key, "error", err)
		return nil, &models.IOError{Op: "upload export", Path: p, Err: err}
	}
	result.Size = info.Size()

	slog.Info("export published", "path", p, "key", result.Key, "bytes", result.Size)
	return result, nil
}
