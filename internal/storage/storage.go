// Package storage keeps uploaded outfit photos referenced by consultations.
package storage

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"mishura/internal/config"

	"github.com/google/uuid"
)

const (
	BackendNone  = "none"
	BackendLocal = "local"
	BackendS3    = "s3"
)

// Store saves an object and returns the reference recorded in the database.
type Store interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// New returns the configured store, or nil when image storage is disabled.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch strings.ToLower(cfg.StorageBackend) {
	case "", BackendNone:
		return nil, nil
	case BackendLocal:
		return NewLocalStore(cfg.StorageDir)
	case BackendS3:
		return NewS3StoreFromConfig(ctx, cfg)
	default:
		return nil, fmt.Errorf("unsupported STORAGE_BACKEND %q", cfg.StorageBackend)
	}
}

// ObjectKey builds a unique date-partitioned key such as
// "outfits/2025/01/02/<uuid>.jpg".
func ObjectKey(now time.Time, contentType string) string {
	return path.Join("outfits", now.UTC().Format("2006/01/02"), uuid.NewString()+extension(contentType))
}

func extension(contentType string) string {
	switch strings.ToLower(contentType) {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
