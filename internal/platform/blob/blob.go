// Copyright (c) 2026 EasyBuy. All rights reserved.

/*
Package blob stores uploaded images and hands back their public URLs.

Two drivers exist:

  - Local: files in UPLOADS_DIR, served by the API under /uploads/.
  - S3: objects in an S3-compatible bucket, served from S3_PUBLIC_URL.

Only URLs a store produced are ever deleted by it; see [Store.Owns]. Profile
image URLs set by hand through PUT /api/users/me are left alone.
*/
package blob

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/easybuy/api/internal/platform/config"
	"github.com/easybuy/api/pkg/slug"
	"github.com/easybuy/api/pkg/uuid"
)

// Store persists uploaded files.
type Store interface {
	// Put writes body under key and returns the public URL.
	Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error)

	// Delete removes the file behind a URL returned by Put. Missing files are not an error.
	Delete(ctx context.Context, url string) error

	// Owns reports whether url was produced by this store.
	Owns(url string) bool
}

// NewKey builds a unique storage key such as "images-0190c5...-summer-dress.jpg".
//
// The prefix is the form field the file came from. The original name only
// contributes a sanitised, human-readable hint.
func NewKey(prefix, originalName, extension string) string {
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(originalName, "\\", "/")), path.Ext(originalName))
	hint := slug.From(base)

	key := prefix + "-" + uuid.New()
	if hint != "" {
		key += "-" + hint
	}
	return key + extension
}

// validKey rejects keys that could escape the storage root.
func validKey(key string) bool {
	return key != "" && !strings.ContainsAny(key, "/\\") && !strings.HasPrefix(key, ".")
}

// New builds the store selected by STORAGE_DRIVER.
func New(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.StorageDriver {
	case config.StorageLocal:
		return NewLocal(cfg.UploadsDir)
	case config.StorageS3:
		return NewS3(ctx, S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	default:
		return nil, fmt.Errorf("blob: unknown storage driver %q", cfg.StorageDriver)
	}
}
