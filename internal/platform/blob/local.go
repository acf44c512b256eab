// Copyright (c) 2026 EasyBuy. All rights reserved.

package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/easybuy/api/internal/platform/constants"
)

// Local stores files in a directory on disk.
type Local struct {
	dir string
}

// NewLocal creates the directory if needed and returns a store rooted at it.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("blob: failed to create uploads dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Handler serves stored files read-only under /uploads/. Directory paths
// answer 404, so the stored keys cannot be listed.
func (store *Local) Handler() http.Handler {
	return http.FileServer(filesOnly{http.Dir(store.dir)})
}

// filesOnly hides every directory of the wrapped file system.
type filesOnly struct {
	root http.FileSystem
}

func (files filesOnly) Open(name string) (http.File, error) {
	file, err := files.root.Open(name)
	if err != nil {
		return nil, err
	}

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		_ = file.Close()
		return nil, fs.ErrNotExist
	}
	return file, nil
}

// Put writes the body to <dir>/<key>. A partially written file is removed.
func (store *Local) Put(_ context.Context, key string, body io.Reader, _ int64, _ string) (string, error) {
	if !validKey(key) {
		return "", fmt.Errorf("blob: invalid key %q", key)
	}

	fullPath := filepath.Join(store.dir, key)
	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("blob: failed to create file: %w", err)
	}

	if _, err := io.Copy(file, body); err != nil {
		_ = file.Close()
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("blob: failed to write file: %w", err)
	}
	if err := file.Close(); err != nil {
		_ = os.Remove(fullPath)
		return "", fmt.Errorf("blob: failed to close file: %w", err)
	}

	return constants.UploadsURLPrefix + key, nil
}

// Delete removes the file behind a /uploads/ URL.
func (store *Local) Delete(_ context.Context, url string) error {
	if !store.Owns(url) {
		return fmt.Errorf("blob: url %q is not managed by local storage", url)
	}

	err := os.Remove(filepath.Join(store.dir, strings.TrimPrefix(url, constants.UploadsURLPrefix)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("blob: failed to delete file: %w", err)
	}
	return nil
}

// Owns reports whether url is a /uploads/<key> URL.
func (store *Local) Owns(url string) bool {
	key, ok := strings.CutPrefix(url, constants.UploadsURLPrefix)
	return ok && validKey(key)
}
