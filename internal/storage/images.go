// Package storage persists uploaded images under a root directory. Stored
// paths are relative, keyed by entity kind and id, and safe to hand to
// clients as /images/<path> links.
package storage

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/vkazakov/adboard-backend/internal/apperr"
	"github.com/vkazakov/adboard-backend/internal/metrics"
)

type ImageStore struct {
	root string
}

func NewImageStore(root string) (*ImageStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create image root: %w", apperr.ErrIO, err)
	}
	return &ImageStore{root: root}, nil
}

// Save writes the upload to {kind}/{entityID}/{uuid}{ext} and returns that
// relative path. Concurrent saves for the same entity never collide because
// each file gets a fresh uuid name.
func (s *ImageStore) Save(kind string, entityID int64, filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	rel := path.Join(kind, fmt.Sprintf("%d", entityID), uuid.NewString()+ext)

	dst := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrIO, err)
	}
	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("%w: %w", apperr.ErrIO, err)
	}
	defer f.Close()
	if _, err := io.Copy(f, r); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("%w: %w", apperr.ErrIO, err)
	}
	metrics.ImagesStored.Inc()
	return rel, nil
}

// Load resolves a stored relative path back to a readable stream and its
// length. Callers own closing the returned ReadCloser.
func (s *ImageStore) Load(rel string) (io.ReadCloser, int64, error) {
	full, err := s.resolve(rel)
	if err != nil {
		return nil, 0, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, fmt.Errorf("%w: image %q", apperr.ErrNotFound, rel)
		}
		return nil, 0, fmt.Errorf("%w: %w", apperr.ErrIO, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("%w: %w", apperr.ErrIO, err)
	}
	return f, fi.Size(), nil
}

// Remove deletes a stored file. Missing files are not an error; replacement
// cleanup is best effort.
func (s *ImageStore) Remove(rel string) error {
	full, err := s.resolve(rel)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %w", apperr.ErrIO, err)
	}
	return nil
}

func (s *ImageStore) resolve(rel string) (string, error) {
	clean := path.Clean("/" + rel)[1:] // strips any ../ escape
	if clean == "" || clean != strings.TrimPrefix(rel, "/") {
		return "", fmt.Errorf("%w: image %q", apperr.ErrNotFound, rel)
	}
	return filepath.Join(s.root, filepath.FromSlash(clean)), nil
}
