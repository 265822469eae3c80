package mediastore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"photo-album-backend/internal/apperrors"
)

// LocalStore persists media on the local filesystem under a single directory.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a local media store rooted at dir, creating it if needed
func NewLocalStore(dir string) (*LocalStore, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve media directory %q: %w", dir, err)
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory %q: %w", absDir, err)
	}
	return &LocalStore{dir: absDir}, nil
}

// Save streams the upload to a new file in bounded chunks and returns the
// generated filename as the storage handle.
func (s *LocalStore) Save(ctx context.Context, r io.Reader, originalFilename string) (string, error) {
	name, err := newStoredName(originalFilename)
	if err != nil {
		return "", err
	}

	dstPath := filepath.Join(s.dir, name)
	dst, err := os.Create(dstPath)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create %q: %v", apperrors.ErrStorage, name, err)
	}

	buf := make([]byte, copyChunkSize)
	if _, err := io.CopyBuffer(dst, r, buf); err != nil {
		dst.Close()
		os.Remove(dstPath)
		return "", fmt.Errorf("%w: failed to write %q: %v", apperrors.ErrStorage, name, err)
	}
	if err := dst.Close(); err != nil {
		os.Remove(dstPath)
		return "", fmt.Errorf("%w: failed to close %q: %v", apperrors.ErrStorage, name, err)
	}

	return name, nil
}

// Open returns the stored content for reading. A missing file maps to
// ErrNotFound so the read path can degrade to a broken image instead of a
// server error.
func (s *LocalStore) Open(ctx context.Context, storedPath string) (io.ReadCloser, error) {
	// Handles are bare filenames; anything path-like is rejected outright.
	if storedPath == "" || filepath.Base(storedPath) != storedPath {
		return nil, apperrors.ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.dir, storedPath))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("%w: failed to open %q: %v", apperrors.ErrStorage, storedPath, err)
	}
	return f, nil
}

// Delete removes the stored file. An already-absent file is a no-op success.
func (s *LocalStore) Delete(ctx context.Context, storedPath string) error {
	if storedPath == "" || filepath.Base(storedPath) != storedPath {
		return nil
	}

	if err := os.Remove(filepath.Join(s.dir, storedPath)); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: failed to delete %q: %v", apperrors.ErrStorage, storedPath, err)
	}
	return nil
}
