// Package mediastore persists uploaded photo content. Stored filenames are
// always a random hex stem plus the validated extension, independent of the
// caller-supplied filename, so collisions and path traversal are impossible
// by construction. Validation is a name-based allow-list only: no magic-byte
// sniffing is performed, which is a documented scope limit rather than a
// security guarantee.
package mediastore

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"photo-album-backend/internal/apperrors"
	"photo-album-backend/internal/config"
)

// copyChunkSize bounds how much of an upload is held in memory at once.
const copyChunkSize = 1 << 20 // 1 MiB

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// Store is the media storage contract. Save returns an opaque handle that is
// persisted on the photo record and later passed to Open and Delete.
type Store interface {
	Save(ctx context.Context, r io.Reader, originalFilename string) (string, error)
	Open(ctx context.Context, storedPath string) (io.ReadCloser, error)
	Delete(ctx context.Context, storedPath string) error
}

// New builds the media store selected by the storage configuration.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "", "local":
		return NewLocalStore(cfg.Local.MediaDir)
	case "s3":
		return NewS3Store(ctx, cfg.S3)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

// safeExt extracts the extension from the original filename, lower-cased,
// and rejects anything outside the allow-list.
func safeExt(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: only jpg/jpeg/png/webp are allowed", apperrors.ErrInvalidMedia)
	}
	return ext, nil
}

// newStoredName generates a random filename for an upload. The stem is 16
// cryptographically random bytes hex-encoded, so names never collide in
// practice and never derive from user input.
func newStoredName(originalFilename string) (string, error) {
	ext, err := safeExt(originalFilename)
	if err != nil {
		return "", err
	}

	stem := make([]byte, 16)
	if _, err := rand.Read(stem); err != nil {
		return "", fmt.Errorf("failed to generate random filename: %w", err)
	}
	return hex.EncodeToString(stem) + ext, nil
}
