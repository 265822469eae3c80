package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"photo-album-backend/internal/apperrors"
	"photo-album-backend/internal/mediastore"
	"photo-album-backend/internal/models"

	"github.com/rs/zerolog/log"
)

const maxPhotoNameLength = 40

// PhotoRepository is the persistence contract for photos. GetByID and Delete
// return apperrors.ErrNotFound when the id does not resolve.
type PhotoRepository interface {
	Create(ctx context.Context, photo *models.Photo) error
	GetByID(ctx context.Context, id int64) (*models.Photo, error)
	List(ctx context.Context, order string) ([]*models.Photo, error)
	Delete(ctx context.Context, id int64) error
}

// PhotoService handles the ownership-scoped photo lifecycle
type PhotoService struct {
	photos PhotoRepository
	media  mediastore.Store
}

// NewPhotoService creates a new photo service
func NewPhotoService(photos PhotoRepository, media mediastore.Store) *PhotoService {
	return &PhotoService{
		photos: photos,
		media:  media,
	}
}

// Upload validates the display name, streams the file into the media store
// and records the photo with the caller as owner.
func (s *PhotoService) Upload(ctx context.Context, owner *models.User, name string, file io.Reader, originalFilename string) (*models.Photo, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", apperrors.ErrValidation)
	}
	if utf8.RuneCountInString(name) > maxPhotoNameLength {
		return nil, fmt.Errorf("%w: name must be at most %d characters", apperrors.ErrValidation, maxPhotoNameLength)
	}

	storedPath, err := s.media.Save(ctx, file, originalFilename)
	if err != nil {
		return nil, err
	}

	photo := &models.Photo{
		Name:       name,
		UploadedAt: time.Now().UTC(),
		FilePath:   storedPath,
		OwnerID:    owner.ID,
	}

	if err := s.photos.Create(ctx, photo); err != nil {
		// The metadata write failed; reclaim the file so it does not leak.
		if delErr := s.media.Delete(ctx, storedPath); delErr != nil {
			log.Warn().Err(delErr).Str("file", storedPath).Msg("Failed to clean up media after insert failure")
		}
		return nil, fmt.Errorf("failed to create photo record: %w", err)
	}

	return photo, nil
}

// List returns all photos; order "name" sorts ascending by display name,
// anything else sorts newest first. Listing is public.
func (s *PhotoService) List(ctx context.Context, order string) ([]*models.Photo, error) {
	return s.photos.List(ctx, order)
}

// Get returns a photo by id. Reading is public.
func (s *PhotoService) Get(ctx context.Context, id int64) (*models.Photo, error) {
	return s.photos.GetByID(ctx, id)
}

// Delete removes a photo. Only the owner may delete; the database row goes
// first and the file second, so a crash in between leaves at worst an
// orphaned file rather than a row pointing at nothing.
func (s *PhotoService) Delete(ctx context.Context, user *models.User, id int64) error {
	photo, err := s.photos.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to get photo: %w", err)
	}

	if photo.OwnerID != user.ID {
		return apperrors.ErrForbidden
	}

	if err := s.photos.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.media.Delete(ctx, photo.FilePath); err != nil {
		// Row is gone; an orphaned file is harmless and not worth failing
		// the request over.
		log.Warn().Err(err).Str("file", photo.FilePath).Msg("Failed to remove media file")
	}

	return nil
}
