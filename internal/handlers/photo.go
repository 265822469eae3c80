package handlers

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"photo-album-backend/internal/apperrors"
	"photo-album-backend/internal/mediastore"
	"photo-album-backend/internal/middleware"
	"photo-album-backend/internal/models"
	"photo-album-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// maxUploadFormMemory caps how much of a multipart upload is held in memory;
// the remainder spools to temporary files.
const maxUploadFormMemory = 32 << 20 // 32 MiB

// PhotoHandler handles photo-related HTTP requests
type PhotoHandler struct {
	photos *services.PhotoService
	media  mediastore.Store
}

// NewPhotoHandler creates a new photo handler
func NewPhotoHandler(photos *services.PhotoService, media mediastore.Store) *PhotoHandler {
	return &PhotoHandler{
		photos: photos,
		media:  media,
	}
}

// photoResponse is the public JSON shape of a photo
type photoResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"uploaded_at"`
	ImageURL   string    `json:"image_url"`
	OwnerID    string    `json:"owner_id"`
	Owned      bool      `json:"owned"`
}

func toPhotoResponse(photo *models.Photo, user *models.User) photoResponse {
	return photoResponse{
		ID:         photo.ID,
		Name:       photo.Name,
		UploadedAt: photo.UploadedAt,
		ImageURL:   "/media/" + photo.FilePath,
		OwnerID:    photo.OwnerID,
		Owned:      user != nil && user.ID == photo.OwnerID,
	}
}

// List handles GET /api/v1/photos. Listing is public; order=name sorts by
// display name, the default is newest first.
func (h *PhotoHandler) List(w http.ResponseWriter, r *http.Request) {
	order := r.URL.Query().Get("order")

	photos, err := h.photos.List(r.Context(), order)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list photos")
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user := middleware.GetUser(r.Context())
	items := make([]photoResponse, 0, len(photos))
	for _, photo := range photos {
		items = append(items, toPhotoResponse(photo, user))
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"photos": items,
		"total":  len(items),
	})
}

// Get handles GET /api/v1/photos/{id}
func (h *PhotoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Invalid photo id", http.StatusBadRequest)
		return
	}

	photo, err := h.photos.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Error().Err(err).Int64("photo_id", id).Msg("Failed to get photo")
		}
		respondAppError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, toPhotoResponse(photo, middleware.GetUser(r.Context())))
}

// Upload handles POST /api/v1/photos (multipart: name + image)
func (h *PhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	if err := r.ParseMultipartForm(maxUploadFormMemory); err != nil {
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		respondError(w, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	photo, err := h.photos.Upload(r.Context(), user, r.FormValue("name"), file, header.Filename)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", user.ID).
			Str("filename", header.Filename).
			Msg("Failed to upload photo")
		respondAppError(w, err)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Int64("photo_id", photo.ID).
		Str("file", photo.FilePath).
		Msg("Photo uploaded")

	respondJSON(w, http.StatusCreated, toPhotoResponse(photo, user))
}

// Delete handles DELETE /api/v1/photos/{id}
func (h *PhotoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respondError(w, "Invalid photo id", http.StatusBadRequest)
		return
	}

	if err := h.photos.Delete(r.Context(), user, id); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrForbidden) {
			log.Error().Err(err).Int64("photo_id", id).Str("user_id", user.ID).Msg("Failed to delete photo")
		}
		respondAppError(w, err)
		return
	}

	log.Info().Int64("photo_id", id).Str("user_id", user.ID).Msg("Photo deleted")

	w.WriteHeader(http.StatusNoContent)
}

// ServeMedia handles GET /media/{filename}. A photo row whose file has gone
// missing degrades to a 404 here, never a server error.
func (h *PhotoHandler) ServeMedia(w http.ResponseWriter, r *http.Request) {
	filename := chi.URLParam(r, "filename")

	rc, err := h.media.Open(r.Context(), filename)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			respondError(w, "Media not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("file", filename).Msg("Failed to open media")
		respondError(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	if ctype := mime.TypeByExtension(filepath.Ext(filename)); ctype != "" {
		w.Header().Set("Content-Type", ctype)
	}
	if _, err := io.Copy(w, rc); err != nil {
		log.Warn().Err(err).Str("file", filename).Msg("Failed to stream media")
	}
}
