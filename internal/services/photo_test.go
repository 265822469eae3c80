package services

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"photo-album-backend/internal/apperrors"
	"photo-album-backend/internal/mediastore"
	"photo-album-backend/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPhotoFixture(t *testing.T) (*PhotoService, *memPhotoRepo, string) {
	t.Helper()
	dir := t.TempDir()
	media, err := mediastore.NewLocalStore(dir)
	require.NoError(t, err)

	photos := newMemPhotoRepo()
	return NewPhotoService(photos, media), photos, dir
}

func testUser() *models.User {
	return &models.User{ID: uuid.New().String(), Email: "a@x.com", CreatedAt: time.Now().UTC()}
}

func mediaFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestUpload_StoresFileAndRecord(t *testing.T) {
	s, photos, dir := newPhotoFixture(t)
	owner := testUser()

	photo, err := s.Upload(context.Background(), owner, "  Trip  ", strings.NewReader("png-bytes"), "pic.png")
	require.NoError(t, err)

	assert.Equal(t, "Trip", photo.Name)
	assert.Equal(t, owner.ID, photo.OwnerID)
	assert.NotZero(t, photo.ID)
	assert.NotEqual(t, "pic.png", photo.FilePath)
	assert.True(t, strings.HasSuffix(photo.FilePath, ".png"))

	content, err := os.ReadFile(filepath.Join(dir, photo.FilePath))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))

	stored, err := photos.GetByID(context.Background(), photo.ID)
	require.NoError(t, err)
	assert.Equal(t, photo.FilePath, stored.FilePath)
}

func TestUpload_NameValidation(t *testing.T) {
	s, _, dir := newPhotoFixture(t)
	owner := testUser()

	_, err := s.Upload(context.Background(), owner, "   ", strings.NewReader("x"), "pic.png")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = s.Upload(context.Background(), owner, strings.Repeat("a", 41), strings.NewReader("x"), "pic.png")
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = s.Upload(context.Background(), owner, strings.Repeat("a", 40), strings.NewReader("x"), "pic.png")
	assert.NoError(t, err)

	// Validation failures must not leave files behind.
	assert.Len(t, mediaFiles(t, dir), 1)
}

func TestUpload_RejectsDisallowedExtension(t *testing.T) {
	s, photos, dir := newPhotoFixture(t)
	owner := testUser()

	_, err := s.Upload(context.Background(), owner, "Trip", strings.NewReader("gif-bytes"), "x.gif")
	assert.ErrorIs(t, err, apperrors.ErrInvalidMedia)

	assert.Empty(t, mediaFiles(t, dir))
	list, err := photos.List(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestList_Ordering(t *testing.T) {
	s, photos, _ := newPhotoFixture(t)
	owner := testUser()

	older := &models.Photo{Name: "Banana", UploadedAt: time.Now().UTC().Add(-time.Hour), FilePath: "b.png", OwnerID: owner.ID}
	newer := &models.Photo{Name: "Apple", UploadedAt: time.Now().UTC(), FilePath: "a.png", OwnerID: owner.ID}
	require.NoError(t, photos.Create(context.Background(), older))
	require.NoError(t, photos.Create(context.Background(), newer))

	byDate, err := s.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, byDate, 2)
	assert.Equal(t, "Apple", byDate[0].Name) // newest first

	byName, err := s.List(context.Background(), "name")
	require.NoError(t, err)
	assert.Equal(t, "Apple", byName[0].Name)
	assert.Equal(t, "Banana", byName[1].Name)
}

func TestDelete_OnlyOwnerMayDelete(t *testing.T) {
	s, _, dir := newPhotoFixture(t)
	ownerA := testUser()
	userB := testUser()

	photo, err := s.Upload(context.Background(), ownerA, "Trip", strings.NewReader("x"), "pic.png")
	require.NoError(t, err)

	err = s.Delete(context.Background(), userB, photo.ID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	// Forbidden delete must leave both row and file intact.
	_, err = s.Get(context.Background(), photo.ID)
	assert.NoError(t, err)
	assert.Len(t, mediaFiles(t, dir), 1)
}

func TestDelete_RemovesRowThenFile(t *testing.T) {
	s, _, dir := newPhotoFixture(t)
	owner := testUser()

	photo, err := s.Upload(context.Background(), owner, "Trip", strings.NewReader("x"), "pic.png")
	require.NoError(t, err)

	require.NoError(t, s.Delete(context.Background(), owner, photo.ID))

	_, err = s.Get(context.Background(), photo.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Empty(t, mediaFiles(t, dir))

	// Second delete of the same id resolves to NotFound.
	err = s.Delete(context.Background(), owner, photo.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDelete_ToleratesMissingFile(t *testing.T) {
	s, _, dir := newPhotoFixture(t)
	owner := testUser()

	photo, err := s.Upload(context.Background(), owner, "Trip", strings.NewReader("x"), "pic.png")
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(dir, photo.FilePath)))

	assert.NoError(t, s.Delete(context.Background(), owner, photo.ID))
}
