package services

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"photo-album-backend/internal/apperrors"
	"photo-album-backend/internal/models"
)

// In-memory repositories standing in for the pgx implementations.

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*models.User)}
}

func (r *memUserRepo) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("duplicate email %q", user.Email)
		}
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *memUserRepo) delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
}

type memSessionRepo struct {
	mu     sync.Mutex
	tokens map[string]*models.SessionToken
}

func newMemSessionRepo() *memSessionRepo {
	return &memSessionRepo{tokens: make(map[string]*models.SessionToken)}
}

func (r *memSessionRepo) Create(ctx context.Context, token *models.SessionToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *token
	r.tokens[token.ID] = &copied
	return nil
}

func (r *memSessionRepo) GetByID(ctx context.Context, id string) (*models.SessionToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	token, ok := r.tokens[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *token
	return &copied, nil
}

func (r *memSessionRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, id)
	return nil
}

func (r *memSessionRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.tokens)
}

type memPhotoRepo struct {
	mu     sync.Mutex
	photos map[int64]*models.Photo
	nextID int64
}

func newMemPhotoRepo() *memPhotoRepo {
	return &memPhotoRepo{photos: make(map[int64]*models.Photo)}
}

func (r *memPhotoRepo) Create(ctx context.Context, photo *models.Photo) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	photo.ID = r.nextID
	copied := *photo
	r.photos[photo.ID] = &copied
	return nil
}

func (r *memPhotoRepo) GetByID(ctx context.Context, id int64) (*models.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	photo, ok := r.photos[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *photo
	return &copied, nil
}

func (r *memPhotoRepo) List(ctx context.Context, order string) ([]*models.Photo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Photo, 0, len(r.photos))
	for _, photo := range r.photos {
		copied := *photo
		out = append(out, &copied)
	}
	if order == "name" {
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	} else {
		sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	}
	return out, nil
}

func (r *memPhotoRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.photos[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.photos, id)
	return nil
}
