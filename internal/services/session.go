package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"photo-album-backend/internal/apperrors"
	"photo-album-backend/internal/models"

	"github.com/google/uuid"
)

// SessionRepository is the persistence contract for session tokens. GetByID
// returns apperrors.ErrNotFound for unknown tokens; Delete is a no-op for
// absent tokens.
type SessionRepository interface {
	Create(ctx context.Context, token *models.SessionToken) error
	GetByID(ctx context.Context, id string) (*models.SessionToken, error)
	Delete(ctx context.Context, id string) error
}

// SessionService issues, resolves and revokes session tokens. Tokens are
// bearer credentials stored server-side, so logout is an immediate
// revocation instead of waiting for an expiry.
type SessionService struct {
	sessions SessionRepository
	users    UserRepository
	ttl      time.Duration // zero means sessions never expire
}

// NewSessionService creates a new session service
func NewSessionService(sessions SessionRepository, users UserRepository, ttl time.Duration) *SessionService {
	return &SessionService{
		sessions: sessions,
		users:    users,
		ttl:      ttl,
	}
}

// Create issues a new session token for the user and returns its id, a
// string suitable for a cookie value.
func (s *SessionService) Create(ctx context.Context, user *models.User) (string, error) {
	token := &models.SessionToken{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.sessions.Create(ctx, token); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return token.ID, nil
}

// Resolve maps a token to its user. Malformed cookies are common, so a
// token that does not parse, does not exist, has expired, or points at a
// missing user resolves to (nil, nil) rather than an error.
func (s *SessionService) Resolve(ctx context.Context, tokenID string) (*models.User, error) {
	if _, err := uuid.Parse(tokenID); err != nil {
		return nil, nil
	}

	token, err := s.sessions.GetByID(ctx, tokenID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up session: %w", err)
	}

	if s.ttl > 0 && time.Since(token.CreatedAt) > s.ttl {
		// Lazy cleanup; an expired row left behind is still unusable.
		_ = s.sessions.Delete(ctx, tokenID)
		return nil, nil
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Orphaned token: the user is gone, the token is invalid.
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up session user: %w", err)
	}

	return user, nil
}

// Require resolves a token and fails with ErrUnauthorized when resolution
// comes up empty. Used by operations that mandate authentication.
func (s *SessionService) Require(ctx context.Context, tokenID string) (*models.User, error) {
	user, err := s.Resolve(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// Destroy revokes a session token. Malformed or unknown tokens are silently
// ignored, which makes logout idempotent.
func (s *SessionService) Destroy(ctx context.Context, tokenID string) error {
	if _, err := uuid.Parse(tokenID); err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, tokenID); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}
