package repository

import (
	"context"
	"errors"
	"fmt"

	"photo-album-backend/internal/apperrors"
	"photo-album-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository handles database operations for session tokens
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create creates a new session token
func (r *SessionRepository) Create(ctx context.Context, token *models.SessionToken) error {
	query := `
		INSERT INTO session_tokens (id, user_id, created_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(ctx, query, token.ID, token.UserID, token.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session token: %w", err)
	}
	return nil
}

// GetByID retrieves a session token by ID
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.SessionToken, error) {
	query := `
		SELECT id, user_id, created_at
		FROM session_tokens
		WHERE id = $1
	`
	var token models.SessionToken
	err := r.db.QueryRow(ctx, query, id).Scan(&token.ID, &token.UserID, &token.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get session token: %w", err)
	}
	return &token, nil
}

// Delete removes a session token. Deleting an absent token is not an error.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM session_tokens WHERE id = $1`
	_, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete session token: %w", err)
	}
	return nil
}
