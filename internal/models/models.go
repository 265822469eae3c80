package models

import "time"

// User represents a registered account. The email is stored trimmed and
// lower-cased; the password hash is opaque and stored verbatim.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionToken is a server-side session record. The ID doubles as the bearer
// credential carried in the session cookie. UserID is a logical reference
// only; it is not enforced by a database constraint.
type SessionToken struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Photo represents an uploaded photo. FilePath is the opaque storage handle
// returned by the media store, never the caller-supplied filename.
type Photo struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	UploadedAt time.Time `json:"uploaded_at"`
	FilePath   string    `json:"-"`
	OwnerID    string    `json:"owner_id"`
}
