package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	AvatarURL    *string   `json:"avatar_url"`
	PasswordHash string    `json:"-"`
}

// Result is the projection of a user returned by username search.
type Result struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url,omitempty"`
}

var ErrUserNotFound = errors.New("user not found")

type Repository interface {
	Save(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// SearchByUsername matches usernames by prefix or substring, returning
	// at most limit rows.
	SearchByUsername(ctx context.Context, term string, limit int) ([]Result, error)
}
