// Package users persists server-side user accounts and profile fields.
package users

import (
	"context"
	"time"
)

// User is a stored account. PasswordHash is a bcrypt hash, never the
// plaintext password.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	AvatarIndex  *int
	Bio          string
	Phone        string
	CreatedAt    time.Time
}

type Repository interface {
	// Create stores a new user. Returns common.ErrorAlreadyExists when the
	// email is taken.
	Create(ctx context.Context, u *User) error

	// ByEmail returns the user with the given email, or common.ErrorNotFound.
	ByEmail(ctx context.Context, email string) (*User, error)

	// ByID returns the user with the given id, or common.ErrorNotFound.
	ByID(ctx context.Context, id string) (*User, error)

	// UpdateProfile applies the non-nil profile fields to the user.
	UpdateProfile(ctx context.Context, id string, upd ProfileUpdate) error
}

// ProfileUpdate carries a partial profile edit; nil fields stay unchanged.
type ProfileUpdate struct {
	Name        *string
	AvatarIndex *int
	Bio         *string
	Phone       *string
}
