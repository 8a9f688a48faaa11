package domain

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateEmail     = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrUnauthenticated    = errors.New("not logged in")
	ErrTokenInvalid       = errors.New("token is invalid")
	ErrTokenExpired       = errors.New("token has expired")
	ErrStalePassword      = errors.New("password changed after token was issued")

	ErrNameRequired     = errors.New("name is required")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	// PasswordChangedAt is set when the password is updated after creation,
	// never on initial registration. Tokens issued before it are rejected.
	PasswordChangedAt *time.Time
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ChangedPasswordAfter reports whether the password was changed after the
// given token issue time.
func (u *User) ChangedPasswordAfter(issuedAt time.Time) bool {
	if u.PasswordChangedAt == nil {
		return false
	}
	return u.PasswordChangedAt.After(issuedAt)
}
