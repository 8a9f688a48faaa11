package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyPassword = errors.New("password must not be empty")
	ErrCorruptHash   = errors.New("stored password hash is malformed")
)

const DefaultBcryptCost = 12

// PasswordHasher wraps bcrypt hashing and verification behind a fixed cost.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", ErrEmptyPassword
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hashed. A mismatch returns
// (false, nil); only a hash that bcrypt cannot parse is an error.
func (h *PasswordHasher) Verify(plaintext, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plaintext))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, ErrCorruptHash
	}
}

// IsHashed reports whether s already looks like a bcrypt hash. The user
// store uses this to avoid double-hashing a value that is re-saved.
func IsHashed(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$")
}
