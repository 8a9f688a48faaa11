package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/taskhub/taskhub/internal/domain"
)

// ErrNoSigningKey means the service was built without a JWT secret. This is
// a deployment error and should abort startup, not surface per request.
var ErrNoSigningKey = errors.New("jwt signing key is not configured")

const DefaultTokenTTL = 90 * 24 * time.Hour

// TokenService issues and verifies HS256 bearer tokens carrying a user ID.
type TokenService struct {
	key []byte
	ttl time.Duration
}

func NewTokenService(key []byte, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{key: key, ttl: ttl}
}

// Issue signs a token for userID, valid from now until now+ttl.
func (s *TokenService) Issue(userID string) (string, error) {
	if len(s.key) == 0 {
		return "", ErrNoSigningKey
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks signature and expiry, returning the embedded user ID and the
// issue time. Expiry maps to domain.ErrTokenExpired, everything else that is
// wrong with the token to domain.ErrTokenInvalid.
func (s *TokenService) Verify(rawToken string) (userID string, issuedAt time.Time, err error) {
	if len(s.key) == 0 {
		return "", time.Time{}, ErrNoSigningKey
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", time.Time{}, domain.ErrTokenExpired
		}
		return "", time.Time{}, domain.ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" || claims.IssuedAt == nil {
		return "", time.Time{}, domain.ErrTokenInvalid
	}

	return claims.Subject, claims.IssuedAt.Time, nil
}
