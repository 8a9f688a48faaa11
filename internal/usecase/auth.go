package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/taskhub/taskhub/internal/auth"
	"github.com/taskhub/taskhub/internal/domain"
	"github.com/taskhub/taskhub/internal/email"
	"github.com/taskhub/taskhub/internal/repository"
)

const minPasswordLength = 6

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type AuthUsecase struct {
	users  repository.UserRepository
	hasher *auth.PasswordHasher
	tokens *auth.TokenService
	email  email.Sender
	logger *slog.Logger
}

func NewAuthUsecase(users repository.UserRepository, hasher *auth.PasswordHasher, tokens *auth.TokenService, emailSender email.Sender, logger *slog.Logger) *AuthUsecase {
	return &AuthUsecase{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		email:  emailSender,
		logger: logger.With("component", "auth_usecase"),
	}
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

// Register validates the input, hashes the password and persists the user.
// The returned user carries no password material beyond the stored hash,
// which callers must never serialize.
func (u *AuthUsecase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	emailAddr := NormalizeEmail(input.Email)
	if !emailRe.MatchString(emailAddr) {
		return nil, domain.ErrInvalidEmail
	}

	if len(input.Password) < minPasswordLength {
		return nil, domain.ErrPasswordTooShort
	}
	if input.Password != input.PasswordConfirm {
		return nil, domain.ErrPasswordMismatch
	}

	// Re-hash guard: an already-hashed value (seen on paths that re-save a
	// stored user) must never be hashed a second time.
	hash := input.Password
	if !auth.IsHashed(hash) {
		var err error
		hash, err = u.hasher.Hash(input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	created, err := u.users.Create(ctx, &domain.User{
		Name:         name,
		Email:        emailAddr,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, err
	}

	if u.email != nil {
		// Welcome mail is best effort; registration already succeeded.
		go func() {
			subject := "Welcome to TaskHub"
			body := fmt.Sprintf("<p>Hi %s, your account is ready.</p>", created.Name)
			if err := u.email.Send(context.WithoutCancel(ctx), created.Email, subject, body); err != nil {
				u.logger.Error("send welcome email", "error", err)
			}
		}()
	}

	return created, nil
}

// Login verifies credentials and issues a bearer token. An unknown email and
// a wrong password produce the same domain.ErrInvalidCredentials, so the
// response cannot be used to probe which accounts exist.
func (u *AuthUsecase) Login(ctx context.Context, emailAddr, password string) (string, *domain.User, error) {
	if emailAddr == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := u.users.FindActiveByEmail(ctx, NormalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	ok, err := u.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("issue token: %w", err)
	}
	return token, user, nil
}

// Authorize resolves a bearer token to the authenticated user. The result is
// a per-request value threaded through the call, never shared state.
func (u *AuthUsecase) Authorize(ctx context.Context, rawToken string) (*domain.User, error) {
	if rawToken == "" {
		return nil, domain.ErrUnauthenticated
	}

	userID, issuedAt, err := u.tokens.Verify(rawToken)
	if err != nil {
		return nil, err
	}

	user, err := u.users.FindActiveByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	// No password-change endpoint exists today, so this only triggers when
	// password_changed_at is set out of band. Kept so old tokens die with
	// the old password either way.
	if user.ChangedPasswordAfter(issuedAt) {
		return nil, domain.ErrStalePassword
	}

	return user, nil
}

// NormalizeEmail trims and lower-cases an address; the store only ever sees
// normalized emails.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
