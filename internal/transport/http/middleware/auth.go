package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/taskhub/internal/domain"
)

const (
	errNotLoggedIn    = "You are not logged in! Please log in to get access."
	errTokenInvalid   = "Invalid token. Please log in again!"
	errTokenExpired   = "Your token has expired! Please log in again."
	errUserGone       = "The user belonging to this token no longer exists."
	errStalePassword  = "User recently changed password! Please log in again."
	errInternalServer = "Internal server error"
)

// authorizer is the subset of AuthUsecase the middleware needs.
type authorizer interface {
	Authorize(ctx context.Context, rawToken string) (*domain.User, error)
}

// Auth resolves the Bearer token to an active user and attaches it to the
// gin context as "user" (and "userID"). The identity lives only as a
// per-request value.
func Auth(auth authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var rawToken string
		if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
			rawToken = strings.TrimPrefix(header, "Bearer ")
		}

		user, err := auth.Authorize(c.Request.Context(), rawToken)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrUnauthenticated):
				abortError(c, http.StatusUnauthorized, errNotLoggedIn)
			case errors.Is(err, domain.ErrTokenExpired):
				abortError(c, http.StatusUnauthorized, errTokenExpired)
			case errors.Is(err, domain.ErrTokenInvalid):
				abortError(c, http.StatusUnauthorized, errTokenInvalid)
			case errors.Is(err, domain.ErrStalePassword):
				abortError(c, http.StatusUnauthorized, errStalePassword)
			case errors.Is(err, domain.ErrUserNotFound):
				abortError(c, http.StatusNotFound, errUserGone)
			default:
				abortError(c, http.StatusInternalServerError, errInternalServer)
			}
			return
		}

		c.Set("user", user)
		c.Set("userID", user.ID)
		c.Next()
	}
}

func abortError(c *gin.Context, code int, message string) {
	status := "error"
	if code < http.StatusInternalServerError {
		status = "fail"
	}
	c.AbortWithStatusJSON(code, gin.H{"status": status, "message": message})
}
