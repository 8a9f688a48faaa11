package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/taskhub/internal/domain"
	"github.com/taskhub/taskhub/internal/transport/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuthorizer struct {
	authorize func(ctx context.Context, rawToken string) (*domain.User, error)
}

func (f *fakeAuthorizer) Authorize(ctx context.Context, rawToken string) (*domain.User, error) {
	return f.authorize(ctx, rawToken)
}

// newEngine builds a minimal gin engine with the Auth middleware protecting
// GET /protected. The handler writes the userID from context so we can
// assert it was set.
func newEngine(auth *fakeAuthorizer) *gin.Engine {
	r := gin.New()
	r.GET("/protected", middleware.Auth(auth), func(c *gin.Context) {
		c.String(http.StatusOK, "%s", c.GetString("userID"))
	})
	return r
}

func get(engine *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	engine.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingHeader_Returns401(t *testing.T) {
	auth := &fakeAuthorizer{
		authorize: func(_ context.Context, rawToken string) (*domain.User, error) {
			if rawToken != "" {
				t.Errorf("token = %q, want empty", rawToken)
			}
			return nil, domain.ErrUnauthenticated
		},
	}

	w := get(newEngine(auth), "")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "You are not logged in!") {
		t.Errorf("body %q missing not-logged-in message", w.Body.String())
	}
}

func TestAuth_NonBearerScheme_Returns401(t *testing.T) {
	auth := &fakeAuthorizer{
		authorize: func(_ context.Context, rawToken string) (*domain.User, error) {
			if rawToken != "" {
				t.Errorf("token = %q, want empty for non-bearer scheme", rawToken)
			}
			return nil, domain.ErrUnauthenticated
		},
	}

	w := get(newEngine(auth), "Basic dXNlcjpwYXNz")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestAuth_InvalidToken_Returns401(t *testing.T) {
	auth := &fakeAuthorizer{
		authorize: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrTokenInvalid
		},
	}

	w := get(newEngine(auth), "Bearer not.a.jwt")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid token") {
		t.Errorf("body %q missing invalid-token message", w.Body.String())
	}
}

func TestAuth_ExpiredToken_Returns401(t *testing.T) {
	auth := &fakeAuthorizer{
		authorize: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrTokenExpired
		},
	}

	w := get(newEngine(auth), "Bearer expired.jwt.token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "expired") {
		t.Errorf("body %q missing expired message", w.Body.String())
	}
}

func TestAuth_UserGone_Returns404(t *testing.T) {
	auth := &fakeAuthorizer{
		authorize: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}

	w := get(newEngine(auth), "Bearer tok.for.deleted")
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if !strings.Contains(w.Body.String(), "no longer exists") {
		t.Errorf("body %q missing user-gone message", w.Body.String())
	}
}

func TestAuth_StalePassword_Returns401(t *testing.T) {
	auth := &fakeAuthorizer{
		authorize: func(_ context.Context, _ string) (*domain.User, error) {
			return nil, domain.ErrStalePassword
		},
	}

	w := get(newEngine(auth), "Bearer old.jwt.token")
	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "recently changed password") {
		t.Errorf("body %q missing stale-password message", w.Body.String())
	}
}

func TestAuth_ValidToken_PassesAndSetsUser(t *testing.T) {
	user := &domain.User{ID: "user-abc", Email: "ada@x.com", Active: true}
	auth := &fakeAuthorizer{
		authorize: func(_ context.Context, rawToken string) (*domain.User, error) {
			if rawToken != "good.jwt.token" {
				t.Errorf("token = %q, want good.jwt.token", rawToken)
			}
			return user, nil
		},
	}

	w := get(newEngine(auth), "Bearer good.jwt.token")
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", w.Code)
	}
	if got := w.Body.String(); got != user.ID {
		t.Errorf("body = %q, want %q", got, user.ID)
	}
}
