package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/taskhub/taskhub/internal/domain"
	"github.com/taskhub/taskhub/internal/metrics"
	"github.com/taskhub/taskhub/internal/usecase"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Register(ctx context.Context, input usecase.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type registerRequest struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	PasswordConfirm string `json:"passwordConfirm" binding:"required"`
}

// POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), usecase.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateEmail):
			respondError(c, http.StatusBadRequest, errDuplicateEmail)
		case errors.Is(err, domain.ErrNameRequired),
			errors.Is(err, domain.ErrInvalidEmail),
			errors.Is(err, domain.ErrPasswordTooShort),
			errors.Is(err, domain.ErrPasswordMismatch):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			h.logger.ErrorContext(c.Request.Context(), "register", "error", err)
			respondError(c, http.StatusInternalServerError, errInternalServer)
		}
		return
	}

	metrics.RegistrationsTotal.Inc()
	c.JSON(http.StatusCreated, gin.H{
		"status": "success",
		"data":   gin.H{"user": toUserResponse(user)},
	})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Please provide email and password!")
		return
	}

	token, user, err := h.authUsecase.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			respondError(c, http.StatusUnauthorized, errInvalidCredentials)
			return
		}
		h.logger.ErrorContext(c.Request.Context(), "login", "error", err)
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"token":  token,
		"data":   gin.H{"user": toUserResponse(user)},
	})
}

// GET /api/auth/profile
// The auth middleware has already resolved the user for this request.
func (h *AuthHandler) Profile(c *gin.Context) {
	user, ok := c.MustGet("user").(*domain.User)
	if !ok {
		respondError(c, http.StatusInternalServerError, errInternalServer)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "success",
		"data":   gin.H{"user": toUserResponse(user)},
	})
}
