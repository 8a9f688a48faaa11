package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	sloggin "github.com/samber/slog-gin"
	"github.com/taskhub/taskhub/internal/transport/http/handler"
	"github.com/taskhub/taskhub/internal/transport/http/middleware"
	"github.com/taskhub/taskhub/internal/usecase"
)

func NewRouter(logger *slog.Logger, authUsecase *usecase.AuthUsecase, authHandler *handler.AuthHandler, taskHandler *handler.TaskHandler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(sloggin.New(logger))
	r.Use(middleware.Metrics())

	authMW := middleware.Auth(authUsecase)

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "API is running"})
	})

	authRoutes := r.Group("/api/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.GET("/profile", authMW, authHandler.Profile)

	// Protected task routes
	tasks := r.Group("/api/tasks", authMW)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.GetByID)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	return r
}
