package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/taskhub/taskhub/config"
	"github.com/taskhub/taskhub/internal/auth"
	"github.com/taskhub/taskhub/internal/email"
	"github.com/taskhub/taskhub/internal/health"
	"github.com/taskhub/taskhub/internal/infrastructure/postgres"
	ctxlog "github.com/taskhub/taskhub/internal/log"
	"github.com/taskhub/taskhub/internal/metrics"
	"github.com/taskhub/taskhub/internal/retention"
	httptransport "github.com/taskhub/taskhub/internal/transport/http"
	"github.com/taskhub/taskhub/internal/transport/http/handler"
	"github.com/taskhub/taskhub/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	if err := postgres.Migrate(ctx, cfg.DatabaseURL); err != nil {
		stop()
		log.Fatalf("migrate: %v", err)
	}

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	// Auth
	userRepo := postgres.NewUserRepository(pool)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenService([]byte(cfg.JWTSecret), cfg.JWTTTL)
	welcomeMail := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	authUsecase := usecase.NewAuthUsecase(userRepo, hasher, tokens, welcomeMail, logger)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	// Tasks
	taskRepo := postgres.NewTaskRepository(pool)
	taskUsecase := usecase.NewTaskUsecase(taskRepo)
	taskHandler := handler.NewTaskHandler(taskUsecase, logger)

	metrics.Register()
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)

	sweeper := retention.NewSweeper(taskRepo, cfg.TaskRetentionDays, logger)
	sweeper.Start()

	srv := http.Server{
		Addr:    ":" + cfg.Port,
		Handler: httptransport.NewRouter(logger, authUsecase, authHandler, taskHandler),
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
