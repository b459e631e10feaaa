package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cheruab/dreamacademyScM-sub002/internal/cache"
	"github.com/cheruab/dreamacademyScM-sub002/internal/config"
	"github.com/cheruab/dreamacademyScM-sub002/internal/handlers"
	"github.com/cheruab/dreamacademyScM-sub002/internal/repositories/postgres"
	"github.com/cheruab/dreamacademyScM-sub002/internal/services"
	"github.com/cheruab/dreamacademyScM-sub002/internal/utils"
	"github.com/cheruab/dreamacademyScM-sub002/internal/validator"
	"github.com/cheruab/dreamacademyScM-sub002/pkg"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.NewLogger("development", "info").LogError(err, "Failed to load configuration")
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment, cfg.LogLevel)
	if err := run(cfg, logger); err != nil {
		logger.LogError(err, "Server stopped with error")
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger utils.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slogger := utils.ToSlogLogger(logger)

	db, err := pkg.InitDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	repo := postgres.NewRepository(db)
	if err := repo.Migrate(ctx); err != nil {
		return err
	}

	// Redis is optional; without it every read goes to postgres.
	var cacheService cache.CacheService
	if client, err := pkg.NewRedisClient(ctx, cfg); err != nil {
		logger.Warn("Redis unavailable, caching disabled", "error", err)
	} else {
		defer client.Close()
		cacheService = cache.NewRedisCache(client, slogger)
	}

	publisher, err := cfg.Events.CreateEventPublisher(slogger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	serviceManager := services.NewServiceManager(repo, cacheService, publisher, validator.New(), cfg, slogger)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), utils.RequestID(), utils.LoggerMiddleware(logger), utils.ContextLogger(logger))
	handlers.NewHandlerManager(serviceManager, logger).SetupRoutes(router)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Exam service listening", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
