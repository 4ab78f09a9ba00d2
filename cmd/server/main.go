package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wordreader/internal/api"
	"wordreader/internal/app"
	"wordreader/internal/auth"
	"wordreader/internal/config"
	"wordreader/internal/service"
)

const (
	cleanupInterval = 10 * time.Minute
	maxIdle         = 2 * time.Hour
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}

	secret := cfg.Server.JWTSecret
	if secret == "" {
		// tokens stop validating when the server restarts
		secret = uuid.NewString()
		logger.Warn("JWT_SECRET not set, using a random secret")
	}

	manager := service.NewWorkspaceManager(a.Deps, logger)
	router := api.NewHandler(api.Deps{
		Manager:     manager,
		Library:     a.Deps.Library,
		Auth:        a.Deps.Auth,
		Voices:      a.Voices,
		Locales:     a.Deps.Locales,
		JWT:         auth.NewJWTService(secret),
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
	}, os.Stdout)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.RunCleanupJob(ctx, manager, cleanupInterval, maxIdle, logger)

	go func() {
		logger.Info("Starting server", zap.String("addr", srv.Addr), zap.String("speech", a.Engine.Name()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}
	manager.CloseAll()
	if err := a.Close(shutdownCtx); err != nil {
		logger.Error("Failed to close", zap.Error(err))
	}

	logger.Info("Server stopped")
}
