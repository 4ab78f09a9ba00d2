package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordreader/internal/app"
	"wordreader/internal/config"
	"wordreader/internal/handler"
	"wordreader/internal/middleware"
	"wordreader/internal/service"
	"wordreader/internal/speech"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

// Chats idle for longer than this lose their workspace (the saved library
// and users are kept in storage)
const (
	cleanupInterval = time.Hour
	maxIdle         = 24 * time.Hour
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting WordReader Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if err := cfg.RequireBotToken(); err != nil {
		logger.Fatal("Invalid config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("Handler failed", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Every chat hears its table through its own audio messages
	deps := a.Deps
	deps.EngineFor = func(workspaceID string) speech.Engine {
		chatID, err := middleware.ChatID(workspaceID)
		if err != nil {
			logger.Error("Workspace is not a chat", zap.String("workspace", workspaceID), zap.Error(err))
			return a.Engine
		}
		return handler.NewChatEngine(bot, tele.ChatID(chatID), a.Engine, logger)
	}
	manager := service.NewWorkspaceManager(deps, logger)

	// Initialize handler
	h := handler.NewHandler(bot, manager, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start cleanup job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go app.RunCleanupJob(ctx, manager, cleanupInterval, maxIdle, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()
	manager.CloseAll()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := a.Close(shutdownCtx); err != nil {
		logger.Error("Failed to close", zap.Error(err))
	}

	logger.Info("Bot stopped gracefully")
}
