// Package app wires storage, speech, relay and services from configuration.
// Every binary in cmd/ starts from it.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"wordreader/internal/config"
	"wordreader/internal/database"
	"wordreader/internal/domain"
	"wordreader/internal/relay"
	"wordreader/internal/service"
	"wordreader/internal/speech"

	// speech backends register themselves
	_ "wordreader/internal/speech/espeak"
	_ "wordreader/internal/speech/silent"
)

// voicesTimeout bounds the voice listing made at startup
const voicesTimeout = 10 * time.Second

// App holds the shared collaborators of a running binary
type App struct {
	Config *config.Config
	Deps   service.Deps
	Engine speech.Engine
	Voices *speech.VoiceRegistry
	Relay  *relay.Client

	storage io.Closer
	logger  *zap.Logger
}

// New opens storage, creates the speech backend and loads its voices.
// A backend that lists no voices is not fatal: utterances then go out
// with the language tag only.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	if !speech.Engines.Has(cfg.Speech.Backend) {
		return nil, fmt.Errorf("unknown speech backend %q, available: %s",
			cfg.Speech.Backend, strings.Join(speech.Engines.List(), ", "))
	}

	repo, storage, err := database.Open(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	engine, err := speech.Engines.Create(cfg.Speech.Backend, cfg.SpeechOptions())
	if err != nil {
		storage.Close()
		return nil, fmt.Errorf("create speech backend: %w", err)
	}

	voices := speech.NewVoiceRegistry(cfg.Speech.SourceLang, cfg.Speech.TargetLang)
	ctx, cancel := context.WithTimeout(context.Background(), voicesTimeout)
	defer cancel()
	if err := voices.Load(ctx, engine); err != nil {
		logger.Warn("Failed to list voices", zap.String("backend", engine.Name()), zap.Error(err))
	}
	logger.Info("Speech backend ready",
		zap.String("backend", engine.Name()),
		zap.Int("voices", len(voices.All())),
	)

	relayClient := relay.NewClient(cfg.Relay.URL, time.Duration(cfg.Relay.TimeoutSec)*time.Second, logger)

	deps := service.Deps{
		Library:     service.NewLibraryService(repo, logger),
		Auth:        service.NewAuthService(repo),
		Sessions:    service.NewSessionService(relayClient, logger),
		Engine:      engine,
		Voices:      voices,
		Locales:     domain.Locales{Source: cfg.Speech.SourceLang, Target: cfg.Speech.TargetLang},
		Repeat:      cfg.Drill.Repeat,
		Rate:        cfg.Speech.Rate,
		SourceVoice: cfg.Speech.SourceVoice,
		TargetVoice: cfg.Speech.TargetVoice,
		Logger:      logger,
	}

	return &App{
		Config:  cfg,
		Deps:    deps,
		Engine:  engine,
		Voices:  voices,
		Relay:   relayClient,
		storage: storage,
		logger:  logger,
	}, nil
}

// Close waits for pending relay deliveries (bounded by ctx) and closes storage
func (a *App) Close(ctx context.Context) error {
	a.Relay.Wait(ctx)
	if err := a.storage.Close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	a.logger.Info("Storage closed")
	return nil
}

// RunCleanupJob closes workspaces idle for longer than maxIdle, checking
// every interval until ctx is done
func RunCleanupJob(ctx context.Context, manager *service.WorkspaceManager, interval, maxIdle time.Duration, logger *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			logger.Debug("Running scheduled cleanup")
			manager.CloseIdle(maxIdle)
		}
	}
}
