package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"wordreader/internal/app"
	"wordreader/internal/config"
	"wordreader/internal/service"
	"wordreader/internal/ui"
)

func main() {
	tableFlag := flag.String("table", "", "Saved table to open")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	// the terminal belongs to the UI, so logs go to a file
	logger, err := newFileLogger(cfg.Drill.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	a, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize", zap.Error(err))
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}

	// the drill shares the global logged-in marker
	ws := service.NewWorkspace("", a.Deps)
	if *tableFlag != "" {
		if err := ws.LoadTable(*tableFlag); err != nil {
			fmt.Fprintf(os.Stderr, "fatal: load %q: %v\n", *tableFlag, err)
			os.Exit(1)
		}
	}

	p := tea.NewProgram(ui.New(ws, logger), tea.WithAltScreen())
	_, runErr := p.Run()

	ws.Unload()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.Close(ctx); err != nil {
		logger.Error("Failed to close", zap.Error(err))
	}

	if runErr != nil {
		fmt.Printf("fatal: %v\n", runErr)
		os.Exit(1)
	}
}

func newFileLogger(path string) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{path}
	zcfg.ErrorOutputPaths = []string{path}
	return zcfg.Build()
}
