package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/STTM-NSU/portfolio-tracker/internal/app"
	"github.com/STTM-NSU/portfolio-tracker/internal/config"
	"github.com/STTM-NSU/portfolio-tracker/internal/logger"
	"github.com/STTM-NSU/portfolio-tracker/internal/storage"
	"github.com/STTM-NSU/portfolio-tracker/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.LoadTrackerConfig(config.PathFromEnv())
	if err != nil {
		log.Fatalf("%s: can't load tracker cfg", err)
	}

	level, _ := logger.ParseLevel(cfg.Log.Level)
	// the terminal belongs to the TUI, logs go to a file
	zapLogger, loggerSync, err := logger.NewZapLogger(level, cfg.Log.Path)
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	if envErr != nil {
		zapLogger.Warnf("can't detect .env file")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	store, err := storage.Open(ctx, cfg.Storage, zapLogger)
	if err != nil {
		zapLogger.Fatalf("%s: can't open %s storage", err, cfg.Storage.Backend)
	}
	defer store.Close()

	filter := app.JSONFilter
	if cfg.Storage.Backend != config.File {
		filter = app.FileFilter{Name: "Portfolio"}
	}

	picker := ui.NewPromptPicker()
	tracker := app.New(store, picker, app.Options{
		DefaultFileName:   cfg.Storage.DefaultFileName,
		Filter:            filter,
		ClearInputsOnOpen: *cfg.Inputs.ClearOnOpen,
		IOTimeout:         cfg.Storage.Timeout,
	}, zapLogger)

	zapLogger.Infof("portfolio tracker started, storage %s", cfg.Storage.Backend)
	p := tea.NewProgram(ui.NewModel(ctx, tracker, picker, cfg.Storage.DefaultFileName), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		zapLogger.Errorf("%s: tui stopped", err)
	}
	zapLogger.Infof("portfolio tracker stopped")
}
