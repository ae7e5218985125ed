package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/STTM-NSU/portfolio-tracker/internal/config"
	"github.com/STTM-NSU/portfolio-tracker/internal/logger"
	"github.com/STTM-NSU/portfolio-tracker/internal/storage"
	"github.com/STTM-NSU/portfolio-tracker/internal/ui"
	"github.com/joho/godotenv"
)

func main() {
	location := flag.String("location", "", "portfolio file, or portfolio name for SQL backends")
	backend := flag.String("backend", "", "override storage backend: file, postgres or sqlite")
	flag.Parse()

	envErr := godotenv.Load()

	cfg, err := config.LoadTrackerConfig(config.PathFromEnv())
	if err != nil {
		log.Fatalf("%s: can't load tracker cfg", err)
	}
	if *backend != "" {
		cfg.Storage.Backend = config.StorageBackend(*backend)
		if err := cfg.Storage.Setup(); err != nil {
			log.Fatalf("%s: bad backend", err)
		}
	}

	level, _ := logger.ParseLevel(cfg.Log.Level)
	zapLogger, loggerSync, err := logger.NewZapLogger(level, "stderr")
	if err != nil {
		log.Fatalf("%s: can't init logger", err)
	}
	defer loggerSync()

	if envErr != nil {
		zapLogger.Debugf("can't detect .env file")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	name := *location
	if name == "" {
		name = cfg.Storage.DefaultFileName
	}

	store, err := storage.Open(ctx, cfg.Storage, zapLogger)
	if err != nil {
		zapLogger.Fatalf("%s: can't open %s storage", err, cfg.Storage.Backend)
	}

	loadCtx, cancelLoad := context.WithTimeout(ctx, cfg.Storage.Timeout)
	p, err := store.Load(loadCtx, name)
	cancelLoad()
	if closeErr := store.Close(); closeErr != nil {
		zapLogger.Warnf("%s: can't close storage", closeErr)
	}
	if err != nil {
		zapLogger.Fatalf("%s: can't load portfolio %s", err, name)
	}

	fmt.Fprintln(os.Stdout, ui.SecuritiesTable(p, -1, ui.Default))
}
