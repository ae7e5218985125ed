package storage

import (
	"context"
	"fmt"

	"github.com/STTM-NSU/portfolio-tracker/internal/config"
	"github.com/STTM-NSU/portfolio-tracker/internal/logger"
	"github.com/STTM-NSU/portfolio-tracker/internal/model"
)

// Backend is a store opened from configuration.
type Backend interface {
	Load(ctx context.Context, location string) (*model.Portfolio, error)
	Save(ctx context.Context, location string, p *model.Portfolio) error
	Close() error
}

func (s *FileStore) Close() error { return nil }

// Open builds the backend selected by cfg. SQL backends get their schema
// created.
func Open(ctx context.Context, cfg config.StorageConfig, logger logger.Logger) (Backend, error) {
	switch cfg.Backend {
	case config.File:
		return NewFileStore(cfg.DataDir, logger), nil
	case config.Postgres, config.SQLite:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	var store *SQLStore
	if cfg.Backend == config.Postgres {
		pgCfg := NewPostgresConfigFromEnv().Setup()
		db, err := OpenPostgres(ctx, pgCfg)
		if err != nil {
			return nil, err
		}
		logger.Infof("connected to postgres %s", pgCfg)
		store = NewSQLStore(db, logger)
	} else {
		db, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		logger.Infof("opened sqlite %s", cfg.SQLitePath)
		store = NewSQLStore(db, logger)
	}

	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return nil, err
	}
	return store, nil
}
