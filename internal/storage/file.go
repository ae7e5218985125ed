package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/STTM-NSU/portfolio-tracker/internal/logger"
	"github.com/STTM-NSU/portfolio-tracker/internal/model"
	"github.com/bytedance/sonic"
)

const (
	_indent   = "  "
	_fileMode = 0o644
	_dirMode  = 0o755
)

// FileStore keeps every portfolio in its own pretty-printed JSON file.
// Relative locations are resolved against the data directory.
type FileStore struct {
	dataDir string
	logger  logger.Logger
}

func NewFileStore(dataDir string, logger logger.Logger) *FileStore {
	return &FileStore{dataDir: dataDir, logger: logger}
}

func (s *FileStore) path(location string) string {
	if filepath.IsAbs(location) || s.dataDir == "" {
		return location
	}
	return filepath.Join(s.dataDir, location)
}

func (s *FileStore) Load(ctx context.Context, location string) (*model.Portfolio, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := s.path(location)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: can't read %s", err, path)
	}

	var p model.Portfolio
	if err := sonic.ConfigStd.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: can't decode %s", err, path)
	}

	s.logger.Debugf("read %d bytes from %s", len(data), path)
	return normalized(&p), nil
}

func (s *FileStore) Save(ctx context.Context, location string, p *model.Portfolio) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := sonic.ConfigStd.MarshalIndent(normalized(p), "", _indent)
	if err != nil {
		return fmt.Errorf("%w: can't encode portfolio", err)
	}

	path := s.path(location)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, _dirMode); err != nil {
			return fmt.Errorf("%w: can't create %s", err, dir)
		}
	}

	// A failed save must leave the previous document intact.
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: can't create temp file", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: can't write %s", err, tmp.Name())
	}
	if err := tmp.Chmod(_fileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: can't chmod %s", err, tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: can't close %s", err, tmp.Name())
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("%w: can't replace %s", err, path)
	}

	s.logger.Debugf("wrote %d bytes to %s", len(data), path)
	return nil
}
