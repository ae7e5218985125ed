package config

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/STTM-NSU/portfolio-tracker/internal/logger"
	"gopkg.in/yaml.v3"
)

const (
	_configPathEnv     = "PORTFOLIO_TRACKER_CONFIG"
	_defaultConfigPath = "./configs/tracker.yaml"
)

type LogConfig struct {
	Level string `yaml:"level"`
	Path  string `yaml:"path"`
}

const (
	_logLevelDefault = "info"
	_logPathDefault  = "portfolio-tracker.log"
)

func (c *LogConfig) Setup() error {
	c.Level = cmp.Or(c.Level, _logLevelDefault)
	if _, err := logger.ParseLevel(c.Level); err != nil {
		return err
	}
	c.Path = cmp.Or(c.Path, _logPathDefault)
	return nil
}

type StorageBackend string

const (
	File     StorageBackend = "file"
	Postgres StorageBackend = "postgres"
	SQLite   StorageBackend = "sqlite"
)

type StorageConfig struct {
	Backend         StorageBackend `yaml:"backend"`
	DataDir         string         `yaml:"data_dir"`
	DefaultFileName string         `yaml:"default_file_name"`
	SQLitePath      string         `yaml:"sqlite_path"`
	Timeout         time.Duration  `yaml:"timeout"`
}

const (
	_backendDefault         = File
	_dataDirDefault         = "."
	_defaultFileNameDefault = "portfolio.json"
	_sqlitePathDefault      = "portfolio.db"
	_timeoutDefault         = 10 * time.Second
)

func (c *StorageConfig) Setup() error {
	c.Backend = cmp.Or(c.Backend, _backendDefault)
	switch c.Backend {
	case File, Postgres, SQLite:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Backend)
	}

	c.DataDir = cmp.Or(c.DataDir, _dataDirDefault)
	c.DefaultFileName = cmp.Or(c.DefaultFileName, _defaultFileNameDefault)
	c.SQLitePath = cmp.Or(c.SQLitePath, _sqlitePathDefault)
	if c.Timeout <= 0 {
		c.Timeout = _timeoutDefault
	}
	return nil
}

type InputsConfig struct {
	// ClearOnOpen empties a form each time it is opened. Unset means true.
	ClearOnOpen *bool `yaml:"clear_on_open"`
}

func (c *InputsConfig) Setup() {
	if c.ClearOnOpen == nil {
		v := true
		c.ClearOnOpen = &v
	}
}

type TrackerConfig struct {
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Inputs  InputsConfig  `yaml:"inputs"`
}

func (c *TrackerConfig) ValidateAndSetup() error {
	if err := c.Log.Setup(); err != nil {
		return fmt.Errorf("%w: can't setup log", err)
	}
	if err := c.Storage.Setup(); err != nil {
		return fmt.Errorf("%w: can't setup storage", err)
	}
	c.Inputs.Setup()
	return nil
}

// PathFromEnv returns the config file location, PORTFOLIO_TRACKER_CONFIG wins.
func PathFromEnv() string {
	return cmp.Or(os.Getenv(_configPathEnv), _defaultConfigPath)
}

// LoadTrackerConfig reads filename. A missing file yields the defaults.
func LoadTrackerConfig(filename string) (TrackerConfig, error) {
	var cfg TrackerConfig
	input, err := os.ReadFile(filename)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("%w: can't read file", err)
	default:
		if err := yaml.Unmarshal(input, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: can't unmarshal config", err)
		}
	}

	if err := cfg.ValidateAndSetup(); err != nil {
		return cfg, fmt.Errorf("%w: can't setup cfg", err)
	}

	return cfg, nil
}
