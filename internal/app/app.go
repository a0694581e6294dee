package app

import (
	"os"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"passvault/internal/logging"
)

// App is a fully wired passvault instance.
type App struct {
	*Wire
	Config Config
	Logger *zap.Logger
}

// New creates the home directory, the logger and the wiring for cfg.
func New(cfg Config) (*App, error) {
	if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
		return nil, errors.Wrapf(err, "create home %s", cfg.Home)
	}
	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, err
	}
	w, err := NewWire(cfg, log)
	if err != nil {
		return nil, err
	}
	return &App{Wire: w, Config: cfg, Logger: log}, nil
}

// Close flushes buffered log output.
func (a *App) Close() {
	// Sync on a terminal stderr can fail harmlessly on some platforms.
	_ = a.Logger.Sync()
}
