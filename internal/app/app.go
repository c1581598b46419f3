package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"sync"

	"github.com/specialistvlad/typecollect/internal/config"
	"github.com/specialistvlad/typecollect/internal/ctxlog"
	"github.com/specialistvlad/typecollect/internal/metrics"
	"github.com/specialistvlad/typecollect/internal/output"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW      io.Writer
	logger    *slog.Logger
	settings  settings
	formatter output.Formatter
	metrics   *metrics.Collector

	mu      sync.Mutex
	lastErr error
}

// NewApp is the constructor for the main application. It loads the project
// file through loader and merges it with appConfig. Schemas are written to
// outW unless an output path is configured; logs go to logW.
func NewApp(outW, logW io.Writer, appConfig *Config, loader config.Loader) (*App, error) {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	project, err := loadProject(ctx, appConfig.ConfigPath, loader)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	s := merge(appConfig, project)
	if len(s.Inputs) == 0 {
		return nil, errors.New("no inputs: pass files or directories, or list them in the project file")
	}

	formatter, err := output.Default().Get(s.Format)
	if err != nil {
		return nil, err
	}
	logger.Debug("Configuration merged.", "inputs", s.Inputs, "root", s.Root, "format", s.Format, "project_file", project.Path)

	return &App{
		outW:      outW,
		logger:    logger,
		settings:  s,
		formatter: formatter,
		metrics:   metrics.New(),
	}, nil
}

// loadProject reads the project file. The default file may be absent; an
// explicitly named one may not.
func loadProject(ctx context.Context, path string, loader config.Loader) (*config.Model, error) {
	if loader == nil {
		return &config.Model{}, nil
	}
	explicit := path != ""
	if !explicit {
		path = config.DefaultFile
	}
	model, err := loader.Load(ctx, path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			ctxlog.FromContext(ctx).Debug("No project file found, using flags only.", "path", path)
			return &config.Model{}, nil
		}
		return nil, err
	}
	return model, nil
}

// Metrics returns the application's metrics collector. This is primarily for testing.
func (a *App) Metrics() *metrics.Collector {
	return a.metrics
}

func (a *App) setLastErr(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastErr = err
}

func (a *App) lastError() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastErr
}
