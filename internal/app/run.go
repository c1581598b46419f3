package app

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/specialistvlad/typecollect/internal/collector"
	"github.com/specialistvlad/typecollect/internal/config"
	"github.com/specialistvlad/typecollect/internal/ctxlog"
	"github.com/specialistvlad/typecollect/internal/fsutil"
	"github.com/specialistvlad/typecollect/internal/namespace"
	"github.com/specialistvlad/typecollect/internal/output"
	"github.com/specialistvlad/typecollect/internal/parser"
	"github.com/specialistvlad/typecollect/internal/schema"
	"github.com/specialistvlad/typecollect/internal/watch"
)

// Run collects the schemas once and, in watch mode, again after every change
// until ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	err := a.generate(ctx)
	if !a.settings.Watch {
		a.logger.Debug("App.Run method finished.")
		return err
	}
	if err != nil {
		a.logger.Error("Initial build failed, waiting for changes.", "error", err)
	}
	return a.watchLoop(ctx)
}

func (a *App) watchLoop(ctx context.Context) error {
	if a.settings.HealthcheckPort > 0 {
		srv := a.startHealthcheckServer(ctx, a.settings.HealthcheckPort)
		defer a.closeHealthcheckServer(ctx, srv)
	}

	w, err := watch.New(a.watchDirs(), defaultExtension)
	if err != nil {
		return err
	}
	return w.Run(ctx, func(ctx context.Context, path string) error {
		return a.generate(ctxlog.With(ctx, "trigger", path))
	})
}

// generate runs one collection over all inputs and writes the result.
func (a *App) generate(ctx context.Context) (err error) {
	ctx = ctxlog.With(ctx, "run_id", uuid.NewString())
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	defer func() {
		a.setLastErr(err)
		if a.settings.MetricsFile == "" {
			return
		}
		if werr := a.metrics.WriteFile(a.settings.MetricsFile); werr != nil {
			logger.Error("Failed to write metrics.", "error", werr)
		}
	}()

	files, err := fsutil.ExpandInputs(a.settings.Inputs, defaultExtension, config.DefaultFile)
	if err != nil {
		return err
	}
	logger.Debug("Inputs expanded.", "files", len(files))

	c := collector.New(parser.New(),
		collector.WithRoot(a.settings.Root),
		collector.WithNamespace(namespace.WithPrefix(a.settings.NamespacePrefix, namespace.FromPath)),
		collector.WithMetrics(a.metrics),
		collector.WithExtension(defaultExtension),
	)
	for _, f := range files {
		if err := c.Collect(ctx, f); err != nil {
			return fmt.Errorf("failed to collect %s: %w", f, err)
		}
	}

	types := make([]schema.Type, 0, len(c.Schemas()))
	for _, n := range c.Schemas() {
		t, ok := n.(schema.Type)
		if !ok {
			return fmt.Errorf("collected value %s of type %T is not a schema", n.SchemaName(), n)
		}
		types = append(types, t)
	}

	if err := a.write(types); err != nil {
		return err
	}
	logger.Info("Schemas collected.",
		"files", len(files),
		"modules", c.Modules(),
		"schemas", len(types),
		"duration", time.Since(start),
	)
	return nil
}

// write renders the schemas fully before touching the destination, so a
// failed run never leaves a truncated file behind.
func (a *App) write(types []schema.Type) error {
	var buf bytes.Buffer
	if err := a.formatter.Format(&buf, types, output.Options{Compact: a.settings.Compact}); err != nil {
		return fmt.Errorf("failed to format schemas: %w", err)
	}

	path := a.settings.OutputPath
	if path == "" || path == "-" {
		_, err := a.outW.Write(buf.Bytes())
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// watchDirs returns the input directories and the directories of input files.
func (a *App) watchDirs() []string {
	var dirs []string
	for _, in := range a.settings.Inputs {
		if info, err := os.Stat(in); err == nil && info.IsDir() {
			dirs = append(dirs, in)
			continue
		}
		dirs = append(dirs, filepath.Dir(in))
	}
	return dirs
}
