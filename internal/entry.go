// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"

	"github.com/starford/sigil/internal/classify"
	"github.com/starford/sigil/internal/ingest"
)

// Env is what a task runs against.
type Env struct {
	Config  *Config
	Logger  *slog.Logger
	Service *ingest.Service
	Catalog *classify.Catalog
	FS      afero.Fs
	Out     io.Writer
}

// Task is one unit of work started by Run.
type Task func(ctx context.Context, env *Env) error

// Run sets up logging, the template catalog and the ingest service, then
// runs task.
func Run(ctx context.Context, task Task, opts ...Option) error {
	app := &application{
		out:    os.Stdout,
		logOut: os.Stderr,
	}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}
	if app.fs == nil {
		app.fs = afero.NewOsFs()
	}

	cfg := app.config
	logger := newLogger(app.logOut, cfg.App)
	slog.SetDefault(logger)

	logger.Debug("configuration loaded",
		slog.String("log_level", cfg.App.LogLevel.String()),
		slog.String("ingest_root", cfg.Ingest.Root),
		slog.Int("workers", cfg.Ingest.Workers),
		slog.String("catalog_path", cfg.Classifier.CatalogPath))

	catalog := classify.Default()
	if cfg.Classifier.CatalogPath != "" {
		c, err := classify.LoadCatalogFile(cfg.Classifier.CatalogPath)
		if err != nil {
			return fmt.Errorf("load template catalog: %w", err)
		}
		catalog = c
		logger.Info("template catalog loaded",
			slog.String("path", cfg.Classifier.CatalogPath),
			slog.Int("templates", c.Len()))
	}

	env := &Env{
		Config:  cfg,
		Logger:  logger,
		Service: ingest.NewService(app.fs, cfg.Ingest.Service(), catalog, logger),
		Catalog: catalog,
		FS:      app.fs,
		Out:     app.out,
	}

	if err := task(ctx, env); err != nil {
		logger.Error("task failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func newLogger(w io.Writer, cfg ApplicationConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.LogLevel}
	if cfg.LogFormat == LogFormatText {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
