package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/tradegrid/internal/config"
	"github.com/vk/tradegrid/internal/ctxlog"
	"github.com/vk/tradegrid/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	document *config.Document
	config   *Config
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and registry.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader, modules ...registry.Module) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	// Load the pipeline document into the format-agnostic model first.
	doc, err := loader.Load(ctx, appConfig.PipelinePath)
	if err != nil {
		// A failure to load config is a fatal startup error.
		panic(fmt.Errorf("failed to load pipeline document: %w", err))
	}
	logger.Debug("Pipeline document loaded.", "descriptors", len(doc.Descriptors))

	// Create and populate the registry with module factories.
	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All modules registered.", "count", len(modules), "keys", reg.Keys())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		document: doc,
		config:   appConfig,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Document returns the loaded pipeline document. This is primarily for testing.
func (a *App) Document() *config.Document {
	return a.document
}
