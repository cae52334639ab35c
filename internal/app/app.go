package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/blockscript/internal/ctxlog"
	"github.com/vk/blockscript/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and
// lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance, including its own isolated logger and a frozen,
// validated block kind registry.
func NewApp(outW io.Writer, cfg *Config, modules ...registry.Module) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All block kinds registered.", "count", len(modules))

	if cfg.CatalogPath != "" {
		if err := reg.LoadCatalogDir(ctx, cfg.CatalogPath); err != nil {
			// A failure to load the catalog is a fatal startup error.
			panic(fmt.Errorf("failed to load descriptor catalog: %w", err))
		}
	}

	if err := reg.Validate(ctx); err != nil {
		// A mismatch between code and catalog is a programmer error.
		panic(err)
	}
	logger.Debug("Registry validation passed.")

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}
