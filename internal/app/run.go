package app

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/blockscript/internal/codec"
	"github.com/vk/blockscript/internal/compiler"
	"github.com/vk/blockscript/internal/ctxlog"
)

// Run executes the configured action against the script file.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.", "action", cfg.Action, "script", cfg.ScriptPath)

	src, err := os.ReadFile(cfg.ScriptPath)
	if err != nil {
		return fmt.Errorf("failed to read script file: %w", err)
	}

	blocks, err := codec.Decode(string(src), a.registry)
	if err != nil {
		return fmt.Errorf("failed to decode script %s: %w", cfg.ScriptPath, err)
	}
	a.logger.Debug("Script decoded.", "blocks", len(blocks))

	switch cfg.Action {
	case ActionCheck:
		a.logger.Info("Script is valid.", "blocks", len(blocks))
		fmt.Fprintf(a.outW, "%s: %d blocks, ok\n", cfg.ScriptPath, len(blocks))
		return nil

	case ActionFmt:
		out, err := codec.Encode(blocks)
		if err != nil {
			return fmt.Errorf("failed to encode script: %w", err)
		}
		return a.writeOutput(ctx, cfg, out)

	case ActionCompile:
		out, err := compiler.Generate(blocks)
		if err != nil {
			return fmt.Errorf("failed to compile script %s: %w", cfg.ScriptPath, err)
		}
		a.logger.Info("Script compiled.", "blocks", len(blocks))
		return a.writeOutput(ctx, cfg, out)
	}

	return fmt.Errorf("unknown action %q", cfg.Action)
}

func (a *App) writeOutput(ctx context.Context, cfg *Config, out string) error {
	logger := ctxlog.FromContext(ctx)
	if cfg.OutputPath == "" {
		_, err := fmt.Fprint(a.outW, out)
		return err
	}
	if err := os.WriteFile(cfg.OutputPath, []byte(out), 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Debug("Output written.", "path", cfg.OutputPath, "bytes", len(out))
	return nil
}
