package registry

import (
	"context"
	"fmt"
	"os"

	"github.com/vk/blockscript/internal/ctxlog"
	"github.com/vk/blockscript/internal/descriptor"
	"github.com/vk/blockscript/internal/fsutil"
)

// LoadCatalogDir merges every .hcl catalog manifest found under path into
// the registry. Plugin descriptors loaded here may override builtin ones but
// cannot introduce kinds with no Go variant; Validate catches that.
func (r *Registry) LoadCatalogDir(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Registry loading descriptors from catalog path...", "path", path)

	filePaths, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		logger.Error("Failed to walk catalog directory", "path", path, "error", err)
		return err
	}

	if len(filePaths) == 0 {
		logger.Warn("No .hcl catalog files found in path", "path", path)
		return nil
	}

	loaded := 0
	for _, filePath := range filePaths {
		src, err := os.ReadFile(filePath)
		if err != nil {
			return fmt.Errorf("failed to read catalog file %s: %w", filePath, err)
		}
		descs, err := descriptor.ParseManifest(filePath, src)
		if err != nil {
			return err
		}
		for _, d := range descs {
			r.AddDescriptor(d)
			loaded++
		}
		logger.Debug("Successfully loaded descriptors from catalog file.", "file", filePath)
	}

	logger.Info("Catalog loaded successfully.", "descriptors_loaded", loaded)
	return nil
}
