package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/blockscript/internal/ctxlog"
)

// Validate performs a strict parity check between the descriptor catalog and
// the compiled Go kind variants. Every descriptor must have a factory and
// every factory a descriptor, and each kind's default instance must be
// serializable, so that catalog overrides cannot strip a parameter a Go
// variant depends on.
func (r *Registry) Validate(ctx context.Context) error {
	var errs []string
	logger := ctxlog.FromContext(ctx)

	for kindID := range r.descriptors {
		if _, ok := r.factories[kindID]; !ok {
			errs = append(errs, fmt.Sprintf("kind '%s': catalog declares a descriptor, but no Go variant is registered", kindID))
		}
	}
	for kindID := range r.factories {
		if _, ok := r.descriptors[kindID]; !ok {
			errs = append(errs, fmt.Sprintf("kind '%s': Go variant is registered, but no descriptor was loaded", kindID))
		}
	}

	for kindID, factory := range r.factories {
		d, ok := r.descriptors[kindID]
		if !ok {
			continue
		}
		inst := factory(d)
		if _, err := inst.Serialize(); err != nil {
			errs = append(errs, fmt.Sprintf("kind '%s': default instance does not serialize: %v", kindID, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("registry validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Registry validation passed.", "kinds", len(r.factories))
	return nil
}
