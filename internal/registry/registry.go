package registry

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/vk/blockscript/internal/descriptor"
	"github.com/vk/blockscript/internal/script"
)

// Factory builds a default instance of a block kind from its descriptor.
type Factory func(d *descriptor.Descriptor) script.Instance

// Module is the interface that all builtin block kind packages implement to
// be registered.
type Module interface {
	Register(r *Registry)
}

// UnknownKindError reports an unresolvable kind identifier. Line is the
// 1-based source line of the offending BLOCK header when raised during
// decode, and zero otherwise.
type UnknownKindError struct {
	KindID string
	Line   int
}

func (e *UnknownKindError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: unknown block kind %q", e.Line, e.KindID)
	}
	return fmt.Sprintf("unknown block kind %q", e.KindID)
}

// Registry holds the descriptors and kind factories for a single application
// instance. It is mutable during startup and read-only afterwards.
type Registry struct {
	descriptors map[string]*descriptor.Descriptor
	factories   map[string]Factory
}

// New creates and initializes an empty Registry instance.
func New() *Registry {
	return &Registry{
		descriptors: make(map[string]*descriptor.Descriptor),
		factories:   make(map[string]Factory),
	}
}

// RegisterKind registers a builtin kind: its embedded catalog manifest plus
// the factory producing instances. A malformed manifest or duplicate kind is
// a programmer error and panics.
func (r *Registry) RegisterKind(manifest []byte, factory Factory) {
	descs, err := descriptor.ParseManifest("embedded manifest", manifest)
	if err != nil {
		panic(fmt.Sprintf("invalid embedded manifest: %v", err))
	}
	if len(descs) != 1 {
		panic(fmt.Sprintf("embedded manifest must declare exactly one block, got %d", len(descs)))
	}
	d := descs[0]
	if _, exists := r.factories[d.KindID]; exists {
		panic(fmt.Sprintf("block kind %q already registered", d.KindID))
	}
	slog.Debug("Registering block kind.", "kind", d.KindID)
	r.descriptors[d.KindID] = d
	r.factories[d.KindID] = factory
}

// AddDescriptor merges an externally loaded descriptor. An external manifest
// may restate a builtin kind to override its display name or defaults.
func (r *Registry) AddDescriptor(d *descriptor.Descriptor) {
	r.descriptors[d.KindID] = d
}

// Get returns the descriptor for a kind identifier.
func (r *Registry) Get(kindID string) (*descriptor.Descriptor, error) {
	d, ok := r.descriptors[kindID]
	if !ok {
		return nil, &UnknownKindError{KindID: kindID}
	}
	return d, nil
}

// NewInstance constructs a default block instance of the given kind.
func (r *Registry) NewInstance(kindID string) (script.Instance, error) {
	d, err := r.Get(kindID)
	if err != nil {
		return nil, err
	}
	factory, ok := r.factories[kindID]
	if !ok {
		return nil, &UnknownKindError{KindID: kindID}
	}
	return factory(d), nil
}

// Kinds returns the registered kind identifiers in sorted order.
func (r *Registry) Kinds() []string {
	out := make([]string, 0, len(r.descriptors))
	for k := range r.descriptors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
