// Package descriptor defines the immutable schema for a block kind: its
// stable kind identifier, display name, and ordered parameter schemas.
// Descriptors are loaded once from catalog manifests and never mutated
// afterwards, so concurrent readers need no synchronization.
package descriptor

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/blockscript/internal/setting"
)

// ParamSchema describes one parameter of a block kind.
type ParamSchema struct {
	// Name is the parameter name as it appears in script text.
	Name string

	// Type constrains fixed values bound to this parameter.
	Type cty.Type

	// Description is optional documentation shown by editors.
	Description string

	// Default seeds the parameter's setting on instance construction.
	Default setting.Value

	// Options, when non-empty, restricts fixed string values to this set.
	Options []string
}

// AllowsValue reports whether a fixed string is permitted by the Options set.
// An empty Options set permits everything.
func (p ParamSchema) AllowsValue(s string) bool {
	if len(p.Options) == 0 {
		return true
	}
	for _, o := range p.Options {
		if o == s {
			return true
		}
	}
	return false
}

// Descriptor is the immutable schema of one block kind.
type Descriptor struct {
	KindID      string
	Name        string
	Description string

	params []ParamSchema
	index  map[string]int
}

// New assembles a descriptor from its parts. Parameter order is preserved;
// it drives both serialization order and editor display.
func New(kindID, name, description string, params []ParamSchema) *Descriptor {
	d := &Descriptor{
		KindID:      kindID,
		Name:        name,
		Description: description,
		params:      params,
		index:       make(map[string]int, len(params)),
	}
	for i, p := range params {
		d.index[p.Name] = i
	}
	return d
}

// Param returns the schema for the named parameter.
func (d *Descriptor) Param(name string) (ParamSchema, bool) {
	i, ok := d.index[name]
	if !ok {
		return ParamSchema{}, false
	}
	return d.params[i], true
}

// Params returns the parameter schemas in declaration order.
func (d *Descriptor) Params() []ParamSchema {
	return d.params
}

// DefaultSettings builds a fresh settings map seeded from the parameter
// defaults. The map is owned by the caller.
func (d *Descriptor) DefaultSettings() map[string]setting.Setting {
	out := make(map[string]setting.Setting, len(d.params))
	for _, p := range d.params {
		out[p.Name] = setting.Setting{Name: p.Name, Value: p.Default}
	}
	return out
}
