// Package script defines the in-memory block instance model: the capability
// interface every block kind implements, the shared base carrying identity
// and settings, and the error kinds the decode/encode/generate pipeline
// raises.
package script

import (
	"github.com/vk/blockscript/internal/codegen"
	"github.com/vk/blockscript/internal/descriptor"
)

// Instance is the capability contract of one concrete block in a script.
// Kinds are a closed set of variants dispatched through this interface;
// adding a kind means adding a variant, not subclassing.
type Instance interface {
	// KindID returns the stable kind identifier from the descriptor.
	KindID() string

	// Label returns the block's display label.
	Label() string

	// SetLabel overrides the display label.
	SetLabel(string)

	// Disabled reports whether the block is excluded from generation.
	Disabled() bool

	// SetDisabled toggles the disabled flag.
	SetDisabled(bool)

	// Descriptor returns the immutable kind schema.
	Descriptor() *descriptor.Descriptor

	// Serialize renders the block body as text lines, excluding the
	// BLOCK header. Fails with InvalidSettingError on orphan settings.
	Serialize() ([]string, error)

	// Deserialize consumes the block body. lines excludes the BLOCK
	// header; startLine is the 1-based source line of the first body
	// line, used for diagnostics.
	Deserialize(lines []string, startLine int) error

	// Generate appends the block's statements to the compilation
	// context.
	Generate(ctx *codegen.Context) error
}

// A Script is an ordered block instance sequence. Order is significant:
// execution order and variable-definition order are positional. Instances
// are owned exclusively by their script.
type Script []Instance
