// Package rawcode implements the Code block kind: a fenced body of raw
// statements carried through decode, encode, and generation untouched.
package rawcode

import (
	_ "embed"
	"strings"

	"github.com/vk/blockscript/internal/codegen"
	"github.com/vk/blockscript/internal/descriptor"
	"github.com/vk/blockscript/internal/registry"
	"github.com/vk/blockscript/internal/script"
)

//go:embed manifest.hcl
var manifestHCL []byte

// KindID is the stable identifier of this block kind.
const KindID = "Code"

const (
	beginFence = "BEGIN RAW"
	endFence   = "END RAW"
)

// Block is a Code instance. Lines holds the raw body verbatim, including
// indentation and blank lines.
type Block struct {
	script.Base

	Lines []string
}

// New constructs an empty Code block.
func New(d *descriptor.Descriptor) *Block {
	return &Block{Base: script.NewBase(d)}
}

// Serialize renders the block body with its fences.
func (b *Block) Serialize() ([]string, error) {
	if err := b.ValidateSettings(); err != nil {
		return nil, err
	}
	lines := b.HeaderLines()
	lines = append(lines, beginFence)
	lines = append(lines, b.Lines...)
	lines = append(lines, endFence)
	return lines, nil
}

// Deserialize consumes the block body. Everything between the fences is kept
// byte-for-byte; a missing fence is a parse error.
func (b *Block) Deserialize(lines []string, startLine int) error {
	idx := 0
	b.ConsumeHeader(lines, &idx)

	for idx < len(lines) && strings.TrimSpace(lines[idx]) == "" {
		idx++
	}
	if idx >= len(lines) || strings.TrimSpace(lines[idx]) != beginFence {
		excerpt := ""
		if idx < len(lines) {
			excerpt = lines[idx]
		}
		return script.NewParseError(startLine+idx, excerpt, "Code block body must open with 'BEGIN RAW'")
	}
	idx++

	body := idx
	for ; idx < len(lines); idx++ {
		if strings.TrimSpace(lines[idx]) == endFence {
			b.Lines = append([]string(nil), lines[body:idx]...)
			return nil
		}
	}
	return script.NewParseError(startLine+len(lines), endFence, "Code block body is missing its 'END RAW' fence")
}

// Generate emits the raw body verbatim.
func (b *Block) Generate(ctx *codegen.Context) error {
	if err := b.ValidateSettings(); err != nil {
		return err
	}
	for _, line := range b.Lines {
		ctx.EmitLine(line)
	}
	return nil
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the kind with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterKind(manifestHCL, func(d *descriptor.Descriptor) script.Instance {
		return New(d)
	})
}
