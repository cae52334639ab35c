// Package parse implements the Parse block kind: delimiter, CSS selector,
// JSON token, and regex extraction of a value into an output variable.
package parse

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/vk/blockscript/internal/codegen"
	"github.com/vk/blockscript/internal/descriptor"
	"github.com/vk/blockscript/internal/registry"
	"github.com/vk/blockscript/internal/script"
)

//go:embed manifest.hcl
var manifestHCL []byte

// KindID is the stable identifier of this block kind.
const KindID = "Parse"

const (
	recursiveMarker = "RECURSIVE"
	modePrefix      = "MODE:"
)

// Mode selects the extraction strategy.
type Mode string

const (
	ModeLR    Mode = "LR"
	ModeCSS   Mode = "CSS"
	ModeJSON  Mode = "Json"
	ModeRegex Mode = "Regex"
)

// modeSpec maps a mode to its runtime callee and the mode-specific argument
// settings, in call order. Adding a mode is a table change, not new control
// flow.
type modeSpec struct {
	callee    string
	calleeAll string
	args      []string
}

var modes = map[Mode]modeSpec{
	ModeLR:    {"Functions.ParseLR", "Functions.ParseLRAll", []string{"leftDelim", "rightDelim", "caseSensitive"}},
	ModeCSS:   {"Functions.ParseCSS", "Functions.ParseCSSAll", []string{"cssSelector", "attributeName"}},
	ModeJSON:  {"Functions.ParseJSON", "Functions.ParseJSONAll", []string{"jToken"}},
	ModeRegex: {"Functions.ParseRegex", "Functions.ParseRegexAll", []string{"pattern", "outputFormat"}},
}

// Block is a Parse instance.
type Block struct {
	script.Base
	script.OutputDecl

	Recursive bool
	Mode      Mode
}

// New constructs a Parse block with default settings.
func New(d *descriptor.Descriptor) *Block {
	b := &Block{Base: script.NewBase(d), Mode: ModeLR}
	b.SetVariable("parsed")
	return b
}

// Serialize renders the block body: common header lines, the RECURSIVE
// marker, the MODE line, the non-default settings, and the output
// declaration, in that fixed order.
func (b *Block) Serialize() ([]string, error) {
	lines := b.HeaderLines()
	if b.Recursive {
		lines = append(lines, recursiveMarker)
	}
	lines = append(lines, modePrefix+string(b.Mode))
	settingLines, err := b.SettingLines()
	if err != nil {
		return nil, err
	}
	lines = append(lines, settingLines...)
	lines = append(lines, b.OutputLine())
	return lines, nil
}

// Deserialize consumes the block body. Kind lines are order-independent
// after the common header; unrecognized lines fall through to the generic
// setting parser.
func (b *Block) Deserialize(lines []string, startLine int) error {
	idx := 0
	b.ConsumeHeader(lines, &idx)

	modeSeen := false
	for ; idx < len(lines); idx++ {
		lineNo := startLine + idx
		line := strings.TrimSpace(lines[idx])
		switch {
		case line == "":
		case line == recursiveMarker:
			b.Recursive = true
		case strings.HasPrefix(line, modePrefix):
			token := strings.TrimSpace(strings.TrimPrefix(line, modePrefix))
			if _, ok := modes[Mode(token)]; !ok {
				return script.NewParseError(lineNo, line, fmt.Sprintf("unknown parse mode %q", token))
			}
			b.Mode = Mode(token)
			modeSeen = true
		case script.IsOutputLine(line):
			if err := b.ParseOutputLine(line, lineNo); err != nil {
				return err
			}
		default:
			if err := b.ParseSettingLine(line, lineNo); err != nil {
				return err
			}
		}
	}
	if !modeSeen {
		return script.NewParseError(startLine, modePrefix, "Parse block is missing its required MODE line")
	}
	return nil
}

// Generate emits the extraction statement, threading the declared-variable
// set for the declaration-once policy, plus the capture hint when the output
// is marked CAP.
func (b *Block) Generate(ctx *codegen.Context) error {
	if err := b.ValidateSettings(); err != nil {
		return err
	}
	spec, ok := modes[b.Mode]
	if !ok {
		return &script.UnsupportedOperationError{KindID: b.KindID(), Op: string(b.Mode)}
	}
	callee := spec.callee
	if b.Recursive {
		callee = spec.calleeAll
	}

	args := []string{"data"}
	for _, name := range append(append([]string{"input"}, spec.args...), "prefix", "suffix") {
		expr, err := b.Resolve(name)
		if err != nil {
			return err
		}
		args = append(args, expr)
	}

	expr := fmt.Sprintf("%s(%s)", callee, strings.Join(args, ", "))
	name := ctx.EmitAssignment(b.Variable(), expr, b.Disabled())
	if b.IsCapture {
		ctx.EmitCapture(name)
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
