// Package function implements the Function block kind: named runtime
// transforms (encodings, hashes, helpers) applied to an input value and
// assigned to an output variable.
package function

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
const KindID = "Function"

const functionPrefix = "FUNCTION:"

// funcSpec maps a function name to its runtime callee and argument
// settings, in call order. A nil args slice means (data, input).
type funcSpec struct {
	callee string
	args   []string
}

var functions = map[string]funcSpec{
	"Constant":        {callee: ""},
	"Base64Encode":    {callee: "Functions.Base64Encode"},
	"Base64Decode":    {callee: "Functions.Base64Decode"},
	"ToUppercase":     {callee: "Functions.ToUppercase"},
	"ToLowercase":     {callee: "Functions.ToLowercase"},
	"Length":          {callee: "Functions.Length"},
	"URLEncode":       {callee: "Functions.URLEncode"},
	"URLDecode":       {callee: "Functions.URLDecode"},
	"MD5":             {callee: "Functions.MD5"},
	"SHA1":            {callee: "Functions.SHA1"},
	"SHA256":          {callee: "Functions.SHA256"},
	"SHA512":          {callee: "Functions.SHA512"},
	"HMACSHA256":      {callee: "Functions.HMACSHA256", args: []string{"input", "key"}},
	"HMACSHA512":      {callee: "Functions.HMACSHA512", args: []string{"input", "key"}},
	"RandomNum":       {callee: "Functions.RandomNum", args: []string{"min", "max"}},
	"CurrentUnixTime": {callee: "Functions.CurrentUnixTime", args: []string{}},
}

// Block is a Function instance.
type Block struct {
	script.Base
	script.OutputDecl

	Function string
}

// New constructs a Function block with default settings.
func New(d *descriptor.Descriptor) *Block {
	b := &Block{Base: script.NewBase(d), Function: "Constant"}
	b.SetVariable("output")
	return b
}

// Serialize renders the block body in fixed order: common header lines, the
// FUNCTION line, non-default settings, and the output declaration.
func (b *Block) Serialize() ([]string, error) {
	lines := b.HeaderLines()
	lines = append(lines, functionPrefix+b.Function)
	settingLines, err := b.SettingLines()
	if err != nil {
		return nil, err
	}
	lines = append(lines, settingLines...)
	lines = append(lines, b.OutputLine())
	return lines, nil
}

// Deserialize consumes the block body.
func (b *Block) Deserialize(lines []string, startLine int) error {
	idx := 0
	b.ConsumeHeader(lines, &idx)

	for ; idx < len(lines); idx++ {
		lineNo := startLine + idx
		line := strings.TrimSpace(lines[idx])
		switch {
		case line == "":
		case strings.HasPrefix(line, functionPrefix):
			token := strings.TrimSpace(strings.TrimPrefix(line, functionPrefix))
			if _, ok := functions[token]; !ok {
				return script.NewParseError(lineNo, line, fmt.Sprintf("unknown function %q", token))
			}
			b.Function = token
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
	return nil
}

// Generate emits the transform assignment. Constant resolves the input
// directly with no callee; every other function calls into the runtime's
// function library.
func (b *Block) Generate(ctx *codegen.Context) error {
	if err := b.ValidateSettings(); err != nil {
		return err
	}
	spec, ok := functions[b.Function]
	if !ok {
		return &script.UnsupportedOperationError{KindID: b.KindID(), Op: b.Function}
	}

	var expr string
	if spec.callee == "" {
		input, err := b.Resolve("input")
		if err != nil {
			return err
		}
		expr = input
	} else {
		argNames := spec.args
		if argNames == nil {
			argNames = []string{"input"}
		}
		args := []string{"data"}
		for _, name := range argNames {
			e, err := b.Resolve(name)
			if err != nil {
				return err
			}
			args = append(args, e)
		}
		expr = fmt.Sprintf("%s(%s)", spec.callee, strings.Join(args, ", "))
	}

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
