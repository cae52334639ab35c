// Package request implements the Request block kind. The block itself does
// no I/O: it emits the statement instructing the external runtime to perform
// the request.
package request

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
const KindID = "Request"

const methodPrefix = "METHOD:"

var methods = map[string]struct{}{
	"GET": {}, "POST": {}, "PUT": {}, "PATCH": {}, "DELETE": {}, "HEAD": {}, "OPTIONS": {},
}

// requestArgs is the fixed argument order of the runtime call.
var requestArgs = []string{"url", "postData", "contentType", "headers", "cookies", "followRedirects"}

// Block is a Request instance.
type Block struct {
	script.Base

	Method string
}

// New constructs a Request block with default settings.
func New(d *descriptor.Descriptor) *Block {
	return &Block{Base: script.NewBase(d), Method: "GET"}
}

// Serialize renders the block body in fixed order: common header lines, the
// METHOD line, then non-default settings.
func (b *Block) Serialize() ([]string, error) {
	lines := b.HeaderLines()
	lines = append(lines, methodPrefix+b.Method)
	settingLines, err := b.SettingLines()
	if err != nil {
		return nil, err
	}
	return append(lines, settingLines...), nil
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
		case strings.HasPrefix(line, methodPrefix):
			token := strings.ToUpper(strings.TrimSpace(strings.TrimPrefix(line, methodPrefix)))
			if _, ok := methods[token]; !ok {
				return script.NewParseError(lineNo, line, fmt.Sprintf("unknown HTTP method %q", token))
			}
			b.Method = token
		default:
			if err := b.ParseSettingLine(line, lineNo); err != nil {
				return err
			}
		}
	}
	return nil
}

// Generate emits the single request-execution statement. The request
// produces no output variable; the runtime stores the response on data.
func (b *Block) Generate(ctx *codegen.Context) error {
	if err := b.ValidateSettings(); err != nil {
		return err
	}
	args := []string{"data", codegen.Quote(b.Method)}
	for _, name := range requestArgs {
		expr, err := b.Resolve(name)
		if err != nil {
			return err
		}
		args = append(args, expr)
	}
	ctx.EmitLine(fmt.Sprintf("Http.Execute(%s);", strings.Join(args, ", ")))
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
