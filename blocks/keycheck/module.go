// Package keycheck implements the KeyCheck block kind: chains of string
// conditions that decide the task's outcome status.
package keycheck

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/vk/blockscript/internal/codegen"
	"github.com/vk/blockscript/internal/descriptor"
	"github.com/vk/blockscript/internal/registry"
	"github.com/vk/blockscript/internal/script"
	"github.com/vk/blockscript/internal/setting"
)

//go:embed manifest.hcl
var manifestHCL []byte

// KindID is the stable identifier of this block kind.
const KindID = "KeyCheck"

const (
	keychainPrefix = "KEYCHAIN:"
	keyPrefix      = "KEY "
)

var statuses = map[string]string{
	"SUCCESS": "Success",
	"FAILURE": "Failure",
	"BAN":     "Ban",
	"RETRY":   "Retry",
}

var comparers = map[string]struct{}{
	"Contains": {}, "DoesNotContain": {}, "EqualTo": {}, "NotEqualTo": {}, "MatchesRegex": {},
}

// Key is one condition of a chain: a comparer applied to the block's source
// and a term value.
type Key struct {
	Comparer string
	Term     setting.Value
}

// Chain groups keys under a status outcome. Mode OR fires when any key
// matches, AND when all do.
type Chain struct {
	Status string
	Mode   string
	Keys   []Key
}

// Block is a KeyCheck instance.
type Block struct {
	script.Base

	Chains []Chain
}

// New constructs a KeyCheck block with default settings.
func New(d *descriptor.Descriptor) *Block {
	return &Block{Base: script.NewBase(d)}
}

// Serialize renders the block body: common header lines, non-default
// settings, then each chain with its keys.
func (b *Block) Serialize() ([]string, error) {
	lines := b.HeaderLines()
	settingLines, err := b.SettingLines()
	if err != nil {
		return nil, err
	}
	lines = append(lines, settingLines...)
	for _, chain := range b.Chains {
		lines = append(lines, fmt.Sprintf("%s%s:%s", keychainPrefix, chain.Status, chain.Mode))
		for _, key := range chain.Keys {
			lines = append(lines, fmt.Sprintf("%s%s %s", keyPrefix, key.Comparer, key.Term.String()))
		}
	}
	return lines, nil
}

// Deserialize consumes the block body. KEY lines attach to the most recently
// opened chain; a KEY before any KEYCHAIN is a parse error.
func (b *Block) Deserialize(lines []string, startLine int) error {
	idx := 0
	b.ConsumeHeader(lines, &idx)

	for ; idx < len(lines); idx++ {
		lineNo := startLine + idx
		line := strings.TrimSpace(lines[idx])
		switch {
		case line == "":
		case strings.HasPrefix(line, keychainPrefix):
			if err := b.parseChainLine(line, lineNo); err != nil {
				return err
			}
		case strings.HasPrefix(line, keyPrefix):
			if err := b.parseKeyLine(line, lineNo); err != nil {
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

func (b *Block) parseChainLine(line string, lineNo int) error {
	parts := strings.Split(strings.TrimPrefix(line, keychainPrefix), ":")
	if len(parts) != 2 {
		return script.NewParseError(lineNo, line, "expected 'KEYCHAIN:<status>:<OR|AND>'")
	}
	status, ok := statuses[strings.ToUpper(strings.TrimSpace(parts[0]))]
	if !ok {
		return script.NewParseError(lineNo, line, fmt.Sprintf("unknown keychain status %q", parts[0]))
	}
	mode := strings.ToUpper(strings.TrimSpace(parts[1]))
	if mode != "OR" && mode != "AND" {
		return script.NewParseError(lineNo, line, fmt.Sprintf("unknown keychain mode %q, expected OR or AND", parts[1]))
	}
	b.Chains = append(b.Chains, Chain{Status: status, Mode: mode})
	return nil
}

func (b *Block) parseKeyLine(line string, lineNo int) error {
	if len(b.Chains) == 0 {
		return script.NewParseError(lineNo, line, "KEY line before any KEYCHAIN")
	}
	rest := strings.TrimSpace(strings.TrimPrefix(line, keyPrefix))
	comparer, literal, found := strings.Cut(rest, " ")
	if !found {
		return script.NewParseError(lineNo, line, "expected 'KEY <comparer> <value>'")
	}
	if _, ok := comparers[comparer]; !ok {
		return script.NewParseError(lineNo, line, fmt.Sprintf("unknown comparer %q", comparer))
	}
	term, err := setting.ParseValue(literal)
	if err != nil {
		return script.NewParseError(lineNo, line, err.Error())
	}
	chain := &b.Chains[len(b.Chains)-1]
	chain.Keys = append(chain.Keys, Key{Comparer: comparer, Term: term})
	return nil
}

// Generate emits one conditional statement per non-empty chain.
func (b *Block) Generate(ctx *codegen.Context) error {
	if err := b.ValidateSettings(); err != nil {
		return err
	}
	source, err := b.Resolve("source")
	if err != nil {
		return err
	}
	for _, chain := range b.Chains {
		if len(chain.Keys) == 0 {
			continue
		}
		conds := make([]string, 0, len(chain.Keys))
		for _, key := range chain.Keys {
			term, err := codegen.Resolve(key.Term)
			if err != nil {
				return err
			}
			conds = append(conds, fmt.Sprintf("Condition.%s(%s, %s)", key.Comparer, source, term))
		}
		combine := "Keycheck.Any"
		if chain.Mode == "AND" {
			combine = "Keycheck.All"
		}
		ctx.EmitLine(fmt.Sprintf("if (%s(%s)) { data.Status = BotStatus.%s; }",
			combine, strings.Join(conds, ", "), chain.Status))
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
