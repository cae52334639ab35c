package script

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/blockscript/internal/codegen"
	"github.com/vk/blockscript/internal/descriptor"
	"github.com/vk/blockscript/internal/setting"
)

const (
	disabledMarker = "DISABLED"
	labelPrefix    = "LABEL:"
)

// Base carries the identity and settings common to every block kind: the
// descriptor, the disabled flag, the display label, and the parameter
// settings seeded from descriptor defaults. Kind variants embed Base and add
// their own fields and grammar.
type Base struct {
	desc     *descriptor.Descriptor
	label    string
	disabled bool
	settings map[string]setting.Setting
}

// NewBase constructs the common block state from a descriptor. The label
// defaults to the descriptor's display name and every parameter is seeded
// with its default value.
func NewBase(d *descriptor.Descriptor) Base {
	return Base{
		desc:     d,
		label:    d.Name,
		settings: d.DefaultSettings(),
	}
}

func (b *Base) KindID() string                     { return b.desc.KindID }
func (b *Base) Label() string                      { return b.label }
func (b *Base) SetLabel(l string)                  { b.label = l }
func (b *Base) Disabled() bool                     { return b.disabled }
func (b *Base) SetDisabled(d bool)                 { b.disabled = d }
func (b *Base) Descriptor() *descriptor.Descriptor { return b.desc }

// Setting returns the current value bound to the named parameter.
func (b *Base) Setting(name string) (setting.Value, bool) {
	s, ok := b.settings[name]
	return s.Value, ok
}

// SetValue binds a value to a parameter name. Construction-time callers may
// bind names the descriptor does not declare; the violation surfaces on
// serialize or generate, not here.
func (b *Base) SetValue(name string, v setting.Value) {
	b.settings[name] = setting.Setting{Name: name, Value: v}
}

// ValidateSettings checks every settings-map key against the descriptor.
func (b *Base) ValidateSettings() error {
	var orphans []string
	for name := range b.settings {
		if _, ok := b.desc.Param(name); !ok {
			orphans = append(orphans, name)
		}
	}
	if len(orphans) == 0 {
		return nil
	}
	sort.Strings(orphans)
	return &InvalidSettingError{KindID: b.desc.KindID, Name: orphans[0]}
}

// HeaderLines renders the optional DISABLED marker and LABEL line. The label
// line is omitted while the label still matches the descriptor's name.
func (b *Base) HeaderLines() []string {
	var lines []string
	if b.disabled {
		lines = append(lines, disabledMarker)
	}
	if b.label != b.desc.Name {
		lines = append(lines, labelPrefix+b.label)
	}
	return lines
}

// SettingLines renders one `name = value` line per setting that no longer
// holds its default, in descriptor parameter order.
func (b *Base) SettingLines() ([]string, error) {
	if err := b.ValidateSettings(); err != nil {
		return nil, err
	}
	var lines []string
	for _, p := range b.desc.Params() {
		s, ok := b.settings[p.Name]
		if !ok || s.Value.Equal(p.Default) {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s = %s", p.Name, s.Value.String()))
	}
	return lines, nil
}

// ConsumeHeader greedily consumes leading DISABLED / LABEL lines in any
// order, advancing *idx past them. Blank lines between header lines are
// skipped.
func (b *Base) ConsumeHeader(lines []string, idx *int) {
	for *idx < len(lines) {
		line := strings.TrimSpace(lines[*idx])
		switch {
		case line == "":
			*idx++
		case line == disabledMarker:
			b.disabled = true
			*idx++
		case strings.HasPrefix(line, labelPrefix):
			b.label = strings.TrimSpace(strings.TrimPrefix(line, labelPrefix))
			*idx++
		default:
			return
		}
	}
}

// ParseSettingLine consumes one generic `name = value` assignment. The
// parameter must exist in the descriptor and the value must conform to its
// declared type and options; violations are line-tagged parse errors.
func (b *Base) ParseSettingLine(line string, lineNo int) error {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return NewParseError(lineNo, line, "expected a 'name = value' setting assignment")
	}
	name := strings.TrimSpace(line[:eq])
	if name == "" {
		return NewParseError(lineNo, line, "setting assignment is missing a name")
	}
	param, ok := b.desc.Param(name)
	if !ok {
		return NewParseError(lineNo, line, fmt.Sprintf("block %q has no setting named %q", b.desc.KindID, name))
	}

	value, err := setting.ParseValue(line[eq+1:])
	if err != nil {
		return NewParseError(lineNo, line, err.Error())
	}
	if err := value.CheckType(param.Type); err != nil {
		return NewParseError(lineNo, line, err.Error())
	}
	if value.Shape == setting.Fixed && value.Fixed.Type() == cty.String && !param.AllowsValue(value.Fixed.AsString()) {
		return NewParseError(lineNo, line, fmt.Sprintf("value %q is not allowed for setting %q", value.Fixed.AsString(), name))
	}

	b.settings[name] = setting.Setting{Name: name, Value: value}
	return nil
}

// Resolve renders the named parameter's current value as a target-language
// expression. Missing parameters surface as InvalidSettingError.
func (b *Base) Resolve(name string) (string, error) {
	s, ok := b.settings[name]
	if !ok {
		p, pok := b.desc.Param(name)
		if !pok {
			return "", &InvalidSettingError{KindID: b.desc.KindID, Name: name}
		}
		s = setting.Setting{Name: name, Value: p.Default}
	}
	return codegen.Resolve(s.Value)
}
