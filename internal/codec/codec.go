// Package codec implements the bidirectional mapping between the textual
// script language and the in-memory block instance sequence. Both directions
// fail fast: a structural error aborts the whole script operation so a
// partially decoded or encoded script is never returned.
package codec

import (
	"errors"
	"strings"

	"github.com/vk/blockscript/internal/registry"
	"github.com/vk/blockscript/internal/script"
)

const blockPrefix = "BLOCK:"

// Decode parses script text into an ordered block instance sequence. The
// text is split on BLOCK:<kind> header lines; each body is delegated to the
// matching kind's Deserialize with its original 1-based line offset so that
// downstream diagnostics name the right source line.
func Decode(text string, reg *registry.Registry) (script.Script, error) {
	lines := strings.Split(text, "\n")
	var out script.Script

	i := 0
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			i++
			continue
		}
		if !strings.HasPrefix(trimmed, blockPrefix) {
			return nil, script.NewParseError(i+1, lines[i], "expected a 'BLOCK:<kind>' header")
		}
		kindID := strings.TrimSpace(strings.TrimPrefix(trimmed, blockPrefix))
		headerLine := i + 1
		i++

		start := i
		for i < len(lines) && !strings.HasPrefix(strings.TrimSpace(lines[i]), blockPrefix) {
			i++
		}

		inst, err := reg.NewInstance(kindID)
		if err != nil {
			var unknown *registry.UnknownKindError
			if errors.As(err, &unknown) {
				unknown.Line = headerLine
			}
			return nil, err
		}
		if err := inst.Deserialize(lines[start:i], start+1); err != nil {
			return nil, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// Encode renders a block instance sequence back into script text, preserving
// order exactly. Blocks are separated by a blank line.
func Encode(s script.Script) (string, error) {
	var b strings.Builder
	for i, inst := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(blockPrefix)
		b.WriteString(inst.KindID())
		b.WriteByte('\n')

		lines, err := inst.Serialize()
		if err != nil {
			return "", err
		}
		for _, line := range lines {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String(), nil
}
