package script

import (
	"fmt"
	"strings"

	"github.com/vk/blockscript/internal/codegen"
)

const outputMarker = "=>"

// OutputDecl is the output declaration shared by value-producing kinds: the
// trailing `=> <CAP|VAR> @<identifier>` line naming the variable a block
// assigns and whether it is marked for capture.
type OutputDecl struct {
	variable  string
	IsCapture bool
}

// Variable returns the output variable name.
func (o *OutputDecl) Variable() string { return o.variable }

// SetVariable assigns the output variable, sanitizing the name into a valid
// identifier.
func (o *OutputDecl) SetVariable(name string) {
	o.variable = codegen.SanitizeIdentifier(strings.TrimSpace(name))
}

// IsOutputLine reports whether a body line is an output declaration.
func IsOutputLine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), outputMarker)
}

// ParseOutputLine consumes a `=> <CAP|VAR> @<identifier>` declaration. The
// CAP/VAR token is matched case-insensitively; a malformed declaration is a
// line-tagged parse error.
func (o *OutputDecl) ParseOutputLine(line string, lineNo int) error {
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), outputMarker))
	fields := strings.Fields(rest)
	if len(fields) != 2 {
		return NewParseError(lineNo, line, "expected '=> <CAP|VAR> @<identifier>'")
	}
	switch strings.ToUpper(fields[0]) {
	case "CAP":
		o.IsCapture = true
	case "VAR":
		o.IsCapture = false
	default:
		return NewParseError(lineNo, line, fmt.Sprintf("unknown output type %q, expected CAP or VAR", fields[0]))
	}
	if !strings.HasPrefix(fields[1], "@") || len(fields[1]) == 1 {
		return NewParseError(lineNo, line, "output variable must be written as @<identifier>")
	}
	o.SetVariable(strings.TrimPrefix(fields[1], "@"))
	return nil
}

// OutputLine renders the declaration back into its textual form.
func (o *OutputDecl) OutputLine() string {
	kind := "VAR"
	if o.IsCapture {
		kind = "CAP"
	}
	return fmt.Sprintf("%s %s @%s", outputMarker, kind, o.variable)
}
