package script

import "fmt"

// maxExcerptLen caps the offending-line excerpt carried by diagnostics, per
// the editor-display contract.
const maxExcerptLen = 50

// Excerpt trims a source line down to the length diagnostics may carry.
func Excerpt(line string) string {
	if len(line) > maxExcerptLen {
		return line[:maxExcerptLen]
	}
	return line
}

// ParseError reports malformed script text. Line is 1-based and refers to
// the original source; Excerpt is at most 50 characters of the offending
// line.
type ParseError struct {
	Line    int
	Excerpt string
	Msg     string
}

// NewParseError builds a ParseError for the given source line, truncating
// the excerpt as required by the diagnostics contract.
func NewParseError(line int, text, msg string) *ParseError {
	return &ParseError{Line: line, Excerpt: Excerpt(text), Msg: msg}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s (near %q)", e.Line, e.Msg, e.Excerpt)
}

// InvalidSettingError reports a settings-map key that is not declared by the
// owning block's descriptor. It surfaces during encode or generate, never
// silently.
type InvalidSettingError struct {
	KindID string
	Name   string
}

func (e *InvalidSettingError) Error() string {
	return fmt.Sprintf("block %q has no parameter named %q", e.KindID, e.Name)
}

// UnsupportedOperationError reports a generate call for a kind/mode
// combination with no defined mapping.
type UnsupportedOperationError struct {
	KindID string
	Op     string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("block %q cannot generate code for %q", e.KindID, e.Op)
}
