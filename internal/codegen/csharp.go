package codegen

import (
	"strings"
	"unicode"
)

// Quote renders s as a C# string literal.
func Quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// SanitizeIdentifier coerces an arbitrary name into a valid C# identifier:
// every invalid rune becomes '_' and a leading digit gets a '_' prefix.
// A name carrying the globals prefix keeps the prefix and has only the
// remainder sanitized.
func SanitizeIdentifier(name string) string {
	const prefix = "globals."
	if strings.HasPrefix(name, prefix) {
		return prefix + sanitize(strings.TrimPrefix(name, prefix))
	}
	return sanitize(name)
}

func sanitize(name string) string {
	if name == "" {
		return "_"
	}
	var b strings.Builder
	for i, r := range name {
		valid := r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))
		if i == 0 && unicode.IsDigit(r) {
			b.WriteByte('_')
			b.WriteRune(r)
			continue
		}
		if valid {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}
