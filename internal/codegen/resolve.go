package codegen

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/zclconf/go-cty/cty"

	"github.com/vk/blockscript/internal/setting"
)

// reservedReads maps well-known runtime names to their accessor expressions.
// These are maintained by the enclosing program template, not declared by
// generated statements.
var reservedReads = map[string]string{
	"SOURCE":       "data.ResponseSource",
	"RESPONSECODE": "data.ResponseCode",
	"ADDRESS":      "data.Address",
}

// Resolve translates a setting value into a C# expression. Fixed scalars
// become literals, variable references become reads (with the globals prefix
// routed to the persistent store), interpolated templates become $"..."
// strings, and collections become collection initializers. Well-typed values
// never fail; an unknown shape is a programmer error.
func Resolve(v setting.Value) (string, error) {
	switch v.Shape {
	case setting.Fixed:
		return fixedLiteral(v.Fixed), nil
	case setting.Variable:
		return readExpr(v.Ref), nil
	case setting.Interpolated:
		return interpExpr(v.Template), nil
	case setting.List:
		elems := make([]string, 0, len(v.Items))
		for _, item := range v.Items {
			e, err := Resolve(item)
			if err != nil {
				return "", err
			}
			elems = append(elems, e)
		}
		if len(elems) == 0 {
			return "new List<string>()", nil
		}
		return "new List<string> { " + strings.Join(elems, ", ") + " }", nil
	case setting.Dict:
		entries := make([]string, 0, len(v.Pairs))
		for _, p := range v.Pairs {
			e, err := Resolve(p.Val)
			if err != nil {
				return "", err
			}
			entries = append(entries, fmt.Sprintf("{ %s, %s }", Quote(p.Key), e))
		}
		if len(entries) == 0 {
			return "new Dictionary<string, string>()", nil
		}
		return "new Dictionary<string, string> { " + strings.Join(entries, ", ") + " }", nil
	}
	return "", fmt.Errorf("cannot resolve value shape %d", v.Shape)
}

func fixedLiteral(val cty.Value) string {
	switch {
	case val.IsNull():
		return `""`
	case val.Type() == cty.String:
		return Quote(val.AsString())
	case val.Type() == cty.Bool:
		if val.True() {
			return "true"
		}
		return "false"
	case val.Type() == cty.Number:
		return val.AsBigFloat().Text('f', -1)
	default:
		return Quote(val.GoString())
	}
}

// readExpr emits the expression that reads a variable by name.
func readExpr(name string) string {
	if strings.HasPrefix(name, setting.GlobalsPrefix) {
		key := strings.TrimPrefix(name, setting.GlobalsPrefix)
		return fmt.Sprintf("Globals.Get(%s)", Quote(key))
	}
	if expr, ok := reservedReads[name]; ok {
		return expr
	}
	return SanitizeIdentifier(name)
}

// interpExpr rewrites an interpolated template into a C# interpolated string.
// <name> splices become {read-expression}; everything else is escaped
// verbatim, including braces.
func interpExpr(template string) string {
	var b strings.Builder
	b.WriteString(`$"`)
	for i := 0; i < len(template); {
		c := template[i]
		if c == '<' {
			if end, name, ok := spliceAt(template, i); ok {
				b.WriteByte('{')
				b.WriteString(readExpr(name))
				b.WriteByte('}')
				i = end
				continue
			}
		}
		writeInterpByte(&b, c)
		i++
	}
	b.WriteByte('"')
	return b.String()
}

// spliceAt reports whether template[i:] starts a <name> splice and, if so,
// the index just past the closing '>' and the enclosed name.
func spliceAt(template string, i int) (int, string, bool) {
	end := strings.IndexByte(template[i:], '>')
	if end < 0 {
		return 0, "", false
	}
	name := template[i+1 : i+end]
	if name == "" || !isSpliceName(name) {
		return 0, "", false
	}
	return i + end + 1, name, true
}

func isSpliceName(name string) bool {
	for i, r := range name {
		if r == '_' || r == '.' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return false
	}
	return true
}

func writeInterpByte(b *strings.Builder, c byte) {
	switch c {
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
	case '{':
		b.WriteString("{{")
	case '}':
		b.WriteString("}}")
	default:
		b.WriteByte(c)
	}
}
