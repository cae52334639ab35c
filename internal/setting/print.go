package setting

import (
	"fmt"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// String renders the value in its canonical textual notation, the exact
// inverse of ParseValue.
func (v Value) String() string {
	var b strings.Builder
	v.write(&b)
	return b.String()
}

func (v Value) write(b *strings.Builder) {
	switch v.Shape {
	case Fixed:
		writeFixed(b, v.Fixed)
	case Variable:
		b.WriteByte('@')
		b.WriteString(v.Ref)
	case Interpolated:
		b.WriteByte('$')
		writeQuoted(b, v.Template)
	case List:
		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteString(", ")
			}
			item.write(b)
		}
		b.WriteByte(']')
	case Dict:
		b.WriteByte('{')
		for i, p := range v.Pairs {
			if i > 0 {
				b.WriteString(", ")
			}
			writeQuoted(b, p.Key)
			b.WriteString(": ")
			p.Val.write(b)
		}
		b.WriteByte('}')
	}
}

func writeFixed(b *strings.Builder, val cty.Value) {
	switch {
	case val.IsNull():
		b.WriteString(`""`)
	case val.Type() == cty.String:
		writeQuoted(b, val.AsString())
	case val.Type() == cty.Bool:
		if val.True() {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case val.Type() == cty.Number:
		b.WriteString(val.AsBigFloat().Text('f', -1))
	default:
		// Unexpected fixed types degrade to their string form rather than
		// dropping the setting.
		b.WriteString(fmt.Sprintf("%q", val.GoString()))
	}
}

func writeQuoted(b *strings.Builder, s string) {
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
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
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
}
