package setting

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/zclconf/go-cty/cty"
)

// ParseValue parses the textual notation of a single setting value:
//
//	"fixed string"   $"interpolated <name>"   @variableName
//	true  false  42  -3.5
//	["a", @b]        {"k": "v", "n": @m}
//
// Trailing garbage after a complete value is an error. Callers attach line
// information; errors returned here describe only the literal itself.
func ParseValue(raw string) (Value, error) {
	s := &scanner{src: raw}
	s.skipSpace()
	v, err := s.value()
	if err != nil {
		return Value{}, err
	}
	s.skipSpace()
	if !s.eof() {
		return Value{}, fmt.Errorf("unexpected trailing text %q", s.rest())
	}
	return v, nil
}

type scanner struct {
	src string
	pos int
}

func (s *scanner) eof() bool    { return s.pos >= len(s.src) }
func (s *scanner) rest() string { return s.src[s.pos:] }

func (s *scanner) peek() byte {
	if s.eof() {
		return 0
	}
	return s.src[s.pos]
}

func (s *scanner) skipSpace() {
	for !s.eof() && (s.src[s.pos] == ' ' || s.src[s.pos] == '\t') {
		s.pos++
	}
}

func (s *scanner) value() (Value, error) {
	if s.eof() {
		return Value{}, fmt.Errorf("missing value")
	}
	switch c := s.peek(); {
	case c == '"':
		str, err := s.quoted()
		if err != nil {
			return Value{}, err
		}
		return FixedString(str), nil
	case c == '$':
		s.pos++
		if s.peek() != '"' {
			return Value{}, fmt.Errorf("expected quoted template after '$'")
		}
		str, err := s.quoted()
		if err != nil {
			return Value{}, err
		}
		return Interp(str), nil
	case c == '@':
		s.pos++
		name := s.identifier()
		if name == "" {
			return Value{}, fmt.Errorf("expected variable name after '@'")
		}
		return VariableRef(name), nil
	case c == '[':
		return s.list()
	case c == '{':
		return s.dict()
	default:
		return s.bareWord()
	}
}

// quoted consumes a double-quoted string honoring \" \\ \n \r \t escapes.
func (s *scanner) quoted() (string, error) {
	s.pos++ // opening quote
	var b strings.Builder
	for !s.eof() {
		c := s.src[s.pos]
		s.pos++
		switch c {
		case '"':
			return b.String(), nil
		case '\\':
			if s.eof() {
				return "", fmt.Errorf("unterminated escape sequence")
			}
			e := s.src[s.pos]
			s.pos++
			switch e {
			case '"':
				b.WriteByte('"')
			case '\\':
				b.WriteByte('\\')
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			default:
				return "", fmt.Errorf("unknown escape sequence '\\%c'", e)
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", fmt.Errorf("unterminated string literal")
}

func (s *scanner) identifier() string {
	start := s.pos
	for !s.eof() {
		c := rune(s.src[s.pos])
		if unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_' || c == '.' {
			s.pos++
			continue
		}
		break
	}
	return s.src[start:s.pos]
}

func (s *scanner) list() (Value, error) {
	s.pos++ // '['
	v := Value{Shape: List}
	s.skipSpace()
	if s.peek() == ']' {
		s.pos++
		return v, nil
	}
	for {
		s.skipSpace()
		item, err := s.value()
		if err != nil {
			return Value{}, err
		}
		v.Items = append(v.Items, item)
		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
		case ']':
			s.pos++
			return v, nil
		default:
			return Value{}, fmt.Errorf("expected ',' or ']' in list")
		}
	}
}

func (s *scanner) dict() (Value, error) {
	s.pos++ // '{'
	v := Value{Shape: Dict}
	s.skipSpace()
	if s.peek() == '}' {
		s.pos++
		return v, nil
	}
	for {
		s.skipSpace()
		if s.peek() != '"' {
			return Value{}, fmt.Errorf("expected quoted key in dict")
		}
		key, err := s.quoted()
		if err != nil {
			return Value{}, err
		}
		s.skipSpace()
		if s.peek() != ':' {
			return Value{}, fmt.Errorf("expected ':' after dict key %q", key)
		}
		s.pos++
		s.skipSpace()
		val, err := s.value()
		if err != nil {
			return Value{}, err
		}
		v.Pairs = append(v.Pairs, Pair{Key: key, Val: val})
		s.skipSpace()
		switch s.peek() {
		case ',':
			s.pos++
		case '}':
			s.pos++
			return v, nil
		default:
			return Value{}, fmt.Errorf("expected ',' or '}' in dict")
		}
	}
}

// bareWord handles the unquoted scalars: booleans and numbers.
func (s *scanner) bareWord() (Value, error) {
	start := s.pos
	for !s.eof() {
		c := s.src[s.pos]
		if c == ',' || c == ']' || c == '}' || c == ' ' || c == '\t' {
			break
		}
		s.pos++
	}
	word := s.src[start:s.pos]
	switch word {
	case "":
		return Value{}, fmt.Errorf("missing value")
	case "true":
		return FixedBool(true), nil
	case "false":
		return FixedBool(false), nil
	}
	num, err := cty.ParseNumberVal(word)
	if err != nil {
		return Value{}, fmt.Errorf("invalid literal %q", word)
	}
	return Value{Shape: Fixed, Fixed: num}, nil
}
