package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blockscript/internal/setting"
)

func TestResolve(t *testing.T) {
	testCases := []struct {
		name     string
		value    setting.Value
		expected string
	}{
		{
			name:     "fixed string",
			value:    setting.FixedString("hello"),
			expected: `"hello"`,
		},
		{
			name:     "fixed string with quote",
			value:    setting.FixedString(`say "hi"`),
			expected: `"say \"hi\""`,
		},
		{
			name:     "fixed bool",
			value:    setting.FixedBool(true),
			expected: `true`,
		},
		{
			name:     "variable reference",
			value:    setting.VariableRef("parsed"),
			expected: `parsed`,
		},
		{
			name:     "variable with invalid characters",
			value:    setting.VariableRef("my-var"),
			expected: `my_var`,
		},
		{
			name:     "globals reference",
			value:    setting.VariableRef("globals.token"),
			expected: `Globals.Get("token")`,
		},
		{
			name:     "reserved source read",
			value:    setting.VariableRef("SOURCE"),
			expected: `data.ResponseSource`,
		},
		{
			name:     "interpolated with splices",
			value:    setting.Interp("user=<USER>&pass=<PASS>"),
			expected: `$"user={USER}&pass={PASS}"`,
		},
		{
			name:     "interpolated with reserved splice",
			value:    setting.Interp("<SOURCE>"),
			expected: `$"{data.ResponseSource}"`,
		},
		{
			name:     "interpolated with globals splice",
			value:    setting.Interp("token=<globals.token>"),
			expected: `$"token={Globals.Get(\"token\")}"`,
		},
		{
			name:     "interpolated escapes braces",
			value:    setting.Interp(`{"json": 1}`),
			expected: `$"{{\"json\": 1}}"`,
		},
		{
			name:     "interpolated keeps non-identifier angle text",
			value:    setting.Interp("a < b > c"),
			expected: `$"a < b > c"`,
		},
		{
			name: "list",
			value: setting.Value{Shape: setting.List, Items: []setting.Value{
				setting.FixedString("a"),
				setting.VariableRef("b"),
			}},
			expected: `new List<string> { "a", b }`,
		},
		{
			name:     "empty list",
			value:    setting.Value{Shape: setting.List},
			expected: `new List<string>()`,
		},
		{
			name: "dict",
			value: setting.Value{Shape: setting.Dict, Pairs: []setting.Pair{
				{Key: "Accept", Val: setting.FixedString("*/*")},
			}},
			expected: `new Dictionary<string, string> { { "Accept", "*/*" } }`,
		},
		{
			name:     "empty dict",
			value:    setting.Value{Shape: setting.Dict},
			expected: `new Dictionary<string, string>()`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Resolve(tc.value)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestSanitizeIdentifier(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "already valid", raw: "parsed", expected: "parsed"},
		{name: "dashes replaced", raw: "my-var", expected: "my_var"},
		{name: "spaces replaced", raw: "my var", expected: "my_var"},
		{name: "leading digit prefixed", raw: "1st", expected: "_1st"},
		{name: "empty becomes underscore", raw: "", expected: "_"},
		{name: "globals prefix preserved", raw: "globals.my-token", expected: "globals.my_token"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, SanitizeIdentifier(tc.raw))
		})
	}
}

func TestContext_EmitAssignment(t *testing.T) {
	t.Run("declares once then assigns", func(t *testing.T) {
		ctx := NewContext()
		ctx.EmitAssignment("parsed", `"a"`, false)
		ctx.EmitAssignment("parsed", `"b"`, false)

		assert.Equal(t, "var parsed = \"a\";\nparsed = \"b\";\n", ctx.Source())
		assert.Equal(t, []string{"parsed"}, ctx.DeclaredVars())
	})

	t.Run("disabled block declares but does not register", func(t *testing.T) {
		ctx := NewContext()
		ctx.EmitAssignment("parsed", `"a"`, true)

		assert.Equal(t, "var parsed = \"a\";\n", ctx.Source())
		assert.Empty(t, ctx.DeclaredVars())
	})

	t.Run("globals target never declares", func(t *testing.T) {
		ctx := NewContext()
		ctx.EmitAssignment("globals.token", `"a"`, false)
		ctx.EmitAssignment("globals.token", `"b"`, false)

		assert.Equal(t, "Globals.Set(\"token\", \"a\");\nGlobals.Set(\"token\", \"b\");\n", ctx.Source())
		assert.Empty(t, ctx.DeclaredVars())
	})

	t.Run("declaration order preserved", func(t *testing.T) {
		ctx := NewContext()
		ctx.EmitAssignment("b", `1`, false)
		ctx.EmitAssignment("a", `2`, false)
		ctx.EmitAssignment("c", `3`, false)

		assert.Equal(t, []string{"b", "a", "c"}, ctx.DeclaredVars())
	})
}
