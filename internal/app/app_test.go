package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blockscript/internal/testutil"
)

const sampleScript = `BLOCK:Parse
MODE:LR
input = "hello how are you"
leftDelim = "hello"
rightDelim = "you"
=> VAR @parsed
`

func writeScript(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "script.txt")
	require.NoError(t, os.WriteFile(path, []byte(text), 0644))
	return path
}

func newTestApp(t *testing.T, out *testutil.SafeBuffer, cfg *Config) *App {
	t.Helper()
	return NewApp(out, cfg)
}

func TestRun_Check(t *testing.T) {
	path := writeScript(t, sampleScript)
	cfg, err := NewConfig(Config{ScriptPath: path, Action: ActionCheck, LogLevel: "warn", LogFormat: "text"})
	require.NoError(t, err)

	var out testutil.SafeBuffer
	a := newTestApp(t, &out, cfg)
	require.NoError(t, a.Run(context.Background(), cfg))
	assert.Contains(t, out.String(), "1 blocks, ok")
}

func TestRun_Compile(t *testing.T) {
	path := writeScript(t, sampleScript)
	cfg, err := NewConfig(Config{ScriptPath: path, Action: ActionCompile, LogLevel: "warn", LogFormat: "text"})
	require.NoError(t, err)

	var out testutil.SafeBuffer
	a := newTestApp(t, &out, cfg)
	require.NoError(t, a.Run(context.Background(), cfg))
	assert.Equal(t,
		"var parsed = Functions.ParseLR(data, \"hello how are you\", \"hello\", \"you\", true, \"\", \"\");\n",
		out.String())
}

func TestRun_CompileToFile(t *testing.T) {
	path := writeScript(t, sampleScript)
	outPath := filepath.Join(t.TempDir(), "out.cs")
	cfg, err := NewConfig(Config{
		ScriptPath: path,
		Action:     ActionCompile,
		OutputPath: outPath,
		LogLevel:   "warn",
		LogFormat:  "text",
	})
	require.NoError(t, err)

	var out testutil.SafeBuffer
	a := newTestApp(t, &out, cfg)
	require.NoError(t, a.Run(context.Background(), cfg))

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), "Functions.ParseLR(")
	assert.Empty(t, out.String())
}

func TestRun_Fmt(t *testing.T) {
	// Messy but valid input normalizes to the canonical rendering.
	path := writeScript(t, "BLOCK:Parse\n\n  MODE:LR\nleftDelim   = \"a\"\nrightDelim = \"b\"\n=> var @parsed\n")
	cfg, err := NewConfig(Config{ScriptPath: path, Action: ActionFmt, LogLevel: "warn", LogFormat: "text"})
	require.NoError(t, err)

	var out testutil.SafeBuffer
	a := newTestApp(t, &out, cfg)
	require.NoError(t, a.Run(context.Background(), cfg))
	assert.Equal(t, "BLOCK:Parse\nMODE:LR\nleftDelim = \"a\"\nrightDelim = \"b\"\n=> VAR @parsed\n", out.String())
}

func TestRun_DecodeErrorNamesScript(t *testing.T) {
	path := writeScript(t, "BLOCK:Teleport\n")
	cfg, err := NewConfig(Config{ScriptPath: path, Action: ActionCheck, LogLevel: "warn", LogFormat: "text"})
	require.NoError(t, err)

	var out testutil.SafeBuffer
	a := newTestApp(t, &out, cfg)
	err = a.Run(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
	assert.Contains(t, err.Error(), "Teleport")
}

func TestRun_MissingFile(t *testing.T) {
	cfg, err := NewConfig(Config{ScriptPath: "/nonexistent/script.txt", Action: ActionCheck, LogLevel: "warn", LogFormat: "text"})
	require.NoError(t, err)

	var out testutil.SafeBuffer
	a := newTestApp(t, &out, cfg)
	require.Error(t, a.Run(context.Background(), cfg))
}

func TestNewApp_CatalogOverride(t *testing.T) {
	dir := t.TempDir()
	manifest := `
block "Parse" {
  name = "Parse (patched)"

  input "input" {
    type    = string
    shape   = "interpolated"
    default = "<SOURCE>"
  }
  input "leftDelim" { type = string }
  input "rightDelim" { type = string }
  input "caseSensitive" {
    type    = bool
    default = true
  }
  input "cssSelector" { type = string }
  input "attributeName" {
    type    = string
    default = "innerHTML"
  }
  input "jToken" { type = string }
  input "pattern" { type = string }
  input "outputFormat" { type = string }
  input "prefix" { type = string }
  input "suffix" { type = string }
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "parse.hcl"), []byte(manifest), 0644))

	cfg, err := NewConfig(Config{
		ScriptPath:  "unused.txt",
		CatalogPath: dir,
		Action:      ActionCheck,
		LogLevel:    "warn",
		LogFormat:   "text",
	})
	require.NoError(t, err)

	var out testutil.SafeBuffer
	a := newTestApp(t, &out, cfg)
	d, err := a.Registry().Get("Parse")
	require.NoError(t, err)
	assert.Equal(t, "Parse (patched)", d.Name)
}

func TestNewConfig_Validation(t *testing.T) {
	_, err := NewConfig(Config{Action: ActionCheck})
	require.Error(t, err)

	_, err = NewConfig(Config{ScriptPath: "x", Action: "explode"})
	require.Error(t, err)
}
