package registry_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/blockscript/blocks/parse"
	"github.com/vk/blockscript/internal/descriptor"
	"github.com/vk/blockscript/internal/registry"
	"github.com/vk/blockscript/internal/testutil"
)

func TestRegistry_Get(t *testing.T) {
	reg := testutil.NewRegistry(t)

	d, err := reg.Get("Parse")
	require.NoError(t, err)
	assert.Equal(t, "Parse", d.KindID)

	_, err = reg.Get("Teleport")
	require.Error(t, err)
	var unknown *registry.UnknownKindError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "Teleport", unknown.KindID)
}

func TestRegistry_NewInstance(t *testing.T) {
	reg := testutil.NewRegistry(t)

	inst, err := reg.NewInstance("Parse")
	require.NoError(t, err)
	require.IsType(t, &parse.Block{}, inst)
	assert.Equal(t, "Parse", inst.KindID())
	assert.Equal(t, "Parse", inst.Label())
	assert.False(t, inst.Disabled())

	_, err = reg.NewInstance("Teleport")
	require.Error(t, err)
}

func TestRegistry_Kinds(t *testing.T) {
	reg := testutil.NewRegistry(t)
	assert.Equal(t, []string{"Code", "Function", "KeyCheck", "Parse", "Request"}, reg.Kinds())
}

func TestRegistry_DuplicateKindPanics(t *testing.T) {
	reg := registry.New()
	mod := &parse.Module{}
	mod.Register(reg)

	assert.Panics(t, func() {
		mod.Register(reg)
	})
}

func TestRegistry_ValidateOrphanDescriptor(t *testing.T) {
	reg := testutil.NewRegistry(t)
	reg.AddDescriptor(descriptor.New("Ghost", "Ghost", "", nil))

	err := reg.Validate(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Ghost")
}

func TestRegistry_LoadCatalogDir(t *testing.T) {
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

	reg := testutil.NewRegistry(t)
	ctx, _ := testutil.Ctx(t)
	require.NoError(t, reg.LoadCatalogDir(ctx, dir))
	require.NoError(t, reg.Validate(ctx))

	d, err := reg.Get("Parse")
	require.NoError(t, err)
	assert.Equal(t, "Parse (patched)", d.Name)
}

func TestRegistry_LoadCatalogDirEmpty(t *testing.T) {
	reg := testutil.NewRegistry(t)
	ctx, logs := testutil.Ctx(t)

	require.NoError(t, reg.LoadCatalogDir(ctx, t.TempDir()))
	assert.Contains(t, logs.String(), "No .hcl catalog files found")
}

func TestRegistry_LoadCatalogDirBadManifest(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.hcl"), []byte(`block "X" {`), 0644))

	reg := testutil.NewRegistry(t)
	ctx, _ := testutil.Ctx(t)
	require.Error(t, reg.LoadCatalogDir(ctx, dir))
}
