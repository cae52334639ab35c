// Package schema declares the HCL structures for block catalog manifests.
// A manifest describes one or more block kinds: the stable kind identifier,
// a display name, and the typed parameters a block instance of that kind
// carries.
package schema

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// InputDefinition defines a single parameter of a block kind.
type InputDefinition struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     *cty.Value     `hcl:"default,optional"`
	Options     []string       `hcl:"options,optional"`
	Shape       string         `hcl:"shape,optional"`
}

// BlockManifest represents one `block` block of a catalog manifest file.
type BlockManifest struct {
	KindID      string             `hcl:"kind,label"`
	Name        string             `hcl:"name,optional"`
	Description string             `hcl:"description,optional"`
	Inputs      []*InputDefinition `hcl:"input,block"`
}

// CatalogFile represents the top-level structure of a catalog manifest file.
type CatalogFile struct {
	Blocks []*BlockManifest `hcl:"block,block"`
	Body   hcl.Body         `hcl:",remain"`
}
