package descriptor

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/blockscript/internal/schema"
	"github.com/vk/blockscript/internal/setting"
)

// ParseManifest decodes a catalog manifest file into descriptors. The
// filename is used only for diagnostics.
func ParseManifest(filename string, src []byte) ([]*Descriptor, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse catalog manifest %s: %s", filename, diags.Error())
	}

	var catalog schema.CatalogFile
	diags = gohcl.DecodeBody(file.Body, nil, &catalog)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode catalog manifest %s: %s", filename, diags.Error())
	}

	out := make([]*Descriptor, 0, len(catalog.Blocks))
	for _, bm := range catalog.Blocks {
		d, err := fromManifest(bm)
		if err != nil {
			return nil, fmt.Errorf("catalog manifest %s: %w", filename, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func fromManifest(bm *schema.BlockManifest) (*Descriptor, error) {
	name := bm.Name
	if name == "" {
		name = bm.KindID
	}

	params := make([]ParamSchema, 0, len(bm.Inputs))
	seen := make(map[string]struct{}, len(bm.Inputs))
	for _, in := range bm.Inputs {
		if _, dup := seen[in.Name]; dup {
			return nil, fmt.Errorf("block %q: duplicate input %q", bm.KindID, in.Name)
		}
		seen[in.Name] = struct{}{}

		ty, diags := typeFromExpr(in.Type)
		if diags.HasErrors() {
			return nil, fmt.Errorf("block %q, input %q: %s", bm.KindID, in.Name, diags.Error())
		}

		def, err := defaultValue(in, ty)
		if err != nil {
			return nil, fmt.Errorf("block %q, input %q: %w", bm.KindID, in.Name, err)
		}

		params = append(params, ParamSchema{
			Name:        in.Name,
			Type:        ty,
			Description: in.Description,
			Default:     def,
			Options:     in.Options,
		})
	}

	return New(bm.KindID, name, bm.Description, params), nil
}

// defaultValue derives the seed value for a parameter. An explicit default
// must conform to the declared type; the `shape = "interpolated"` attribute
// turns a string default into a template. Absent defaults fall back to the
// type's zero value.
func defaultValue(in *schema.InputDefinition, ty cty.Type) (setting.Value, error) {
	switch in.Shape {
	case "", "fixed":
	case "interpolated":
		if in.Default == nil || in.Default.Type() != cty.String {
			return setting.Value{}, fmt.Errorf("shape %q requires a string default", in.Shape)
		}
		return setting.Interp(in.Default.AsString()), nil
	default:
		return setting.Value{}, fmt.Errorf("unknown shape %q (want \"fixed\" or \"interpolated\")", in.Shape)
	}

	if in.Default == nil {
		return zeroValue(ty), nil
	}

	val, err := convert.Convert(*in.Default, defaultTargetType(ty))
	if err != nil {
		return setting.Value{}, fmt.Errorf("default is not a valid %s: %w", ty.FriendlyName(), err)
	}
	if len(in.Options) > 0 {
		if val.Type() != cty.String {
			return setting.Value{}, fmt.Errorf("options require a string parameter")
		}
		allowed := ParamSchema{Options: in.Options}
		if !allowed.AllowsValue(val.AsString()) {
			return setting.Value{}, fmt.Errorf("default %q is not one of the allowed options", val.AsString())
		}
	}
	return fixedToValue(val), nil
}

func defaultTargetType(ty cty.Type) cty.Type {
	if ty.Equals(cty.DynamicPseudoType) {
		return cty.String
	}
	return ty
}

func zeroValue(ty cty.Type) setting.Value {
	switch {
	case ty == cty.Bool:
		return setting.FixedBool(false)
	case ty == cty.Number:
		return setting.Value{Shape: setting.Fixed, Fixed: cty.Zero}
	case ty.IsListType() || ty.IsSetType():
		return setting.Value{Shape: setting.List}
	case ty.IsMapType():
		return setting.Value{Shape: setting.Dict}
	default:
		return setting.FixedString("")
	}
}

// fixedToValue lowers a cty default into the setting value model, splitting
// collections into nested values so they serialize in the script notation.
func fixedToValue(val cty.Value) setting.Value {
	ty := val.Type()
	switch {
	case val.IsNull():
		return setting.FixedString("")
	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		out := setting.Value{Shape: setting.List}
		for it := val.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			out.Items = append(out.Items, fixedToValue(elem))
		}
		return out
	case ty.IsMapType() || ty.IsObjectType():
		out := setting.Value{Shape: setting.Dict}
		for it := val.ElementIterator(); it.Next(); {
			k, elem := it.Element()
			out.Pairs = append(out.Pairs, setting.Pair{Key: k.AsString(), Val: fixedToValue(elem)})
		}
		return out
	default:
		return setting.Value{Shape: setting.Fixed, Fixed: val}
	}
}
