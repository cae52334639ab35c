package descriptor

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// typeFromExpr converts an HCL type expression from a manifest (`string`,
// `bool`, `number`, `any`, or `list(...)`/`map(...)`/`set(...)`) into its
// cty.Type.
func typeFromExpr(expr hcl.Expression) (cty.Type, hcl.Diagnostics) {
	var diags hcl.Diagnostics

	if call, callDiags := hcl.ExprCall(expr); !callDiags.HasErrors() {
		if len(call.Arguments) != 1 {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid type constructor",
				Detail:   fmt.Sprintf("The type constructor '%s' takes exactly one element type argument.", call.Name),
				Subject:  expr.Range().Ptr(),
			})
			return cty.NilType, diags
		}
		elem, elemDiags := typeFromExpr(call.Arguments[0])
		diags = append(diags, elemDiags...)
		if elemDiags.HasErrors() {
			return cty.NilType, diags
		}
		switch call.Name {
		case "list":
			return cty.List(elem), diags
		case "map":
			return cty.Map(elem), diags
		case "set":
			return cty.Set(elem), diags
		default:
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported type constructor",
				Detail:   fmt.Sprintf("The constructor '%s' is not a valid type. Supported constructors are: list, map, set.", call.Name),
				Subject:  expr.Range().Ptr(),
			})
			return cty.NilType, diags
		}
	}

	traversal, travDiags := hcl.AbsTraversalForExpr(expr)
	if travDiags.HasErrors() || len(traversal) != 1 {
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Invalid type specification",
			Detail:   "The 'type' attribute must be a type keyword like 'string', 'number', or 'bool', or a constructor like 'map(string)'.",
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags
	}

	switch name := traversal.RootName(); name {
	case "string":
		return cty.String, diags
	case "number":
		return cty.Number, diags
	case "bool":
		return cty.Bool, diags
	case "any":
		return cty.DynamicPseudoType, diags
	default:
		diags = append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported type",
			Detail:   fmt.Sprintf("The keyword '%s' is not a valid type. Supported types are: string, number, bool, any.", name),
			Subject:  expr.Range().Ptr(),
		})
		return cty.NilType, diags
	}
}
