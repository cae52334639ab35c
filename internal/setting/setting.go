// Package setting implements the typed value model for block parameters.
//
// A setting's value takes one of five shapes: a fixed scalar (held as a
// cty.Value), a variable reference, an interpolated-string template, or a
// list/dict of nested values. Shapes are resolved to target-language
// expressions only at generation time; this package owns the in-memory model
// and its textual notation.
package setting

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// GlobalsPrefix marks a variable name as living in the runtime's persistent
// store instead of the generated program's local scope.
const GlobalsPrefix = "globals."

// Shape discriminates the value variants of a Setting.
type Shape int

const (
	// Fixed is a literal scalar known at edit time.
	Fixed Shape = iota
	// Variable is a reference to a runtime variable by name.
	Variable
	// Interpolated is a string template with <name> splices.
	Interpolated
	// List is an ordered sequence of nested values.
	List
	// Dict is an ordered string-keyed mapping of nested values.
	Dict
)

// Pair is one entry of a Dict value. Order is preserved so that the textual
// notation round-trips deterministically.
type Pair struct {
	Key string
	Val Value
}

// Value is a single parameter value in one of the five shapes. Exactly one of
// the shape-specific fields is meaningful, selected by Shape.
type Value struct {
	Shape    Shape
	Fixed    cty.Value
	Ref      string
	Template string
	Items    []Value
	Pairs    []Pair
}

// Setting binds a descriptor parameter name to its current value.
type Setting struct {
	Name  string
	Value Value
}

// FixedString is a convenience constructor for the most common value shape.
func FixedString(s string) Value {
	return Value{Shape: Fixed, Fixed: cty.StringVal(s)}
}

// FixedBool constructs a fixed boolean value.
func FixedBool(b bool) Value {
	return Value{Shape: Fixed, Fixed: cty.BoolVal(b)}
}

// VariableRef constructs a variable-reference value.
func VariableRef(name string) Value {
	return Value{Shape: Variable, Ref: name}
}

// Interp constructs an interpolated-template value.
func Interp(template string) Value {
	return Value{Shape: Interpolated, Template: template}
}

// Equal reports deep equality between two values, used by round-trip tests
// and by the codec when deciding whether a setting still holds its default.
func (v Value) Equal(o Value) bool {
	if v.Shape != o.Shape {
		return false
	}
	switch v.Shape {
	case Fixed:
		return v.Fixed.RawEquals(o.Fixed)
	case Variable:
		return v.Ref == o.Ref
	case Interpolated:
		return v.Template == o.Template
	case List:
		if len(v.Items) != len(o.Items) {
			return false
		}
		for i := range v.Items {
			if !v.Items[i].Equal(o.Items[i]) {
				return false
			}
		}
		return true
	case Dict:
		if len(v.Pairs) != len(o.Pairs) {
			return false
		}
		for i := range v.Pairs {
			if v.Pairs[i].Key != o.Pairs[i].Key || !v.Pairs[i].Val.Equal(o.Pairs[i].Val) {
				return false
			}
		}
		return true
	}
	return false
}

// CheckType validates a value against the declared parameter type. Fixed
// scalars must be convertible to the declared cty type; list and dict shapes
// recurse into their element type. Variable and interpolated shapes are
// always accepted because they resolve to strings at runtime.
func (v Value) CheckType(want cty.Type) error {
	switch v.Shape {
	case Variable, Interpolated:
		return nil
	case Fixed:
		return checkFixed(v.Fixed, want)
	case List:
		elem := cty.String
		if want.IsListType() || want.IsSetType() {
			elem = want.ElementType()
		}
		for _, item := range v.Items {
			if err := item.CheckType(elem); err != nil {
				return err
			}
		}
		return nil
	case Dict:
		elem := cty.String
		if want.IsMapType() {
			elem = want.ElementType()
		}
		for _, p := range v.Pairs {
			if err := p.Val.CheckType(elem); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown value shape %d", v.Shape)
}

func checkFixed(val cty.Value, want cty.Type) error {
	if want == cty.NilType || want.Equals(cty.DynamicPseudoType) {
		return nil
	}
	target := want
	if want.IsListType() || want.IsMapType() || want.IsSetType() {
		// Collection parameters carry their element values as nested
		// settings; a bare fixed scalar is checked against the element type.
		target = want.ElementType()
	}
	if _, err := convert.Convert(val, target); err != nil {
		return fmt.Errorf("value %s is not a valid %s: %w",
			val.Type().FriendlyName(), target.FriendlyName(), err)
	}
	return nil
}
