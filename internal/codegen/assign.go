package codegen

import (
	"fmt"
	"strings"

	"github.com/vk/blockscript/internal/setting"
)

// EmitAssignment writes the statement assigning expr to the named output
// variable, applying the declaration-once policy:
//
//   - a globals-prefixed name writes through the persistent store and never
//     declares anything;
//   - an already-declared name gets a plain assignment;
//   - otherwise a `var` declaration is emitted and, unless the owning block
//     is disabled, the name joins the declared set.
//
// The declared name (after sanitization) is returned so callers can refer to
// it in follow-up statements.
func (c *Context) EmitAssignment(outputVariable, expr string, disabled bool) string {
	name := SanitizeIdentifier(outputVariable)
	if strings.HasPrefix(name, setting.GlobalsPrefix) {
		key := strings.TrimPrefix(name, setting.GlobalsPrefix)
		c.EmitLine(fmt.Sprintf("Globals.Set(%s, %s);", Quote(key), expr))
		return name
	}
	if c.IsDeclared(name) {
		c.EmitLine(fmt.Sprintf("%s = %s;", name, expr))
		return name
	}
	c.EmitLine(fmt.Sprintf("var %s = %s;", name, expr))
	if !disabled {
		c.Declare(name)
	}
	return name
}

// EmitCapture marks a variable for collection into the task's result set.
// The statement is a hint to the runtime, not a value transform.
func (c *Context) EmitCapture(name string) {
	c.EmitLine(fmt.Sprintf("data.MarkForCapture(%s);", Quote(SanitizeIdentifier(name))))
}
