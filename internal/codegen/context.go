// Package codegen holds the shared state and emission helpers used while
// translating a block sequence into C# source for the external runtime.
package codegen

import "strings"

// Context is the per-compilation state threaded through every block's
// Generate call: the output buffer plus the set of variables the emitted
// program has already declared. It is script-local and never shared between
// compilations, so compiling many scripts concurrently is safe.
type Context struct {
	buf      strings.Builder
	declared []string
	index    map[string]struct{}
}

// NewContext returns a Context with an empty output buffer and no declared
// variables.
func NewContext() *Context {
	return &Context{index: make(map[string]struct{})}
}

// EmitLine appends one statement line to the generated program.
func (c *Context) EmitLine(line string) {
	c.buf.WriteString(line)
	c.buf.WriteByte('\n')
}

// Source returns the program text emitted so far.
func (c *Context) Source() string {
	return c.buf.String()
}

// IsDeclared reports whether the named variable has already been declared in
// the emitted program.
func (c *Context) IsDeclared(name string) bool {
	_, ok := c.index[name]
	return ok
}

// Declare records a variable as declared. Insertion order is preserved.
func (c *Context) Declare(name string) {
	if _, ok := c.index[name]; ok {
		return
	}
	c.index[name] = struct{}{}
	c.declared = append(c.declared, name)
}

// DeclaredVars returns the declared variable names in declaration order.
func (c *Context) DeclaredVars() []string {
	out := make([]string, len(c.declared))
	copy(out, c.declared)
	return out
}
