// Package compiler assembles a whole script into the linear statement
// sequence consumed by the external runtime.
package compiler

import (
	"github.com/vk/blockscript/internal/codegen"
	"github.com/vk/blockscript/internal/script"
)

// Generate translates the instance sequence into target source, threading a
// single declared-variable set through every block in order. Disabled
// instances are skipped here, centrally: they contribute no statements and
// no variable declarations. Any block failure aborts the whole compilation;
// a partially generated program is unsafe to execute.
func Generate(s script.Script) (string, error) {
	ctx := codegen.NewContext()
	for _, inst := range s {
		if inst.Disabled() {
			continue
		}
		if err := inst.Generate(ctx); err != nil {
			return "", err
		}
	}
	return ctx.Source(), nil
}
