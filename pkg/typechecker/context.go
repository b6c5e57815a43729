package typechecker

import (
	"fmt"

	"github.com/ZaydH/cis561/pkg/ast"
)

// unit is one inference unit: a constructor, a method or the top-level
// block. Its symbol table lives as long as the unit's fixed-point loop.
type unit struct {
	class   *Class
	method  *Method
	symbols *SymbolTable
}

func (u *unit) inConstructor() bool {
	return u.method != nil && u.method.IsConstructor()
}

func (u *unit) label() string {
	if u.method == nil {
		return "<main>"
	}
	return u.class.Name() + "." + u.method.DisplayName()
}

// pushUnit makes u the unit errors and self references resolve against.
func (c *Checker) pushUnit(u *unit) {
	c.units = append(c.units, u)
}

func (c *Checker) popUnit() {
	if len(c.units) == 0 {
		return
	}
	c.units = c.units[:len(c.units)-1]
}

func (c *Checker) currentUnit() *unit {
	if len(c.units) == 0 {
		return nil
	}
	return c.units[len(c.units)-1]
}

// fail builds an error located at the current unit.
func (c *Checker) fail(kind ErrorKind, node ast.Node, symbol string, format string, args ...any) *Error {
	err := &Error{Kind: kind, Symbol: symbol, Message: fmt.Sprintf(format, args...), Node: node}
	if u := c.currentUnit(); u != nil {
		if u.class != nil {
			err.Class = u.class.Name()
		}
		if u.method != nil {
			err.Method = u.method.DisplayName()
		}
	}
	return err
}

// tracef writes one diagnostic line when tracing is enabled.
func (c *Checker) tracef(format string, args ...any) {
	if c.opts.Trace == nil {
		return
	}
	fmt.Fprintf(c.opts.Trace, "trace: "+format+"\n", args...)
}
