package typechecker

import (
	"fmt"

	"github.com/ZaydH/cis561/pkg/ast"
)

// inferProgram infers every constructor, then every method, then the
// top-level block. Constructors may also be inferred earlier on demand when
// another unit reads one of their class's fields.
func (c *Checker) inferProgram(program *ast.Program) error {
	classes := c.registry.UserClasses()
	for _, class := range classes {
		if err := c.ensureFields(class); err != nil {
			return err
		}
	}
	for _, class := range classes {
		for _, method := range class.Methods() {
			if err := c.inferMethod(class, method); err != nil {
				return err
			}
		}
	}
	return c.runUnit(&unit{symbols: NewSymbolTable()}, program.Main)
}

// ensureFields infers class's constructor, which fixes the types of the
// class's fields.
func (c *Checker) ensureFields(class *Class) error {
	if class.IsBuiltin() {
		return nil
	}
	switch c.fieldState[class] {
	case inferDone:
		return nil
	case inferRunning:
		return c.fail(TypeUpdateFailed, class.Definition, class.Name(),
			"field types of %s depend on themselves", class.Name())
	}
	c.fieldState[class] = inferRunning

	ctor := class.Constructor
	u := &unit{class: class, method: ctor, symbols: NewSymbolTable()}
	defineParams(u.symbols, ctor)
	if err := c.runUnit(u, ctor.Body); err != nil {
		return err
	}
	for _, sym := range u.symbols.Fields() {
		if field, ok := class.Field(sym.Key.Name); ok {
			field.Type = sym.Type
		}
	}
	c.fieldState[class] = inferDone
	return nil
}

func (c *Checker) inferMethod(class *Class, method *Method) error {
	u := &unit{class: class, method: method, symbols: NewSymbolTable()}
	defineParams(u.symbols, method)
	return c.runUnit(u, method.Body)
}

func defineParams(symbols *SymbolTable, method *Method) {
	for _, param := range method.Params {
		symbols.Define(Local(param.Name), param.Type, param.Type)
	}
}

// runUnit re-infers body until a pass leaves the unit's symbol table
// unchanged.
func (c *Checker) runUnit(u *unit, body *ast.BlockStatement) error {
	c.pushUnit(u)
	defer c.popUnit()

	limit := c.maxPasses()
	for pass := 1; pass <= limit; pass++ {
		u.symbols.ClearDirty()
		if err := c.inferBlock(body); err != nil {
			return err
		}
		if !u.symbols.Dirty() {
			c.passes[u.label()] = pass
			c.tracef("%s converged after %d passes", u.label(), pass)
			return nil
		}
	}
	return c.fail(TypeUpdateFailed, body, "", "types did not converge after %d passes", limit)
}

// widen stores the LCA of expr's current type and typ on expr.
func (c *Checker) widen(expr ast.Expression, typ *Class) (*Class, error) {
	old := resolvedClass(expr)
	if old != nil && !c.registry.owns(old) {
		// Left over from an earlier Check of the same tree.
		old = nil
	}
	next := c.registry.LeastCommonAncestor(old, typ)
	if next == nil {
		if old == nil && typ == nil {
			return nil, nil
		}
		return nil, c.fail(TypeUpdateFailed, expr, "", "cannot reconcile %s with %s", typeName(old), typeName(typ))
	}
	expr.SetResolvedType(next)
	return next, nil
}

// resolvedClass reads the type slot of an expression.
func resolvedClass(expr ast.Expression) *Class {
	if expr == nil {
		return nil
	}
	class, _ := expr.ResolvedType().(*Class)
	return class
}

// bindSymbol propagates the type of an assigned value into the symbol for
// key and returns the symbol's resulting type. declared is the ascribed type,
// if any.
func (c *Checker) bindSymbol(node ast.Node, key SymbolKey, value, declared *Class) (*Class, error) {
	symbols := c.currentUnit().symbols
	sym, ok := symbols.Lookup(key)
	if declared != nil {
		if ok && sym.Declared != nil && sym.Declared != declared {
			return nil, c.fail(TypeMismatch, node, key.Name, "%s is declared as %s and cannot be redeclared as %s",
				key, sym.Declared.Name(), declared.Name())
		}
		if !ok {
			sym = symbols.Define(key, declared, declared)
			return sym.Type, nil
		}
		if !c.registry.IsSubtype(sym.Type, declared) {
			return nil, c.fail(TypeMismatch, node, key.Name, "%s already holds %s, which is not a subtype of %s",
				key, typeName(sym.Type), declared.Name())
		}
		sym.Declared = declared
		symbols.Update(sym, declared)
		return sym.Type, nil
	}
	if !ok {
		sym = symbols.Define(key, value, nil)
		return sym.Type, nil
	}
	if sym.Declared != nil {
		return sym.Declared, nil
	}
	next := c.registry.LeastCommonAncestor(sym.Type, value)
	if next == nil && (sym.Type != nil || value != nil) {
		return nil, c.fail(TypeUpdateFailed, node, key.Name, "cannot widen %s from %s to include %s",
			key, typeName(sym.Type), typeName(value))
	}
	symbols.Update(sym, next)
	return next, nil
}

// fieldOf returns the field named name of class, inferring class's
// constructor first if needed.
func (c *Checker) fieldOf(node ast.Node, class *Class, name string) (*Field, error) {
	if err := c.ensureFields(class); err != nil {
		return nil, err
	}
	field, ok := class.Field(name)
	if !ok {
		return nil, c.fail(UnknownSymbol, node, name, "class %s has no field %s", class.Name(), name)
	}
	return field, nil
}

func (c *Checker) resolveTypeName(node ast.Node, name string) (*Class, error) {
	typ, err := c.registry.Resolve(name)
	if err != nil {
		return nil, c.fail(UnknownType, node, name, "unknown class %q", name)
	}
	return typ, nil
}

func unsupported(what string, node any) error {
	return fmt.Errorf("typechecker: unsupported %s %T", what, node)
}
