package typechecker

import (
	"fmt"

	"github.com/ZaydH/cis561/pkg/ast"
)

// initAnalysis walks one unit computing the definitely-initialized set at
// every statement. accumulator is only set inside constructors and is the
// union of the sets after every assignment, so it holds every field assigned
// on any path.
type initAnalysis struct {
	c           *Checker
	accumulator *InitializedSet
}

// analyzeInitialization runs definite-assignment analysis over the whole
// program and registers each class's field table.
func (c *Checker) analyzeInitialization(program *ast.Program) error {
	classes := c.registry.UserClasses()
	for _, class := range classes {
		if err := c.analyzeConstructor(class); err != nil {
			return err
		}
	}
	if err := c.checkSuperFields(); err != nil {
		return err
	}
	for _, class := range classes {
		for _, method := range class.Methods() {
			if err := c.analyzeMethod(class, method); err != nil {
				return err
			}
		}
	}
	c.pushUnit(&unit{})
	defer c.popUnit()
	a := &initAnalysis{c: c}
	_, err := a.block(program.Main, NewInitializedSet())
	return err
}

func (c *Checker) analyzeConstructor(class *Class) error {
	ctor := class.Constructor
	c.pushUnit(&unit{class: class, method: ctor})
	defer c.popUnit()

	a := &initAnalysis{c: c, accumulator: NewInitializedSet()}
	out, err := a.block(ctor.Body, NewInitializedSet(paramKeys(ctor)...))
	if err != nil {
		return err
	}
	for _, name := range a.accumulator.Fields() {
		if !out.Contains(FieldKey(name)) {
			return c.fail(ConstructorIncompleteInit, class.Definition, name,
				"field %s is not initialized on every path through the constructor", name)
		}
	}
	for _, name := range out.Fields() {
		class.addField(name)
	}
	return nil
}

// checkSuperFields requires a class to have every field of a user-defined
// super class.
func (c *Checker) checkSuperFields() error {
	for _, class := range c.registry.UserClasses() {
		super := class.Super
		if super == nil || super.IsBuiltin() {
			continue
		}
		for _, field := range super.Fields() {
			if _, ok := class.Field(field.Name); !ok {
				err := classError(MissingSuperFields, class, "field %s of super class %s is not initialized", field.Name, super.Name())
				err.Symbol = field.Name
				return err
			}
		}
	}
	return nil
}

func (c *Checker) analyzeMethod(class *Class, method *Method) error {
	c.pushUnit(&unit{class: class, method: method})
	defer c.popUnit()

	seed := NewInitializedSet(paramKeys(method)...)
	for _, field := range class.Fields() {
		seed.Add(FieldKey(field.Name))
	}
	a := &initAnalysis{c: c}
	_, err := a.block(method.Body, seed)
	return err
}

func paramKeys(method *Method) []SymbolKey {
	keys := make([]SymbolKey, 0, len(method.Params))
	for _, param := range method.Params {
		keys = append(keys, Local(param.Name))
	}
	return keys
}

func (a *initAnalysis) block(block *ast.BlockStatement, in *InitializedSet) (*InitializedSet, error) {
	if block == nil {
		return in, nil
	}
	var err error
	for _, stmt := range block.Body {
		if in, err = a.statement(stmt, in); err != nil {
			return nil, err
		}
	}
	return in, nil
}

func (a *initAnalysis) statement(stmt ast.Statement, in *InitializedSet) (*InitializedSet, error) {
	switch s := stmt.(type) {
	case *ast.AssignmentStatement:
		if err := a.expression(s.Value, in); err != nil {
			return nil, err
		}
		key, ok, err := a.target(s.Target, in)
		if err != nil || !ok {
			return in, err
		}
		in.Add(key)
		if a.accumulator != nil {
			a.accumulator.UnionWith(in)
		}
		return in, nil
	case *ast.BlockStatement:
		return a.block(s, in)
	case *ast.IfStatement:
		if err := a.expression(s.Condition, in); err != nil {
			return nil, err
		}
		alternative := in.Clone()
		thenOut, err := a.block(s.Consequence, in)
		if err != nil {
			return nil, err
		}
		elseOut, err := a.block(s.Alternative, alternative)
		if err != nil {
			return nil, err
		}
		thenOut.IntersectWith(elseOut)
		return thenOut, nil
	case *ast.WhileLoop:
		if err := a.expression(s.Condition, in); err != nil {
			return nil, err
		}
		if _, err := a.block(s.Body, in.Clone()); err != nil {
			return nil, err
		}
		return in, nil
	case *ast.TypecaseStatement:
		if err := a.expression(s.Subject, in); err != nil {
			return nil, err
		}
		var out *InitializedSet
		for _, alt := range s.Alternatives {
			seed := in.Clone()
			seed.Add(Local(alt.Binding))
			altOut, err := a.block(alt.Body, seed)
			if err != nil {
				return nil, err
			}
			if out == nil {
				out = altOut
				continue
			}
			out.IntersectWith(altOut)
		}
		if out == nil {
			return in, nil
		}
		return out, nil
	case *ast.ReturnStatement:
		return in, a.expression(s.Argument, in)
	case ast.Expression:
		return in, a.expression(s, in)
	case nil:
		return in, nil
	default:
		return nil, fmt.Errorf("typechecker: unsupported statement %T", stmt)
	}
}

// target returns the key an assignment defines. Assigning to a field of
// another object defines nothing but still reads the receiver.
func (a *initAnalysis) target(target ast.AssignmentTarget, in *InitializedSet) (SymbolKey, bool, error) {
	switch t := target.(type) {
	case *ast.Identifier:
		return Local(t.Name), true, nil
	case *ast.FieldAccess:
		if t.OnSelf() {
			return FieldKey(t.Field), true, nil
		}
		return SymbolKey{}, false, a.expression(t.Receiver, in)
	default:
		return SymbolKey{}, false, fmt.Errorf("typechecker: unsupported assignment target %T", target)
	}
}

func (a *initAnalysis) expression(expr ast.Expression, in *InitializedSet) error {
	switch e := expr.(type) {
	case nil:
		return nil
	case *ast.Identifier:
		if !in.Contains(Local(e.Name)) {
			return a.c.fail(UseBeforeInit, e, e.Name, "%s is used before it is initialized", e.Name)
		}
		return nil
	case *ast.SelfReference, ast.Literal:
		return nil
	case *ast.UnaryExpression:
		return a.expression(e.Operand, in)
	case *ast.BinaryExpression:
		if err := a.expression(e.Left, in); err != nil {
			return err
		}
		return a.expression(e.Right, in)
	case *ast.FieldAccess:
		if e.OnSelf() {
			if !in.Contains(FieldKey(e.Field)) {
				return a.c.fail(UseBeforeInit, e, e.Field, "field this.%s is used before it is initialized", e.Field)
			}
			return nil
		}
		return a.expression(e.Receiver, in)
	case *ast.MethodCall:
		if err := a.expression(e.Receiver, in); err != nil {
			return err
		}
		return a.expressions(e.Arguments, in)
	case *ast.ConstructorCall:
		return a.expressions(e.Arguments, in)
	default:
		return fmt.Errorf("typechecker: unsupported expression %T", expr)
	}
}

func (a *initAnalysis) expressions(exprs []ast.Expression, in *InitializedSet) error {
	for _, expr := range exprs {
		if err := a.expression(expr, in); err != nil {
			return err
		}
	}
	return nil
}
