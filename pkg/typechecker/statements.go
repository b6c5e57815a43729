package typechecker

import "github.com/ZaydH/cis561/pkg/ast"

func (c *Checker) inferBlock(block *ast.BlockStatement) error {
	if block == nil {
		return nil
	}
	for _, stmt := range block.Body {
		if err := c.inferStatement(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (c *Checker) inferStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.AssignmentStatement:
		return c.inferAssignment(s)
	case *ast.BlockStatement:
		return c.inferBlock(s)
	case *ast.IfStatement:
		if err := c.checkCondition(s.Condition); err != nil {
			return err
		}
		if err := c.inferBlock(s.Consequence); err != nil {
			return err
		}
		return c.inferBlock(s.Alternative)
	case *ast.WhileLoop:
		if err := c.checkCondition(s.Condition); err != nil {
			return err
		}
		return c.inferBlock(s.Body)
	case *ast.TypecaseStatement:
		return c.inferTypecase(s)
	case *ast.ReturnStatement:
		return c.inferReturn(s)
	case ast.Expression:
		_, err := c.inferExpression(s)
		return err
	case nil:
		return nil
	default:
		return unsupported("statement", stmt)
	}
}

// inferAssignment infers the value, pushes its type into the target and then
// requires the value to fit the target's final type. A Nothing value is never
// assignable.
func (c *Checker) inferAssignment(s *ast.AssignmentStatement) error {
	value, err := c.inferExpression(s.Value)
	if err != nil {
		return err
	}
	var declared *Class
	if s.TypeAnnotation != "" {
		if declared, err = c.resolveTypeName(s, s.TypeAnnotation); err != nil {
			return err
		}
		if declared == c.registry.NothingClass() {
			return c.fail(TypeMismatch, s, s.TypeAnnotation, "a variable cannot be declared as %s", NothingName)
		}
	}
	target, err := c.inferTarget(s.Target, value, declared)
	if err != nil {
		return err
	}
	if value == c.registry.NothingClass() {
		return c.fail(TypeMismatch, s, targetName(s.Target), "cannot assign the result of a %s expression to %s",
			NothingName, targetName(s.Target))
	}
	if !c.registry.IsSubtype(value, target) {
		return c.fail(TypeMismatch, s, targetName(s.Target), "cannot assign %s to %s of type %s",
			typeName(value), targetName(s.Target), typeName(target))
	}
	return nil
}

// inferTarget returns the type the assignment target holds after receiving
// a value of type value.
func (c *Checker) inferTarget(target ast.AssignmentTarget, value, declared *Class) (*Class, error) {
	u := c.currentUnit()
	switch t := target.(type) {
	case *ast.Identifier:
		typ, err := c.bindSymbol(t, Local(t.Name), value, declared)
		if err != nil {
			return nil, err
		}
		return c.widen(t, typ)
	case *ast.FieldAccess:
		if t.OnSelf() && u.inConstructor() {
			if _, err := c.inferExpression(t.Receiver); err != nil {
				return nil, err
			}
			typ, err := c.bindSymbol(t, FieldKey(t.Field), value, declared)
			if err != nil {
				return nil, err
			}
			return c.widen(t, typ)
		}
		typ, err := c.inferFieldAccess(t)
		if err != nil {
			return nil, err
		}
		if declared != nil && !c.registry.IsSubtype(typ, declared) {
			return nil, c.fail(TypeMismatch, t, t.Field, "field %s has type %s, not %s", t.Field, typeName(typ), declared.Name())
		}
		return typ, nil
	default:
		return nil, unsupported("assignment target", target)
	}
}

func targetName(target ast.AssignmentTarget) string {
	switch t := target.(type) {
	case *ast.Identifier:
		return t.Name
	case *ast.FieldAccess:
		if t.OnSelf() {
			return "this." + t.Field
		}
		return t.Field
	default:
		return "target"
	}
}

// checkCondition requires an if or while condition to be exactly Bool.
func (c *Checker) checkCondition(cond ast.Expression) error {
	typ, err := c.inferExpression(cond)
	if err != nil {
		return err
	}
	if typ != c.registry.BoolClass() {
		return c.fail(ConditionTypeError, cond, "", "condition has type %s, expected %s", typeName(typ), BoolName)
	}
	return nil
}

func (c *Checker) inferReturn(s *ast.ReturnStatement) error {
	u := c.currentUnit()
	var typ *Class
	if s.Argument != nil {
		var err error
		if typ, err = c.inferExpression(s.Argument); err != nil {
			return err
		}
	}
	switch {
	case u.method == nil:
		if s.Argument != nil {
			return c.fail(ReturnArityMismatch, s, "", "the top-level block cannot return a value")
		}
		return nil
	case u.inConstructor():
		if s.Argument != nil && typ != u.class {
			return c.fail(TypeMismatch, s, "", "a constructor may only return %s, not %s", u.class.Name(), typeName(typ))
		}
		return nil
	}

	expected := u.method.ReturnType
	nothing := c.registry.NothingClass()
	if s.Argument == nil {
		if expected != nothing {
			return c.fail(ReturnArityMismatch, s, "", "missing return value of type %s", expected.Name())
		}
		return nil
	}
	if expected == nothing {
		return c.fail(ReturnArityMismatch, s, "", "method %s does not return a value", u.method.Name)
	}
	if !c.registry.IsSubtype(typ, expected) {
		return c.fail(TypeMismatch, s, "", "returned %s is not a subtype of %s", typeName(typ), expected.Name())
	}
	return nil
}
