package typechecker

import "github.com/ZaydH/cis561/pkg/ast"

// inferExpression resolves expr's type, records it on the node and returns
// it. A nil result means the type is not known yet.
func (c *Checker) inferExpression(expr ast.Expression) (*Class, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return c.widen(e, c.registry.IntClass())
	case *ast.StringLiteral:
		return c.widen(e, c.registry.StringClass())
	case *ast.BooleanLiteral:
		return c.widen(e, c.registry.BoolClass())
	case *ast.Identifier:
		sym, ok := c.currentUnit().symbols.Lookup(Local(e.Name))
		if !ok {
			return nil, c.fail(UnknownSymbol, e, e.Name, "%s is not defined", e.Name)
		}
		return c.widen(e, sym.Type)
	case *ast.SelfReference:
		u := c.currentUnit()
		if u.class == nil {
			return nil, c.fail(UnknownSymbol, e, "this", "this is only available inside a class")
		}
		return c.widen(e, u.class)
	case *ast.FieldAccess:
		typ, err := c.inferFieldAccess(e)
		if err != nil {
			return nil, err
		}
		return c.widen(e, typ)
	case *ast.UnaryExpression:
		return c.inferUnaryExpression(e)
	case *ast.BinaryExpression:
		return c.inferBinaryExpression(e)
	case *ast.MethodCall:
		return c.inferMethodCall(e)
	case *ast.ConstructorCall:
		return c.inferConstructorCall(e)
	default:
		return nil, unsupported("expression", expr)
	}
}

// inferFieldAccess returns the type of receiver.field. Inside a constructor
// the fields of this are read from the unit's symbols, where their types are
// still being established; elsewhere the class's field table is authoritative.
func (c *Checker) inferFieldAccess(e *ast.FieldAccess) (*Class, error) {
	receiver, err := c.inferExpression(e.Receiver)
	if err != nil {
		return nil, err
	}
	u := c.currentUnit()
	if e.OnSelf() && u.inConstructor() {
		sym, ok := u.symbols.Lookup(FieldKey(e.Field))
		if !ok {
			return nil, c.fail(UnknownSymbol, e, e.Field, "field this.%s is not established", e.Field)
		}
		return sym.Type, nil
	}
	if receiver == nil || receiver == c.registry.NothingClass() {
		return nil, c.fail(UnknownSymbol, e, e.Field, "cannot read field %s of a %s value", e.Field, typeName(receiver))
	}
	field, err := c.fieldOf(e, receiver, e.Field)
	if err != nil {
		return nil, err
	}
	return field.Type, nil
}

func (c *Checker) inferUnaryExpression(e *ast.UnaryExpression) (*Class, error) {
	operand, err := c.inferExpression(e.Operand)
	if err != nil {
		return nil, err
	}
	var want *Class
	switch e.Operator {
	case ast.UnaryOperatorNegate:
		want = c.registry.IntClass()
	case ast.UnaryOperatorNot:
		want = c.registry.BoolClass()
	default:
		return nil, c.fail(UnknownOperator, e, string(e.Operator), "unknown unary operator %q", e.Operator)
	}
	if operand != want {
		return nil, c.fail(UnaryOpTypeMismatch, e, string(e.Operator), "operator %s needs %s, got %s",
			e.Operator, want.Name(), typeName(operand))
	}
	return c.widen(e, want)
}

func (c *Checker) inferMethodCall(e *ast.MethodCall) (*Class, error) {
	receiver, err := c.inferExpression(e.Receiver)
	if err != nil {
		return nil, err
	}
	if receiver == nil {
		return nil, c.fail(UnknownSymbol, e, e.Method, "cannot call %s on a value of unresolved type", e.Method)
	}
	method, ok := receiver.LookupMethod(e.Method)
	if !ok {
		return nil, c.fail(UnknownSymbol, e, e.Method, "class %s has no method %s", receiver.Name(), e.Method)
	}
	if err := c.checkArguments(e, method, e.Arguments); err != nil {
		return nil, err
	}
	return c.widen(e, method.ReturnType)
}

func (c *Checker) inferConstructorCall(e *ast.ConstructorCall) (*Class, error) {
	class, ok := c.registry.Lookup(e.Class)
	if !ok {
		return nil, c.fail(UnknownConstructor, e, e.Class, "no constructor for class %q", e.Class)
	}
	if err := c.checkArguments(e, class.Constructor, e.Arguments); err != nil {
		return nil, err
	}
	return c.widen(e, class)
}

// checkArguments matches call arguments against method's parameters. An
// argument whose type is still unresolved is seeded from its parameter.
func (c *Checker) checkArguments(call ast.Expression, method *Method, args []ast.Expression) error {
	if len(args) != len(method.Params) {
		return c.fail(ArityMismatch, call, method.Name, "%s expects %d arguments, got %d",
			method.Name, len(method.Params), len(args))
	}
	for i, arg := range args {
		param := method.Params[i]
		typ, err := c.inferExpression(arg)
		if err != nil {
			return err
		}
		if typ == nil {
			if typ, err = c.widen(arg, param.Type); err != nil {
				return err
			}
		}
		if !c.registry.IsSubtype(typ, param.Type) {
			return c.fail(ArgumentTypeMismatch, arg, param.Name, "argument %s of %s has type %s, expected %s",
				param.Name, method.Name, typeName(typ), typeName(param.Type))
		}
	}
	return nil
}
