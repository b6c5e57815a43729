package typechecker

import "github.com/ZaydH/cis561/pkg/ast"

// operatorMethods maps each binary operator to the method it calls on its
// left operand.
var operatorMethods = map[string]string{
	"+":   "ADD",
	"-":   "MINUS",
	"*":   "TIMES",
	"/":   "DIVIDE",
	">=":  "ATLEAST",
	">":   "MORE",
	"<=":  "ATMOST",
	"<":   "LESS",
	"==":  "EQUALS",
	"and": "AND",
	"or":  "OR",
}

// OperatorMethod returns the method a binary operator desugars to.
func OperatorMethod(operator string) (string, bool) {
	name, ok := operatorMethods[operator]
	return name, ok
}

// inferBinaryExpression checks `left op right` as the call left.METHOD(right).
func (c *Checker) inferBinaryExpression(e *ast.BinaryExpression) (*Class, error) {
	name, ok := OperatorMethod(e.Operator)
	if !ok {
		return nil, c.fail(UnknownOperator, e, e.Operator, "unknown operator %q", e.Operator)
	}
	left, err := c.inferExpression(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := c.inferExpression(e.Right)
	if err != nil {
		return nil, err
	}
	if left == nil {
		return nil, c.fail(UnknownOperator, e, e.Operator, "left operand of %s has no type yet", e.Operator)
	}
	method, ok := left.LookupMethod(name)
	if !ok {
		return nil, c.fail(UnknownOperator, e, e.Operator, "class %s has no %s method for operator %s",
			left.Name(), name, e.Operator)
	}
	if len(method.Params) != 1 {
		return nil, c.fail(OperatorArityError, e, e.Operator, "%s.%s takes %d parameters, operator %s needs 1",
			method.Owner.Name(), name, len(method.Params), e.Operator)
	}
	param := method.Params[0].Type
	if !c.registry.IsSubtype(right, param) {
		return nil, c.fail(OperatorTypeMismatch, e, e.Operator, "right operand of %s has type %s, expected %s",
			e.Operator, typeName(right), typeName(param))
	}
	return c.widen(e, method.ReturnType)
}
