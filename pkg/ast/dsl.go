package ast

// Identifier and literal helpers.

func ID(name string) *Identifier {
	return NewIdentifier(name)
}

func Self() *SelfReference {
	return NewSelfReference()
}

func Str(value string) *StringLiteral {
	return NewStringLiteral(value)
}

func Int(value int64) *IntegerLiteral {
	return NewIntegerLiteral(value)
}

func Bool(value bool) *BooleanLiteral {
	return NewBooleanLiteral(value)
}

// Expression helpers.

func Un(operator UnaryOperator, operand Expression) *UnaryExpression {
	return NewUnaryExpression(operator, operand)
}

func Bin(operator string, left, right Expression) *BinaryExpression {
	return NewBinaryExpression(operator, left, right)
}

func Member(receiver Expression, field string) *FieldAccess {
	return NewFieldAccess(receiver, field)
}

// SelfField is shorthand for `this.field`.
func SelfField(field string) *FieldAccess {
	return NewFieldAccess(Self(), field)
}

func CallExpr(receiver Expression, method string, args ...Expression) *MethodCall {
	return NewMethodCall(receiver, method, args)
}

func New(class string, args ...Expression) *ConstructorCall {
	return NewConstructorCall(class, args)
}

// Statement helpers.

func Block(statements ...Statement) *BlockStatement {
	return NewBlock(statements)
}

func Assign(target AssignmentTarget, value Expression) *AssignmentStatement {
	return NewAssignmentStatement(target, "", value)
}

func AssignTyped(target AssignmentTarget, typeName string, value Expression) *AssignmentStatement {
	return NewAssignmentStatement(target, typeName, value)
}

func Iff(condition Expression, consequence *BlockStatement, alternative *BlockStatement) *IfStatement {
	return NewIfStatement(condition, consequence, alternative)
}

func Wloop(condition Expression, statements ...Statement) *WhileLoop {
	return NewWhileLoop(condition, NewBlock(statements))
}

func Alt(binding, typeName string, statements ...Statement) *TypeAlternative {
	return NewTypeAlternative(binding, typeName, NewBlock(statements))
}

func Typecase(subject Expression, alternatives ...*TypeAlternative) *TypecaseStatement {
	return NewTypecaseStatement(subject, alternatives)
}

func Ret(argument Expression) *ReturnStatement {
	return NewReturnStatement(argument)
}

// Definition helpers.

func Param(name, typeName string) *Parameter {
	return NewParameter(name, typeName)
}

func Method(name string, params []*Parameter, returnType string, body ...Statement) *MethodDefinition {
	return NewMethodDefinition(name, params, returnType, NewBlock(body))
}

func Class(name, superClass string, params []*Parameter, constructor []Statement, methods ...*MethodDefinition) *ClassDefinition {
	return NewClassDefinition(name, superClass, params, NewBlock(constructor), methods)
}

func Prog(classes []*ClassDefinition, main ...Statement) *Program {
	return NewProgram(classes, NewBlock(main))
}
