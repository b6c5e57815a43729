package ast

type NodeType string

const (
	NodeIdentifier       NodeType = "Identifier"
	NodeSelf             NodeType = "Self"
	NodeStringLiteral    NodeType = "StringLiteral"
	NodeIntegerLiteral   NodeType = "IntegerLiteral"
	NodeBooleanLiteral   NodeType = "BooleanLiteral"
	NodeUnaryExpression  NodeType = "UnaryExpression"
	NodeBinaryExpression NodeType = "BinaryExpression"
	NodeFieldAccess      NodeType = "FieldAccess"
	NodeMethodCall       NodeType = "MethodCall"
	NodeConstructorCall  NodeType = "ConstructorCall"
	NodeAssignment       NodeType = "Assignment"
	NodeBlock            NodeType = "Block"
	NodeIfStatement      NodeType = "If"
	NodeWhileLoop        NodeType = "While"
	NodeTypecase         NodeType = "Typecase"
	NodeTypeAlternative  NodeType = "TypeAlternative"
	NodeReturnStatement  NodeType = "Return"
	NodeParameter        NodeType = "Parameter"
	NodeMethodDefinition NodeType = "MethodDefinition"
	NodeClassDefinition  NodeType = "ClassDefinition"
	NodeProgram          NodeType = "Program"
)

type Node interface {
	NodeType() NodeType
	isNode()
}

type nodeImpl struct {
	Type NodeType `json:"type"`
}

func newNodeImpl(kind NodeType) nodeImpl {
	return nodeImpl{Type: kind}
}

func (n nodeImpl) NodeType() NodeType { return n.Type }
func (nodeImpl) isNode()              {}

// TypeRef is the resolved type stored on an expression node. The typechecker
// supplies the concrete implementation.
type TypeRef interface {
	Name() string
}

// typeSlot holds the resolved type of an expression. It starts empty and is
// only ever replaced by a wider type during inference.
type typeSlot struct {
	resolved TypeRef
}

func (s *typeSlot) ResolvedType() TypeRef       { return s.resolved }
func (s *typeSlot) SetResolvedType(typ TypeRef) { s.resolved = typ }

// Marker interfaces.

type Expression interface {
	Node
	expressionNode()
	statementNode()
	ResolvedType() TypeRef
	SetResolvedType(TypeRef)
}

type expressionMarker struct{}

func (expressionMarker) expressionNode() {}

type Statement interface {
	Node
	statementNode()
}

type statementMarker struct{}

func (statementMarker) statementNode() {}

type Literal interface {
	Expression
	literalNode()
}

type literalMarker struct{}

func (literalMarker) literalNode() {}

// AssignmentTarget is implemented by the nodes allowed on the left of `=`.
type AssignmentTarget interface {
	Expression
	assignmentTargetNode()
}

type assignmentTargetMarker struct{}

func (assignmentTargetMarker) assignmentTargetNode() {}

// Identifier

type Identifier struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker
	typeSlot

	Name string `json:"name"`
}

func NewIdentifier(name string) *Identifier {
	return &Identifier{nodeImpl: newNodeImpl(NodeIdentifier), Name: name}
}

// SelfReference is the `this` receiver. It is a distinct node so that field
// access on the current object never needs to inspect identifier text.
type SelfReference struct {
	nodeImpl
	expressionMarker
	statementMarker
	typeSlot
}

func NewSelfReference() *SelfReference {
	return &SelfReference{nodeImpl: newNodeImpl(NodeSelf)}
}

// Literals

type StringLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker
	typeSlot

	Value string `json:"value"`
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{nodeImpl: newNodeImpl(NodeStringLiteral), Value: value}
}

type IntegerLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker
	typeSlot

	Value int64 `json:"value"`
}

func NewIntegerLiteral(value int64) *IntegerLiteral {
	return &IntegerLiteral{nodeImpl: newNodeImpl(NodeIntegerLiteral), Value: value}
}

type BooleanLiteral struct {
	nodeImpl
	expressionMarker
	statementMarker
	literalMarker
	typeSlot

	Value bool `json:"value"`
}

func NewBooleanLiteral(value bool) *BooleanLiteral {
	return &BooleanLiteral{nodeImpl: newNodeImpl(NodeBooleanLiteral), Value: value}
}

// Expressions

type UnaryOperator string

const (
	UnaryOperatorNegate UnaryOperator = "-"
	UnaryOperatorNot    UnaryOperator = "not"
)

type UnaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker
	typeSlot

	Operator UnaryOperator `json:"operator"`
	Operand  Expression    `json:"operand"`
}

func NewUnaryExpression(operator UnaryOperator, operand Expression) *UnaryExpression {
	return &UnaryExpression{nodeImpl: newNodeImpl(NodeUnaryExpression), Operator: operator, Operand: operand}
}

type BinaryExpression struct {
	nodeImpl
	expressionMarker
	statementMarker
	typeSlot

	Operator string     `json:"operator"`
	Left     Expression `json:"left"`
	Right    Expression `json:"right"`
}

func NewBinaryExpression(operator string, left, right Expression) *BinaryExpression {
	return &BinaryExpression{nodeImpl: newNodeImpl(NodeBinaryExpression), Operator: operator, Left: left, Right: right}
}

// FieldAccess reads `receiver.field`. With a SelfReference receiver it can
// also be the target of an assignment.
type FieldAccess struct {
	nodeImpl
	expressionMarker
	statementMarker
	assignmentTargetMarker
	typeSlot

	Receiver Expression `json:"receiver"`
	Field    string     `json:"field"`
}

func NewFieldAccess(receiver Expression, field string) *FieldAccess {
	return &FieldAccess{nodeImpl: newNodeImpl(NodeFieldAccess), Receiver: receiver, Field: field}
}

// OnSelf reports whether the access is `this.field`.
func (f *FieldAccess) OnSelf() bool {
	_, ok := f.Receiver.(*SelfReference)
	return ok
}

type MethodCall struct {
	nodeImpl
	expressionMarker
	statementMarker
	typeSlot

	Receiver  Expression   `json:"receiver"`
	Method    string       `json:"method"`
	Arguments []Expression `json:"arguments"`
}

func NewMethodCall(receiver Expression, method string, args []Expression) *MethodCall {
	return &MethodCall{nodeImpl: newNodeImpl(NodeMethodCall), Receiver: receiver, Method: method, Arguments: args}
}

// ConstructorCall is a call without a receiver: `Pair(1, 2)`.
type ConstructorCall struct {
	nodeImpl
	expressionMarker
	statementMarker
	typeSlot

	Class     string       `json:"class"`
	Arguments []Expression `json:"arguments"`
}

func NewConstructorCall(class string, args []Expression) *ConstructorCall {
	return &ConstructorCall{nodeImpl: newNodeImpl(NodeConstructorCall), Class: class, Arguments: args}
}

// Statements

// AssignmentStatement is `target [: TypeAnnotation] = value`.
type AssignmentStatement struct {
	nodeImpl
	statementMarker

	Target         AssignmentTarget `json:"target"`
	TypeAnnotation string           `json:"annotation,omitempty"`
	Value          Expression       `json:"value"`
}

func NewAssignmentStatement(target AssignmentTarget, typeAnnotation string, value Expression) *AssignmentStatement {
	return &AssignmentStatement{nodeImpl: newNodeImpl(NodeAssignment), Target: target, TypeAnnotation: typeAnnotation, Value: value}
}

type BlockStatement struct {
	nodeImpl
	statementMarker

	Body []Statement `json:"body"`
}

func NewBlock(body []Statement) *BlockStatement {
	return &BlockStatement{nodeImpl: newNodeImpl(NodeBlock), Body: body}
}

// Empty reports whether the block has no statements. A nil block is empty.
func (b *BlockStatement) Empty() bool {
	return b == nil || len(b.Body) == 0
}

type IfStatement struct {
	nodeImpl
	statementMarker

	Condition   Expression      `json:"condition"`
	Consequence *BlockStatement `json:"then"`
	Alternative *BlockStatement `json:"else,omitempty"`
}

func NewIfStatement(condition Expression, consequence, alternative *BlockStatement) *IfStatement {
	return &IfStatement{nodeImpl: newNodeImpl(NodeIfStatement), Condition: condition, Consequence: consequence, Alternative: alternative}
}

type WhileLoop struct {
	nodeImpl
	statementMarker

	Condition Expression      `json:"condition"`
	Body      *BlockStatement `json:"body"`
}

func NewWhileLoop(condition Expression, body *BlockStatement) *WhileLoop {
	return &WhileLoop{nodeImpl: newNodeImpl(NodeWhileLoop), Condition: condition, Body: body}
}

// TypeAlternative is one `name: Type { ... }` arm of a typecase.
type TypeAlternative struct {
	nodeImpl

	Binding  string          `json:"binding"`
	TypeName string          `json:"typeName"`
	Body     *BlockStatement `json:"body"`
}

func NewTypeAlternative(binding, typeName string, body *BlockStatement) *TypeAlternative {
	return &TypeAlternative{nodeImpl: newNodeImpl(NodeTypeAlternative), Binding: binding, TypeName: typeName, Body: body}
}

type TypecaseStatement struct {
	nodeImpl
	statementMarker

	Subject      Expression         `json:"subject"`
	Alternatives []*TypeAlternative `json:"alternatives"`
}

func NewTypecaseStatement(subject Expression, alternatives []*TypeAlternative) *TypecaseStatement {
	return &TypecaseStatement{nodeImpl: newNodeImpl(NodeTypecase), Subject: subject, Alternatives: alternatives}
}

type ReturnStatement struct {
	nodeImpl
	statementMarker

	Argument Expression `json:"value,omitempty"`
}

func NewReturnStatement(argument Expression) *ReturnStatement {
	return &ReturnStatement{nodeImpl: newNodeImpl(NodeReturnStatement), Argument: argument}
}
