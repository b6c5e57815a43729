package ast

// Definitions

// Parameter is a constructor or method parameter. TypeName is the declared
// type as written; it is resolved to a class by the typechecker.
type Parameter struct {
	nodeImpl

	Name     string `json:"name"`
	TypeName string `json:"type"`
}

func NewParameter(name, typeName string) *Parameter {
	return &Parameter{nodeImpl: newNodeImpl(NodeParameter), Name: name, TypeName: typeName}
}

// MethodDefinition is a `def name(params): ReturnType { body }` declaration.
// An empty ReturnType means the method produces no value.
type MethodDefinition struct {
	nodeImpl

	Name       string          `json:"name"`
	Params     []*Parameter    `json:"params"`
	ReturnType string          `json:"returns,omitempty"`
	Body       *BlockStatement `json:"body"`
}

func NewMethodDefinition(name string, params []*Parameter, returnType string, body *BlockStatement) *MethodDefinition {
	return &MethodDefinition{nodeImpl: newNodeImpl(NodeMethodDefinition), Name: name, Params: params, ReturnType: returnType, Body: body}
}

// ClassDefinition is a user class as produced by the parser. The constructor
// body is the sequence of statements in the class body that precede the
// method definitions.
type ClassDefinition struct {
	nodeImpl

	Name        string              `json:"name"`
	SuperClass  string              `json:"extends,omitempty"`
	Params      []*Parameter        `json:"params"`
	Constructor *BlockStatement     `json:"constructor"`
	Methods     []*MethodDefinition `json:"methods"`
}

func NewClassDefinition(name, superClass string, params []*Parameter, constructor *BlockStatement, methods []*MethodDefinition) *ClassDefinition {
	return &ClassDefinition{nodeImpl: newNodeImpl(NodeClassDefinition), Name: name, SuperClass: superClass, Params: params, Constructor: constructor, Methods: methods}
}

// Program is one compiled file: its class table plus the top-level block.
type Program struct {
	nodeImpl

	Path    string             `json:"-"`
	Classes []*ClassDefinition `json:"classes"`
	Main    *BlockStatement    `json:"main"`
}

func NewProgram(classes []*ClassDefinition, main *BlockStatement) *Program {
	return &Program{nodeImpl: newNodeImpl(NodeProgram), Classes: classes, Main: main}
}
