package driver

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/ZaydH/cis561/pkg/ast"
)

// LoadProgram reads a program file: the YAML rendering of a parsed Quack
// source file, with a class table and a top-level statement list.
func LoadProgram(path string) (*ast.Program, error) {
	if path == "" {
		return nil, fmt.Errorf("program: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("program: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("program: open %s: %w", absPath, err)
	}
	defer file.Close()
	return DecodeProgram(file, absPath)
}

// DecodeProgram decodes a program document from r. path is only used in
// error messages and recorded on the returned program.
func DecodeProgram(r io.Reader, path string) (*ast.Program, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw programFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("program: %s is empty", path)
		}
		return nil, fmt.Errorf("program: parse %s: %w", path, err)
	}
	program, err := raw.toProgram()
	if err != nil {
		return nil, fmt.Errorf("program: %s: %w", path, err)
	}
	program.Path = path
	return program, nil
}

type programFile struct {
	Classes []classFile `yaml:"classes"`
	Main    []any       `yaml:"main"`
}

type classFile struct {
	Name        string       `yaml:"name"`
	Extends     string       `yaml:"extends"`
	Params      []paramFile  `yaml:"params"`
	Constructor []any        `yaml:"constructor"`
	Methods     []methodFile `yaml:"methods"`
	// Fields is written by DumpProgram and ignored on load.
	Fields map[string]string `yaml:"fields"`
}

type paramFile struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type methodFile struct {
	Name    string      `yaml:"name"`
	Params  []paramFile `yaml:"params"`
	Returns string      `yaml:"returns"`
	Body    []any       `yaml:"body"`
}

func (f programFile) toProgram() (*ast.Program, error) {
	classes := make([]*ast.ClassDefinition, 0, len(f.Classes))
	for i, class := range f.Classes {
		path := fmt.Sprintf("classes[%d]", i)
		if class.Name == "" {
			return nil, fmt.Errorf("%s: class name must be provided", path)
		}
		params, err := toParams(class.Params, path)
		if err != nil {
			return nil, err
		}
		ctor, err := decodeBlock(class.Constructor, path+".constructor")
		if err != nil {
			return nil, err
		}
		methods := make([]*ast.MethodDefinition, 0, len(class.Methods))
		for j, method := range class.Methods {
			methodPath := fmt.Sprintf("%s.methods[%d]", path, j)
			if method.Name == "" {
				return nil, fmt.Errorf("%s: method name must be provided", methodPath)
			}
			methodParams, err := toParams(method.Params, methodPath)
			if err != nil {
				return nil, err
			}
			body, err := decodeBlock(method.Body, methodPath+".body")
			if err != nil {
				return nil, err
			}
			methods = append(methods, ast.NewMethodDefinition(method.Name, methodParams, method.Returns, body))
		}
		classes = append(classes, ast.NewClassDefinition(class.Name, class.Extends, params, ctor, methods))
	}
	main, err := decodeBlock(f.Main, "main")
	if err != nil {
		return nil, err
	}
	return ast.NewProgram(classes, main), nil
}

func toParams(raw []paramFile, path string) ([]*ast.Parameter, error) {
	params := make([]*ast.Parameter, 0, len(raw))
	for i, param := range raw {
		if param.Name == "" || param.Type == "" {
			return nil, fmt.Errorf("%s.params[%d]: parameters need a name and a type", path, i)
		}
		params = append(params, ast.NewParameter(param.Name, param.Type))
	}
	return params, nil
}

func decodeBlock(raw []any, path string) (*ast.BlockStatement, error) {
	stmts := make([]ast.Statement, 0, len(raw))
	for i, item := range raw {
		stmt, err := decodeStatement(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
	return ast.NewBlock(stmts), nil
}

func decodeStatement(raw any, path string) (ast.Statement, error) {
	node, err := decodeNode(raw, path)
	if err != nil {
		return nil, err
	}
	stmt, ok := node.(ast.Statement)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not a statement", path, node.NodeType())
	}
	return stmt, nil
}

func decodeExpression(raw any, path string) (ast.Expression, error) {
	node, err := decodeNode(raw, path)
	if err != nil {
		return nil, err
	}
	expr, ok := node.(ast.Expression)
	if !ok {
		return nil, fmt.Errorf("%s: %s is not an expression", path, node.NodeType())
	}
	return expr, nil
}

func decodeExpressions(raw any, path string) ([]ast.Expression, error) {
	items, err := asList(raw, path)
	if err != nil {
		return nil, err
	}
	exprs := make([]ast.Expression, 0, len(items))
	for i, item := range items {
		expr, err := decodeExpression(item, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

func decodeNode(raw any, path string) (ast.Node, error) {
	node, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a node mapping, got %T", path, raw)
	}
	typ, _ := node["type"].(string)
	if keys, ok := nodeKeys[ast.NodeType(typ)]; ok {
		if err := checkKeys(node, append([]string{"type"}, keys...), path); err != nil {
			return nil, err
		}
	}
	switch ast.NodeType(typ) {
	case ast.NodeIdentifier:
		name, err := requireString(node, "name", path)
		if err != nil {
			return nil, err
		}
		return ast.NewIdentifier(name), nil
	case ast.NodeSelf:
		return ast.NewSelfReference(), nil
	case ast.NodeStringLiteral:
		val, _ := node["value"].(string)
		return ast.NewStringLiteral(val), nil
	case ast.NodeIntegerLiteral:
		val, err := parseInteger(node["value"], path)
		if err != nil {
			return nil, err
		}
		return ast.NewIntegerLiteral(val), nil
	case ast.NodeBooleanLiteral:
		val, ok := node["value"].(bool)
		if !ok {
			return nil, fmt.Errorf("%s.value: expected a boolean", path)
		}
		return ast.NewBooleanLiteral(val), nil
	case ast.NodeUnaryExpression:
		op, err := requireString(node, "operator", path)
		if err != nil {
			return nil, err
		}
		operand, err := decodeExpression(node["operand"], path+".operand")
		if err != nil {
			return nil, err
		}
		return ast.NewUnaryExpression(ast.UnaryOperator(op), operand), nil
	case ast.NodeBinaryExpression:
		op, err := requireString(node, "operator", path)
		if err != nil {
			return nil, err
		}
		left, err := decodeExpression(node["left"], path+".left")
		if err != nil {
			return nil, err
		}
		right, err := decodeExpression(node["right"], path+".right")
		if err != nil {
			return nil, err
		}
		return ast.NewBinaryExpression(op, left, right), nil
	case ast.NodeFieldAccess:
		field, err := requireString(node, "field", path)
		if err != nil {
			return nil, err
		}
		receiver, err := decodeExpression(node["receiver"], path+".receiver")
		if err != nil {
			return nil, err
		}
		return ast.NewFieldAccess(receiver, field), nil
	case ast.NodeMethodCall:
		method, err := requireString(node, "method", path)
		if err != nil {
			return nil, err
		}
		receiver, err := decodeExpression(node["receiver"], path+".receiver")
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"], path+".arguments")
		if err != nil {
			return nil, err
		}
		return ast.NewMethodCall(receiver, method, args), nil
	case ast.NodeConstructorCall:
		class, err := requireString(node, "class", path)
		if err != nil {
			return nil, err
		}
		args, err := decodeExpressions(node["arguments"], path+".arguments")
		if err != nil {
			return nil, err
		}
		return ast.NewConstructorCall(class, args), nil
	case ast.NodeAssignment:
		targetExpr, err := decodeExpression(node["target"], path+".target")
		if err != nil {
			return nil, err
		}
		target, ok := targetExpr.(ast.AssignmentTarget)
		if !ok {
			return nil, fmt.Errorf("%s.target: cannot assign to %s", path, targetExpr.NodeType())
		}
		value, err := decodeExpression(node["value"], path+".value")
		if err != nil {
			return nil, err
		}
		annotation, _ := node["annotation"].(string)
		return ast.NewAssignmentStatement(target, annotation, value), nil
	case ast.NodeBlock:
		return decodeNestedBlock(node["body"], path+".body")
	case ast.NodeIfStatement:
		cond, err := decodeExpression(node["condition"], path+".condition")
		if err != nil {
			return nil, err
		}
		consequence, err := decodeNestedBlock(node["then"], path+".then")
		if err != nil {
			return nil, err
		}
		var alternative *ast.BlockStatement
		if raw, ok := node["else"]; ok && raw != nil {
			if alternative, err = decodeNestedBlock(raw, path+".else"); err != nil {
				return nil, err
			}
		}
		return ast.NewIfStatement(cond, consequence, alternative), nil
	case ast.NodeWhileLoop:
		cond, err := decodeExpression(node["condition"], path+".condition")
		if err != nil {
			return nil, err
		}
		body, err := decodeNestedBlock(node["body"], path+".body")
		if err != nil {
			return nil, err
		}
		return ast.NewWhileLoop(cond, body), nil
	case ast.NodeTypecase:
		subject, err := decodeExpression(node["subject"], path+".subject")
		if err != nil {
			return nil, err
		}
		items, err := asList(node["alternatives"], path+".alternatives")
		if err != nil {
			return nil, err
		}
		alts := make([]*ast.TypeAlternative, 0, len(items))
		for i, item := range items {
			altPath := fmt.Sprintf("%s.alternatives[%d]", path, i)
			altNode, ok := item.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%s: expected a mapping, got %T", altPath, item)
			}
			if err := checkKeys(altNode, alternativeKeys, altPath); err != nil {
				return nil, err
			}
			binding, err := requireString(altNode, "binding", altPath)
			if err != nil {
				return nil, err
			}
			typeName, err := requireString(altNode, "typeName", altPath)
			if err != nil {
				return nil, err
			}
			body, err := decodeNestedBlock(altNode["body"], altPath+".body")
			if err != nil {
				return nil, err
			}
			alts = append(alts, ast.NewTypeAlternative(binding, typeName, body))
		}
		return ast.NewTypecaseStatement(subject, alts), nil
	case ast.NodeReturnStatement:
		raw, ok := node["value"]
		if !ok || raw == nil {
			return ast.NewReturnStatement(nil), nil
		}
		value, err := decodeExpression(raw, path+".value")
		if err != nil {
			return nil, err
		}
		return ast.NewReturnStatement(value), nil
	case "":
		return nil, fmt.Errorf("%s: node is missing its type", path)
	default:
		return nil, fmt.Errorf("%s: unsupported node type %q", path, typ)
	}
}

// nodeKeys lists the keys each node type accepts besides "type". Expression
// nodes also accept the resolvedType written by an annotated dump.
var nodeKeys = map[ast.NodeType][]string{
	ast.NodeIdentifier:       {"name", "resolvedType"},
	ast.NodeSelf:             {"resolvedType"},
	ast.NodeStringLiteral:    {"value", "resolvedType"},
	ast.NodeIntegerLiteral:   {"value", "resolvedType"},
	ast.NodeBooleanLiteral:   {"value", "resolvedType"},
	ast.NodeUnaryExpression:  {"operator", "operand", "resolvedType"},
	ast.NodeBinaryExpression: {"operator", "left", "right", "resolvedType"},
	ast.NodeFieldAccess:      {"receiver", "field", "resolvedType"},
	ast.NodeMethodCall:       {"receiver", "method", "arguments", "resolvedType"},
	ast.NodeConstructorCall:  {"class", "arguments", "resolvedType"},
	ast.NodeAssignment:       {"target", "annotation", "value"},
	ast.NodeBlock:            {"body"},
	ast.NodeIfStatement:      {"condition", "then", "else"},
	ast.NodeWhileLoop:        {"condition", "body"},
	ast.NodeTypecase:         {"subject", "alternatives"},
	ast.NodeReturnStatement:  {"value"},
}

var alternativeKeys = []string{"binding", "typeName", "body"}

func checkKeys(node map[string]any, allowed []string, path string) error {
	for _, key := range slices.Sorted(maps.Keys(node)) {
		if !slices.Contains(allowed, key) {
			return fmt.Errorf("%s: unknown key %q", path, key)
		}
	}
	return nil
}

func decodeNestedBlock(raw any, path string) (*ast.BlockStatement, error) {
	items, err := asList(raw, path)
	if err != nil {
		return nil, err
	}
	return decodeBlock(items, path)
}

// asList accepts a missing value as an empty list.
func asList(raw any, path string) ([]any, error) {
	if raw == nil {
		return nil, nil
	}
	items, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a list, got %T", path, raw)
	}
	return items, nil
}

func requireString(node map[string]any, key, path string) (string, error) {
	val, ok := node[key].(string)
	if !ok || val == "" {
		return "", fmt.Errorf("%s.%s: expected a non-empty string", path, key)
	}
	return val, nil
}

func parseInteger(raw any, path string) (int64, error) {
	switch v := raw.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case uint64:
		if v > 1<<63-1 {
			return 0, fmt.Errorf("%s.value: integer %d out of range", path, v)
		}
		return int64(v), nil
	default:
		return 0, fmt.Errorf("%s.value: expected an integer, got %T", path, raw)
	}
}
