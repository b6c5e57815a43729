package driver

import (
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ZaydH/cis561/pkg/ast"
	"github.com/ZaydH/cis561/pkg/typechecker"
)

// DumpProgram writes program in the document shape LoadProgram reads. When
// result is non-nil every expression carries a resolvedType key and every
// class a fields table with the inferred field types.
func DumpProgram(w io.Writer, program *ast.Program, result *typechecker.Result) error {
	if program == nil {
		return fmt.Errorf("dump: program is nil")
	}
	d := &dumper{annotate: result != nil}
	if result != nil {
		d.classes = make(map[string]*typechecker.Class, len(result.Classes))
		for _, class := range result.Classes {
			d.classes[class.Name()] = class
		}
	}

	doc := mappingNode()
	classes := &yaml.Node{Kind: yaml.SequenceNode}
	for _, class := range program.Classes {
		classes.Content = append(classes.Content, d.class(class))
	}
	addPair(doc, "classes", classes)
	addPair(doc, "main", d.block(program.Main))

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{doc}}); err != nil {
		return fmt.Errorf("dump: encode: %w", err)
	}
	return enc.Close()
}

type dumper struct {
	annotate bool
	classes  map[string]*typechecker.Class
}

func (d *dumper) class(def *ast.ClassDefinition) *yaml.Node {
	node := mappingNode()
	addScalar(node, "name", def.Name)
	if def.SuperClass != "" {
		addScalar(node, "extends", def.SuperClass)
	}
	addPair(node, "params", params(def.Params))
	addPair(node, "constructor", d.block(def.Constructor))
	methods := &yaml.Node{Kind: yaml.SequenceNode}
	for _, method := range def.Methods {
		m := mappingNode()
		addScalar(m, "name", method.Name)
		addPair(m, "params", params(method.Params))
		if method.ReturnType != "" {
			addScalar(m, "returns", method.ReturnType)
		}
		addPair(m, "body", d.block(method.Body))
		methods.Content = append(methods.Content, m)
	}
	addPair(node, "methods", methods)

	if class, ok := d.classes[def.Name]; ok {
		fields := mappingNode()
		for _, field := range class.Fields() {
			addScalar(fields, field.Name, typeLabel(field.Type))
		}
		addPair(node, "fields", fields)
	}
	return node
}

func params(list []*ast.Parameter) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, param := range list {
		node := mappingNode()
		node.Style = yaml.FlowStyle
		addScalar(node, "name", param.Name)
		addScalar(node, "type", param.TypeName)
		seq.Content = append(seq.Content, node)
	}
	return seq
}

func (d *dumper) block(block *ast.BlockStatement) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	if block == nil {
		return seq
	}
	for _, stmt := range block.Body {
		seq.Content = append(seq.Content, d.statement(stmt))
	}
	return seq
}

func (d *dumper) statement(stmt ast.Statement) *yaml.Node {
	if expr, ok := stmt.(ast.Expression); ok {
		return d.expression(expr)
	}
	node := mappingNode()
	addScalar(node, "type", string(stmt.NodeType()))
	switch s := stmt.(type) {
	case *ast.AssignmentStatement:
		addPair(node, "target", d.expression(s.Target))
		if s.TypeAnnotation != "" {
			addScalar(node, "annotation", s.TypeAnnotation)
		}
		addPair(node, "value", d.expression(s.Value))
	case *ast.BlockStatement:
		addPair(node, "body", d.block(s))
	case *ast.IfStatement:
		addPair(node, "condition", d.expression(s.Condition))
		addPair(node, "then", d.block(s.Consequence))
		if !s.Alternative.Empty() {
			addPair(node, "else", d.block(s.Alternative))
		}
	case *ast.WhileLoop:
		addPair(node, "condition", d.expression(s.Condition))
		addPair(node, "body", d.block(s.Body))
	case *ast.TypecaseStatement:
		addPair(node, "subject", d.expression(s.Subject))
		alts := &yaml.Node{Kind: yaml.SequenceNode}
		for _, alt := range s.Alternatives {
			a := mappingNode()
			addScalar(a, "binding", alt.Binding)
			addScalar(a, "typeName", alt.TypeName)
			addPair(a, "body", d.block(alt.Body))
			alts.Content = append(alts.Content, a)
		}
		addPair(node, "alternatives", alts)
	case *ast.ReturnStatement:
		if s.Argument != nil {
			addPair(node, "value", d.expression(s.Argument))
		}
	}
	return node
}

func (d *dumper) expression(expr ast.Expression) *yaml.Node {
	node := mappingNode()
	addScalar(node, "type", string(expr.NodeType()))
	switch e := expr.(type) {
	case *ast.Identifier:
		addScalar(node, "name", e.Name)
	case *ast.SelfReference:
	case *ast.StringLiteral:
		addPair(node, "value", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Value, Style: yaml.DoubleQuotedStyle})
	case *ast.IntegerLiteral:
		addPair(node, "value", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(e.Value, 10)})
	case *ast.BooleanLiteral:
		addPair(node, "value", &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(e.Value)})
	case *ast.UnaryExpression:
		addScalar(node, "operator", string(e.Operator))
		addPair(node, "operand", d.expression(e.Operand))
	case *ast.BinaryExpression:
		addScalar(node, "operator", e.Operator)
		addPair(node, "left", d.expression(e.Left))
		addPair(node, "right", d.expression(e.Right))
	case *ast.FieldAccess:
		addPair(node, "receiver", d.expression(e.Receiver))
		addScalar(node, "field", e.Field)
	case *ast.MethodCall:
		addPair(node, "receiver", d.expression(e.Receiver))
		addScalar(node, "method", e.Method)
		addPair(node, "arguments", d.expressions(e.Arguments))
	case *ast.ConstructorCall:
		addScalar(node, "class", e.Class)
		addPair(node, "arguments", d.expressions(e.Arguments))
	}
	if d.annotate {
		addScalar(node, "resolvedType", typeRefLabel(expr.ResolvedType()))
	}
	return node
}

func (d *dumper) expressions(list []ast.Expression) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, expr := range list {
		seq.Content = append(seq.Content, d.expression(expr))
	}
	return seq
}

func typeLabel(class *typechecker.Class) string {
	if class == nil {
		return "<unresolved>"
	}
	return class.Name()
}

func typeRefLabel(ref ast.TypeRef) string {
	if ref == nil {
		return "<unresolved>"
	}
	return ref.Name()
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode}
}

func addPair(node *yaml.Node, key string, value *yaml.Node) {
	node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
}

func addScalar(node *yaml.Node, key, value string) {
	addPair(node, key, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value})
}
