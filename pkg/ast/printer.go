package ast

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Print renders the program as Quack source. It is used by the driver's
// debug dump and is not guaranteed to round-trip through a parser.
func Print(w io.Writer, program *Program) error {
	if program == nil {
		return fmt.Errorf("ast: program is nil")
	}
	p := &printer{w: bufio.NewWriter(w)}
	for i, class := range program.Classes {
		if i > 0 {
			p.line("")
		}
		p.class(class)
	}
	if !program.Main.Empty() {
		if len(program.Classes) > 0 {
			p.line("")
		}
		for _, stmt := range program.Main.Body {
			p.statement(stmt)
		}
	}
	return p.w.Flush()
}

type printer struct {
	w      *bufio.Writer
	indent int
}

func (p *printer) line(format string, args ...any) {
	if format != "" {
		p.w.WriteString(strings.Repeat("    ", p.indent))
		fmt.Fprintf(p.w, format, args...)
	}
	p.w.WriteByte('\n')
}

func (p *printer) class(class *ClassDefinition) {
	if class == nil {
		return
	}
	header := fmt.Sprintf("class %s(%s)", class.Name, formatParams(class.Params))
	if class.SuperClass != "" {
		header += " extends " + class.SuperClass
	}
	p.line("%s {", header)
	p.indent++
	if class.Constructor != nil {
		for _, stmt := range class.Constructor.Body {
			p.statement(stmt)
		}
	}
	for _, method := range class.Methods {
		if method == nil {
			continue
		}
		sig := fmt.Sprintf("def %s(%s)", method.Name, formatParams(method.Params))
		if method.ReturnType != "" {
			sig += ": " + method.ReturnType
		}
		p.line("%s {", sig)
		p.block(method.Body)
		p.line("}")
	}
	p.indent--
	p.line("}")
}

func (p *printer) block(block *BlockStatement) {
	p.indent++
	if block != nil {
		for _, stmt := range block.Body {
			p.statement(stmt)
		}
	}
	p.indent--
}

func (p *printer) statement(stmt Statement) {
	switch s := stmt.(type) {
	case *AssignmentStatement:
		target := formatExpression(s.Target)
		if s.TypeAnnotation != "" {
			target += ": " + s.TypeAnnotation
		}
		p.line("%s = %s;", target, formatExpression(s.Value))
	case *BlockStatement:
		p.line("{")
		p.block(s)
		p.line("}")
	case *IfStatement:
		p.line("if %s {", formatExpression(s.Condition))
		p.block(s.Consequence)
		if s.Alternative.Empty() {
			p.line("}")
			return
		}
		p.line("} else {")
		p.block(s.Alternative)
		p.line("}")
	case *WhileLoop:
		p.line("while %s {", formatExpression(s.Condition))
		p.block(s.Body)
		p.line("}")
	case *TypecaseStatement:
		p.line("typecase %s {", formatExpression(s.Subject))
		p.indent++
		for _, alt := range s.Alternatives {
			p.line("%s: %s {", alt.Binding, alt.TypeName)
			p.block(alt.Body)
			p.line("}")
		}
		p.indent--
		p.line("}")
	case *ReturnStatement:
		if s.Argument == nil {
			p.line("return;")
			return
		}
		p.line("return %s;", formatExpression(s.Argument))
	case Expression:
		p.line("%s;", formatExpression(s))
	case nil:
	default:
		p.line("/* unsupported %T */", stmt)
	}
}

func formatParams(params []*Parameter) string {
	parts := make([]string, 0, len(params))
	for _, param := range params {
		parts = append(parts, param.Name+": "+param.TypeName)
	}
	return strings.Join(parts, ", ")
}

func formatArguments(args []Expression) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, formatExpression(arg))
	}
	return strings.Join(parts, ", ")
}

func formatExpression(expr Expression) string {
	switch e := expr.(type) {
	case *Identifier:
		return e.Name
	case *SelfReference:
		return "this"
	case *StringLiteral:
		return strconv.Quote(e.Value)
	case *IntegerLiteral:
		return strconv.FormatInt(e.Value, 10)
	case *BooleanLiteral:
		if e.Value {
			return "true"
		}
		return "false"
	case *UnaryExpression:
		if e.Operator == UnaryOperatorNot {
			return "not " + formatExpression(e.Operand)
		}
		return string(e.Operator) + formatExpression(e.Operand)
	case *BinaryExpression:
		return "(" + formatExpression(e.Left) + " " + e.Operator + " " + formatExpression(e.Right) + ")"
	case *FieldAccess:
		return formatExpression(e.Receiver) + "." + e.Field
	case *MethodCall:
		return formatExpression(e.Receiver) + "." + e.Method + "(" + formatArguments(e.Arguments) + ")"
	case *ConstructorCall:
		return e.Class + "(" + formatArguments(e.Arguments) + ")"
	case nil:
		return "<nil>"
	default:
		return fmt.Sprintf("<%T>", expr)
	}
}
