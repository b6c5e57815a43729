package typechecker

import (
	"fmt"
	"strings"

	"github.com/ZaydH/cis561/pkg/ast"
)

// ErrorKind classifies a semantic error. Every *Error unwraps to its kind so
// callers can test with errors.Is(err, typechecker.UseBeforeInit).
type ErrorKind string

func (k ErrorKind) Error() string { return string(k) }

const (
	UnknownType        ErrorKind = "UnknownType"
	UnknownConstructor ErrorKind = "UnknownConstructor"
	UnknownSymbol      ErrorKind = "UnknownSymbol"

	DuplicateClass       ErrorKind = "DuplicateClass"
	DuplicateMethod      ErrorKind = "DuplicateMethod"
	DuplicateParameter   ErrorKind = "DuplicateParameter"
	InvalidParameterType ErrorKind = "InvalidParameterType"

	CyclicInheritance              ErrorKind = "CyclicInheritance"
	InheritedMethodReturnTypeError ErrorKind = "InheritedMethodReturnTypeError"
	MissingSuperFields             ErrorKind = "MissingSuperFields"

	ConstructorIncompleteInit ErrorKind = "ConstructorIncompleteInit"
	UseBeforeInit             ErrorKind = "UseBeforeInit"

	TypeUpdateFailed     ErrorKind = "TypeUpdateFailed"
	TypeMismatch         ErrorKind = "TypeMismatch"
	ConditionTypeError   ErrorKind = "ConditionTypeError"
	ArityMismatch        ErrorKind = "ArityMismatch"
	ArgumentTypeMismatch ErrorKind = "ArgumentTypeMismatch"
	ReturnArityMismatch  ErrorKind = "ReturnArityMismatch"
	UnknownOperator      ErrorKind = "UnknownOperator"
	OperatorArityError   ErrorKind = "OperatorArityError"
	OperatorTypeMismatch ErrorKind = "OperatorTypeMismatch"
	UnaryOpTypeMismatch  ErrorKind = "UnaryOpTypeMismatch"
)

// Error is the first semantic error found in a program. Class and Method
// locate the fault; Symbol names the offending variable, field, method or
// type when there is one.
type Error struct {
	Kind    ErrorKind
	Class   string
	Method  string
	Symbol  string
	Message string
	Node    ast.Node
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("typechecker: (")
	b.WriteString(string(e.Kind))
	b.WriteString(")")
	var where []string
	if e.Class != "" {
		where = append(where, "class "+e.Class)
	}
	if e.Method != "" {
		where = append(where, "method "+e.Method)
	}
	if len(where) > 0 {
		b.WriteString(" ")
		b.WriteString(strings.Join(where, ", "))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Kind }

// classError builds an error located at class level, outside any unit.
func classError(kind ErrorKind, class *Class, format string, args ...any) *Error {
	err := &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
	if class != nil {
		err.Class = class.Name()
		if class.Definition != nil {
			err.Node = class.Definition
		}
	}
	return err
}

// methodError is classError with the method filled in.
func methodError(kind ErrorKind, method *Method, format string, args ...any) *Error {
	err := classError(kind, method.Owner, format, args...)
	err.Method = method.DisplayName()
	if method.Definition != nil {
		err.Node = method.Definition
	}
	return err
}
