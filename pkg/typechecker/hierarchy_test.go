package typechecker

import (
	"fmt"
	"testing"

	"github.com/ZaydH/cis561/pkg/ast"
)

func TestCyclicInheritanceRejected(t *testing.T) {
	program := ast.Prog([]*ast.ClassDefinition{
		ast.Class("A", "C", nil, nil),
		ast.Class("B", "A", nil, nil),
		ast.Class("C", "B", nil, nil),
	})
	_, err := checkProgram(t, program)
	typeErr := expectKind(t, err, CyclicInheritance)
	if typeErr.Class != "A" {
		t.Fatalf("expected cycle reported for A, got %v", typeErr)
	}
}

func TestSelfInheritanceRejected(t *testing.T) {
	program := ast.Prog([]*ast.ClassDefinition{ast.Class("Loop", "Loop", nil, nil)})
	_, err := checkProgram(t, program)
	expectKind(t, err, CyclicInheritance)
}

func TestDeepAcyclicHierarchyAccepted(t *testing.T) {
	classes := []*ast.ClassDefinition{ast.Class("C0", "", nil, nil)}
	for i := 1; i < 12; i++ {
		classes = append(classes, ast.Class(fmt.Sprintf("C%d", i), fmt.Sprintf("C%d", i-1), nil, nil))
	}
	result := mustCheck(t, ast.Prog(classes))
	leaf := result.Classes[len(result.Classes)-1]
	if !result.Registry.IsSubtype(leaf, result.Classes[0]) {
		t.Fatalf("expected %s to be a subtype of C0", leaf.Name())
	}
}

func TestClassSetupErrors(t *testing.T) {
	tests := []struct {
		name    string
		classes []*ast.ClassDefinition
		kind    ErrorKind
	}{
		{
			name:    "unknown super",
			classes: []*ast.ClassDefinition{ast.Class("A", "Missing", nil, nil)},
			kind:    UnknownType,
		},
		{
			name:    "nothing super",
			classes: []*ast.ClassDefinition{ast.Class("A", "Nothing", nil, nil)},
			kind:    UnknownType,
		},
		{
			name: "duplicate class",
			classes: []*ast.ClassDefinition{
				ast.Class("A", "", nil, nil),
				ast.Class("A", "", nil, nil),
			},
			kind: DuplicateClass,
		},
		{
			name:    "redefined builtin",
			classes: []*ast.ClassDefinition{ast.Class("String", "", nil, nil)},
			kind:    DuplicateClass,
		},
		{
			name:    "unknown parameter type",
			classes: []*ast.ClassDefinition{ast.Class("A", "", []*ast.Parameter{ast.Param("w", "Widget")}, nil)},
			kind:    UnknownType,
		},
		{
			name:    "nothing parameter",
			classes: []*ast.ClassDefinition{ast.Class("A", "", []*ast.Parameter{ast.Param("n", "Nothing")}, nil)},
			kind:    InvalidParameterType,
		},
		{
			name: "duplicate parameter",
			classes: []*ast.ClassDefinition{ast.Class("A", "", nil, nil,
				ast.Method("f", []*ast.Parameter{ast.Param("a", "Int"), ast.Param("a", "Int")}, ""),
			)},
			kind: DuplicateParameter,
		},
		{
			name: "unknown return type",
			classes: []*ast.ClassDefinition{ast.Class("A", "", nil, nil,
				ast.Method("f", nil, "Widget"),
			)},
			kind: UnknownType,
		},
		{
			name: "duplicate method",
			classes: []*ast.ClassDefinition{ast.Class("A", "", nil, nil,
				ast.Method("f", nil, ""),
				ast.Method("f", nil, ""),
			)},
			kind: DuplicateMethod,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := checkProgram(t, ast.Prog(test.classes))
			expectKind(t, err, test.kind)
		})
	}
}

func TestOverrideOfBuiltinMethodMustBeCovariant(t *testing.T) {
	program := ast.Prog([]*ast.ClassDefinition{
		ast.Class("Name", "", nil, nil,
			ast.Method("STR", nil, "Int", ast.Ret(ast.Int(1))),
		),
	})
	_, err := checkProgram(t, program)
	typeErr := expectKind(t, err, InheritedMethodReturnTypeError)
	if typeErr.Symbol != "STR" {
		t.Fatalf("expected error naming STR, got %v", typeErr)
	}
}

func TestSubclassMustInitializeSuperFields(t *testing.T) {
	program := ast.Prog([]*ast.ClassDefinition{
		ast.Class("Point", "", pairParams(), []ast.Statement{
			ast.Assign(ast.SelfField("x"), ast.ID("x")),
			ast.Assign(ast.SelfField("y"), ast.ID("y")),
		}),
		ast.Class("Flat", "Point", []*ast.Parameter{ast.Param("x", "Int")}, []ast.Statement{
			ast.Assign(ast.SelfField("x"), ast.ID("x")),
		}),
	})
	_, err := checkProgram(t, program)
	typeErr := expectKind(t, err, MissingSuperFields)
	if typeErr.Class != "Flat" || typeErr.Symbol != "y" {
		t.Fatalf("expected error naming Flat and y, got %v", typeErr)
	}
}

func TestSubclassFieldTypeMustNarrow(t *testing.T) {
	program := ast.Prog([]*ast.ClassDefinition{
		ast.Class("Holder", "", []*ast.Parameter{ast.Param("v", "Int")}, []ast.Statement{
			ast.Assign(ast.SelfField("v"), ast.ID("v")),
		}),
		ast.Class("Other", "Holder", []*ast.Parameter{ast.Param("s", "String")}, []ast.Statement{
			ast.Assign(ast.SelfField("v"), ast.ID("s")),
		}),
	})
	_, err := checkProgram(t, program)
	typeErr := expectKind(t, err, TypeMismatch)
	if typeErr.Class != "Other" || typeErr.Symbol != "v" {
		t.Fatalf("expected error naming Other and v, got %v", typeErr)
	}
}

func TestSubclassAddsFields(t *testing.T) {
	program := ast.Prog([]*ast.ClassDefinition{
		ast.Class("Point", "", pairParams(), []ast.Statement{
			ast.Assign(ast.SelfField("x"), ast.ID("x")),
			ast.Assign(ast.SelfField("y"), ast.ID("y")),
		}),
		ast.Class("Named", "Point", []*ast.Parameter{ast.Param("name", "String")}, []ast.Statement{
			ast.Assign(ast.SelfField("x"), ast.Int(0)),
			ast.Assign(ast.SelfField("y"), ast.Int(0)),
			ast.Assign(ast.SelfField("name"), ast.ID("name")),
		}),
	})
	result := mustCheck(t, program)
	got := fieldTypes(result.Classes[1])
	if len(got) != 3 || got["name"] != "String" || got["x"] != "Int" {
		t.Fatalf("unexpected Named fields: %v", got)
	}
}
