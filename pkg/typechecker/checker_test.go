package typechecker

import (
	"errors"
	"strings"
	"testing"

	"github.com/ZaydH/cis561/pkg/ast"
)

func checkProgram(t *testing.T, program *ast.Program) (*Result, error) {
	t.Helper()
	return New(Options{}).Check(program)
}

func mustCheck(t *testing.T, program *ast.Program) *Result {
	t.Helper()
	result, err := checkProgram(t, program)
	if err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	return result
}

func expectKind(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got none", kind)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %s error, got %v", kind, err)
	}
	var typeErr *Error
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected *Error, got %T", err)
	}
	return typeErr
}

func pairParams() []*ast.Parameter {
	return []*ast.Parameter{ast.Param("x", "Int"), ast.Param("y", "Int")}
}

func fieldTypes(class *Class) map[string]string {
	out := make(map[string]string)
	for _, field := range class.Fields() {
		out[field.Name] = typeName(field.Type)
	}
	return out
}

func TestPairTypeChecks(t *testing.T) {
	program := ast.Prog([]*ast.ClassDefinition{
		ast.Class("Pair", "", pairParams(), []ast.Statement{
			ast.Assign(ast.SelfField("x"), ast.ID("x")),
			ast.Assign(ast.SelfField("y"), ast.ID("y")),
		}),
	})

	result := mustCheck(t, program)
	if len(result.Classes) != 1 || result.Classes[0].Name() != "Pair" {
		t.Fatalf("expected class table [Pair], got %v", result.Classes)
	}
	got := fieldTypes(result.Classes[0])
	if len(got) != 2 || got["x"] != "Int" || got["y"] != "Int" {
		t.Fatalf("expected fields {x: Int, y: Int}, got %v", got)
	}
	if result.Classes[0].Super != result.Registry.ObjectClass() {
		t.Fatalf("expected Pair to extend Object")
	}
}

func TestConstructorMissingFieldOnElsePath(t *testing.T) {
	program := ast.Prog([]*ast.ClassDefinition{
		ast.Class("Pair", "", pairParams(), []ast.Statement{
			ast.Iff(ast.Bin(">", ast.ID("x"), ast.Int(0)),
				ast.Block(
					ast.Assign(ast.SelfField("x"), ast.ID("x")),
					ast.Assign(ast.SelfField("y"), ast.ID("y")),
				),
				ast.Block(
					ast.Assign(ast.SelfField("x"), ast.ID("x")),
				),
			),
		}),
	})

	_, err := checkProgram(t, program)
	typeErr := expectKind(t, err, ConstructorIncompleteInit)
	if typeErr.Class != "Pair" || typeErr.Symbol != "y" {
		t.Fatalf("expected error naming Pair and y, got %v", typeErr)
	}
}

func TestMethodReadsUnestablishedField(t *testing.T) {
	program := ast.Prog([]*ast.ClassDefinition{
		ast.Class("Pair", "", pairParams(),
			[]ast.Statement{
				ast.Assign(ast.SelfField("x"), ast.ID("x")),
				ast.Assign(ast.SelfField("y"), ast.ID("y")),
			},
			ast.Method("get", nil, "Int", ast.Ret(ast.SelfField("z"))),
		),
	})

	_, err := checkProgram(t, program)
	typeErr := expectKind(t, err, UseBeforeInit)
	if typeErr.Method != "get" || typeErr.Symbol != "z" {
		t.Fatalf("expected error in get naming z, got %v", typeErr)
	}
}

func covarianceProgram(aReturns, bReturns string) *ast.Program {
	return ast.Prog([]*ast.ClassDefinition{
		ast.Class("A", "", nil, nil,
			ast.Method("foo", nil, aReturns, ast.Ret(ast.New(aReturns))),
		),
		ast.Class("B", "A", nil, nil,
			ast.Method("foo", nil, bReturns, ast.Ret(ast.New(bReturns))),
		),
	})
}

func TestCovariantOverrideAccepted(t *testing.T) {
	mustCheck(t, covarianceProgram("A", "B"))
}

func TestContravariantOverrideRejected(t *testing.T) {
	_, err := checkProgram(t, covarianceProgram("B", "A"))
	typeErr := expectKind(t, err, InheritedMethodReturnTypeError)
	if typeErr.Class != "B" || typeErr.Method != "foo" {
		t.Fatalf("expected error naming B.foo, got %v", typeErr)
	}
}

func TestErrorMessageLocatesFault(t *testing.T) {
	_, err := checkProgram(t, covarianceProgram("B", "A"))
	msg := err.Error()
	for _, want := range []string{"typechecker: (InheritedMethodReturnTypeError)", "class B", "method foo"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected message to contain %q, got %q", want, msg)
		}
	}
}

func TestCheckRejectsNilProgram(t *testing.T) {
	if _, err := New(Options{}).Check(nil); err == nil {
		t.Fatalf("expected error for nil program")
	}
}

func TestCheckerUsesFreshRegistryPerRun(t *testing.T) {
	checker := New(Options{})
	program := ast.Prog([]*ast.ClassDefinition{ast.Class("Box", "", nil, nil)})
	first, err := checker.Check(program)
	if err != nil {
		t.Fatalf("first Check returned error: %v", err)
	}
	second, err := checker.Check(ast.Prog([]*ast.ClassDefinition{ast.Class("Box", "", nil, nil)}))
	if err != nil {
		t.Fatalf("second Check returned error: %v", err)
	}
	if first.Registry == second.Registry {
		t.Fatalf("expected a fresh registry per Check")
	}
}

func TestTraceReportsConvergence(t *testing.T) {
	var trace strings.Builder
	program := ast.Prog([]*ast.ClassDefinition{
		ast.Class("Pair", "", pairParams(), []ast.Statement{
			ast.Assign(ast.SelfField("x"), ast.ID("x")),
			ast.Assign(ast.SelfField("y"), ast.ID("y")),
		}),
	})
	if _, err := New(Options{Trace: &trace}).Check(program); err != nil {
		t.Fatalf("Check returned error: %v", err)
	}
	if !strings.Contains(trace.String(), "trace: Pair.<constructor> converged after 2 passes") {
		t.Fatalf("unexpected trace output: %q", trace.String())
	}
	if !strings.Contains(trace.String(), "trace: <main> converged after 1 passes") {
		t.Fatalf("expected main block trace, got %q", trace.String())
	}
}
