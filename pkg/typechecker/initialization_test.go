package typechecker

import (
	"testing"

	"github.com/ZaydH/cis561/pkg/ast"
	"github.com/nalgeon/be"
)

func TestInitializedSetOperations(t *testing.T) {
	a := NewInitializedSet(Local("x"), FieldKey("f"))
	b := a.Clone()
	b.Add(FieldKey("g"))
	be.Equal(t, a.Len(), 2)
	be.Equal(t, b.Len(), 3)

	a.Add(Local("y"))
	a.IntersectWith(b)
	be.Equal(t, a.Len(), 2)
	be.True(t, a.Contains(Local("x")))
	be.Equal(t, a.Contains(Local("y")), false)

	a.UnionWith(b)
	be.Equal(t, a.Fields(), []string{"f", "g"})
	be.Equal(t, a.Contains(Local("f")), false)
}

func TestBothBranchesEstablishField(t *testing.T) {
	program := ast.Prog([]*ast.ClassDefinition{
		ast.Class("Pair", "", pairParams(), []ast.Statement{
			ast.Iff(ast.Bin(">", ast.ID("x"), ast.Int(0)),
				ast.Block(
					ast.Assign(ast.SelfField("x"), ast.ID("x")),
					ast.Assign(ast.SelfField("y"), ast.ID("y")),
				),
				ast.Block(
					ast.Assign(ast.SelfField("x"), ast.ID("x")),
					ast.Assign(ast.SelfField("y"), ast.Int(0)),
				),
			),
		}),
	})
	result := mustCheck(t, program)
	got := fieldTypes(result.Classes[0])
	if len(got) != 2 || got["y"] != "Int" {
		t.Fatalf("expected fields x and y, got %v", got)
	}
}

func TestFieldSetBeforeBranchSurvivesJoin(t *testing.T) {
	program := ast.Prog([]*ast.ClassDefinition{
		ast.Class("Cell", "", []*ast.Parameter{ast.Param("v", "Int")}, []ast.Statement{
			ast.Assign(ast.SelfField("v"), ast.ID("v")),
			ast.Iff(ast.Bool(true),
				ast.Block(ast.Assign(ast.ID("tmp"), ast.Int(1))),
				nil,
			),
			ast.Assign(ast.ID("copy"), ast.SelfField("v")),
		}),
	})
	mustCheck(t, program)
}

func TestNameAssignedOnlyInLoopIsNotInitializedAfterIt(t *testing.T) {
	program := ast.Prog(nil,
		ast.Wloop(ast.Bool(false), ast.Assign(ast.ID("z"), ast.Int(1))),
		ast.CallExpr(ast.ID("z"), "PRINT"),
	)
	_, err := checkProgram(t, program)
	typeErr := expectKind(t, err, UseBeforeInit)
	if typeErr.Symbol != "z" {
		t.Fatalf("expected error naming z, got %v", typeErr)
	}
}

func TestFieldAssignedOnlyInLoopIsIncomplete(t *testing.T) {
	program := ast.Prog([]*ast.ClassDefinition{
		ast.Class("Counter", "", []*ast.Parameter{ast.Param("n", "Int")}, []ast.Statement{
			ast.Wloop(ast.Bin(">", ast.ID("n"), ast.Int(0)),
				ast.Assign(ast.SelfField("last"), ast.ID("n")),
			),
		}),
	})
	_, err := checkProgram(t, program)
	typeErr := expectKind(t, err, ConstructorIncompleteInit)
	if typeErr.Symbol != "last" {
		t.Fatalf("expected error naming last, got %v", typeErr)
	}
}

func TestLoopBodySeesOuterNames(t *testing.T) {
	program := ast.Prog(nil,
		ast.Assign(ast.ID("i"), ast.Int(0)),
		ast.Wloop(ast.Bin("<", ast.ID("i"), ast.Int(10)),
			ast.Assign(ast.ID("i"), ast.Bin("+", ast.ID("i"), ast.Int(1))),
		),
		ast.CallExpr(ast.ID("i"), "PRINT"),
	)
	mustCheck(t, program)
}

func TestUseBeforeAssignmentInMain(t *testing.T) {
	program := ast.Prog(nil,
		ast.Assign(ast.ID("a"), ast.ID("b")),
		ast.Assign(ast.ID("b"), ast.Int(1)),
	)
	_, err := checkProgram(t, program)
	typeErr := expectKind(t, err, UseBeforeInit)
	if typeErr.Symbol != "b" || typeErr.Method != "" {
		t.Fatalf("expected top-level error naming b, got %v", typeErr)
	}
}

func TestConstructorFieldUsedBeforeAssignment(t *testing.T) {
	program := ast.Prog([]*ast.ClassDefinition{
		ast.Class("Cell", "", []*ast.Parameter{ast.Param("v", "Int")}, []ast.Statement{
			ast.Assign(ast.ID("old"), ast.SelfField("v")),
			ast.Assign(ast.SelfField("v"), ast.ID("v")),
		}),
	})
	_, err := checkProgram(t, program)
	typeErr := expectKind(t, err, UseBeforeInit)
	if typeErr.Class != "Cell" || typeErr.Method != "<constructor>" {
		t.Fatalf("expected error located in Cell's constructor, got %v", typeErr)
	}
}

func TestTypecaseJoinsAlternatives(t *testing.T) {
	program := ast.Prog(nil,
		ast.Assign(ast.ID("o"), ast.Int(1)),
		ast.Typecase(ast.ID("o"),
			ast.Alt("i", "Int", ast.Assign(ast.ID("r"), ast.ID("i"))),
			ast.Alt("s", "String", ast.Assign(ast.ID("r"), ast.ID("s"))),
		),
		ast.CallExpr(ast.ID("r"), "PRINT"),
	)
	mustCheck(t, program)
}

func TestTypecaseNameMissingFromOneAlternative(t *testing.T) {
	program := ast.Prog(nil,
		ast.Assign(ast.ID("o"), ast.Int(1)),
		ast.Typecase(ast.ID("o"),
			ast.Alt("i", "Int", ast.Assign(ast.ID("r"), ast.ID("i"))),
			ast.Alt("s", "String", ast.CallExpr(ast.ID("s"), "PRINT")),
		),
		ast.CallExpr(ast.ID("r"), "PRINT"),
	)
	_, err := checkProgram(t, program)
	typeErr := expectKind(t, err, UseBeforeInit)
	if typeErr.Symbol != "r" {
		t.Fatalf("expected error naming r, got %v", typeErr)
	}
}

func TestTypecaseBindingDoesNotEscape(t *testing.T) {
	program := ast.Prog(nil,
		ast.Assign(ast.ID("o"), ast.Int(1)),
		ast.Typecase(ast.ID("o"),
			ast.Alt("i", "Int", ast.CallExpr(ast.ID("i"), "PRINT")),
			ast.Alt("s", "String", ast.CallExpr(ast.ID("s"), "PRINT")),
		),
		ast.CallExpr(ast.ID("i"), "PRINT"),
	)
	_, err := checkProgram(t, program)
	expectKind(t, err, UseBeforeInit)
}

func TestTypecaseBindingSharedByEveryAlternativeEscapes(t *testing.T) {
	use := ast.ID("v")
	program := ast.Prog(nil,
		ast.Assign(ast.ID("o"), ast.Int(1)),
		ast.Typecase(ast.ID("o"),
			ast.Alt("v", "Int", ast.CallExpr(ast.ID("v"), "PRINT")),
			ast.Alt("v", "String", ast.CallExpr(ast.ID("v"), "PRINT")),
		),
		ast.CallExpr(use, "PRINT"),
	)
	mustCheck(t, program)
	be.Equal(t, resolvedName(use), "Object")
}
