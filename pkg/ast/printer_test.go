package ast

import (
	"strings"
	"testing"
)

func TestPrintClassAndMain(t *testing.T) {
	pair := Class(
		"Pair",
		"",
		[]*Parameter{Param("x", "Int"), Param("y", "Int")},
		[]Statement{
			Assign(SelfField("x"), ID("x")),
			Assign(SelfField("y"), ID("y")),
		},
		Method("sum", nil, "Int", Ret(Bin("+", SelfField("x"), SelfField("y")))),
	)
	program := Prog(
		[]*ClassDefinition{pair},
		AssignTyped(ID("p"), "Pair", New("Pair", Int(1), Int(2))),
		Iff(Bin(">", CallExpr(ID("p"), "sum"), Int(2)),
			Block(CallExpr(Str("big"), "PRINT")),
			nil,
		),
	)

	var out strings.Builder
	if err := Print(&out, program); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"class Pair(x: Int, y: Int) {",
		"    this.x = x;",
		"    def sum(): Int {",
		"        return (this.x + this.y);",
		"p: Pair = Pair(1, 2);",
		"if (p.sum() > 2) {",
		"    \"big\".PRINT();",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
	if strings.Contains(got, "else") {
		t.Fatalf("expected empty else branch to be omitted, got:\n%s", got)
	}
}

func TestPrintControlFlow(t *testing.T) {
	program := Prog(nil,
		Assign(ID("i"), Int(0)),
		Wloop(Bin("<", ID("i"), Int(3)), Assign(ID("i"), Bin("+", ID("i"), Int(1)))),
		Typecase(ID("i"),
			Alt("n", "Int", CallExpr(ID("n"), "PRINT")),
			Alt("o", "Object", Ret(nil)),
		),
		Assign(ID("b"), Un(UnaryOperatorNot, Bool(false))),
	)

	var out strings.Builder
	if err := Print(&out, program); err != nil {
		t.Fatalf("Print returned error: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"while (i < 3) {",
		"typecase i {",
		"    n: Int {",
		"        return;",
		"b = not false;",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected output to contain %q, got:\n%s", want, got)
		}
	}
}

func TestPrintRejectsNilProgram(t *testing.T) {
	if err := Print(&strings.Builder{}, nil); err == nil {
		t.Fatalf("expected error for nil program")
	}
}
