package driver

import (
	"bytes"
	"strings"
	"testing"

	"github.com/nalgeon/be"
	"gopkg.in/yaml.v3"

	"github.com/ZaydH/cis561/pkg/typechecker"
)

func TestDumpRoundTrips(t *testing.T) {
	program, err := DecodeProgram(strings.NewReader(pairSource), "pair.yml")
	be.Err(t, err, nil)

	var first bytes.Buffer
	be.Err(t, DumpProgram(&first, program, nil), nil)
	if strings.Contains(first.String(), "resolvedType") {
		t.Fatalf("unannotated dump carries types:\n%s", first.String())
	}

	again, err := DecodeProgram(bytes.NewReader(first.Bytes()), "pair.yml")
	be.Err(t, err, nil)
	var second bytes.Buffer
	be.Err(t, DumpProgram(&second, again, nil), nil)
	be.Equal(t, second.String(), first.String())
}

func TestDumpAnnotatesTypes(t *testing.T) {
	program, err := DecodeProgram(strings.NewReader(pairSource), "pair.yml")
	be.Err(t, err, nil)
	result, err := typechecker.New(typechecker.Options{}).Check(program)
	be.Err(t, err, nil)

	var out bytes.Buffer
	be.Err(t, DumpProgram(&out, program, result), nil)

	var doc struct {
		Classes []struct {
			Name   string            `yaml:"name"`
			Fields map[string]string `yaml:"fields"`
		} `yaml:"classes"`
		Main []map[string]any `yaml:"main"`
	}
	be.Err(t, yaml.Unmarshal(out.Bytes(), &doc), nil)
	be.Equal(t, doc.Classes[0].Fields, map[string]string{"x": "Int", "y": "Int"})

	assign := doc.Main[0]
	value := assign["value"].(map[string]any)
	be.Equal(t, value["resolvedType"], any("Pair"))
	target := assign["target"].(map[string]any)
	be.Equal(t, target["resolvedType"], any("Pair"))

	// Annotated dumps still load.
	_, err = DecodeProgram(bytes.NewReader(out.Bytes()), "annotated.yml")
	be.Err(t, err, nil)
}

func TestDumpQuotesStringsThatLookLikeOtherScalars(t *testing.T) {
	source := "main:\n  - type: MethodCall\n    receiver: {type: StringLiteral, value: \"true\"}\n    method: PRINT\n"
	program, err := DecodeProgram(strings.NewReader(source), "s.yml")
	be.Err(t, err, nil)

	var out bytes.Buffer
	be.Err(t, DumpProgram(&out, program, nil), nil)
	again, err := DecodeProgram(bytes.NewReader(out.Bytes()), "s.yml")
	be.Err(t, err, nil)
	var second bytes.Buffer
	be.Err(t, DumpProgram(&second, again, nil), nil)
	be.Equal(t, second.String(), out.String())
}

func TestDumpRejectsNilProgram(t *testing.T) {
	var out bytes.Buffer
	if err := DumpProgram(&out, nil, nil); err == nil {
		t.Fatalf("expected error for nil program")
	}
}
