package typechecker

import (
	"fmt"
	"io"

	"github.com/ZaydH/cis561/pkg/ast"
)

// DefaultMaxPasses bounds the fixed-point loop of a single inference unit.
const DefaultMaxPasses = 32

// Options configures a Checker.
type Options struct {
	// MaxPasses caps the passes over one unit. Zero means DefaultMaxPasses.
	MaxPasses int
	// Trace receives one line per converged unit when non-nil.
	Trace io.Writer
}

// Checker runs class setup, hierarchy validation, initialization analysis
// and type inference over a program. A Checker can be reused; every Check
// starts from a fresh Registry.
type Checker struct {
	opts       Options
	registry   *Registry
	units      []*unit
	fieldState map[*Class]inferState
	passes     map[string]int
}

type inferState int

const (
	inferPending inferState = iota
	inferRunning
	inferDone
)

// Result describes a program that checked cleanly. The AST passed to Check
// has been annotated in place.
type Result struct {
	Registry *Registry
	// Classes holds the user classes in declaration order.
	Classes []*Class
	// Passes records how many passes each unit needed, keyed by unit label
	// such as "Pair.<constructor>", "Pair.sum" or "<main>".
	Passes map[string]int
}

// New returns a checker instance.
func New(opts Options) *Checker {
	return &Checker{opts: opts}
}

// Check validates program and annotates every expression with its resolved
// type. The first semantic error aborts the check and is returned as *Error.
func (c *Checker) Check(program *ast.Program) (*Result, error) {
	if program == nil {
		return nil, fmt.Errorf("typechecker: program is nil")
	}
	c.registry = NewRegistry()
	c.units = nil
	c.fieldState = make(map[*Class]inferState)
	c.passes = make(map[string]int)

	steps := []func() error{
		func() error { return c.declareClasses(program) },
		c.resolveClasses,
		c.checkCycles,
		c.checkCovariance,
		func() error { return c.analyzeInitialization(program) },
		func() error { return c.inferProgram(program) },
		c.checkFieldInheritance,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return &Result{
		Registry: c.registry,
		Classes:  c.registry.UserClasses(),
		Passes:   c.passes,
	}, nil
}

func (c *Checker) maxPasses() int {
	if c.opts.MaxPasses > 0 {
		return c.opts.MaxPasses
	}
	return DefaultMaxPasses
}
