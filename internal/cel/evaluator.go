// Package cel evaluates the conditions that decide whether a toolbar entry
// takes part in a layout pass.
package cel

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"
)

// Variable names bound in every condition.
const (
	ContextVar = "ctx"
	EntryVar   = "entry"
)

// Evaluator compiles and evaluates entry conditions. It is safe for
// concurrent use; compiled programs are cached per expression.
type Evaluator struct {
	env *cel.Env

	mu       sync.Mutex
	programs map[string]cel.Program
}

// NewEvaluator creates an evaluator with the standard extension libraries.
func NewEvaluator() (*Evaluator, error) {
	env, err := newConditionEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	return &Evaluator{env: env, programs: make(map[string]cel.Program)}, nil
}

// GetEnvironment returns the CEL environment for introspection.
func (e *Evaluator) GetEnvironment() *cel.Env {
	return e.env
}

func newConditionEnv(opts ...cel.EnvOption) (*cel.Env, error) {
	allOpts := make([]cel.EnvOption, 0, 6+len(opts))
	allOpts = append(allOpts,
		cel.Variable(ContextVar, cel.MapType(cel.StringType, cel.DynType)),
		cel.Variable(EntryVar, cel.MapType(cel.StringType, cel.DynType)),
		celext.Strings(),
		celext.Encoders(),
		celext.Lists(),
		celext.Math(),
	)
	allOpts = append(allOpts, opts...)
	return cel.NewEnv(allOpts...)
}

// Validate compiles expr and checks that it can yield a bool.
func (e *Evaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := e.program(expr)
	return err
}

// Visible evaluates expr with ctx and entry bound. An empty expression is
// always visible; a condition that does not produce a bool is an error.
func (e *Evaluator) Visible(expr string, ctx, entry map[string]any) (bool, error) {
	if strings.TrimSpace(expr) == "" {
		return true, nil
	}
	prg, err := e.program(expr)
	if err != nil {
		return false, err
	}
	if ctx == nil {
		ctx = map[string]any{}
	}
	if entry == nil {
		entry = map[string]any{}
	}
	out, _, err := prg.Eval(map[string]any{
		ContextVar: ctx,
		EntryVar:   entry,
	})
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	b, ok := out.(types.Bool)
	if !ok {
		return false, fmt.Errorf("condition %q returned %s, want bool", expr, out.Type().TypeName())
	}
	return bool(b), nil
}

func (e *Evaluator) program(expr string) (cel.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if prg, ok := e.programs[expr]; ok {
		return prg, nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compilation error: %w", issues.Err())
	}
	out := ast.OutputType()
	if !out.IsExactType(cel.BoolType) && !out.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("condition %q has type %s, want bool", expr, out)
	}
	prg, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	e.programs[expr] = prg
	return prg, nil
}
