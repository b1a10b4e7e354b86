// Package query filters graph nodes with CEL expressions such as
//
//	degree == 0 && label.startsWith("tmp")
//	x > 300 || id in ["1", "2"]
//	kind == "output"
//
// The node type is exposed as kind because type is reserved in CEL.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/cel-go/cel"

	"github.com/Alekasndr/graphedit/pkg/graph"
)

// ErrNotBoolean is returned by Compile for expressions that do not
// produce a bool.
var ErrNotBoolean = errors.New("query: expression must evaluate to a bool")

// Filter is a compiled node predicate.
type Filter struct {
	expr string
	prg  cel.Program
}

func newEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("id", cel.StringType),
		cel.Variable("label", cel.StringType),
		cel.Variable("kind", cel.StringType),
		cel.Variable("x", cel.DoubleType),
		cel.Variable("y", cel.DoubleType),
		cel.Variable("degree", cel.IntType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL env: %w", err)
	}
	return env, nil
}

// Compile parses and type-checks expr. A blank expression matches every
// node.
func Compile(expr string) (*Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		expr = "true"
	}

	env, err := newEnv()
	if err != nil {
		return nil, err
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("query %q compilation error: %w", expr, issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%w: %q is %s", ErrNotBoolean, expr, ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("query %q program creation error: %w", expr, err)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

func (f *Filter) String() string { return f.expr }

// Match evaluates the filter against one node.
func (f *Filter) Match(n graph.Node, degree int) (bool, error) {
	out, _, err := f.prg.Eval(map[string]interface{}{
		"id":     n.ID,
		"label":  n.Data.Label,
		"kind":   n.Type,
		"x":      n.Position.X,
		"y":      n.Position.Y,
		"degree": int64(degree),
	})
	if err != nil {
		return false, fmt.Errorf("query %q failed on node %s: %w", f.expr, n.ID, err)
	}
	match, ok := out.Value().(bool)
	return ok && match, nil
}

// Nodes returns the model's nodes accepted by f, in collection order.
func Nodes(m *graph.Model, f *Filter) ([]graph.Node, error) {
	var out []graph.Node
	for _, n := range m.Nodes() {
		ok, err := f.Match(n, m.Degree(n.ID))
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}
