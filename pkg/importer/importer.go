// Package importer reads graphs declared in HCL:
//
//	node "1" {
//	  label = "Node 1"
//	  x     = 100
//	  y     = 100
//	}
//
//	edge "a" {
//	  source = "1"
//	  target = "2"
//	  weight = 2.5
//	}
//
// Expressions may call a small set of functions (min, max, abs, floor,
// ceil, upper, lower, format) and read caller-supplied var.* values.
package importer

import (
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"

	"github.com/Alekasndr/graphedit/pkg/graph"
)

var fileSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{
		{Type: "node", LabelNames: []string{"id"}},
		{Type: "edge", LabelNames: []string{"id"}},
	},
}

type hclFile struct {
	Nodes []*hclNode
	Edges []*hclEdge
}

type hclNode struct {
	Label string  `hcl:"label"`
	X     float64 `hcl:"x,optional"`
	Y     float64 `hcl:"y,optional"`
	Type  string  `hcl:"type,optional"`

	ID    string
	Range hcl.Range
}

type hclEdge struct {
	Source string    `hcl:"source"`
	Target string    `hcl:"target"`
	Weight cty.Value `hcl:"weight,optional"`

	ID    string
	Range hcl.Range
}

// Variables are exposed to expressions as var.<name>.
type Variables map[string]cty.Value

// ParseFile reads and decodes an HCL graph file.
func ParseFile(path string, vars Variables) (graph.Snapshot, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return graph.Snapshot{}, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}
	return decode(f, vars)
}

// Parse decodes HCL source. filename is used in diagnostics only.
func Parse(src []byte, filename string, vars Variables) (graph.Snapshot, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return graph.Snapshot{}, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}
	return decode(f, vars)
}

func decode(f *hcl.File, vars Variables) (graph.Snapshot, error) {
	content, diags := f.Body.Content(fileSchema)
	if diags.HasErrors() {
		return graph.Snapshot{}, fmt.Errorf("failed to decode graph: %w", diags)
	}

	ctx := evalContext(vars)
	var parsed hclFile
	for _, block := range content.Blocks {
		switch block.Type {
		case "node":
			n := &hclNode{ID: block.Labels[0], Range: block.DefRange}
			diags = append(diags, gohcl.DecodeBody(block.Body, ctx, n)...)
			parsed.Nodes = append(parsed.Nodes, n)
		case "edge":
			e := &hclEdge{ID: block.Labels[0], Range: block.DefRange}
			diags = append(diags, gohcl.DecodeBody(block.Body, ctx, e)...)
			parsed.Edges = append(parsed.Edges, e)
		}
	}
	if diags.HasErrors() {
		return graph.Snapshot{}, fmt.Errorf("failed to decode graph: %w", diags)
	}

	snap, diags := build(parsed)
	if diags.HasErrors() {
		return graph.Snapshot{}, fmt.Errorf("invalid graph: %w", diags)
	}
	return snap, nil
}

func evalContext(vars Variables) *hcl.EvalContext {
	v := cty.EmptyObjectVal
	if len(vars) > 0 {
		v = cty.ObjectVal(vars)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"var": v},
		Functions: map[string]function.Function{
			"abs":    stdlib.AbsoluteFunc,
			"ceil":   stdlib.CeilFunc,
			"floor":  stdlib.FloorFunc,
			"max":    stdlib.MaxFunc,
			"min":    stdlib.MinFunc,
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
			"format": stdlib.FormatFunc,
		},
	}
}

// build applies the same rules the editor enforces: unique node IDs,
// unique non-empty labels, edges between declared nodes and
// non-negative weights.
func build(f hclFile) (graph.Snapshot, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	snap := graph.Snapshot{
		Nodes: make([]graph.Node, 0, len(f.Nodes)),
		Edges: make([]graph.Edge, 0, len(f.Edges)),
	}

	ids := make(map[string]bool, len(f.Nodes))
	labels := make(map[string]bool, len(f.Nodes))
	for _, n := range f.Nodes {
		subject := n.Range
		label := strings.TrimSpace(n.Label)
		switch {
		case ids[n.ID]:
			diags = append(diags, errorAt(&subject, "Duplicate node", fmt.Sprintf("Node %q is declared more than once.", n.ID)))
			continue
		case label == "":
			diags = append(diags, errorAt(&subject, "Empty label", graph.ErrEmptyLabel.Error()))
			continue
		case labels[label]:
			diags = append(diags, errorAt(&subject, "Duplicate label", (&graph.LabelError{Kind: graph.DuplicateLabel, Label: label}).Error()))
			continue
		}
		ids[n.ID] = true
		labels[label] = true

		typ := n.Type
		if typ == "" {
			typ = graph.DefaultNodeType
		}
		snap.Nodes = append(snap.Nodes, graph.Node{
			ID:       n.ID,
			Type:     typ,
			Position: graph.Position{X: n.X, Y: n.Y},
			Data:     graph.NodeData{Label: label},
		})
	}

	edgeIDs := make(map[string]bool, len(f.Edges))
	for _, e := range f.Edges {
		subject := e.Range
		if edgeIDs[e.ID] {
			diags = append(diags, errorAt(&subject, "Duplicate edge", fmt.Sprintf("Edge %q is declared more than once.", e.ID)))
			continue
		}
		edgeIDs[e.ID] = true

		var missing []string
		for _, end := range []string{e.Source, e.Target} {
			if !ids[end] {
				missing = append(missing, end)
			}
		}
		if len(missing) > 0 {
			diags = append(diags, errorAt(&subject, "Unknown node", fmt.Sprintf("Edge %q references undeclared node(s) %q.", e.ID, missing)))
			continue
		}

		w, wDiag := weightOf(e)
		if wDiag != nil {
			diags = append(diags, wDiag)
			continue
		}
		snap.Edges = append(snap.Edges, graph.Edge{ID: e.ID, Source: e.Source, Target: e.Target}.WithWeight(w))
	}
	return snap, diags
}

func weightOf(e *hclEdge) (*float64, *hcl.Diagnostic) {
	subject := e.Range
	if e.Weight.IsNull() {
		return nil, nil
	}
	var w float64
	if err := gocty.FromCtyValue(e.Weight, &w); err != nil {
		return nil, errorAt(&subject, "Invalid weight", fmt.Sprintf("Edge %q weight must be a number: %s.", e.ID, err))
	}
	if math.IsNaN(w) || math.IsInf(w, 0) {
		return nil, errorAt(&subject, "Invalid weight", graph.ErrInvalidWeight.Error())
	}
	if w < 0 {
		return nil, errorAt(&subject, "Invalid weight", graph.ErrNegativeWeight.Error())
	}
	return &w, nil
}

func errorAt(subject *hcl.Range, summary, detail string) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  summary,
		Detail:   detail,
		Subject:  subject,
	}
}
