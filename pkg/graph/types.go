package graph

import "strconv"

// DefaultNodeType is the type assigned to nodes created through AddNode.
const DefaultNodeType = "default"

// Position is a node's canvas coordinate. The model never interprets it.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData carries the user-facing node payload.
type NodeData struct {
	Label string `json:"label"`
}

// Node is a labeled, positioned vertex.
type Node struct {
	ID       string   `json:"id"`
	Type     string   `json:"type"`
	Position Position `json:"position"`
	Data     NodeData `json:"data"`
}

// Label returns the node's label.
func (n Node) Label() string {
	return n.Data.Label
}

// EdgeData carries the edge weight. A nil Weight counts as 1 when
// computing paths.
type EdgeData struct {
	Weight *float64 `json:"weight"`
}

// Edge connects two nodes. Source and Target are stored as drawn but the
// edge is traversed in both directions.
type Edge struct {
	ID     string   `json:"id"`
	Source string   `json:"source"`
	Target string   `json:"target"`
	Data   EdgeData `json:"data"`
	Label  *string  `json:"label"`
}

// Cost is the contribution of the edge to a path distance.
func (e Edge) Cost() float64 {
	if e.Data.Weight == nil {
		return 1
	}
	return *e.Data.Weight
}

// Touches reports whether id is one of the edge's endpoints.
func (e Edge) Touches(id string) bool {
	return e.Source == id || e.Target == id
}

// Other returns the endpoint opposite to id.
func (e Edge) Other(id string) string {
	if e.Source == id {
		return e.Target
	}
	return e.Source
}

// WithWeight returns a copy of e carrying weight w and a display label
// mirroring it. A nil w clears both.
func (e Edge) WithWeight(w *float64) Edge {
	if w == nil {
		e.Data.Weight = nil
		e.Label = nil
		return e
	}
	v := *w
	label := FormatWeight(v)
	e.Data.Weight = &v
	e.Label = &label
	return e
}

// FormatWeight renders a weight the way edge labels display it.
func FormatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// Snapshot is an immutable copy of the graph's structural state.
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Clone returns a deep copy of s.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Nodes: cloneNodes(s.Nodes),
		Edges: cloneEdges(s.Edges),
	}
}

// Seed returns the default graph used when nothing has been persisted.
func Seed() Snapshot {
	return Snapshot{
		Nodes: []Node{
			{ID: "1", Type: DefaultNodeType, Position: Position{X: 100, Y: 100}, Data: NodeData{Label: "Node 1"}},
			{ID: "2", Type: DefaultNodeType, Position: Position{X: 400, Y: 200}, Data: NodeData{Label: "Node 2"}},
		},
		Edges: []Edge{},
	}
}

func cloneNodes(nodes []Node) []Node {
	out := make([]Node, len(nodes))
	copy(out, nodes)
	return out
}

func cloneEdges(edges []Edge) []Edge {
	out := make([]Edge, len(edges))
	for i, e := range edges {
		if e.Data.Weight != nil {
			w := *e.Data.Weight
			e.Data.Weight = &w
		}
		if e.Label != nil {
			l := *e.Label
			e.Label = &l
		}
		out[i] = e
	}
	return out
}

// GridPosition places the n-th node (zero based) on a grid of five per
// row, for callers that add nodes without choosing a position.
func GridPosition(n int) Position {
	return Position{
		X: float64(100 + (n%5)*150),
		Y: float64(100 + (n/5)*120),
	}
}
