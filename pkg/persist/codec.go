package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Alekasndr/graphedit/pkg/graph"
)

// ErrMalformed is returned by Decode for documents that are not valid
// graph JSON or that reference missing nodes.
var ErrMalformed = errors.New("persist: malformed graph document")

type document struct {
	Nodes *[]graph.Node `json:"nodes"`
	Edges *[]graph.Edge `json:"edges"`
}

// Encode renders a snapshot as the indented JSON document stored under
// the graph key. Empty collections are written as [] rather than null.
func Encode(s graph.Snapshot) ([]byte, error) {
	nodes := s.Nodes
	if nodes == nil {
		nodes = []graph.Node{}
	}
	edges := s.Edges
	if edges == nil {
		edges = []graph.Edge{}
	}
	data, err := json.MarshalIndent(document{Nodes: &nodes, Edges: &edges}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}
	return append(data, '\n'), nil
}

// Decode parses a stored document. Both collections must be present,
// node IDs must be unique and every edge must join two known nodes.
func Decode(data []byte) (graph.Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return graph.Snapshot{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	// A second value, or garbage, after the document means a torn or
	// concatenated write.
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return graph.Snapshot{}, fmt.Errorf("%w: trailing data after document", ErrMalformed)
	}
	if doc.Nodes == nil || doc.Edges == nil {
		return graph.Snapshot{}, fmt.Errorf("%w: missing nodes or edges", ErrMalformed)
	}

	ids := make(map[string]bool, len(*doc.Nodes))
	for _, n := range *doc.Nodes {
		if n.ID == "" {
			return graph.Snapshot{}, fmt.Errorf("%w: node without id", ErrMalformed)
		}
		if ids[n.ID] {
			return graph.Snapshot{}, fmt.Errorf("%w: duplicate node id %q", ErrMalformed, n.ID)
		}
		ids[n.ID] = true
	}
	for _, e := range *doc.Edges {
		if !ids[e.Source] || !ids[e.Target] {
			return graph.Snapshot{}, fmt.Errorf("%w: edge %q references a missing node", ErrMalformed, e.ID)
		}
	}

	return graph.Snapshot{Nodes: *doc.Nodes, Edges: *doc.Edges}, nil
}
