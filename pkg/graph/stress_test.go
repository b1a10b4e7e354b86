package graph

import (
	"fmt"
	"math/rand"
	"testing"
	"time"
)

// A large, dense, cyclic graph must not make the path search hang.
func TestShortestPathStress(t *testing.T) {
	const nodeCount = 50000
	rng := rand.New(rand.NewSource(7))

	nodes := make([]Node, 0, nodeCount)
	edges := make([]Edge, 0, nodeCount*2)
	for i := 0; i < nodeCount; i++ {
		id := fmt.Sprintf("%d", i+1)
		nodes = append(nodes, Node{ID: id, Type: DefaultNodeType, Data: NodeData{Label: "N" + id}})
		if i > 0 {
			w := float64(rng.Intn(20))
			edges = append(edges, Edge{
				ID:     fmt.Sprintf("e%d", i),
				Source: id,
				Target: fmt.Sprintf("%d", rng.Intn(i)+1),
				Data:   EdgeData{Weight: &w},
			})
		}
		if i > 100 && i%100 == 0 {
			edges = append(edges, Edge{
				ID:     fmt.Sprintf("c%d", i),
				Source: fmt.Sprintf("%d", i-99),
				Target: id,
			})
		}
	}
	m := NewFromSnapshot(Snapshot{Nodes: nodes, Edges: edges})

	t.Logf("Graph generated with %d nodes and %d edges", len(nodes), len(edges))

	done := make(chan Path)
	go func() {
		p, ok := m.FindShortestPath("1", fmt.Sprintf("%d", nodeCount))
		if !ok {
			t.Error("every node is attached to an earlier one, so the graph is connected")
		}
		done <- p
	}()

	select {
	case p := <-done:
		t.Logf("Path of %d hops, distance %v", len(p.Edges), p.Distance)
	case <-time.After(10 * time.Second):
		t.Fatal("shortest path search did not finish")
	}
}
