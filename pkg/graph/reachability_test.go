package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func islandGraph() *Model {
	// 1 - 2 - 3    4 - 5    6
	return NewFromSnapshot(Snapshot{
		Nodes: []Node{{ID: "1"}, {ID: "2"}, {ID: "3"}, {ID: "4"}, {ID: "5"}, {ID: "6"}},
		Edges: []Edge{
			{ID: "a", Source: "2", Target: "1"},
			{ID: "b", Source: "2", Target: "3"},
			{ID: "c", Source: "5", Target: "4"},
			{ID: "d", Source: "6", Target: "6"},
			{ID: "e", Source: "3", Target: "ghost"},
		},
	})
}

func TestReachable(t *testing.T) {
	m := islandGraph()

	assert.Equal(t, []string{"1", "2", "3"}, m.Reachable("1"))
	assert.Equal(t, []string{"4", "5"}, m.Reachable("4"))
	assert.Equal(t, []string{"6"}, m.Reachable("6"), "self-loop adds nothing")
	assert.Nil(t, m.Reachable("ghost"))
}

func TestComponents(t *testing.T) {
	m := islandGraph()

	assert.Equal(t, [][]string{{"1", "2", "3"}, {"4", "5"}, {"6"}}, m.Components())
}

func TestDegree(t *testing.T) {
	m := islandGraph()

	assert.Equal(t, 1, m.Degree("1"))
	assert.Equal(t, 2, m.Degree("2"))
	assert.Equal(t, 2, m.Degree("6"))
	assert.Equal(t, 0, m.Degree("missing"))
}
