package graph

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func abc(ab, bc, ac *float64) *Model {
	return NewFromSnapshot(Snapshot{
		Nodes: []Node{
			{ID: "A", Data: NodeData{Label: "A"}},
			{ID: "B", Data: NodeData{Label: "B"}},
			{ID: "C", Data: NodeData{Label: "C"}},
		},
		Edges: []Edge{
			{ID: "ab", Source: "A", Target: "B", Data: EdgeData{Weight: ab}},
			{ID: "bc", Source: "B", Target: "C", Data: EdgeData{Weight: bc}},
			{ID: "ac", Source: "A", Target: "C", Data: EdgeData{Weight: ac}},
		},
	})
}

func TestFindShortestPath(t *testing.T) {
	tests := []struct {
		name      string
		model     *Model
		start     string
		end       string
		wantOK    bool
		wantNodes []string
		wantEdges []string
		wantDist  float64
	}{
		{
			name:      "detour is cheaper than direct edge",
			model:     abc(weight(2), weight(3), weight(10)),
			start:     "A",
			end:       "C",
			wantOK:    true,
			wantNodes: []string{"A", "B", "C"},
			wantEdges: []string{"ab", "bc"},
			wantDist:  5,
		},
		{
			name:      "edges are undirected",
			model:     abc(weight(2), weight(3), weight(10)),
			start:     "C",
			end:       "A",
			wantOK:    true,
			wantNodes: []string{"C", "B", "A"},
			wantEdges: []string{"bc", "ab"},
			wantDist:  5,
		},
		{
			name:      "missing weight costs one",
			model:     abc(nil, nil, weight(3)),
			start:     "A",
			end:       "C",
			wantOK:    true,
			wantNodes: []string{"A", "B", "C"},
			wantEdges: []string{"ab", "bc"},
			wantDist:  2,
		},
		{
			name:      "zero weights are allowed",
			model:     abc(weight(0), weight(0), weight(1)),
			start:     "A",
			end:       "C",
			wantOK:    true,
			wantNodes: []string{"A", "B", "C"},
			wantEdges: []string{"ab", "bc"},
			wantDist:  0,
		},
		{
			name:      "same node",
			model:     abc(nil, nil, nil),
			start:     "B",
			end:       "B",
			wantOK:    true,
			wantNodes: []string{"B"},
			wantEdges: nil,
			wantDist:  0,
		},
		{
			name:   "unknown start",
			model:  abc(nil, nil, nil),
			start:  "Z",
			end:    "A",
			wantOK: false,
		},
		{
			name:   "unknown end",
			model:  abc(nil, nil, nil),
			start:  "A",
			end:    "Z",
			wantOK: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, ok := tc.model.FindShortestPath(tc.start, tc.end)
			require.Equal(t, tc.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tc.wantNodes, p.Nodes)
			if tc.wantEdges == nil {
				assert.Empty(t, p.Edges)
			} else {
				assert.Equal(t, tc.wantEdges, p.Edges)
			}
			assert.Equal(t, tc.wantDist, p.Distance)
		})
	}
}

func TestFindShortestPath_Unreachable(t *testing.T) {
	m := New()
	_, ok := m.FindShortestPath("1", "2")
	assert.False(t, ok)
}

func TestFindShortestPath_ParallelEdgesAndLoops(t *testing.T) {
	m := NewFromSnapshot(Snapshot{
		Nodes: []Node{{ID: "1"}, {ID: "2"}},
		Edges: []Edge{
			{ID: "loop", Source: "1", Target: "1", Data: EdgeData{Weight: weight(0)}},
			{ID: "slow", Source: "1", Target: "2", Data: EdgeData{Weight: weight(9)}},
			{ID: "fast", Source: "2", Target: "1", Data: EdgeData{Weight: weight(4)}},
		},
	})

	p, ok := m.FindShortestPath("1", "2")

	require.True(t, ok)
	assert.Equal(t, []string{"1", "2"}, p.Nodes)
	assert.Equal(t, []string{"fast"}, p.Edges)
	assert.Equal(t, 4.0, p.Distance)
}

func TestFindShortestPath_IgnoresDanglingEdges(t *testing.T) {
	m := NewFromSnapshot(Snapshot{
		Nodes: []Node{{ID: "1"}, {ID: "2"}},
		Edges: []Edge{
			{ID: "x", Source: "1", Target: "gone"},
			{ID: "y", Source: "gone", Target: "2"},
		},
	})

	_, ok := m.FindShortestPath("1", "2")
	assert.False(t, ok)
}

func TestShortestPath_Snapshot(t *testing.T) {
	snap := abc(weight(1), weight(1), weight(5)).Snapshot()

	p, ok := ShortestPath(snap, "A", "C")

	require.True(t, ok)
	assert.Equal(t, 2.0, p.Distance)
}

// bruteForce enumerates simple paths; only usable on tiny graphs.
func bruteForce(s Snapshot, start, end string) (float64, bool) {
	adj := buildAdjacency(s.Nodes, s.Edges)
	if !adj.has(start) || !adj.has(end) {
		return 0, false
	}
	best := math.Inf(1)
	visited := map[string]bool{start: true}
	var walk func(u string, d float64)
	walk = func(u string, d float64) {
		if u == end {
			best = math.Min(best, d)
			return
		}
		for _, e := range adj.incident[u] {
			v := e.Other(u)
			if visited[v] {
				continue
			}
			visited[v] = true
			walk(v, d+e.Cost())
			visited[v] = false
		}
	}
	walk(start, 0)
	return best, !math.IsInf(best, 1)
}

func FuzzShortestPath(f *testing.F) {
	f.Add([]byte{0, 1, 2, 1, 2, 3, 0, 2, 10})
	f.Add([]byte{3, 3, 0, 4, 5, 1})
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		const n = 6
		snap := Snapshot{}
		for i := 0; i < n; i++ {
			snap.Nodes = append(snap.Nodes, Node{ID: fmt.Sprint(i)})
		}
		for i := 0; i+2 < len(data) && i < 60; i += 3 {
			w := float64(data[i+2] % 16)
			snap.Edges = append(snap.Edges, Edge{
				ID:     fmt.Sprintf("e%d", i),
				Source: fmt.Sprint(data[i] % n),
				Target: fmt.Sprint(data[i+1] % n),
				Data:   EdgeData{Weight: &w},
			})
		}

		want, wantOK := bruteForce(snap, "0", fmt.Sprint(n-1))
		p, ok := ShortestPath(snap, "0", fmt.Sprint(n-1))

		require.Equal(t, wantOK, ok)
		if !ok {
			return
		}
		require.Equal(t, want, p.Distance)
		require.Equal(t, "0", p.Nodes[0])
		require.Equal(t, fmt.Sprint(n-1), p.Nodes[len(p.Nodes)-1])
		require.Len(t, p.Edges, len(p.Nodes)-1)

		edges := map[string]Edge{}
		for _, e := range snap.Edges {
			edges[e.ID] = e
		}
		sum := 0.0
		for i, id := range p.Edges {
			e := edges[id]
			a, b := p.Nodes[i], p.Nodes[i+1]
			require.True(t, (e.Source == a && e.Target == b) || (e.Source == b && e.Target == a))
			sum += e.Cost()
		}
		require.Equal(t, p.Distance, sum)
	})
}
