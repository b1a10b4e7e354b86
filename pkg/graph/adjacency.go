package graph

// adjacency indexes edges by the nodes they touch. An undirected edge is
// listed under both endpoints; a self-loop is listed once.
type adjacency struct {
	incident map[string][]Edge
}

func buildAdjacency(nodes []Node, edges []Edge) adjacency {
	adj := adjacency{incident: make(map[string][]Edge, len(nodes))}
	for _, n := range nodes {
		adj.incident[n.ID] = nil
	}
	for _, e := range edges {
		// Edges handed in through UpdateEdges may dangle.
		if !adj.has(e.Source) || !adj.has(e.Target) {
			continue
		}
		adj.incident[e.Source] = append(adj.incident[e.Source], e)
		if e.Target != e.Source {
			adj.incident[e.Target] = append(adj.incident[e.Target], e)
		}
	}
	return adj
}

func (a adjacency) has(id string) bool {
	_, ok := a.incident[id]
	return ok
}

// neighbors returns the distinct node IDs sharing an edge with id.
func (a adjacency) neighbors(id string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range a.incident[id] {
		v := e.Other(id)
		if v == id || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Degree returns the number of edge endpoints at node id. A self-loop
// counts twice.
func (m *Model) Degree(id string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d := 0
	for _, e := range m.edges {
		if e.Source == id {
			d++
		}
		if e.Target == id {
			d++
		}
	}
	return d
}
