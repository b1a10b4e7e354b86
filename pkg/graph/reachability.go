package graph

// Reachable returns the IDs of every node connected to start, start
// included, in breadth-first order. It returns nil for an unknown node.
func (m *Model) Reachable(start string) []string {
	m.mu.RLock()
	adj := buildAdjacency(m.nodes, m.edges)
	m.mu.RUnlock()

	if !adj.has(start) {
		return nil
	}

	visited := map[string]bool{start: true}
	queue := []string{start}
	var out []string
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		for _, v := range adj.neighbors(cur) {
			if !visited[v] {
				visited[v] = true
				queue = append(queue, v)
			}
		}
	}
	return out
}
