package graph

// unionFind is a disjoint-set forest with path compression and union by
// rank.
type unionFind struct {
	parent []int
	rank   []int
}

func newUnionFind(n int) *unionFind {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = i
	}
	return &unionFind{parent: parent, rank: make([]int, n)}
}

func (uf *unionFind) find(i int) int {
	if uf.parent[i] != i {
		uf.parent[i] = uf.find(uf.parent[i])
	}
	return uf.parent[i]
}

func (uf *unionFind) union(i, j int) {
	ri, rj := uf.find(i), uf.find(j)
	if ri == rj {
		return
	}
	switch {
	case uf.rank[ri] < uf.rank[rj]:
		uf.parent[ri] = rj
	case uf.rank[ri] > uf.rank[rj]:
		uf.parent[rj] = ri
	default:
		uf.parent[rj] = ri
		uf.rank[ri]++
	}
}

// Components partitions the nodes into connected components. Components
// are ordered by their first node in collection order, and each lists
// node IDs in collection order.
func (m *Model) Components() [][]string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	index := make(map[string]int, len(m.nodes))
	for i, n := range m.nodes {
		index[n.ID] = i
	}
	uf := newUnionFind(len(m.nodes))
	for _, e := range m.edges {
		i, okS := index[e.Source]
		j, okT := index[e.Target]
		if okS && okT {
			uf.union(i, j)
		}
	}

	slot := make(map[int]int)
	var out [][]string
	for i, n := range m.nodes {
		root := uf.find(i)
		k, ok := slot[root]
		if !ok {
			k = len(out)
			slot[root] = k
			out = append(out, nil)
		}
		out[k] = append(out[k], n.ID)
	}
	return out
}
