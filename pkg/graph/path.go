package graph

import (
	"container/heap"
	"math"
)

// Path is a shortest-path result.
type Path struct {
	// Nodes lists node IDs from start to end inclusive.
	Nodes []string
	// Edges lists the IDs of the edges walked, len(Nodes)-1 of them.
	Edges []string
	// Distance is the sum of edge costs along the path.
	Distance float64
}

// FindShortestPath runs Dijkstra from start to end over the undirected
// edge set. Edges without a weight cost 1. It reports false when either
// node is missing or end is unreachable. Negative weights are not
// supported and give unspecified results.
func (m *Model) FindShortestPath(start, end string) (Path, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return shortestPath(m.nodes, m.edges, start, end)
}

// ShortestPath runs the same search as Model.FindShortestPath over a
// detached snapshot.
func ShortestPath(s Snapshot, start, end string) (Path, bool) {
	return shortestPath(s.Nodes, s.Edges, start, end)
}

func shortestPath(nodes []Node, edges []Edge, start, end string) (Path, bool) {
	adj := buildAdjacency(nodes, edges)
	if !adj.has(start) || !adj.has(end) {
		return Path{}, false
	}
	if start == end {
		return Path{Nodes: []string{start}}, true
	}

	r := &runner{
		adj:      adj,
		dist:     make(map[string]float64, len(nodes)),
		prev:     make(map[string]string, len(nodes)),
		prevEdge: make(map[string]string, len(nodes)),
		visited:  make(map[string]bool, len(nodes)),
	}
	for id := range adj.incident {
		r.dist[id] = math.Inf(1)
	}
	r.dist[start] = 0
	heap.Push(&r.pq, &pqItem{id: start, dist: 0})
	r.run(end)

	if math.IsInf(r.dist[end], 1) {
		return Path{}, false
	}

	var rev []string
	var revEdges []string
	for at := end; at != ""; at = r.prev[at] {
		rev = append(rev, at)
		if at == start {
			break
		}
		revEdges = append(revEdges, r.prevEdge[at])
	}
	if rev[len(rev)-1] != start {
		return Path{}, false
	}

	p := Path{
		Nodes:    make([]string, len(rev)),
		Edges:    make([]string, len(revEdges)),
		Distance: r.dist[end],
	}
	for i := range rev {
		p.Nodes[i] = rev[len(rev)-1-i]
	}
	for i := range revEdges {
		p.Edges[i] = revEdges[len(revEdges)-1-i]
	}
	return p, true
}

// runner holds the mutable state of a single search.
type runner struct {
	adj      adjacency
	dist     map[string]float64
	prev     map[string]string
	prevEdge map[string]string
	visited  map[string]bool
	pq       minQueue
}

func (r *runner) run(end string) {
	for r.pq.Len() > 0 {
		item := heap.Pop(&r.pq).(*pqItem)
		u := item.id
		// Stale entry left behind by a later, shorter push.
		if r.visited[u] {
			continue
		}
		r.visited[u] = true
		if u == end {
			return
		}
		r.relax(u)
	}
}

func (r *runner) relax(u string) {
	for _, e := range r.adj.incident[u] {
		v := e.Other(u)
		if r.visited[v] {
			continue
		}
		nd := r.dist[u] + e.Cost()
		if nd < r.dist[v] {
			r.dist[v] = nd
			r.prev[v] = u
			r.prevEdge[v] = e.ID
			heap.Push(&r.pq, &pqItem{id: v, dist: nd})
		}
	}
}

type pqItem struct {
	id   string
	dist float64
}

// minQueue is a binary heap ordered by distance. Decrease-key is done
// lazily by pushing duplicates and skipping visited IDs on pop.
type minQueue []*pqItem

func (q minQueue) Len() int            { return len(q) }
func (q minQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q minQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *minQueue) Push(x interface{}) { *q = append(*q, x.(*pqItem)) }

func (q *minQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}
