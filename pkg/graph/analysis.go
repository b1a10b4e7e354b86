package graph

// ImpactReport describes what DeleteNodes would remove.
type ImpactReport struct {
	Nodes []Node
	// Edges are removed along with the nodes because they touch one.
	Edges []Edge
}

// AnalyzeImpact previews the cascade of deleting ids without mutating
// the model. Unknown IDs are ignored.
func (m *Model) AnalyzeImpact(ids ...string) ImpactReport {
	drop := toSet(ids)

	m.mu.RLock()
	defer m.mu.RUnlock()

	var report ImpactReport
	for _, n := range m.nodes {
		if _, ok := drop[n.ID]; ok {
			report.Nodes = append(report.Nodes, n)
		}
	}
	for _, e := range m.edges {
		_, src := drop[e.Source]
		_, dst := drop[e.Target]
		if src || dst {
			report.Edges = append(report.Edges, cloneEdges([]Edge{e})[0])
		}
	}
	return report
}
