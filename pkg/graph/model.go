// Package graph holds the editor's canonical node and edge collections,
// the mutations that keep them consistent, and the shortest-path query.
//
// A Model is created once per session and shared by reference. Every
// structural mutation swaps the affected collection for a fresh slice,
// hands the resulting snapshot to the Persister and then notifies
// subscribers. Label validation on AddNode is strict; targeted updates
// (UpdateEdgeProperties on a missing edge) are silent no-ops.
package graph

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Persister stores graph snapshots. Implementations must not fail the
// caller: Load reports false when nothing usable is stored and Save
// handles its own errors.
type Persister interface {
	Load() (Snapshot, bool)
	Save(Snapshot)
}

// ChangeKind identifies the operation that produced a Change.
type ChangeKind string

const (
	ChangeAddNode        ChangeKind = "AddNode"
	ChangeNodes          ChangeKind = "UpdateNodes"
	ChangeEdges          ChangeKind = "UpdateEdges"
	ChangeDeleteNodes    ChangeKind = "DeleteNodes"
	ChangeDeleteEdges    ChangeKind = "DeleteEdges"
	ChangeEdgeProperties ChangeKind = "UpdateEdgeProperties"
	ChangeSearch         ChangeKind = "SetSearchQuery"
)

// Structural reports whether the change touched persisted state.
func (k ChangeKind) Structural() bool {
	return k != ChangeSearch
}

// Change is delivered to subscribers after a mutation completes.
type Change struct {
	Kind     ChangeKind
	Snapshot Snapshot
}

type subscriber struct {
	id int
	fn func(Change)
}

// Model is the graph state manager.
type Model struct {
	mu          sync.RWMutex
	nodes       []Node
	edges       []Edge
	searchQuery string
	highlighted string

	persister Persister
	logger    *slog.Logger

	subMu  sync.Mutex
	subs   []subscriber
	nextID int
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger used for mutation diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithPersister sets the snapshot store. The model loads from it on
// construction and saves to it after every structural mutation.
func WithPersister(p Persister) Option {
	return func(m *Model) {
		if p != nil {
			m.persister = p
		}
	}
}

// New builds a Model from the persister's stored state, or from the seed
// graph when nothing is stored.
func New(opts ...Option) *Model {
	m := &Model{
		persister: nopPersister{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}

	snap, ok := m.persister.Load()
	if !ok {
		m.logger.Debug("No stored graph, using seed")
		snap = Seed()
	}
	snap = snap.Clone()
	m.nodes = snap.Nodes
	m.edges = snap.Edges
	return m
}

// NewFromSnapshot builds a Model holding snap without consulting a
// persister for the initial state.
func NewFromSnapshot(snap Snapshot, opts ...Option) *Model {
	m := &Model{
		persister: nopPersister{},
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(m)
	}
	snap = snap.Clone()
	m.nodes = snap.Nodes
	m.edges = snap.Edges
	return m
}

// AddNode creates a node with a fresh ID. It returns a *LabelError when
// the label is blank or already taken; the collection is untouched then.
func (m *Model) AddNode(label string, pos Position) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return &LabelError{Kind: EmptyLabel}
	}

	m.mu.Lock()
	for _, n := range m.nodes {
		if n.Data.Label == label {
			m.mu.Unlock()
			return &LabelError{Kind: DuplicateLabel, Label: label}
		}
	}
	node := Node{
		ID:       nextNodeID(m.nodes),
		Type:     DefaultNodeType,
		Position: pos,
		Data:     NodeData{Label: label},
	}
	nodes := make([]Node, len(m.nodes), len(m.nodes)+1)
	copy(nodes, m.nodes)
	m.nodes = append(nodes, node)
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.logger.Debug("Node added", "id", node.ID, "label", label)
	m.commit(ChangeAddNode, snap)
	return nil
}

// UpdateNodes replaces the node collection wholesale. Labels are not
// re-validated.
func (m *Model) UpdateNodes(nodes []Node) {
	m.mu.Lock()
	m.nodes = cloneNodes(nodes)
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.commit(ChangeNodes, snap)
}

// UpdateEdges replaces the edge collection wholesale.
func (m *Model) UpdateEdges(edges []Edge) {
	m.mu.Lock()
	m.edges = cloneEdges(edges)
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.commit(ChangeEdges, snap)
}

// DeleteNodes removes the given nodes and every edge touching them.
func (m *Model) DeleteNodes(ids ...string) {
	drop := toSet(ids)

	m.mu.Lock()
	nodes := make([]Node, 0, len(m.nodes))
	for _, n := range m.nodes {
		if _, ok := drop[n.ID]; !ok {
			nodes = append(nodes, n)
		}
	}
	edges := make([]Edge, 0, len(m.edges))
	for _, e := range m.edges {
		_, src := drop[e.Source]
		_, dst := drop[e.Target]
		if !src && !dst {
			edges = append(edges, e)
		}
	}
	removedNodes := len(m.nodes) - len(nodes)
	removedEdges := len(m.edges) - len(edges)
	m.nodes = nodes
	m.edges = edges
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.logger.Debug("Nodes deleted", "nodes", removedNodes, "edges", removedEdges)
	m.commit(ChangeDeleteNodes, snap)
}

// DeleteEdges removes edges by ID.
func (m *Model) DeleteEdges(ids ...string) {
	drop := toSet(ids)

	m.mu.Lock()
	edges := make([]Edge, 0, len(m.edges))
	for _, e := range m.edges {
		if _, ok := drop[e.ID]; !ok {
			edges = append(edges, e)
		}
	}
	m.edges = edges
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.commit(ChangeDeleteEdges, snap)
}

// UpdateEdgeProperties sets the weight (and mirrored label) of an edge.
// A nil weight clears both. Missing edges are ignored and nothing is
// persisted; the return value reports whether the edge was found.
func (m *Model) UpdateEdgeProperties(edgeID string, weight *float64) bool {
	m.mu.Lock()
	idx := -1
	for i, e := range m.edges {
		if e.ID == edgeID {
			idx = i
			break
		}
	}
	if idx < 0 {
		m.mu.Unlock()
		return false
	}
	edges := cloneEdges(m.edges)
	edges[idx] = edges[idx].WithWeight(weight)
	m.edges = edges
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.commit(ChangeEdgeProperties, snap)
	return true
}

// Connect appends a new edge between two existing nodes. Parallel edges
// are allowed; each gets its own ID.
func (m *Model) Connect(source, target string, weight *float64) (Edge, error) {
	m.mu.RLock()
	_, srcOK := m.indexOfNode(source)
	_, dstOK := m.indexOfNode(target)
	edges := cloneEdges(m.edges)
	m.mu.RUnlock()

	if !srcOK {
		return Edge{}, unknownNode(source)
	}
	if !dstOK {
		return Edge{}, unknownNode(target)
	}

	e := Edge{
		ID:     "e-" + uuid.NewString(),
		Source: source,
		Target: target,
	}.WithWeight(weight)
	m.UpdateEdges(append(edges, e))
	return e, nil
}

// SetSearchQuery stores the query and highlights the first node whose
// label matches it case-insensitively. Search state is not persisted.
func (m *Model) SetSearchQuery(query string) {
	m.mu.Lock()
	m.searchQuery = query
	m.highlighted = ""
	if q := strings.TrimSpace(query); q != "" {
		for _, n := range m.nodes {
			if strings.EqualFold(n.Data.Label, q) {
				m.highlighted = n.ID
				break
			}
		}
	}
	snap := m.snapshotLocked()
	m.mu.Unlock()

	m.notify(Change{Kind: ChangeSearch, Snapshot: snap})
}

// SearchQuery returns the raw query last passed to SetSearchQuery.
func (m *Model) SearchQuery() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.searchQuery
}

// HighlightedNodeID returns the search match, or "" when there is none.
func (m *Model) HighlightedNodeID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.highlighted
}

// Nodes returns a copy of the node collection.
func (m *Model) Nodes() []Node {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneNodes(m.nodes)
}

// Edges returns a copy of the edge collection.
func (m *Model) Edges() []Edge {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneEdges(m.edges)
}

// Snapshot returns a copy of both collections.
func (m *Model) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.snapshotLocked()
}

// Node looks a node up by ID.
func (m *Model) Node(id string) (Node, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i, ok := m.indexOfNode(id); ok {
		return m.nodes[i], true
	}
	return Node{}, false
}

// NodeByLabel looks a node up by its exact label.
func (m *Model) NodeByLabel(label string) (Node, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, n := range m.nodes {
		if n.Data.Label == label {
			return n, true
		}
	}
	return Node{}, false
}

// Edge looks an edge up by ID.
func (m *Model) Edge(id string) (Edge, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.edges {
		if e.ID == id {
			return cloneEdges([]Edge{e})[0], true
		}
	}
	return Edge{}, false
}

// Subscribe registers fn to be called after every mutation, in
// registration order. The returned function removes the subscription.
func (m *Model) Subscribe(fn func(Change)) func() {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	m.nextID++
	id := m.nextID
	m.subs = append(m.subs, subscriber{id: id, fn: fn})

	return func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

func (m *Model) commit(kind ChangeKind, snap Snapshot) {
	m.persister.Save(snap)
	m.notify(Change{Kind: kind, Snapshot: snap})
}

func (m *Model) notify(c Change) {
	m.subMu.Lock()
	subs := make([]subscriber, len(m.subs))
	copy(subs, m.subs)
	m.subMu.Unlock()

	for _, s := range subs {
		s.fn(c)
	}
}

func (m *Model) snapshotLocked() Snapshot {
	return Snapshot{
		Nodes: cloneNodes(m.nodes),
		Edges: cloneEdges(m.edges),
	}
}

func (m *Model) indexOfNode(id string) (int, bool) {
	for i, n := range m.nodes {
		if n.ID == id {
			return i, true
		}
	}
	return -1, false
}

// nextNodeID returns one more than the largest decimal ID present.
// IDs that do not parse as integers count as 0, including decimal IDs too
// large for an int. Those are longer than any ID produced here, so the
// result never collides with them.
func nextNodeID(nodes []Node) string {
	max := 0
	for _, n := range nodes {
		if v, err := strconv.Atoi(n.ID); err == nil && v > max {
			max = v
		}
	}
	return strconv.Itoa(max + 1)
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func unknownNode(id string) error {
	return fmt.Errorf("%w %q", ErrUnknownNode, id)
}

type nopPersister struct{}

func (nopPersister) Load() (Snapshot, bool) { return Snapshot{}, false }
func (nopPersister) Save(Snapshot)          {}
