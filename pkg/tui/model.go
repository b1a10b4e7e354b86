// Package tui is the terminal front end of the graph editor.
package tui

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Alekasndr/graphedit/pkg/graph"
)

type mode int

const (
	modeBrowse mode = iota
	modeAddNode
	modeSearch
	modeWeight
	modeConnect
	modePath
)

type pane int

const (
	paneNodes pane = iota
	paneEdges
)

// GraphChangedMsg carries a graph.Change into the program. Send it from
// a graph.Model subscription so edits made elsewhere show up live. The
// view re-reads the model on receipt, so late or reordered messages are
// harmless.
type GraphChangedMsg struct {
	Change graph.Change
}

// clearHighlightMsg fires when the highlight timer for seq expires.
type clearHighlightMsg struct {
	seq int
}

type Model struct {
	graph  *graph.Model
	logger *slog.Logger

	input textinput.Model
	help  help.Model
	keys  keyMap

	// state
	mode        mode
	pane        pane
	topology    bool
	hideDetails bool
	quitting    bool
	width       int
	height      int

	// data
	nodes []graph.Node
	edges []graph.Edge

	// navigation
	nodeCursor int
	edgeCursor int
	// mark is the first endpoint chosen in connect and path mode.
	mark string

	// highlight
	pathNodes    map[string]bool
	pathEdges    map[string]bool
	highlightSeq int
	highlightFor time.Duration

	// feedback
	status    string
	statusErr bool
}

type Option func(*Model)

// WithHighlightDuration sets how long search and path highlights last.
// Zero keeps them until the next action.
func WithHighlightDuration(d time.Duration) Option {
	return func(m *Model) { m.highlightFor = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

func NewModel(g *graph.Model, opts ...Option) Model {
	ti := textinput.New()
	ti.CharLimit = 64
	ti.Width = 32

	m := Model{
		graph:        g,
		logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
		input:        ti,
		help:         help.New(),
		keys:         defaultKeyMap(),
		highlightFor: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh(g.Snapshot())
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) refresh(s graph.Snapshot) {
	m.nodes = s.Nodes
	m.edges = s.Edges
	m.nodeCursor = clamp(m.nodeCursor, len(m.nodes))
	m.edgeCursor = clamp(m.edgeCursor, len(m.edges))
}

func (m Model) selectedNode() (graph.Node, bool) {
	if m.nodeCursor < 0 || m.nodeCursor >= len(m.nodes) {
		return graph.Node{}, false
	}
	return m.nodes[m.nodeCursor], true
}

func (m Model) selectedEdge() (graph.Edge, bool) {
	if m.edgeCursor < 0 || m.edgeCursor >= len(m.edges) {
		return graph.Edge{}, false
	}
	return m.edges[m.edgeCursor], true
}

func (m Model) labelOf(id string) string {
	for _, n := range m.nodes {
		if n.ID == id {
			return n.Data.Label
		}
	}
	return id
}

func (m Model) nextPosition() graph.Position {
	return graph.GridPosition(len(m.nodes))
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
