package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Alekasndr/graphedit/pkg/graph"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case GraphChangedMsg:
		m.refresh(m.graph.Snapshot())
		return m, nil

	case clearHighlightMsg:
		if msg.seq == m.highlightSeq {
			m.pathNodes = nil
			m.pathEdges = nil
			if m.graph.HighlightedNodeID() != "" {
				m.graph.SetSearchQuery("")
			}
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		switch m.mode {
		case modeAddNode, modeSearch, modeWeight:
			return m.updateInput(msg)
		case modeConnect, modePath:
			return m.updatePick(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.Tab):
		if m.pane == paneNodes {
			m.pane = paneEdges
		} else {
			m.pane = paneNodes
		}

	case key.Matches(msg, m.keys.Topology):
		m.topology = !m.topology

	case key.Matches(msg, m.keys.Details):
		m.hideDetails = !m.hideDetails

	case key.Matches(msg, m.keys.Add):
		return m.openInput(modeAddNode, "Label", "")

	case key.Matches(msg, m.keys.Search):
		return m.openInput(modeSearch, "Search label", m.graph.SearchQuery())

	case key.Matches(msg, m.keys.Weight):
		e, ok := m.selectedEdge()
		if m.pane != paneEdges || !ok {
			m.setError("Select an edge first (tab switches panes)")
			return m, nil
		}
		current := ""
		if e.Data.Weight != nil {
			current = graph.FormatWeight(*e.Data.Weight)
		}
		return m.openInput(modeWeight, "Weight (blank clears)", current)

	case key.Matches(msg, m.keys.Connect), key.Matches(msg, m.keys.Path):
		n, ok := m.selectedNode()
		if m.pane != paneNodes || !ok {
			m.setError("Select a node first")
			return m, nil
		}
		m.mark = n.ID
		if key.Matches(msg, m.keys.Connect) {
			m.mode = modeConnect
			m.setStatus(fmt.Sprintf("Connect %s to... (select target, enter)", n.Data.Label))
		} else {
			m.mode = modePath
			m.setStatus(fmt.Sprintf("Path from %s to... (select end, enter)", n.Data.Label))
		}

	case key.Matches(msg, m.keys.Delete):
		m.deleteSelected()
	}
	return m, nil
}

// updatePick handles connect and path mode, where the cursor chooses the
// second endpoint.
func (m Model) updatePick(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeBrowse
		m.mark = ""
		m.setStatus("Cancelled")
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Submit):
		target, ok := m.selectedNode()
		if !ok {
			return m, nil
		}
		from := m.mark
		picked := m.mode
		m.mode = modeBrowse
		m.mark = ""
		if picked == modeConnect {
			m.connect(from, target.ID)
			return m, nil
		}
		return m.showPath(from, target.ID)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.closeInput()
		m.setStatus("Cancelled")
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		return m.submitInput()
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) openInput(md mode, placeholder, value string) (tea.Model, tea.Cmd) {
	m.mode = md
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	m.status = ""
	m.statusErr = false
	cmd := m.input.Focus()
	return m, cmd
}

func (m *Model) closeInput() {
	m.mode = modeBrowse
	m.input.Blur()
	m.input.SetValue("")
}

func (m Model) submitInput() (tea.Model, tea.Cmd) {
	value := m.input.Value()
	switch m.mode {
	case modeAddNode:
		// The prompt stays open on invalid labels, like a modal would.
		if err := m.graph.AddNode(value, m.nextPosition()); err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.closeInput()
		m.refresh(m.graph.Snapshot())
		m.pane = paneNodes
		m.nodeCursor = len(m.nodes) - 1
		m.setStatus(fmt.Sprintf("Added %s", strings.TrimSpace(value)))
		return m, nil

	case modeSearch:
		m.closeInput()
		m.graph.SetSearchQuery(value)
		if strings.TrimSpace(value) == "" {
			m.setStatus("Search cleared")
			return m, nil
		}
		id := m.graph.HighlightedNodeID()
		if id == "" {
			m.setError("Node not found")
			return m, nil
		}
		for i, n := range m.nodes {
			if n.ID == id {
				m.nodeCursor = i
			}
		}
		m.pane = paneNodes
		m.setStatus(fmt.Sprintf("Found %s", m.labelOf(id)))
		cmd := m.scheduleClear()
		return m, cmd

	case modeWeight:
		w, err := graph.ParseWeight(value)
		if err != nil {
			m.setError(err.Error())
			return m, nil
		}
		m.closeInput()
		e, ok := m.selectedEdge()
		if !ok || !m.graph.UpdateEdgeProperties(e.ID, w) {
			m.setError("Edge no longer exists")
			return m, nil
		}
		m.refresh(m.graph.Snapshot())
		if w == nil {
			m.setStatus("Weight cleared")
		} else {
			m.setStatus(fmt.Sprintf("Weight set to %s", graph.FormatWeight(*w)))
		}
	}
	return m, nil
}

func (m *Model) connect(source, target string) {
	e, err := m.graph.Connect(source, target, nil)
	if err != nil {
		m.setError(err.Error())
		return
	}
	m.refresh(m.graph.Snapshot())
	for i, x := range m.edges {
		if x.ID == e.ID {
			m.edgeCursor = i
		}
	}
	m.setStatus(fmt.Sprintf("Connected %s - %s", m.labelOf(source), m.labelOf(target)))
}

func (m Model) showPath(start, end string) (tea.Model, tea.Cmd) {
	p, ok := m.graph.FindShortestPath(start, end)
	if !ok {
		m.pathNodes = nil
		m.pathEdges = nil
		m.setError("No path found")
		return m, nil
	}
	m.pathNodes = make(map[string]bool, len(p.Nodes))
	labels := make([]string, len(p.Nodes))
	for i, id := range p.Nodes {
		m.pathNodes[id] = true
		labels[i] = m.labelOf(id)
	}
	m.pathEdges = make(map[string]bool, len(p.Edges))
	for _, id := range p.Edges {
		m.pathEdges[id] = true
	}
	m.setStatus(fmt.Sprintf("Path: %s (distance %s)", strings.Join(labels, " → "), graph.FormatWeight(p.Distance)))
	cmd := m.scheduleClear()
	return m, cmd
}

func (m *Model) deleteSelected() {
	if m.pane == paneNodes {
		n, ok := m.selectedNode()
		if !ok {
			return
		}
		m.graph.DeleteNodes(n.ID)
		m.refresh(m.graph.Snapshot())
		m.setStatus(fmt.Sprintf("Deleted %s", n.Data.Label))
		return
	}
	e, ok := m.selectedEdge()
	if !ok {
		return
	}
	m.graph.DeleteEdges(e.ID)
	m.refresh(m.graph.Snapshot())
	m.setStatus(fmt.Sprintf("Deleted edge %s - %s", m.labelOf(e.Source), m.labelOf(e.Target)))
}

func (m *Model) moveCursor(delta int) {
	// Endpoint picking always walks the node list.
	if m.pane == paneNodes || m.mode == modeConnect || m.mode == modePath {
		m.nodeCursor = clamp(m.nodeCursor+delta, len(m.nodes))
		return
	}
	m.edgeCursor = clamp(m.edgeCursor+delta, len(m.edges))
}

// scheduleClear starts the cosmetic highlight timer. Only the latest
// timer clears anything.
func (m *Model) scheduleClear() tea.Cmd {
	m.highlightSeq++
	if m.highlightFor <= 0 {
		return nil
	}
	seq := m.highlightSeq
	return tea.Tick(m.highlightFor, func(time.Time) tea.Msg {
		return clearHighlightMsg{seq: seq}
	})
}

func (m *Model) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *Model) setError(s string) {
	m.logger.Debug("Editor action rejected", "reason", s)
	m.status = s
	m.statusErr = true
}
