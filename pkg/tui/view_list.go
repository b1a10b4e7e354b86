package tui

import (
	"fmt"
	"strings"

	"github.com/Alekasndr/graphedit/pkg/graph"
)

func (m Model) viewNodes() string {
	s := strings.Builder{}
	s.WriteString(subtle.Render(fmt.Sprintf("  %-4s %-16s %s", "ID", "LABEL", "DEG")) + "\n")

	if len(m.nodes) == 0 {
		s.WriteString(subtle.Render("  No nodes. Press a to add one."))
		return s.String()
	}

	searchHit := m.graph.HighlightedNodeID()
	start, end := m.calculateWindow(len(m.nodes), m.nodeCursor)
	for i := start; i < end; i++ {
		n := m.nodes[i]
		selected := i == m.nodeCursor && (m.pane == paneNodes || m.mode == modeConnect || m.mode == modePath)

		cursor := "  "
		if selected {
			cursor = "> "
		}
		marker := " "
		if n.ID == m.mark {
			marker = "*"
		}

		line := fmt.Sprintf("%s%-4s %-16s %d%s", cursor, truncate(n.ID, 4), truncate(n.Data.Label, 16), m.graph.Degree(n.ID), marker)
		switch {
		case m.pathNodes[n.ID]:
			line = special.Render(line)
		case n.ID == searchHit:
			line = warning.Render(line)
		case selected:
			line = listSelectedStyle.Render(line)
		default:
			line = listNormalStyle.Render(line)
		}
		s.WriteString(line + "\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

func (m Model) viewEdges() string {
	s := strings.Builder{}
	s.WriteString(subtle.Render(fmt.Sprintf("  %-25s %s", "EDGE", "WEIGHT")) + "\n")

	if len(m.edges) == 0 {
		s.WriteString(subtle.Render("  No edges. Press c on a node."))
		return s.String()
	}

	start, end := m.calculateWindow(len(m.edges), m.edgeCursor)
	for i := start; i < end; i++ {
		e := m.edges[i]
		selected := i == m.edgeCursor && m.pane == paneEdges

		cursor := "  "
		if selected {
			cursor = "> "
		}
		ends := truncate(m.labelOf(e.Source), 11) + " - " + truncate(m.labelOf(e.Target), 11)
		line := fmt.Sprintf("%s%-25s %s", cursor, ends, weightText(e))

		switch {
		case m.pathEdges[e.ID]:
			line = special.Render(line)
		case selected:
			line = listSelectedStyle.Render(line)
		default:
			line = listNormalStyle.Render(line)
		}
		s.WriteString(line + "\n")
	}
	return strings.TrimRight(s.String(), "\n")
}

func weightText(e graph.Edge) string {
	if e.Data.Weight == nil {
		return "-"
	}
	return graph.FormatWeight(*e.Data.Weight)
}

func (m Model) calculateWindow(total, cursor int) (int, int) {
	windowSize := m.height - 10 // title, prompt, status, help
	if windowSize < 5 {
		windowSize = 5
	}

	start := cursor - (windowSize / 2)
	if start < 0 {
		start = 0
	}

	end := start + windowSize
	if end > total {
		end = total
		start = end - windowSize
		if start < 0 {
			start = 0
		}
	}
	return start, end
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
