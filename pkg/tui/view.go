package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var body string
	if m.topology {
		body = m.viewTopology()
	} else {
		panes := []string{
			m.paneBox(paneNodes, m.viewNodes()),
			m.paneBox(paneEdges, m.viewEdges()),
		}
		if !m.hideDetails {
			panes = append(panes, m.viewDetails())
		}
		body = lipgloss.JoinHorizontal(lipgloss.Top, panes...)
	}

	parts := []string{titleStyle.Render("GRAPH EDITOR"), body}
	if p := m.viewPrompt(); p != "" {
		parts = append(parts, p)
	}
	parts = append(parts, m.viewStatus(), m.help.View(m.keys))
	return strings.Join(parts, "\n")
}

func (m Model) paneBox(p pane, content string) string {
	if m.pane == p {
		return activePaneStyle.Render(content)
	}
	return paneStyle.Render(content)
}

func (m Model) viewPrompt() string {
	var title string
	switch m.mode {
	case modeAddNode:
		title = "New node"
	case modeSearch:
		title = "Search"
	case modeWeight:
		title = "Edge weight"
	default:
		return ""
	}
	return promptStyle.Render(highlight.Render(title) + "\n" + m.input.View())
}

func (m Model) viewStatus() string {
	if m.status == "" {
		return subtle.Render(" ")
	}
	if m.statusErr {
		return danger.Render(m.status)
	}
	return special.Render(m.status)
}
