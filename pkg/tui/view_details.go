package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// viewDetails describes the selected node: position, degree and the
// size of the component it belongs to.
func (m Model) viewDetails() string {
	n, ok := m.selectedNode()
	if !ok {
		return detailsBoxStyle.Render(subtle.Render("No node selected"))
	}

	reach := m.graph.Reachable(n.ID)
	component := fmt.Sprintf("COMPONENT: %d node(s)", len(reach))
	componentStyle := subtle
	if len(reach) == 1 {
		component = "COMPONENT: isolated"
		componentStyle = warning
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		detailsHeaderStyle.Render(n.Data.Label),
		subtle.Render(fmt.Sprintf("ID:        %s", n.ID)),
		subtle.Render(fmt.Sprintf("POSITION:  %.0f, %.0f", n.Position.X, n.Position.Y)),
		special.Render(fmt.Sprintf("DEGREE:    %d", m.graph.Degree(n.ID))),
		componentStyle.Render(component),
	)
	return detailsBoxStyle.Render(content)
}
