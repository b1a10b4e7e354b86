package tui

import (
	"math"
	"strings"
)

const (
	canvasWidth  = 60
	canvasHeight = 16
)

// viewTopology plots nodes at their stored positions, scaled to fit a
// fixed character grid. Path members are drawn in the path color.
func (m Model) viewTopology() string {
	if len(m.nodes) == 0 {
		return paneStyle.Render(subtle.Render("Empty canvas"))
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range m.nodes {
		minX = math.Min(minX, n.Position.X)
		maxX = math.Max(maxX, n.Position.X)
		minY = math.Min(minY, n.Position.Y)
		maxY = math.Max(maxY, n.Position.Y)
	}
	scale := func(v, lo, hi float64, size int) int {
		if hi == lo {
			return 0
		}
		return int(math.Round((v - lo) / (hi - lo) * float64(size-1)))
	}

	grid := make([][]rune, canvasHeight)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", canvasWidth))
	}
	type mark struct {
		row   int
		style bool
	}
	var marks []mark
	for _, n := range m.nodes {
		row := scale(n.Position.Y, minY, maxY, canvasHeight)
		col := scale(n.Position.X, minX, maxX, canvasWidth)
		label := []rune("●" + truncate(n.Data.Label, 12))
		if col+len(label) > canvasWidth {
			col = canvasWidth - len(label)
		}
		for i, r := range label {
			if col+i < canvasWidth {
				grid[row][col+i] = r
			}
		}
		marks = append(marks, mark{row: row, style: m.pathNodes[n.ID]})
	}

	lines := make([]string, canvasHeight)
	for i, row := range grid {
		line := string(row)
		for _, mk := range marks {
			if mk.row == i && mk.style {
				line = special.Render(strings.TrimRight(line, " "))
				break
			}
		}
		lines[i] = line
	}
	return paneStyle.Render(strings.Join(lines, "\n"))
}
