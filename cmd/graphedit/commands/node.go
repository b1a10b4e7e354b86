package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/Alekasndr/graphedit/internal/app"
	"github.com/Alekasndr/graphedit/pkg/graph"
	"github.com/Alekasndr/graphedit/pkg/query"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99"))

// resolveNode finds a node by ID first, then by label.
func resolveNode(g *graph.Model, ref string) (graph.Node, error) {
	if n, ok := g.Node(ref); ok {
		return n, nil
	}
	if n, ok := g.NodeByLabel(ref); ok {
		return n, nil
	}
	return graph.Node{}, fmt.Errorf("%w: %s", graph.ErrUnknownNode, ref)
}

func renderTable(headers []string, rows [][]string) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		}).
		String()
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (c *cli) newNodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "node",
		Short: "Add, list and delete nodes",
	}
	cmd.AddCommand(c.newNodeAddCmd(), c.newNodeListCmd(), c.newNodeDeleteCmd())
	return cmd
}

func (c *cli) newNodeAddCmd() *cobra.Command {
	var x, y float64
	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add a node",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App) error {
				pos := graph.GridPosition(len(a.Graph.Nodes()))
				if cmd.Flags().Changed("x") {
					pos.X = x
				}
				if cmd.Flags().Changed("y") {
					pos.Y = y
				}
				if err := a.Graph.AddNode(args[0], pos); err != nil {
					return err
				}
				n, _ := a.Graph.NodeByLabel(strings.TrimSpace(args[0]))
				fmt.Fprintf(cmd.OutOrStdout(), "Added node %s (%s)\n", n.ID, n.Label())
				return nil
			})
		},
	}
	cmd.Flags().Float64Var(&x, "x", 0, "Canvas X coordinate")
	cmd.Flags().Float64Var(&y, "y", 0, "Canvas Y coordinate")
	return cmd
}

func (c *cli) newNodeListCmd() *cobra.Command {
	var where string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List nodes",
		Example: `  graphedit node list
  graphedit node list --where 'degree == 0'
  graphedit node list --where 'label.startsWith("Node")'
  graphedit node list --where 'kind == "default"'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := query.Compile(where)
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(a *app.App) error {
				nodes, err := query.Nodes(a.Graph, filter)
				if err != nil {
					return err
				}
				rows := make([][]string, 0, len(nodes))
				for _, n := range nodes {
					rows = append(rows, []string{
						n.ID, n.Label(), n.Type,
						formatCoord(n.Position.X), formatCoord(n.Position.Y),
						strconv.Itoa(a.Graph.Degree(n.ID)),
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "LABEL", "TYPE", "X", "Y", "DEGREE"}, rows))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&where, "where", "", "CEL filter over id, label, kind, x, y and degree")
	return cmd
}

func (c *cli) newNodeDeleteCmd() *cobra.Command {
	var dryRun bool
	cmd := &cobra.Command{
		Use:   "delete <id|label>...",
		Short: "Delete nodes and every edge touching them",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App) error {
				ids := make([]string, 0, len(args))
				for _, ref := range args {
					n, err := resolveNode(a.Graph, ref)
					if err != nil {
						return err
					}
					ids = append(ids, n.ID)
				}
				impact := a.Graph.AnalyzeImpact(ids...)
				out := cmd.OutOrStdout()
				if dryRun {
					fmt.Fprintf(out, "Would delete %d node(s) and %d edge(s)\n", len(impact.Nodes), len(impact.Edges))
					return nil
				}
				a.Graph.DeleteNodes(ids...)
				fmt.Fprintf(out, "Deleted %d node(s) and %d edge(s)\n", len(impact.Nodes), len(impact.Edges))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be deleted without deleting")
	return cmd
}
