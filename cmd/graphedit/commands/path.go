package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Alekasndr/graphedit/internal/app"
	"github.com/Alekasndr/graphedit/pkg/graph"
)

func (c *cli) newPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "path <from> <to>",
		Short:   "Find the shortest path between two nodes",
		Example: "  graphedit path A C",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App) error {
				from, err := resolveNode(a.Graph, args[0])
				if err != nil {
					return err
				}
				to, err := resolveNode(a.Graph, args[1])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				p, ok := a.Graph.FindShortestPath(from.ID, to.ID)
				if !ok {
					fmt.Fprintln(out, "No path found")
					return nil
				}
				labels := make([]string, len(p.Nodes))
				for i, id := range p.Nodes {
					labels[i] = labelOf(a.Graph, id)
				}
				fmt.Fprintf(out, "Path: %s (distance %s)\n", strings.Join(labels, " → "), graph.FormatWeight(p.Distance))
				return nil
			})
		},
	}
}

func (c *cli) newSearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search <label>",
		Short: "Find a node by exact label, ignoring case",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App) error {
				a.Graph.SetSearchQuery(args[0])
				id := a.Graph.HighlightedNodeID()
				if id == "" {
					return errors.New("node not found")
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Found %s (%s)\n", labelOf(a.Graph, id), id)
				return nil
			})
		},
	}
}

func (c *cli) newComponentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "components",
		Short: "List connected components",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App) error {
				out := cmd.OutOrStdout()
				for i, comp := range a.Graph.Components() {
					labels := make([]string, len(comp))
					for j, id := range comp {
						labels[j] = labelOf(a.Graph, id)
					}
					fmt.Fprintf(out, "%d: %s\n", i+1, strings.Join(labels, ", "))
				}
				return nil
			})
		},
	}
}
