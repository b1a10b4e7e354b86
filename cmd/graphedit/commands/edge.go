package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Alekasndr/graphedit/internal/app"
	"github.com/Alekasndr/graphedit/pkg/graph"
)

func (c *cli) newEdgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edge",
		Short: "Connect nodes and manage edge weights",
	}
	cmd.AddCommand(c.newEdgeConnectCmd(), c.newEdgeWeightCmd(), c.newEdgeDeleteCmd(), c.newEdgeListCmd())
	return cmd
}

func (c *cli) newEdgeConnectCmd() *cobra.Command {
	var weight string
	cmd := &cobra.Command{
		Use:   "connect <source> <target>",
		Short: "Connect two nodes",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			w, err := graph.ParseWeight(weight)
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(a *app.App) error {
				src, err := resolveNode(a.Graph, args[0])
				if err != nil {
					return err
				}
				dst, err := resolveNode(a.Graph, args[1])
				if err != nil {
					return err
				}
				e, err := a.Graph.Connect(src.ID, dst.ID, w)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Connected %s - %s (%s)\n", src.Label(), dst.Label(), e.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&weight, "weight", "", "Edge weight, blank for none")
	return cmd
}

func (c *cli) newEdgeWeightCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "weight <edge-id> [weight]",
		Short: "Set or clear an edge weight",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw string
			if len(args) == 2 {
				raw = args[1]
			}
			w, err := graph.ParseWeight(raw)
			if err != nil {
				return err
			}
			return c.withApp(cmd, func(a *app.App) error {
				if !a.Graph.UpdateEdgeProperties(args[0], w) {
					return fmt.Errorf("unknown edge: %s", args[0])
				}
				if w == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Cleared weight of %s\n", args[0])
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Set weight of %s to %s\n", args[0], graph.FormatWeight(*w))
				}
				return nil
			})
		},
	}
}

func (c *cli) newEdgeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <edge-id>...",
		Short: "Delete edges",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App) error {
				for _, id := range args {
					if _, ok := a.Graph.Edge(id); !ok {
						return fmt.Errorf("unknown edge: %s", id)
					}
				}
				a.Graph.DeleteEdges(args...)
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d edge(s)\n", len(args))
				return nil
			})
		},
	}
}

func (c *cli) newEdgeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List edges",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withApp(cmd, func(a *app.App) error {
				edges := a.Graph.Edges()
				rows := make([][]string, 0, len(edges))
				for _, e := range edges {
					weight := "-"
					if e.Data.Weight != nil {
						weight = graph.FormatWeight(*e.Data.Weight)
					}
					rows = append(rows, []string{e.ID, labelOf(a.Graph, e.Source), labelOf(a.Graph, e.Target), weight})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"ID", "SOURCE", "TARGET", "WEIGHT"}, rows))
				return nil
			})
		},
	}
}

// labelOf falls back to the ID for nodes that no longer exist.
func labelOf(g *graph.Model, id string) string {
	if n, ok := g.Node(id); ok {
		return n.Label()
	}
	return id
}
