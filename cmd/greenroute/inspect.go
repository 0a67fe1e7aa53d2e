package main

import (
	"bufio"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/render"
)

func newNodesCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "nodes",
		Short: "List nodes with their category and degree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd.Context(), nil)
			if err != nil {
				return err
			}
			net, err := svc.Network()
			if err != nil {
				return err
			}
			views := render.NodeViews(net)
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), views)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tCATEGORY\tPRODUCTION\tLOSS\tSUSTAINABILITY\tDEGREE")
			for _, v := range views {
				deg, _ := net.Degree(v.ID)
				fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%g\t%d\n", v.ID, v.Category, v.Production, v.Loss, v.Sustainability, deg)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func newEdgesCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "edges",
		Short: "List edges with their weight under a strategy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd.Context(), nil)
			if err != nil {
				return err
			}
			net, err := svc.Network()
			if err != nil {
				return err
			}
			views, err := render.EdgeViews(net, svc.Strategy(), svc.Params())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), views)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "FROM\tTO\tWEIGHT (%s)\n", svc.Strategy())
			for _, e := range views {
				fmt.Fprintf(tw, "%s\t%s\t%.2f\n", e.From, e.To, e.Weight)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringP("strategy", "s", "", "loss, sustainability or production (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func newIslandsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "islands",
		Short: "List groups of nodes that are connected to each other",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd.Context(), nil)
			if err != nil {
				return err
			}
			islands, err := svc.Islands()
			if err != nil {
				return err
			}
			for i, is := range islands {
				fmt.Fprintf(cmd.OutOrStdout(), "%d: %v\n", i+1, is)
			}
			return nil
		},
	}
}

func newCriticalCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "critical",
		Short: "List nodes and links whose failure splits the network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd.Context(), nil)
			if err != nil {
				return err
			}
			rep, err := svc.Critical()
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), rep)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "cut nodes: %v\n", rep.CutNodes)
			for _, e := range rep.Bridges {
				fmt.Fprintf(w, "bridge: %s -- %s\n", e.From, e.To)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

func newBackboneCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "backbone",
		Short: "Print the cheapest set of links that keeps every island connected",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := a.service(cmd.Context(), nil)
			if err != nil {
				return err
			}
			bb, err := svc.Backbone(cmd.Context(), svc.Strategy())
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), bb)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "FROM\tTO\tWEIGHT (%s)\n", bb.Strategy)
			for _, l := range bb.Links {
				fmt.Fprintf(tw, "%s\t%s\t%.2f\n", l.From, l.To, l.Weight)
			}
			fmt.Fprintf(tw, "total\t\t%.2f\n", bb.Cost)
			return tw.Flush()
		},
	}
	cmd.Flags().StringP("strategy", "s", "", "loss, sustainability or production (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func newDotCmd(a *app) *cobra.Command {
	var (
		from, to, output, name string
		backbone               bool
	)

	cmd := &cobra.Command{
		Use:   "dot",
		Short: "Export the network as a Graphviz graph",
		Long: `Export the network as a Graphviz graph. Nodes are colored by category.
With --strategy edges are labeled with their weight; with --from and --to the
cheapest route is drawn in red; with --backbone the backbone links are.`,
		Example: `  greenroute dot --nodes n.csv --adjacency m.csv --from Solar --to Homes | dot -Tsvg > grid.svg`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if (from == "") != (to == "") {
				return fmt.Errorf("--from and --to must be given together")
			}
			if backbone && from != "" {
				return fmt.Errorf("--backbone cannot be combined with --from and --to")
			}
			svc, err := a.service(ctx, nil)
			if err != nil {
				return err
			}
			net, err := svc.Network()
			if err != nil {
				return err
			}

			opts := []render.DOTOption{render.WithGraphName(name)}
			if cmd.Flags().Changed("strategy") || from != "" || backbone {
				opts = append(opts, render.WithStrategy(svc.Strategy(), svc.Params()))
			}
			if from != "" {
				r, err := svc.Route(ctx, from, to)
				if err != nil {
					return err
				}
				opts = append(opts, render.WithRoute(r.Edges()))
			}
			if backbone {
				bb, err := svc.Backbone(ctx, svc.Strategy())
				if err != nil {
					return err
				}
				links := make([]core.Edge, len(bb.Links))
				for i, l := range bb.Links {
					links[i] = core.Edge{From: l.From, To: l.To}
				}
				opts = append(opts, render.WithRoute(links))
			}

			w := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return err
				}
				defer f.Close()
				bw := bufio.NewWriter(f)
				if err = render.DOT(bw, net, opts...); err != nil {
					return err
				}
				if err = bw.Flush(); err != nil {
					return err
				}
				return f.Close()
			}
			return render.DOT(w, net, opts...)
		},
	}

	f := cmd.Flags()
	f.StringP("strategy", "s", "", "label edges with weights under this strategy")
	f.StringVar(&from, "from", "", "highlight the route starting here")
	f.StringVar(&to, "to", "", "highlight the route ending here")
	f.BoolVar(&backbone, "backbone", false, "highlight the backbone")
	f.StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	f.StringVar(&name, "name", "greenroute", "graph name")

	return cmd
}
