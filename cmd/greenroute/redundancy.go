package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/greenroute/flow"
)

func newRedundancyCmd(a *app) *cobra.Command {
	var (
		nodeDisjoint bool
		asJSON       bool
	)

	cmd := &cobra.Command{
		Use:   "redundancy start end",
		Short: "Count independent routes between two nodes",
		Long: `Count the routes between two nodes that share no link (or, with
--node-disjoint, no intermediate node), and list the smallest set of links or
nodes whose failure would cut them apart.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := a.service(cmd.Context(), nil)
			if err != nil {
				return err
			}
			mode := flow.LinkDisjoint
			if nodeDisjoint {
				mode = flow.NodeDisjoint
			}
			res, err := svc.Redundancy(cmd.Context(), args[0], args[1], mode)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), res)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%d independent route(s), no shared %s\n", res.Count, mode)
			for _, r := range res.Routes {
				fmt.Fprintf(w, "  %v\n", r)
			}
			for _, e := range res.CutLinks {
				fmt.Fprintf(w, "cut link: %s -- %s\n", e.From, e.To)
			}
			for _, id := range res.CutNodes {
				fmt.Fprintf(w, "cut node: %s\n", id)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&nodeDisjoint, "node-disjoint", false, "routes may not share intermediate nodes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}
