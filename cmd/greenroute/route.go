package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/greenroute/dijkstra"
	"github.com/katalvlaran/greenroute/network"
	"github.com/katalvlaran/greenroute/strategy"
)

func newRouteCmd(a *app) *cobra.Command {
	var (
		all    bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "route [start end]",
		Short: "Find the cheapest route between two nodes",
		Long: `Find the cheapest route between two nodes. Without arguments the route runs
from the first to the last node of the node table.`,
		Example: `  greenroute route --nodes n.csv --adjacency m.csv "Solar Farm" "Residential East"
  greenroute route --nodes n.csv --adjacency m.csv --all-strategies`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return fmt.Errorf("route takes no arguments or exactly two, got %d", len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc, err := a.service(ctx, nil)
			if err != nil {
				return err
			}
			start, end, err := endpoints(svc, args)
			if err != nil {
				return err
			}

			strategies := []strategy.Strategy{svc.Strategy()}
			if all {
				strategies = strategy.All()
			}
			results := make([]routeResult, len(strategies))
			g, gctx := errgroup.WithContext(ctx)
			for i, s := range strategies {
				g.Go(func() error {
					r, err := svc.FindRoute(gctx, start, end, s)
					if err != nil && !errors.Is(err, dijkstra.ErrNoRoute) {
						return err
					}
					results[i] = routeResult{Strategy: s, Route: r}
					return nil
				})
			}
			if err = g.Wait(); err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			for _, res := range results {
				printRoute(cmd.OutOrStdout(), res)
			}
			if !all && results[0].Route == nil {
				return fmt.Errorf("%w: %q → %q", dijkstra.ErrNoRoute, start, end)
			}
			return nil
		},
	}

	cmd.Flags().StringP("strategy", "s", "", "loss, sustainability or production (default from config)")
	cmd.Flags().BoolVar(&all, "all-strategies", false, "compare every strategy")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	cmd.MarkFlagsMutuallyExclusive("strategy", "all-strategies")

	return cmd
}

type routeResult struct {
	Strategy strategy.Strategy `json:"strategy"`
	Route    *dijkstra.Route   `json:"route"`
}

// endpoints returns the two named nodes, or the first and last node of the
// node table when none are named.
func endpoints(svc *network.Service, args []string) (string, string, error) {
	if len(args) == 2 {
		return args[0], args[1], nil
	}
	net, err := svc.Network()
	if err != nil {
		return "", "", err
	}
	ordered := net.Ordered()
	if len(ordered) == 0 {
		return "", "", errors.New("the node table is empty")
	}

	return ordered[0], ordered[len(ordered)-1], nil
}

func printRoute(w io.Writer, res routeResult) {
	if res.Route == nil {
		fmt.Fprintf(w, "%-15sno route\n", res.Strategy)
		return
	}
	fmt.Fprintf(w, "%-15s%v cost=%.2f\n", res.Strategy, res.Route.Path, res.Route.Cost)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
