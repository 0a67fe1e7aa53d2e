package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/katalvlaran/greenroute/config"
	"github.com/katalvlaran/greenroute/network"
	"github.com/katalvlaran/greenroute/observability"
)

// flagKeys maps command-line flags onto configuration keys. Each command
// binds the subset it defines.
var flagKeys = map[string]string{
	"nodes":             "data.nodes",
	"adjacency":         "data.adjacency",
	"delimiter":         "data.delimiter",
	"reject-duplicates": "data.reject_duplicates",
	"strategy":          "routing.strategy",
	"addr":              "server.addr",
	"log-level":         "logger.level",
	"log-format":        "logger.format",
	"log-file":          "logger.file",
}

var errNoTables = errors.New("both --nodes and --adjacency (or data.nodes and data.adjacency) are required")

// app carries the state shared by all subcommands of one invocation.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "greenroute",
		Short: "Route energy through a renewable grid by loss, sustainability or production",
		Long: `greenroute loads a node table (Name, Production, Loss, Sustainability) and a
0/1 adjacency matrix, then finds the cheapest route between two nodes under
one of three strategies: loss, sustainability or production.

Settings come from flags, GREENROUTE_* environment variables and an optional
greenroute.yaml, in that order of precedence.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { _ = a.logger.Sync() },
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.cfgFile, "config", "c", "", "config file (default ./greenroute.yaml)")
	pf.String("nodes", "", "node table (CSV)")
	pf.String("adjacency", "", "adjacency matrix (CSV)")
	pf.String("delimiter", ",", `field separator of both tables ("tab" for tab)`)
	pf.Bool("reject-duplicates", false, "fail on repeated node names instead of keeping the last row")
	pf.String("log-level", "info", "debug, info, warn or error")
	pf.String("log-format", observability.FormatConsole, "console or json")
	pf.String("log-file", "", "also write JSON logs to this rotating file")

	root.AddCommand(
		newRouteCmd(a),
		newNodesCmd(a),
		newEdgesCmd(a),
		newIslandsCmd(a),
		newCriticalCmd(a),
		newBackboneCmd(a),
		newRedundancyCmd(a),
		newDotCmd(a),
		newGenerateCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
	)

	return root
}

// setup merges the configuration sources and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.Init(a.v, a.cfgFile); err != nil {
		return err
	}
	if err := config.BindFlags(a.v, cmd.Flags(), flagKeys); err != nil {
		return err
	}
	cfg, err := config.Unmarshal(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := observability.NewLoggerTo(cfg.Logger, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("configuration loaded", zap.String("file", a.v.ConfigFileUsed()))

	return nil
}

// service loads the configured tables into a new network.Service.
func (a *app) service(ctx context.Context, metrics *observability.Metrics) (*network.Service, error) {
	if a.cfg.Data.Nodes == "" || a.cfg.Data.Adjacency == "" {
		return nil, errNoTables
	}
	st, err := a.cfg.DefaultStrategy()
	if err != nil {
		return nil, err
	}

	svc, err := network.New(
		network.WithLogger(a.logger),
		network.WithMetrics(metrics),
		network.WithStrategy(st),
		network.WithParams(a.cfg.Params()),
		network.WithLoadOptions(a.cfg.LoadOptions()...),
	)
	if err != nil {
		return nil, err
	}
	if err = svc.Load(ctx, a.cfg.Data.Nodes, a.cfg.Data.Adjacency); err != nil {
		return nil, fmt.Errorf("loading network: %w", err)
	}

	return svc, nil
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.cfg.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
}
