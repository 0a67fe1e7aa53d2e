// Package network holds the live, reloadable energy network behind the CLI
// and the HTTP API.
//
// A Service keeps one immutable core.Network snapshot. Loads are serialized
// by a writer mutex and publish a new snapshot atomically once both tables
// have been read; queries never lock and always see a complete snapshot.
package network

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/katalvlaran/greenroute/bfs"
	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/dfs"
	"github.com/katalvlaran/greenroute/dijkstra"
	"github.com/katalvlaran/greenroute/energy"
	"github.com/katalvlaran/greenroute/flow"
	"github.com/katalvlaran/greenroute/mst"
	"github.com/katalvlaran/greenroute/observability"
	"github.com/katalvlaran/greenroute/strategy"
)

var (
	// ErrNotLoaded is returned by queries issued before the first successful load.
	ErrNotLoaded = errors.New("network: no network loaded")

	// ErrNoNodeTable is returned by LoadAdjacency when no node table has
	// been staged or published yet.
	ErrNoNodeTable = errors.New("network: adjacency loaded before node table")

	// ErrNoSources is returned by Reload when nothing has been loaded from files.
	ErrNoSources = errors.New("network: no table paths to reload from")
)

// Info describes the published snapshot.
type Info struct {
	Nodes           int       `json:"nodes"`
	Edges           int       `json:"edges"`
	Islands         int       `json:"islands"`
	Isolated        int       `json:"isolated"`
	CutNodes        int       `json:"cut_nodes"`
	Bridges         int       `json:"bridges"`
	NodesSource     string    `json:"nodes_source,omitempty"`
	AdjacencySource string    `json:"adjacency_source,omitempty"`
	LoadedAt        time.Time `json:"loaded_at"`
	Generation      uint64    `json:"generation"`
}

type snapshot struct {
	net      *core.Network
	islands  [][]string
	critical *dfs.Report
	info     Info
}

// Service is safe for concurrent use.
type Service struct {
	mu         sync.Mutex // serializes loads
	staged     *energy.Registry
	stagedFrom string
	generation uint64

	current  atomic.Pointer[snapshot]
	strategy atomic.Int32

	params   strategy.Params
	loadOpts []energy.LoadOption
	logger   *zap.Logger
	metrics  *observability.Metrics
}

// New returns an empty Service. Options that fail validation are reported
// here, not at query time.
func New(opts ...Option) (*Service, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	s := &Service{
		params:   o.params,
		loadOpts: o.loadOpts,
		logger:   o.logger.Named("network"),
		metrics:  o.metrics,
	}
	s.strategy.Store(int32(o.strategy))

	return s, nil
}

// LoadNodes reads the node table at path and stages it for the next
// LoadAdjacency. The published snapshot is not touched. Any later publish
// (Load, LoadAdjacency or Install) discards the staged table.
func (s *Service) LoadNodes(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	reg, err := energy.LoadNodesFile(path, s.loaderOptions()...)
	if err != nil {
		s.logger.Error("node table rejected", zap.String("path", path), zap.Error(err))
		return err
	}
	s.staged, s.stagedFrom = reg, path
	s.logger.Info("node table staged", zap.String("path", path), zap.Int("nodes", reg.Len()))

	return nil
}

// LoadAdjacency reads the adjacency table at path against the staged node
// table (or, if none is staged, the published one) and publishes the result.
// On error the previous snapshot stays in place.
func (s *Service) LoadAdjacency(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	reg, nodesFrom := s.staged, s.stagedFrom
	if reg == nil {
		snap := s.current.Load()
		if snap == nil {
			return ErrNoNodeTable
		}
		reg, nodesFrom = snap.net.Registry(), snap.info.NodesSource
	}

	err := s.loadAdjacencyLocked(ctx, reg, nodesFrom, path)
	s.metrics.ObserveLoad(err == nil, time.Since(start))

	return err
}

// Load reads both tables and publishes them as one snapshot. A failure in
// either phase leaves the previous snapshot and any staged table untouched.
func (s *Service) Load(ctx context.Context, nodesPath, adjacencyPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	err := s.loadLocked(ctx, nodesPath, adjacencyPath)
	s.metrics.ObserveLoad(err == nil, time.Since(start))

	return err
}

// Reload repeats the last successful file load.
func (s *Service) Reload(ctx context.Context) error {
	snap := s.current.Load()
	if snap == nil || snap.info.NodesSource == "" || snap.info.AdjacencySource == "" {
		return ErrNoSources
	}

	return s.Load(ctx, snap.info.NodesSource, snap.info.AdjacencySource)
}

// Install publishes an in-memory registry and adjacency table, e.g. one made
// by package builder. A nil adj installs an edgeless network.
func (s *Service) Install(ctx context.Context, reg *energy.Registry, adj *energy.Adjacency) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	err := s.publishLocked(reg, adj, "", "")
	s.metrics.ObserveLoad(err == nil, time.Since(start))

	return err
}

func (s *Service) loadLocked(ctx context.Context, nodesPath, adjacencyPath string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	reg, err := energy.LoadNodesFile(nodesPath, s.loaderOptions()...)
	if err != nil {
		s.logger.Error("node table rejected", zap.String("path", nodesPath), zap.Error(err))
		return err
	}

	return s.loadAdjacencyLocked(ctx, reg, nodesPath, adjacencyPath)
}

func (s *Service) loadAdjacencyLocked(ctx context.Context, reg *energy.Registry, nodesFrom, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	adj, err := energy.LoadAdjacencyFile(path, reg, s.loaderOptions()...)
	if err != nil {
		s.logger.Error("adjacency table rejected", zap.String("path", path), zap.Error(err))
		return err
	}
	if err = ctx.Err(); err != nil {
		return err
	}

	return s.publishLocked(reg, adj, nodesFrom, path)
}

// publishLocked builds the snapshot and swaps it in. Caller holds s.mu.
func (s *Service) publishLocked(reg *energy.Registry, adj *energy.Adjacency, nodesFrom, adjFrom string) error {
	net, err := core.NewNetwork(reg, adj)
	if err != nil {
		return fmt.Errorf("network: building snapshot: %w", err)
	}

	islands := bfs.Islands(net)
	critical, err := dfs.Critical(net)
	if err != nil {
		return fmt.Errorf("network: critical analysis: %w", err)
	}
	st := net.Stats()
	s.generation++
	snap := &snapshot{
		net:      net,
		islands:  islands,
		critical: critical,
		info: Info{
			Nodes:           st.Nodes,
			Edges:           st.Edges,
			Islands:         len(islands),
			Isolated:        st.Isolated,
			CutNodes:        len(critical.CutNodes),
			Bridges:         len(critical.Bridges),
			NodesSource:     nodesFrom,
			AdjacencySource: adjFrom,
			LoadedAt:        time.Now().UTC(),
			Generation:      s.generation,
		},
	}
	s.current.Store(snap)
	s.staged, s.stagedFrom = nil, ""
	s.metrics.SetShape(st.Nodes, st.Edges, len(islands))

	s.logger.Info("network published",
		zap.Uint64("generation", s.generation), zap.Int("nodes", st.Nodes), zap.Int("edges", st.Edges),
		zap.Int("islands", len(islands)), zap.Int("isolated", st.Isolated))
	if len(islands) > 1 {
		s.logger.Warn("network is fragmented; some routes will not exist",
			zap.Int("islands", len(islands)), zap.Strings("largest", largest(islands)))
	}
	if len(critical.CutNodes) > 0 {
		s.logger.Warn("single points of failure",
			zap.Strings("cut_nodes", critical.CutNodes), zap.Int("bridges", len(critical.Bridges)))
	}

	return nil
}

func (s *Service) loaderOptions() []energy.LoadOption {
	opts := make([]energy.LoadOption, 0, len(s.loadOpts)+1)
	opts = append(opts, s.loadOpts...)

	return append(opts, energy.WithLogger(s.logger))
}

// SetStrategy changes the default strategy used by Route.
func (s *Service) SetStrategy(st strategy.Strategy) error {
	if err := st.Validate(); err != nil {
		return err
	}
	s.strategy.Store(int32(st))
	s.logger.Info("default strategy changed", zap.Stringer("strategy", st))

	return nil
}

// Strategy returns the default strategy.
func (s *Service) Strategy() strategy.Strategy {
	return strategy.Strategy(s.strategy.Load())
}

// Params returns the weight constants used for every query.
func (s *Service) Params() strategy.Params { return s.params }

// Network returns the published snapshot.
func (s *Service) Network() (*core.Network, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}

	return snap.net, nil
}

// Islands returns the connected components of the published snapshot.
func (s *Service) Islands() ([][]string, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	out := make([][]string, len(snap.islands))
	for i, is := range snap.islands {
		out[i] = append([]string(nil), is...)
	}

	return out, nil
}

// Info describes the published snapshot.
func (s *Service) Info() (Info, error) {
	snap := s.current.Load()
	if snap == nil {
		return Info{}, ErrNotLoaded
	}

	return snap.info, nil
}

// Critical returns the cut nodes and bridges of the published snapshot.
func (s *Service) Critical() (dfs.Report, error) {
	snap := s.current.Load()
	if snap == nil {
		return dfs.Report{}, ErrNotLoaded
	}

	return dfs.Report{
		CutNodes: append([]string{}, snap.critical.CutNodes...),
		Bridges:  append([]core.Edge{}, snap.critical.Bridges...),
	}, nil
}

// Backbone computes the minimum spanning forest of the published snapshot
// under st.
func (s *Service) Backbone(ctx context.Context, st strategy.Strategy) (*mst.Backbone, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	bb, err := mst.Kruskal(snap.net, st, mst.WithParams(s.params))
	if err != nil {
		return nil, err
	}
	s.logger.Debug("backbone computed", zap.Stringer("strategy", st),
		zap.Int("links", len(bb.Links)), zap.Float64("cost", bb.Cost))

	return bb, nil
}

// Redundancy counts the independent routes between start and end in the
// published snapshot.
func (s *Service) Redundancy(ctx context.Context, start, end string, mode flow.Mode) (*flow.Result, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	res, err := flow.Redundancy(snap.net, start, end, flow.WithContext(ctx), flow.WithMode(mode))
	if err != nil {
		return nil, err
	}
	if res.Count == 1 {
		s.logger.Debug("single route between endpoints",
			zap.String("from", start), zap.String("to", end), zap.Stringer("mode", mode))
	}

	return res, nil
}

// FindRoute searches the published snapshot under st. The search honors
// ctx cancellation.
func (s *Service) FindRoute(ctx context.Context, start, end string, st strategy.Strategy) (*dijkstra.Route, error) {
	began := time.Now()
	snap := s.current.Load()
	if snap == nil {
		s.metrics.ObserveRoute(st.String(), observability.OutcomeRejected, 0, 0)
		return nil, ErrNotLoaded
	}

	route, err := dijkstra.FindRoute(snap.net, start, end, st,
		dijkstra.WithContext(ctx), dijkstra.WithParams(s.params))
	took := time.Since(began)

	switch {
	case err == nil:
		s.metrics.ObserveRoute(st.String(), observability.OutcomeFound, took, route.Cost)
		s.logger.Debug("route found",
			zap.String("from", start), zap.String("to", end), zap.Stringer("strategy", st),
			zap.Strings("path", route.Path), zap.Float64("cost", route.Cost), zap.Duration("took", took))
	case errors.Is(err, dijkstra.ErrNoRoute):
		s.metrics.ObserveRoute(st.String(), observability.OutcomeNoRoute, took, 0)
		s.logger.Debug("no route", zap.String("from", start), zap.String("to", end), zap.Stringer("strategy", st))
	case errors.Is(err, dijkstra.ErrUnknownEndpoint), errors.Is(err, strategy.ErrInvalidStrategy):
		s.metrics.ObserveRoute(st.String(), observability.OutcomeRejected, took, 0)
	default:
		s.metrics.ObserveRoute(st.String(), observability.OutcomeError, took, 0)
		s.logger.Warn("route search failed", zap.String("from", start), zap.String("to", end), zap.Error(err))
	}

	return route, err
}

// Route is FindRoute with the default strategy.
func (s *Service) Route(ctx context.Context, start, end string) (*dijkstra.Route, error) {
	return s.FindRoute(ctx, start, end, s.Strategy())
}

// largest returns the biggest island; ties go to the first one.
func largest(islands [][]string) []string {
	var best []string
	for _, is := range islands {
		if len(is) > len(best) {
			best = is
		}
	}

	return best
}
