package mst_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/katalvlaran/greenroute/builder"
	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/energy"
	"github.com/katalvlaran/greenroute/mst"
	"github.com/katalvlaran/greenroute/strategy"
)

// ring is Gen—Sub—Res—Gen with an isolated Island.
func ring(t *testing.T) *core.Network {
	t.Helper()
	reg := energy.NewRegistry()
	for _, n := range []energy.EnergyNode{
		{ID: "Gen", Production: 100, Loss: 2, Sustainability: 90},
		{ID: "Sub", Loss: 5, Sustainability: 60},
		{ID: "Res", Loss: 8, Sustainability: 40},
		{ID: "Island", Loss: 1, Sustainability: 1},
	} {
		_, err := reg.Put(n)
		require.NoError(t, err)
	}
	adj := energy.NewAdjacency()
	for _, e := range [][2]string{{"Gen", "Sub"}, {"Sub", "Res"}, {"Res", "Gen"}} {
		_, err := adj.Connect(e[0], e[1])
		require.NoError(t, err)
	}
	net, err := core.NewNetwork(reg, adj)
	require.NoError(t, err)

	return net
}

func TestKruskal_Ring(t *testing.T) {
	bb, err := mst.Kruskal(ring(t), strategy.MinimizeLoss)
	require.NoError(t, err)
	// Gen—Sub 3.5, Gen—Res 5, Res—Sub 6.5: the dearest link is dropped.
	assert.Equal(t, []mst.Link{
		{From: "Gen", To: "Sub", Weight: 3.5},
		{From: "Gen", To: "Res", Weight: 5},
	}, bb.Links)
	assert.InDelta(t, 8.5, bb.Cost, 1e-9)
	assert.Equal(t, 2, bb.Components)
	assert.Equal(t, strategy.MinimizeLoss, bb.Strategy)

	_, err = mst.Kruskal(ring(t), strategy.MinimizeLoss, mst.WithRequireConnected())
	assert.ErrorIs(t, err, mst.ErrDisconnected)
}

func TestPrim_Ring(t *testing.T) {
	bb, err := mst.Prim(ring(t), "Res", strategy.MinimizeLoss)
	require.NoError(t, err)
	assert.Equal(t, []mst.Link{
		{From: "Gen", To: "Res", Weight: 5},
		{From: "Gen", To: "Sub", Weight: 3.5},
	}, bb.Links)
	assert.InDelta(t, 8.5, bb.Cost, 1e-9)
	assert.Equal(t, 1, bb.Components)

	bb, err = mst.Prim(ring(t), "Island", strategy.MinimizeLoss)
	require.NoError(t, err)
	assert.Empty(t, bb.Links)
	assert.Zero(t, bb.Cost)

	_, err = mst.Prim(ring(t), "Gen", strategy.MinimizeLoss, mst.WithRequireConnected())
	assert.ErrorIs(t, err, mst.ErrDisconnected)
}

func TestBackbone_Errors(t *testing.T) {
	_, err := mst.Kruskal(nil, strategy.MinimizeLoss)
	assert.ErrorIs(t, err, mst.ErrNilNetwork)
	_, err = mst.Prim(nil, "Gen", strategy.MinimizeLoss)
	assert.ErrorIs(t, err, mst.ErrNilNetwork)
	_, err = mst.Prim(ring(t), "Nowhere", strategy.MinimizeLoss)
	assert.ErrorIs(t, err, mst.ErrRootNotFound)
	_, err = mst.Kruskal(ring(t), strategy.Strategy(42))
	assert.ErrorIs(t, err, strategy.ErrInvalidStrategy)
	_, err = mst.Kruskal(ring(t), strategy.MinimizeLoss, mst.WithParams(strategy.Params{}))
	assert.ErrorIs(t, err, mst.ErrOptionViolation)
}

func TestBackbone_Params(t *testing.T) {
	p := strategy.Params{SustainabilityCeiling: 100, ProductionScale: 1}
	bb, err := mst.Kruskal(ring(t), strategy.MaximizeSustainability, mst.WithParams(p))
	require.NoError(t, err)
	// 100 − avg(sust): Gen—Sub 25, Gen—Res 35, Res—Sub 50.
	assert.InDelta(t, 60, bb.Cost, 1e-9)
}

// TestKruskal_MatchesGonum checks Kruskal and Prim against gonum's spanning
// forest on random networks, for every strategy.
func TestKruskal_MatchesGonum(t *testing.T) {
	for seed := int64(1); seed <= 4; seed++ {
		net, err := builder.BuildNetwork(
			[]builder.BuilderOption{builder.WithSeed(seed), builder.WithIDPrefix("N")},
			builder.RandomSparse(30, 0.15))
		require.NoError(t, err)

		ids := net.IDs()
		index := make(map[string]int64, len(ids))
		for i, id := range ids {
			index[id] = int64(i)
		}

		for _, s := range strategy.All() {
			name := fmt.Sprintf("seed=%d %v", seed, s)
			g := simple.NewWeightedUndirectedGraph(0, math.Inf(1))
			for i := range ids {
				g.AddNode(simple.Node(int64(i)))
			}
			for _, e := range net.Edges() {
				a, _ := net.Node(e.From)
				b, _ := net.Node(e.To)
				g.SetWeightedEdge(g.NewWeightedEdge(
					simple.Node(index[e.From]), simple.Node(index[e.To]), strategy.Weight(a, b, s)))
			}
			want := path.Kruskal(simple.NewWeightedUndirectedGraph(0, math.Inf(1)), g)

			bb, err := mst.Kruskal(net, s)
			require.NoError(t, err, name)
			assert.InDelta(t, want, bb.Cost, 1e-6, name)
			assert.Equal(t, len(ids)-len(bb.Links), bb.Components, name)

			// Prim over each island sums to the same forest cost.
			seen := make(map[string]bool)
			total := 0.0
			for _, id := range ids {
				if seen[id] {
					continue
				}
				tree, err := mst.Prim(net, id, s)
				require.NoError(t, err, name)
				seen[id] = true
				for _, l := range tree.Links {
					seen[l.From], seen[l.To] = true, true
				}
				total += tree.Cost
			}
			assert.InDelta(t, want, total, 1e-6, name)
		}
	}
}
