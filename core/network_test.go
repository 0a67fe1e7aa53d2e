package core_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/greenroute/core"
	"github.com/katalvlaran/greenroute/energy"
)

// fixture returns the three-node example plus an isolated battery.
func fixture(t *testing.T) (*energy.Registry, *energy.Adjacency) {
	t.Helper()
	reg := energy.NewRegistry()
	for _, n := range []energy.EnergyNode{
		{ID: "Gen", Production: 100, Loss: 2, Sustainability: 90},
		{ID: "Sub", Production: 0, Loss: 5, Sustainability: 60},
		{ID: "Res", Production: 0, Loss: 8, Sustainability: 40},
		{ID: "Battery", Production: 0, Loss: 1, Sustainability: 70},
	} {
		_, err := reg.Put(n)
		require.NoError(t, err)
	}
	adj := energy.NewAdjacency()
	_, _ = adj.Connect("Gen", "Sub")
	_, _ = adj.Connect("Res", "Sub")

	return reg, adj
}

func TestNewNetwork_Queries(t *testing.T) {
	reg, adj := fixture(t)
	net, err := core.NewNetwork(reg, adj)
	require.NoError(t, err)

	require.Equal(t, 4, net.NodeCount())
	require.Equal(t, 2, net.EdgeCount())
	require.Equal(t, []string{"Battery", "Gen", "Res", "Sub"}, net.IDs())
	require.Equal(t, []string{"Gen", "Sub", "Res", "Battery"}, net.Ordered())
	require.Equal(t, []string{"Gen", "Res"}, net.Neighbors("Sub"))
	require.Nil(t, net.Neighbors("Battery"))
	require.Nil(t, net.Neighbors("Nowhere"))

	require.True(t, net.Connected("Sub", "Gen"))
	require.True(t, net.Connected("Gen", "Sub"))
	require.False(t, net.Connected("Gen", "Res"))

	want := []core.Edge{{From: "Gen", To: "Sub"}, {From: "Res", To: "Sub"}}
	if diff := cmp.Diff(want, net.Edges()); diff != "" {
		t.Fatalf("Edges() mismatch (-want +got):\n%s", diff)
	}

	d, err := net.Degree("Sub")
	require.NoError(t, err)
	require.Equal(t, 2, d)
	_, err = net.Degree("Nowhere")
	require.ErrorIs(t, err, core.ErrNodeNotFound)

	require.Equal(t, core.Stats{Nodes: 4, Edges: 2, Isolated: 1, MaxDegree: 2}, net.Stats())

	gen, ok := net.Node("Gen")
	require.True(t, ok)
	require.Equal(t, 100.0, gen.Production)
}

func TestNewNetwork_Symmetric(t *testing.T) {
	reg, adj := fixture(t)
	net, err := core.NewNetwork(reg, adj)
	require.NoError(t, err)
	for _, u := range net.IDs() {
		for _, v := range net.Neighbors(u) {
			require.Contains(t, net.Neighbors(v), u, "%s→%s has no mirror", u, v)
			require.NotEqual(t, u, v)
		}
	}
}

func TestNewNetwork_Errors(t *testing.T) {
	_, err := core.NewNetwork(nil, energy.NewAdjacency())
	require.ErrorIs(t, err, core.ErrNilRegistry)

	reg, adj := fixture(t)
	_, _ = adj.Connect("Gen", "Ghost")
	_, err = core.NewNetwork(reg, adj)
	require.ErrorIs(t, err, core.ErrUnknownNode)
	require.Contains(t, err.Error(), "Ghost")
}

func TestNewNetwork_NilAdjacency(t *testing.T) {
	reg, _ := fixture(t)
	net, err := core.NewNetwork(reg, nil)
	require.NoError(t, err)
	require.Zero(t, net.EdgeCount())
	require.Equal(t, 4, net.Stats().Isolated)
}

func TestNetwork_IsolatedFromInputs(t *testing.T) {
	reg, adj := fixture(t)
	net, err := core.NewNetwork(reg, adj)
	require.NoError(t, err)

	_, _ = reg.Put(energy.EnergyNode{ID: "Late", Loss: 1, Sustainability: 1})
	_, _ = adj.Connect("Gen", "Res")
	require.False(t, net.HasNode("Late"))
	require.False(t, net.Connected("Gen", "Res"))

	nbs := net.Neighbors("Sub")
	nbs[0] = "mutated"
	require.Equal(t, []string{"Gen", "Res"}, net.Neighbors("Sub"))
}

func TestNetwork_RegistryAdjacencyRoundTrip(t *testing.T) {
	reg, adj := fixture(t)
	net, err := core.NewNetwork(reg, adj)
	require.NoError(t, err)

	again, err := core.NewNetwork(net.Registry(), net.Adjacency())
	require.NoError(t, err)
	require.Equal(t, net.Nodes(), again.Nodes())
	require.Equal(t, net.Edges(), again.Edges())
	require.Equal(t, net.Ordered(), again.Ordered())
}

func TestNetwork_ForEachNeighbor(t *testing.T) {
	reg, adj := fixture(t)
	_, _ = adj.Connect("Sub", "Battery")
	net, err := core.NewNetwork(reg, adj)
	require.NoError(t, err)

	var seen []string
	net.ForEachNeighbor("Sub", func(nb string) bool {
		seen = append(seen, nb)
		return len(seen) < 2
	})
	require.Equal(t, []string{"Battery", "Gen"}, seen)
}
