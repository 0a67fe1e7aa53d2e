// Package builder_test contains functional tests for every Constructor,
// verifying node and edge counts, topology and determinism.
package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/greenroute/builder"
	"github.com/katalvlaran/greenroute/core"
)

// TestBuilders_Functional runs table-driven checks for each topology.
func TestBuilders_Functional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		ctor        builder.Constructor
		wantV       int
		wantE       int
		sampleCheck func(t *testing.T, net *core.Network)
	}{
		{
			name: "Path(4)", ctor: builder.Path(4), wantV: 4, wantE: 3,
			sampleCheck: func(t *testing.T, net *core.Network) {
				require.True(t, net.Connected("0", "1"))
				require.True(t, net.Connected("2", "3"))
				require.False(t, net.Connected("0", "3"))
			},
		},
		{
			name: "Cycle(5)", ctor: builder.Cycle(5), wantV: 5, wantE: 5,
			sampleCheck: func(t *testing.T, net *core.Network) {
				require.True(t, net.Connected("4", "0"))
			},
		},
		{
			name: "Star(5)", ctor: builder.Star(5), wantV: 5, wantE: 4,
			sampleCheck: func(t *testing.T, net *core.Network) {
				d, err := net.Degree("0")
				require.NoError(t, err)
				require.Equal(t, 4, d)
			},
		},
		{
			name: "Wheel(5)", ctor: builder.Wheel(5), wantV: 5, wantE: 8,
			sampleCheck: func(t *testing.T, net *core.Network) {
				require.True(t, net.Connected("4", "1"))
				require.Equal(t, 4, net.Stats().MaxDegree)
			},
		},
		{name: "Complete(5)", ctor: builder.Complete(5), wantV: 5, wantE: 10},
		{name: "Complete(1)", ctor: builder.Complete(1), wantV: 1, wantE: 0},
		{
			name: "Grid(2,3)", ctor: builder.Grid(2, 3), wantV: 6, wantE: 7,
			sampleCheck: func(t *testing.T, net *core.Network) {
				require.True(t, net.Connected("0", "3"))
				require.False(t, net.Connected("2", "3"), "row wrap is not an edge")
			},
		},
		{name: "RandomSparse(6,1)", ctor: builder.RandomSparse(6, 1), wantV: 6, wantE: 15},
		{name: "RandomSparse(6,0)", ctor: builder.RandomSparse(6, 0), wantV: 6, wantE: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			net, err := builder.BuildNetwork(nil, tc.ctor)
			require.NoError(t, err)
			require.Equal(t, tc.wantV, net.NodeCount())
			require.Equal(t, tc.wantE, net.EdgeCount())
			for _, n := range net.Nodes() {
				require.NoError(t, n.Validate())
			}
			if tc.sampleCheck != nil {
				tc.sampleCheck(t, net)
			}
		})
	}
}

func TestBuilders_Validation(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		ctor builder.Constructor
		want error
	}{
		"Path(1)":              {builder.Path(1), builder.ErrTooFewNodes},
		"Cycle(2)":             {builder.Cycle(2), builder.ErrTooFewNodes},
		"Star(1)":              {builder.Star(1), builder.ErrTooFewNodes},
		"Wheel(3)":             {builder.Wheel(3), builder.ErrTooFewNodes},
		"Complete(0)":          {builder.Complete(0), builder.ErrTooFewNodes},
		"Grid(0,3)":            {builder.Grid(0, 3), builder.ErrTooFewNodes},
		"RandomSparse(0,.5)":   {builder.RandomSparse(0, 0.5), builder.ErrTooFewNodes},
		"RandomSparse(5,1.5)":  {builder.RandomSparse(5, 1.5), builder.ErrInvalidProbability},
		"RandomSparse(5,.5)":   {builder.RandomSparse(5, 0.5), builder.ErrNeedRandSource},
		"nil constructor":      {nil, builder.ErrConstructFailed},
	}
	for name, tc := range cases {
		_, _, err := builder.Build(nil, tc.ctor)
		require.ErrorIs(t, err, tc.want, name)
	}
}

func TestBuild_DeterministicForSeed(t *testing.T) {
	t.Parallel()

	opts := []builder.BuilderOption{builder.WithSeed(99), builder.WithCategoryIDs()}
	a, err := builder.BuildNetwork(opts, builder.RandomSparse(12, 0.3))
	require.NoError(t, err)
	b, err := builder.BuildNetwork([]builder.BuilderOption{builder.WithSeed(99), builder.WithCategoryIDs()},
		builder.RandomSparse(12, 0.3))
	require.NoError(t, err)

	require.Equal(t, a.Nodes(), b.Nodes())
	require.Equal(t, a.Edges(), b.Edges())
}

func TestBuild_ComposeOverlaysEdges(t *testing.T) {
	t.Parallel()

	net, err := builder.BuildNetwork(nil, builder.Path(4), builder.Star(4))
	require.NoError(t, err)
	require.Equal(t, 4, net.NodeCount())
	// Path 0-1-2-3 plus spokes 0-2, 0-3 (0-1 already present).
	require.Equal(t, 5, net.EdgeCount())
}
