package energy_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/greenroute/energy"
)

func mustRegistry(t *testing.T, src string) *energy.Registry {
	t.Helper()
	reg, err := energy.LoadNodes(strings.NewReader(src))
	require.NoError(t, err)

	return reg
}

func TestLoadAdjacency_Basic(t *testing.T) {
	reg := mustRegistry(t, nodesCSV)
	src := `,Gen,Sub,Res
Gen,0,1,0
Sub,1,0,1
Res,0,1,0
`
	adj, err := energy.LoadAdjacency(strings.NewReader(src), reg)
	require.NoError(t, err)
	require.Equal(t, 2, adj.EdgeCount(), "mirrored cells do not duplicate edges")
	require.Equal(t, []string{"Gen", "Res"}, adj.Neighbors("Sub"))
	require.Equal(t, []string{"Sub"}, adj.Neighbors("Gen"))
	require.True(t, adj.Connected("Res", "Sub"))
	require.False(t, adj.Connected("Gen", "Res"))

	st := adj.Stats()
	require.Equal(t, 3, st.Rows)
	require.Equal(t, 2, st.Edges)
	require.Zero(t, st.SkippedRows)
}

func TestLoadAdjacency_TabDelimitedEmptyCell(t *testing.T) {
	reg := mustRegistry(t, "Name,Production,Loss,Sustainability\nA,1,1,1\nB,1,1,1\nC,1,1,1\n")
	src := "\tA\tB\tC\nA\t\t0\t1\n"
	adj, err := energy.LoadAdjacency(strings.NewReader(src), reg, energy.WithDelimiter('\t'))
	require.NoError(t, err)
	require.True(t, adj.Connected("A", "C"))
	require.False(t, adj.Connected("A", "B"))
	require.Zero(t, adj.Stats().SkippedRows)
}

func TestLoadAdjacency_OneSidedMatrixIsSymmetric(t *testing.T) {
	reg := mustRegistry(t, nodesCSV)
	// Only the upper triangle is filled in.
	src := "x,Gen,Sub,Res\nGen,0,1,0\nSub,0,0,1\n"
	adj, err := energy.LoadAdjacency(strings.NewReader(src), reg)
	require.NoError(t, err)
	require.True(t, adj.Connected("Sub", "Gen"))
	require.True(t, adj.Connected("Res", "Sub"))
}

func TestLoadAdjacency_UnknownIDsAreDropped(t *testing.T) {
	reg := mustRegistry(t, nodesCSV)
	src := `,Gen,Ghost,Sub
Gen,0,1,1
Phantom,1,0,1
Sub,1,1,0
`
	adj, err := energy.LoadAdjacency(strings.NewReader(src), reg)
	require.NoError(t, err, "unknown ids are not fatal")
	require.Equal(t, 1, adj.EdgeCount())
	require.True(t, adj.Connected("Gen", "Sub"))
	require.Nil(t, adj.Neighbors("Ghost"))

	st := adj.Stats()
	require.Equal(t, []string{"Ghost", "Phantom"}, st.UnknownIDs)
	require.Equal(t, 4, st.DroppedUnknown)
}

func TestLoadAdjacency_CellValues(t *testing.T) {
	reg := mustRegistry(t, nodesCSV)
	// Only an exact "1" (after trimming) connects.
	src := ",Gen,Sub,Res\nGen,0, 1 ,1.0\nRes,yes,2,0\n"
	adj, err := energy.LoadAdjacency(strings.NewReader(src), reg)
	require.NoError(t, err)
	require.Equal(t, 1, adj.EdgeCount())
	require.True(t, adj.Connected("Gen", "Sub"))
}

func TestLoadAdjacency_ShortRowsAndSelfLoops(t *testing.T) {
	reg := mustRegistry(t, nodesCSV)
	src := `,Gen,Sub,Res
Gen,1,1
Sub
Sub,1,1,1
`
	adj, err := energy.LoadAdjacency(strings.NewReader(src), reg)
	require.NoError(t, err)

	st := adj.Stats()
	require.Equal(t, 3, st.Rows)
	require.Equal(t, 2, st.SkippedRows)
	require.Equal(t, 1, st.DroppedSelfLoops)
	require.Equal(t, 2, adj.EdgeCount())
	require.False(t, adj.Connected("Sub", "Sub"))
}

func TestLoadAdjacency_MalformedHeader(t *testing.T) {
	reg := mustRegistry(t, nodesCSV)
	for name, src := range map[string]string{
		"empty":       "",
		"single cell": "Gen\nGen,1\n",
	} {
		t.Run(name, func(t *testing.T) {
			adj, err := energy.LoadAdjacency(strings.NewReader(src), reg, energy.WithSource("adj.csv"))
			require.Nil(t, adj)
			require.ErrorIs(t, err, energy.ErrMalformedInput)
			require.Contains(t, err.Error(), "adj.csv")
		})
	}
}

func TestAdjacency_Connect(t *testing.T) {
	adj := energy.NewAdjacency()
	added, err := adj.Connect("A", "B")
	require.NoError(t, err)
	require.True(t, added)

	added, err = adj.Connect("B", "A")
	require.NoError(t, err)
	require.False(t, added, "reverse edge is the same undirected edge")
	require.Equal(t, 1, adj.EdgeCount())

	_, err = adj.Connect("A", "A")
	require.ErrorIs(t, err, energy.ErrSelfLoop)
	_, err = adj.Connect("", "A")
	require.ErrorIs(t, err, energy.ErrMalformedInput)
	require.Equal(t, []string{"A", "B"}, adj.IDs())
}

func TestWriteAdjacency_RoundTrip(t *testing.T) {
	reg := mustRegistry(t, nodesCSV)
	adj := energy.NewAdjacency()
	_, _ = adj.Connect("Gen", "Sub")
	_, _ = adj.Connect("Sub", "Res")

	var buf bytes.Buffer
	require.NoError(t, energy.WriteAdjacency(&buf, reg, adj))
	require.Equal(t, "Node,Gen,Res,Sub\nGen,0,0,1\nRes,0,0,1\nSub,1,1,0\n", buf.String())

	again, err := energy.LoadAdjacency(&buf, reg)
	require.NoError(t, err)
	for _, id := range reg.IDs() {
		require.Equal(t, adj.Neighbors(id), again.Neighbors(id), id)
	}
}
