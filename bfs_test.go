package cayley

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/cayley/testutil"
)

func TestBFS_ThreeCycle(t *testing.T) {
	g := mustPermutationGraph(t, [][]int{{1, 2, 0}, {2, 0, 1}})

	res, err := g.BFS(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, res.LayerSizes)
	assert.True(t, res.Completed)
	assert.Equal(t, [][]int64{{0, 1, 2}}, res.Layers[0])
	assert.ElementsMatch(t, [][]int64{{1, 2, 0}, {2, 0, 1}}, res.Layers[1])
	assert.Equal(t, 3, res.NumVertices())
	assert.Equal(t, 1, res.Diameter())
}

func TestBFS_SelfInverseTransposition(t *testing.T) {
	g := mustPermutationGraph(t, [][]int{{1, 0, 2, 3}})
	require.True(t, g.Definition().GeneratorsInverseClosed())

	res, err := g.BFS(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 1}, res.LayerSizes)
	assert.True(t, res.Completed)
	assert.Equal(t, [][]int64{{1, 0, 2, 3}}, res.LastLayer())
}

func TestBFS_ExplorationCap(t *testing.T) {
	g := mustPermutationGraph(t, transpositions(5))

	res, err := g.BFS(context.Background(), WithMaxLayerSizeToExplore(5))
	require.NoError(t, err)

	assert.False(t, res.Completed)
	assert.Equal(t, []int{1, 10}, res.LayerSizes)
	assert.Len(t, res.Layers[1], 10)
}

func TestBFS_EdgesBothDirections(t *testing.T) {
	g := mustPermutationGraph(t, [][]int{{1, 0}})

	res, err := g.BFS(context.Background(), WithReturnAllEdges())
	require.NoError(t, err)
	require.True(t, res.Completed)

	h, err := g.HashStates([][]int64{{0, 1}, {1, 0}})
	require.NoError(t, err)
	a, b := h[0], h[1]

	assert.Contains(t, res.EdgesListHashes, [2]uint64{a, b})
	assert.Contains(t, res.EdgesListHashes, [2]uint64{b, a})
}

func TestBFS_MatchesBruteForce(t *testing.T) {
	rng := testutil.NewRNG(4711)

	for trial := 0; trial < 8; trial++ {
		n := 4 + trial%3
		gens := [][]int{rng.Permutation(n), rng.Permutation(n)}
		want := testutil.BruteForceBFS([][]int64{identityState(n)}, testutil.PermutationNeighbors(gens), 0)

		for name, opts := range map[string][]Option{
			"packed":          nil,
			"packed-chunked":  {WithBatchSize(3), WithParallelism(4)},
			"unpacked":        {WithoutBitEncoding()},
			"unpacked-chunks": {WithoutBitEncoding(), WithBatchSize(2), WithHashChunkSize(5)},
			"multi-word":      {WithBitEncodingWidth(40)},
		} {
			g := mustPermutationGraph(t, gens, opts...)
			res, err := g.BFS(context.Background(), WithMaxLayerSizeToStore(-1))
			require.NoError(t, err, name)

			assert.Equal(t, want, res.LayerSizes, "trial %d %s", trial, name)
			assert.True(t, res.Completed)
		}
	}
}

func identityState(n int) []int64 {
	s := make([]int64, n)
	for i := range s {
		s[i] = int64(i)
	}
	return s
}

func TestBFS_DirectedGraphKeepsFullHistory(t *testing.T) {
	g := mustPermutationGraph(t, [][]int{{1, 2, 0}})
	require.False(t, g.Definition().GeneratorsInverseClosed())

	res, err := g.BFS(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1}, res.LayerSizes)
	assert.True(t, res.Completed)
}

func TestBFS_SeenSetPolicies(t *testing.T) {
	directed := mustPermutationGraph(t, [][]int{{1, 2, 0}})
	_, err := directed.BFS(context.Background(), WithSeenSetPolicy(SeenSetTwoLayers))
	assert.ErrorIs(t, err, ErrNotInverseClosed)

	g := mustPermutationGraph(t, coxeter(4))
	two, err := g.BFS(context.Background(), WithSeenSetPolicy(SeenSetTwoLayers))
	require.NoError(t, err)
	full, err := g.BFS(context.Background(), WithSeenSetPolicy(SeenSetFullHistory))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3, 5, 6, 5, 3, 1}, two.LayerSizes)
	assert.Equal(t, two.LayerSizes, full.LayerSizes)

	_, err = g.BFS(context.Background(), WithSeenSetPolicy(SeenSetPolicy(9)))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBFS_LayersAreDisjoint(t *testing.T) {
	g := mustPermutationGraph(t, coxeter(5), WithoutBitEncoding())

	res, err := g.BFS(context.Background(), WithMaxLayerSizeToStore(-1), WithReturnAllHashes())
	require.NoError(t, err)

	seen := make(map[string]int)
	total := 0
	for i, size := range res.LayerSizes {
		layer, ok := res.Layer(i)
		require.True(t, ok, "layer %d", i)
		require.Len(t, layer, size)
		for _, s := range layer {
			k := testutil.Key(s)
			prev, dup := seen[k]
			assert.False(t, dup, "state %s in layers %d and %d", k, prev, i)
			seen[k] = i
		}
		total += size
	}
	assert.Equal(t, 120, total)

	assert.Len(t, res.VerticesHashes, res.NumVertices())
	unique := make(map[uint64]struct{})
	for _, h := range res.VerticesHashes {
		unique[h] = struct{}{}
	}
	assert.Len(t, unique, 120)
}

func TestBFS_StorePolicy(t *testing.T) {
	g := mustPermutationGraph(t, coxeter(4))

	res, err := g.BFS(context.Background(), WithMaxLayerSizeToStore(3))
	require.NoError(t, err)

	assert.Equal(t, []int{1, 3, 5, 6, 5, 3, 1}, res.LayerSizes)
	stored := make([]int, 0, len(res.Layers))
	for i := range res.LayerSizes {
		if _, ok := res.Layer(i); ok {
			stored = append(stored, i)
		}
	}
	assert.Equal(t, []int{0, 1, 5, 6}, stored)
}

func TestBFS_MaxDiameter(t *testing.T) {
	g := mustPermutationGraph(t, coxeter(4))

	res, err := g.BFS(context.Background(), WithMaxDiameter(2), WithReturnAllHashes())
	require.NoError(t, err)
	assert.False(t, res.Completed)
	assert.Equal(t, []int{1, 3, 5}, res.LayerSizes)
	assert.Len(t, res.LastLayer(), 5)
	assert.Len(t, res.VerticesHashes, 9)

	res, err = g.BFS(context.Background(), WithMaxDiameter(0))
	require.NoError(t, err)
	assert.False(t, res.Completed)
	assert.Equal(t, []int{1}, res.LayerSizes)
	assert.Equal(t, [][]int64{{0, 1, 2, 3}}, res.Layers[0])
}

func TestBFS_StartStates(t *testing.T) {
	g := mustPermutationGraph(t, coxeter(4))

	res, err := g.BFS(context.Background(), WithStartStates(
		[]int64{0, 1, 2, 3},
		[]int64{3, 2, 1, 0},
		[]int64{0, 1, 2, 3},
	))
	require.NoError(t, err)

	want := testutil.BruteForceBFS(
		[][]int64{{0, 1, 2, 3}, {3, 2, 1, 0}},
		testutil.PermutationNeighbors(coxeter(4)),
		0,
	)
	assert.Equal(t, want, res.LayerSizes)
	assert.Equal(t, 2, res.LayerSizes[0])

	_, err = g.BFS(context.Background(), WithStartStates([]int64{0, 1}))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestBFS_EdgesAndHashes(t *testing.T) {
	g := mustPermutationGraph(t, [][]int{{1, 2, 0}, {2, 0, 1}}, WithoutBitEncoding())

	res, err := g.BFS(context.Background(), WithReturnAllEdges(), WithReturnAllHashes())
	require.NoError(t, err)
	require.True(t, res.Completed)

	assert.Len(t, res.VerticesHashes, 3)
	assert.Len(t, res.EdgesListHashes, 6)

	adj := res.AdjacencyMatrix()
	for i := range adj {
		for j := range adj[i] {
			want := 1
			if i == j {
				want = 0
			}
			assert.Equal(t, want, adj[i][j], "adj[%d][%d]", i, j)
		}
	}
}

func TestBFS_EarlyStopMirrorsFrontierEdges(t *testing.T) {
	g := mustPermutationGraph(t, coxeter(4))

	res, err := g.BFS(context.Background(), WithMaxDiameter(1), WithReturnAllEdges(), WithReturnAllHashes())
	require.NoError(t, err)
	require.False(t, res.Completed)

	assert.Len(t, res.VerticesHashes, 4)
	assert.Len(t, res.EdgesListHashes, 6)

	adj := res.AdjacencyMatrix()
	for i := range adj {
		for j := range adj[i] {
			assert.Equal(t, adj[i][j], adj[j][i], "adj[%d][%d]", i, j)
		}
	}
	assert.Len(t, res.EdgesList(), 6)
}

func TestBFS_KeepAlive(t *testing.T) {
	g := mustPermutationGraph(t, coxeter(4))

	calls := 0
	res, err := g.BFS(context.Background(), WithKeepAlive(func() error {
		calls++
		return nil
	}))
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, 6, calls)

	errAbort := errors.New("abort")
	calls = 0
	_, err = g.BFS(context.Background(), WithKeepAlive(func() error {
		calls++
		if calls == 2 {
			return errAbort
		}
		return nil
	}))
	assert.ErrorIs(t, err, errAbort)
	assert.Equal(t, 2, calls)
}

func TestBFS_ContextCanceled(t *testing.T) {
	g := mustPermutationGraph(t, coxeter(4))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := g.BFS(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBFS_ResourceExhausted(t *testing.T) {
	g := mustPermutationGraph(t, coxeter(4), WithMemoryLimit(64))

	_, err := g.BFS(context.Background())
	assert.ErrorIs(t, err, ErrResourceExhausted)
}

func TestBFS_BudgetAbovePeakIterationSucceeds(t *testing.T) {
	// The widest layer of S6 under adjacent transpositions has 101 states.
	// Expanding it needs 101*5 neighbors of 6 words plus their hashes:
	// 101*5*7*8 = 28280 bytes. Earlier, smaller iterations must not add up.
	g := mustPermutationGraph(t, coxeter(6),
		WithoutBitEncoding(),
		WithMemoryLimit(40_000),
		WithReleaseFraction(1),
	)

	res, err := g.BFS(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, 720, res.NumVertices())
	assert.Equal(t, 101, slices.Max(res.LayerSizes))
	assert.Zero(t, g.governor.MemoryUsage())

	_, err = mustPermutationGraph(t, coxeter(6),
		WithoutBitEncoding(),
		WithMemoryLimit(20_000),
		WithReleaseFraction(1),
	).BFS(context.Background())
	assert.ErrorIs(t, err, ErrResourceExhausted)
}

func TestBFS_MemoryRelease(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	g := mustPermutationGraph(t, coxeter(4),
		WithMemoryLimit(1<<20),
		WithReleaseFraction(1e-6),
		WithMetricsCollector(metrics),
	)

	res, err := g.BFS(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Completed)

	assert.Positive(t, g.MemoryReleases())
	assert.Equal(t, g.MemoryReleases(), metrics.GetStats().MemoryReleases)
}

func TestBFS_Metrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	g := mustPermutationGraph(t, coxeter(4), WithMetricsCollector(metrics))

	_, err := g.BFS(context.Background())
	require.NoError(t, err)

	stats := metrics.GetStats()
	assert.Equal(t, int64(6), stats.LayerCount)
	assert.Equal(t, int64(23), stats.LayerStates)
	assert.Equal(t, int64(6), stats.MaxLayerSize)
	assert.Equal(t, int64(1), stats.BFSCount)
	assert.Equal(t, int64(1), stats.BFSCompleted)
	assert.Zero(t, stats.BFSErrors)
}

func TestBFS_CollisionCheck(t *testing.T) {
	g := mustPermutationGraph(t, coxeter(5), WithoutBitEncoding(), WithCollisionCheck())

	res, err := g.BFS(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 120, res.NumVertices())
}

func TestBFS_MatrixGroup(t *testing.T) {
	// SL(2, Z/3) is generated by these two matrices and has 24 elements.
	def, err := NewMatrixDefinition(
		[][][]int64{
			{{1, 1}, {0, 1}},
			{{1, -1}, {0, 1}},
			{{1, 0}, {1, 1}},
			{{1, 0}, {-1, 1}},
		},
		WithModulus(3),
	)
	require.NoError(t, err)
	g, err := New(def)
	require.NoError(t, err)

	res, err := g.BFS(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, 24, res.NumVertices())
}

func TestBFS_MatrixAffine(t *testing.T) {
	// x -> x+1 and x -> x-1 on Z/7, acting on the column (x, 1).
	def, err := NewMatrixDefinition(
		[][][]int64{
			{{1, 1}, {0, 1}},
			{{1, 6}, {0, 1}},
		},
		WithCentralState([]int64{0, 1}),
		WithModulus(7),
	)
	require.NoError(t, err)
	g, err := New(def)
	require.NoError(t, err)

	res, err := g.BFS(context.Background(), WithMaxLayerSizeToStore(-1))
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 2, 2}, res.LayerSizes)
	assert.ElementsMatch(t, [][]int64{{3, 1}, {4, 1}}, res.Layers[3])
}

func TestBFS_MatrixSingleWord(t *testing.T) {
	// Multiplication by 3 and by its inverse 5 on the units of Z/7.
	def, err := NewMatrixDefinition(
		[][][]int64{{{3}}, {{5}}},
		WithCentralState([]int64{1}),
		WithModulus(7),
	)
	require.NoError(t, err)
	g, err := New(def, WithBatchSize(1))
	require.NoError(t, err)
	require.Equal(t, 1, g.EncodedLength())

	res, err := g.BFS(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Completed)
	assert.Equal(t, []int{1, 2, 2, 1}, res.LayerSizes)
	assert.Equal(t, [][]int64{{6}}, res.LastLayer())
}
