package cayley

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustPermutationGraph(t *testing.T, gens [][]int, opts ...Option) *Graph {
	t.Helper()
	def, err := NewPermutationDefinition(gens)
	require.NoError(t, err)
	g, err := New(def, opts...)
	require.NoError(t, err)
	return g
}

func coxeter(n int) [][]int {
	gens := make([][]int, 0, n-1)
	for i := 0; i+1 < n; i++ {
		p := make([]int, n)
		for j := range p {
			p[j] = j
		}
		p[i], p[i+1] = p[i+1], p[i]
		gens = append(gens, p)
	}
	return gens
}

func transpositions(n int) [][]int {
	var gens [][]int
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			p := make([]int, n)
			for k := range p {
				p[k] = k
			}
			p[i], p[j] = p[j], p[i]
			gens = append(gens, p)
		}
	}
	return gens
}

func TestNew_AutoBitEncoding(t *testing.T) {
	g := mustPermutationGraph(t, coxeter(5))
	assert.Equal(t, 3, g.BitEncodingWidth())
	assert.Equal(t, 1, g.EncodedLength())

	g = mustPermutationGraph(t, coxeter(30))
	assert.Equal(t, 5, g.BitEncodingWidth())
	assert.Equal(t, 3, g.EncodedLength())
}

func TestNew_EncodingOptions(t *testing.T) {
	g := mustPermutationGraph(t, coxeter(4), WithoutBitEncoding())
	assert.Equal(t, 0, g.BitEncodingWidth())
	assert.Equal(t, 4, g.EncodedLength())

	g = mustPermutationGraph(t, coxeter(3), WithBitEncodingWidth(63))
	assert.Equal(t, 63, g.BitEncodingWidth())
	assert.Equal(t, 3, g.EncodedLength())
}

func TestNew_ConfigErrors(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	def, err := NewPermutationDefinition(coxeter(5))
	require.NoError(t, err)

	for name, opt := range map[string]Option{
		"width too large":   WithBitEncodingWidth(64),
		"width zero":        WithBitEncodingWidth(0),
		"width too small":   WithBitEncodingWidth(2),
		"batch size":        WithBatchSize(0),
		"hash chunk size":   WithHashChunkSize(-1),
		"memory limit":      WithMemoryLimit(-1),
		"release fraction":  WithReleaseFraction(1.5),
		"release fraction0": WithReleaseFraction(0),
	} {
		_, err := New(def, opt)
		assert.ErrorIs(t, err, ErrInvalidConfig, name)
	}
}

func TestNew_MatrixRejectsBitWidth(t *testing.T) {
	def, err := NewMatrixDefinition([][][]int64{{{0, 1}, {1, 0}}})
	require.NoError(t, err)

	_, err = New(def, WithBitEncodingWidth(4))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	g, err := New(def)
	require.NoError(t, err)
	assert.Equal(t, 0, g.BitEncodingWidth())
	assert.Equal(t, 4, g.EncodedLength())
}

func TestGetNeighbors_Permutation(t *testing.T) {
	for _, opts := range [][]Option{nil, {WithoutBitEncoding()}} {
		g := mustPermutationGraph(t, [][]int{{1, 2, 0}, {2, 0, 1}}, opts...)

		nb, err := g.GetNeighbors([][]int64{{0, 1, 2}, {2, 1, 0}})
		require.NoError(t, err)
		assert.Equal(t, [][]int64{
			{1, 2, 0}, {1, 0, 2}, // generator 0
			{2, 0, 1}, {0, 2, 1}, // generator 1
		}, nb)
	}
}

func TestGetNeighbors_Matrix(t *testing.T) {
	def, err := NewMatrixDefinition(
		[][][]int64{
			{{1, 1}, {0, 1}},
			{{1, 0}, {1, 1}},
		},
		WithCentralState([]int64{1, 0}),
	)
	require.NoError(t, err)
	g, err := New(def)
	require.NoError(t, err)

	states := [][]int64{{1, 0}, {0, 1}, {2, 3}}
	nb, err := g.GetNeighbors(states)
	require.NoError(t, err)

	require.Len(t, nb, len(states)*def.NGenerators())
	assert.Equal(t, [][]int64{
		{1, 0}, {1, 1}, {5, 3},
		{1, 1}, {0, 1}, {2, 5},
	}, nb)
}

func TestGetNeighbors_MatrixLargeModulus(t *testing.T) {
	const (
		c = 1<<39 + 7
		m = 1<<40 + 15
	)
	def, err := NewMatrixDefinition(
		[][][]int64{{{c}}},
		WithCentralState([]int64{1}),
		WithModulus(m),
	)
	require.NoError(t, err)
	g, err := New(def, WithoutBitEncoding())
	require.NoError(t, err)

	nb, err := g.GetNeighbors([][]int64{{c}})
	require.NoError(t, err)
	assert.Equal(t, [][]int64{{274877906948}}, nb)
}

func TestGetNeighbors_InvalidState(t *testing.T) {
	g := mustPermutationGraph(t, coxeter(4))

	_, err := g.GetNeighbors([][]int64{{0, 1, 2}})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = g.GetNeighbors([][]int64{{0, 1, 2, 9}})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGetUniqueStates(t *testing.T) {
	for _, opts := range [][]Option{nil, {WithoutBitEncoding()}, {WithoutBitEncoding(), WithCollisionCheck()}} {
		g := mustPermutationGraph(t, coxeter(4), opts...)

		states := [][]int64{{0, 1, 2, 3}, {1, 0, 2, 3}, {0, 1, 2, 3}, {3, 2, 1, 0}, {1, 0, 2, 3}}
		uniq, hashes, err := g.GetUniqueStates(states)
		require.NoError(t, err)
		assert.Len(t, uniq, 3)
		assert.Len(t, hashes, 3)
		assert.IsNonDecreasing(t, hashes)
		assert.ElementsMatch(t, [][]int64{{0, 1, 2, 3}, {1, 0, 2, 3}, {3, 2, 1, 0}}, uniq)

		again, againHashes, err := g.GetUniqueStates(uniq)
		require.NoError(t, err)
		assert.Equal(t, uniq, again)
		assert.Equal(t, hashes, againHashes)
	}
}

func TestEncodeDecodeStates(t *testing.T) {
	for _, opts := range [][]Option{nil, {WithoutBitEncoding()}, {WithBitEncodingWidth(30)}} {
		g := mustPermutationGraph(t, coxeter(6), opts...)

		states := [][]int64{{0, 1, 2, 3, 4, 5}, {5, 4, 3, 2, 1, 0}, {2, 2, 2, 2, 2, 2}}
		rows, err := g.EncodeStates(states)
		require.NoError(t, err)
		for _, r := range rows {
			assert.Len(t, r, g.EncodedLength())
		}

		back, err := g.DecodeStates(rows)
		require.NoError(t, err)
		assert.Equal(t, states, back)
	}

	g := mustPermutationGraph(t, coxeter(6))
	_, err := g.DecodeStates([][]uint64{{1, 2, 3}})
	assert.Error(t, err)
}

func TestHashStates_SingleWordIsExact(t *testing.T) {
	g := mustPermutationGraph(t, coxeter(5))
	require.Equal(t, 1, g.EncodedLength())

	states := [][]int64{{0, 1, 2, 3, 4}, {1, 0, 2, 3, 4}, {0, 1, 2, 3, 4}, {4, 3, 2, 1, 0}}
	hashes, err := g.HashStates(states)
	require.NoError(t, err)

	rows, err := g.EncodeStates(states)
	require.NoError(t, err)
	for i := range states {
		assert.Equal(t, rows[i][0], hashes[i])
		for j := range states {
			assert.Equal(t, assert.ObjectsAreEqual(states[i], states[j]), hashes[i] == hashes[j])
		}
	}
}

func TestHashStates_SeedDeterminism(t *testing.T) {
	states := [][]int64{{0, 1, 2, 3}, {3, 2, 1, 0}}

	a := mustPermutationGraph(t, coxeter(4), WithoutBitEncoding(), WithRandomSeed(7))
	b := mustPermutationGraph(t, coxeter(4), WithoutBitEncoding(), WithRandomSeed(7))
	c := mustPermutationGraph(t, coxeter(4), WithoutBitEncoding(), WithRandomSeed(8))

	ha, err := a.HashStates(states)
	require.NoError(t, err)
	hb, err := b.HashStates(states)
	require.NoError(t, err)
	hc, err := c.HashStates(states)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.NotEqual(t, ha, hc)
}
