package testutil

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermutation(t *testing.T) {
	rng := NewRNG(4711)

	p := rng.Permutation(10)
	sorted := slices.Clone(p)
	slices.Sort(sorted)

	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, sorted)
}

func TestStates(t *testing.T) {
	rng := NewRNG(4711)

	s := rng.States(8, 5, 3)

	assert.Len(t, s, 8)
	for _, st := range s {
		assert.Len(t, st, 5)
		for _, v := range st {
			assert.GreaterOrEqual(t, v, int64(0))
			assert.Less(t, v, int64(3))
		}
	}
}

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := rng.States(1, 10, 100)
	rng.Reset()
	b := rng.States(1, 10, 100)

	assert.Equal(t, a, b)
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestBruteForceBFS(t *testing.T) {
	// Adjacent transpositions of S_3: the Cayley graph is a hexagon.
	gens := [][]int{{1, 0, 2}, {0, 2, 1}}

	sizes := BruteForceBFS([][]int64{{0, 1, 2}}, PermutationNeighbors(gens), 0)
	assert.Equal(t, []int{1, 2, 2, 1}, sizes)

	capped := BruteForceBFS([][]int64{{0, 1, 2}}, PermutationNeighbors(gens), 2)
	assert.Equal(t, []int{1, 2, 2}, capped)
}

func TestKey(t *testing.T) {
	assert.Equal(t, "1,-2,3", Key([]int64{1, -2, 3}))
	assert.Equal(t, "", Key(nil))
}
