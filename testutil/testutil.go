package testutil

import (
	"math/rand"
	"strconv"
	"strings"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a pseudo-random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Permutation returns a uniformly random permutation of [0, n).
func (r *RNG) Permutation(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// States returns num states of length n with values in [0, maxVal).
// Uses a single backing array for efficiency.
func (r *RNG) States(num, n int, maxVal int64) [][]int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	data := make([]int64, num*n)
	states := make([][]int64, num)
	for i := range num {
		s := data[i*n : (i+1)*n]
		for j := range s {
			s[j] = r.rand.Int63n(maxVal)
		}
		states[i] = s
	}
	return states
}

// Key renders a state as a map key.
func Key(state []int64) string {
	var sb strings.Builder
	for i, v := range state {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(v, 10))
	}
	return sb.String()
}

// PermutationNeighbors returns a neighbor function applying every
// permutation as a gather: out[i] = state[perm[i]].
func PermutationNeighbors(perms [][]int) func([]int64) [][]int64 {
	return func(state []int64) [][]int64 {
		out := make([][]int64, len(perms))
		for g, p := range perms {
			next := make([]int64, len(p))
			for i, j := range p {
				next[i] = state[j]
			}
			out[g] = next
		}
		return out
	}
}

// BruteForceBFS explores the graph with a map of visited states and returns
// the size of every layer. If maxLayers > 0, at most maxLayers layers after
// the start layer are explored.
func BruteForceBFS(start [][]int64, neighbors func([]int64) [][]int64, maxLayers int) []int {
	seen := make(map[string]struct{})
	var layer [][]int64
	for _, s := range start {
		k := Key(s)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		layer = append(layer, s)
	}

	sizes := []int{len(layer)}
	for depth := 1; maxLayers <= 0 || depth <= maxLayers; depth++ {
		var next [][]int64
		for _, s := range layer {
			for _, nb := range neighbors(s) {
				k := Key(nb)
				if _, ok := seen[k]; ok {
					continue
				}
				seen[k] = struct{}{}
				next = append(next, nb)
			}
		}
		if len(next) == 0 {
			break
		}
		sizes = append(sizes, len(next))
		layer = next
	}
	return sizes
}
