// Package testutil provides testing utilities for cayley.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random permutations and states, and a
// brute-force BFS that serves as ground truth for layer sizes.
//
// # Random Inputs
//
//	rng := testutil.NewRNG(seed)
//	perm := rng.Permutation(8)
//	states := rng.States(100, 8, 4) // 100 states of 8 values in [0, 4)
//
// # Ground Truth
//
//	sizes := testutil.BruteForceBFS(start, testutil.PermutationNeighbors(gens), 0)
package testutil
