// Package bitpack packs integer state vectors into fixed-width bit fields.
//
// # Layout
//
// A state of n elements, each encoded with w bits (1 <= w <= 63), occupies
// ceil(n*w/64) uint64 words. Element i lives at global bit offset i*w,
// little-endian within a word. A field may straddle two adjacent words.
//
//	word 0                          word 1
//	| f0 | f1 | f2 | ... | f9 (lo) | f9 (hi) | f10 | ...
//
// # Packed permutations
//
// ImplementPermutation compiles a permutation into a short list of
// (source word, destination word, shift, mask) moves. Fields that travel
// between the same pair of words by the same shift are merged into a single
// mask, so applying a permutation costs a handful of AND/shift/OR operations
// per row instead of an unpack, gather and repack.
//
// All operations work on Batch, a flat row-major matrix of uint64 words that
// is shared by every internal package.
package bitpack
