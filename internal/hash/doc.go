// Package hash provides deterministic fixed-width fingerprints of packed states.
//
// # Randomized reduction
//
// A StateHasher is a value object built from an explicit seed. The seed is
// expanded with splitmix64 into one odd multiplier per word position; the
// hash of a row is the wraparound dot product of its words with those
// multipliers. Equal rows always hash equally. Distinct rows collide with
// probability around 2^-64 per pair, so a batch of N rows has a birthday-bound
// collision risk of roughly N^2 / 2^65.
//
// # Identity mode
//
// When a packed state is exactly one word, the word itself is the hash. This
// is exact (no collisions in either direction) and skips the reduction.
//
// # Chunking
//
// MakeHashes walks the batch in fixed-size row chunks and hashes chunks in
// parallel, so memory traffic per worker stays bounded on very large batches.
package hash
