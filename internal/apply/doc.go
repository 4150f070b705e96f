// Package apply expands batches of states through a fixed generator set.
//
// A Generator maps every row of a source batch to one row of a destination
// batch. Three variants exist: bitpack.PackedPermutation for bit-packed
// states, Permutation for one-word-per-element states, and Matrix for states
// that are flattened integer matrices.
//
// Applier.Neighbors applies every generator to every row. The output is
// generator-major: rows [g*N, (g+1)*N) are the images of the N input rows
// under generator g, so the generator of any output row is offset / N.
// Large inputs are split into chunks of BatchSize rows; each (generator,
// chunk) pair is an independent job written straight into its final slot of a
// destination buffer that is allocated once per call.
package apply
