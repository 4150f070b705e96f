// Package dedup removes duplicate states from batches and tracks visited
// states across BFS layers.
//
// Duplicates are detected by hash: rows are ordered by (hash, input index)
// and the first row of every run of equal hashes is kept. Ties therefore
// resolve to the earliest input row, and unique hashes come out sorted, which
// lets seen-set membership use binary search.
//
// Two SeenSet implementations are provided:
//
//   - Window keeps the last few layers as sorted hash slices. With an
//     inverse-closed generator set no edge spans more than one layer, so two
//     layers suffice.
//   - History keeps every hash ever pushed in a 64-bit roaring bitmap, for
//     directed graphs where back-edges can reach any earlier layer.
package dedup
