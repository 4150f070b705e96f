// Package arena owns the scratch buffers of a single graph search.
//
// Neighbor batches, hash vectors and gathered layers are drawn from an Arena
// created at the start of a search and freed when the search returns. Every
// buffer is reserved against a MemoryAcquirer (the resource controller), so
// a search that outgrows the memory budget fails with the acquirer's error
// instead of exhausting the process.
//
// Buffers handed back with Put are reused by later requests of equal or
// smaller size, which keeps per-chunk allocation flat during a layer. A
// request that no returned buffer can serve first releases all returned
// buffers, so the reservation follows the buffers in use as layers grow.
//
// An Arena is safe for concurrent use, but it is meant to be scoped to one
// search and never shared between searches.
package arena
