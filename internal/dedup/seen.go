package dedup

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/cayley/internal/bitpack"
)

// SeenSet tracks the hashes of already visited states.
type SeenSet interface {
	// Contains reports whether h has been pushed and is still tracked.
	Contains(h uint64) bool

	// Push records the hashes of one layer. hashes must be ascending.
	Push(hashes []uint64)

	// Len returns the number of tracked hashes.
	Len() int

	// SizeBytes estimates the memory held by the set.
	SizeBytes() int64
}

// Window tracks the most recent layers only.
type Window struct {
	depth  int
	layers [][]uint64
}

// NewWindow creates a window over the last depth layers.
func NewWindow(depth int) *Window {
	return &Window{depth: max(1, depth)}
}

// Contains implements SeenSet.
func (w *Window) Contains(h uint64) bool {
	for _, layer := range w.layers {
		if _, found := slices.BinarySearch(layer, h); found {
			return true
		}
	}
	return false
}

// Push implements SeenSet. Layers older than the window depth are dropped.
func (w *Window) Push(hashes []uint64) {
	w.layers = append(w.layers, hashes)
	if extra := len(w.layers) - w.depth; extra > 0 {
		clear(w.layers[:extra])
		w.layers = slices.Delete(w.layers, 0, extra)
	}
}

// Len implements SeenSet.
func (w *Window) Len() int {
	n := 0
	for _, layer := range w.layers {
		n += len(layer)
	}
	return n
}

// SizeBytes implements SeenSet.
func (w *Window) SizeBytes() int64 { return int64(w.Len()) * 8 }

// History tracks every pushed hash.
type History struct {
	bm *roaring64.Bitmap
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{bm: roaring64.New()}
}

// Contains implements SeenSet.
func (s *History) Contains(h uint64) bool { return s.bm.Contains(h) }

// Push implements SeenSet.
func (s *History) Push(hashes []uint64) { s.bm.AddMany(hashes) }

// Len implements SeenSet.
func (s *History) Len() int { return int(s.bm.GetCardinality()) }

// SizeBytes implements SeenSet.
func (s *History) SizeBytes() int64 { return int64(s.bm.GetSizeInBytes()) }

// Exclude drops the rows of b whose hash is in seen. hashes are the row
// hashes of b; their order is preserved.
func Exclude(b bitpack.Batch, hashes []uint64, seen SeenSet) (bitpack.Batch, []uint64) {
	drop := bitset.New(uint(b.Rows))
	for i, h := range hashes {
		if seen.Contains(h) {
			drop.Set(uint(i))
		}
	}
	if drop.None() {
		return b, hashes
	}

	keep := make([]int, 0, b.Rows-int(drop.Count()))
	kept := make([]uint64, 0, cap(keep))
	for i, h := range hashes {
		if !drop.Test(uint(i)) {
			keep = append(keep, i)
			kept = append(kept, h)
		}
	}
	return b.Gather(keep), kept
}

// ExcludeHashes drops the values of hashes that are in seen, preserving order.
func ExcludeHashes(hashes []uint64, seen SeenSet) []uint64 {
	out := make([]uint64, 0, len(hashes))
	for _, h := range hashes {
		if !seen.Contains(h) {
			out = append(out, h)
		}
	}
	return out
}
