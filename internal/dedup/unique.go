package dedup

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/hupe1980/cayley/internal/bitpack"
)

// ErrHashCollision is returned by UniqueVerified when two distinct rows share a hash.
var ErrHashCollision = errors.New("dedup: hash collision between distinct states")

type entry struct {
	hash uint64
	row  int
}

// Unique returns the rows of b with pairwise distinct hashes, their hashes
// (ascending) and their indices in b. Among rows with equal hashes the
// earliest one is kept.
func Unique(b bitpack.Batch, hashes []uint64) (bitpack.Batch, []uint64, []int) {
	states, uniq, sel, _ := unique(b, hashes, false)
	return states, uniq, sel
}

// UniqueVerified behaves like Unique but compares every dropped row with the
// row kept for its hash and fails with ErrHashCollision if they differ.
func UniqueVerified(b bitpack.Batch, hashes []uint64) (bitpack.Batch, []uint64, []int, error) {
	return unique(b, hashes, true)
}

func unique(b bitpack.Batch, hashes []uint64, verify bool) (bitpack.Batch, []uint64, []int, error) {
	n := b.Rows
	entries := make([]entry, n)
	for i := range entries {
		entries[i] = entry{hash: hashes[i], row: i}
	}
	slices.SortFunc(entries, func(x, y entry) int {
		return cmp.Or(cmp.Compare(x.hash, y.hash), cmp.Compare(x.row, y.row))
	})

	keep := bitset.New(uint(n))
	keeper := 0
	for i := range entries {
		if i == 0 || entries[i].hash != entries[i-1].hash {
			keep.Set(uint(i))
			keeper = entries[i].row
			continue
		}
		if verify && !slices.Equal(b.Row(entries[i].row), b.Row(keeper)) {
			return bitpack.Batch{}, nil, nil, fmt.Errorf("%w: hash %#x", ErrHashCollision, entries[i].hash)
		}
	}

	sel := make([]int, 0, keep.Count())
	uniq := make([]uint64, 0, cap(sel))
	for i, ok := keep.NextSet(0); ok; i, ok = keep.NextSet(i + 1) {
		sel = append(sel, entries[i].row)
		uniq = append(uniq, entries[i].hash)
	}
	return b.Gather(sel), uniq, sel, nil
}

// UniqueHashes returns the distinct values of hashes in ascending order.
// hashes is not modified.
func UniqueHashes(hashes []uint64) []uint64 {
	out := slices.Clone(hashes)
	slices.Sort(out)
	return slices.Compact(out)
}

// MergeUnique returns the sorted union of two ascending, duplicate-free slices.
func MergeUnique(a, b []uint64) []uint64 {
	out := make([]uint64, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
