package arena

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrFreed is returned when allocating from a freed arena.
var ErrFreed = errors.New("arena: use after free")

// MemoryAcquirer is an interface for acquiring memory.
type MemoryAcquirer interface {
	AcquireMemory(bytes int64) error
	ReleaseMemory(bytes int64)
}

// Stats tracks arena memory usage metrics.
//
//   - BytesReserved: bytes currently reserved from the acquirer
//   - PeakReserved: high-water mark of BytesReserved
//   - Allocs: buffers newly allocated
//   - Reuses: requests served from returned buffers
//   - Drops: returned buffers released because a larger one was needed
type Stats struct {
	BytesReserved int64
	PeakReserved  int64
	Allocs        int64
	Reuses        int64
	Drops         int64
}

// Arena is a per-search scratch allocator.
type Arena struct {
	mu       sync.Mutex
	acquirer MemoryAcquirer
	free     [][]uint64
	stats    Stats
	freed    bool
}

// New creates an arena reserving memory from acq. acq may be nil.
func New(acq MemoryAcquirer) *Arena {
	return &Arena{acquirer: acq}
}

// Words returns a zeroed buffer of n words, reusing the smallest returned
// buffer that fits. When none fits, the returned buffers are released before
// the new reservation is made.
func (a *Arena) Words(n int) ([]uint64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.freed {
		return nil, ErrFreed
	}

	// Smallest returned buffer that fits.
	best := -1
	for i, buf := range a.free {
		if cap(buf) >= n && (best < 0 || cap(buf) < cap(a.free[best])) {
			best = i
		}
	}
	if best >= 0 {
		buf := a.free[best][:n]
		a.free = slices.Delete(a.free, best, best+1)
		clear(buf)
		a.stats.Reuses++
		return buf, nil
	}

	// Nothing on the free list fits, so every returned buffer is smaller
	// than n. Drop them so the arena holds at most what is in use plus
	// the new buffer.
	a.dropFree()

	bytes := int64(n) * 8
	if a.acquirer != nil {
		if err := a.acquirer.AcquireMemory(bytes); err != nil {
			return nil, fmt.Errorf("arena: reserve %d bytes: %w", bytes, err)
		}
	}
	a.stats.BytesReserved += bytes
	a.stats.PeakReserved = max(a.stats.PeakReserved, a.stats.BytesReserved)
	a.stats.Allocs++
	return make([]uint64, n), nil
}

func (a *Arena) dropFree() {
	var bytes int64
	for _, buf := range a.free {
		bytes += int64(cap(buf)) * 8
	}
	if bytes == 0 {
		return
	}
	if a.acquirer != nil {
		a.acquirer.ReleaseMemory(bytes)
	}
	a.stats.BytesReserved -= bytes
	a.stats.Drops += int64(len(a.free))
	clear(a.free)
	a.free = a.free[:0]
}

// Put hands buf back for reuse. buf must come from Words and must not be
// used afterwards.
func (a *Arena) Put(buf []uint64) {
	if cap(buf) == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.freed {
		return
	}
	a.free = append(a.free, buf[:0])
}

// Stats returns a snapshot of the arena counters.
func (a *Arena) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Free releases every reservation. Buffers already handed out stay valid but
// are no longer accounted against the acquirer.
func (a *Arena) Free() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.freed {
		return
	}
	if a.acquirer != nil {
		a.acquirer.ReleaseMemory(a.stats.BytesReserved)
	}
	a.stats.BytesReserved = 0
	a.free = nil
	a.freed = true
}
