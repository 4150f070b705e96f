package hash

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/cayley/internal/bitpack"
)

// DefaultChunkSize is the default number of rows hashed per chunk (2^25).
const DefaultChunkSize = 1 << 25

// Config configures a StateHasher.
type Config struct {
	// Seed determines the multipliers. Equal seeds give equal hashes.
	Seed int64

	// ChunkSize is the number of rows hashed per work unit.
	// If 0, DefaultChunkSize is used.
	ChunkSize int

	// Parallelism bounds the number of chunks hashed concurrently.
	// If 0, GOMAXPROCS is used.
	Parallelism int
}

// StateHasher fingerprints packed state rows. It is immutable and safe for
// concurrent use.
type StateHasher struct {
	multipliers []uint64
	identity    bool
	seed        int64
	chunkSize   int
	parallelism int
}

// New creates a hasher for rows of encodedLen words.
func New(encodedLen int, cfg Config) *StateHasher {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = runtime.GOMAXPROCS(0)
	}

	state := uint64(cfg.Seed)
	multipliers := make([]uint64, encodedLen)
	for i := range multipliers {
		multipliers[i] = splitmix64(&state) | 1
	}

	return &StateHasher{
		multipliers: multipliers,
		identity:    encodedLen == 1,
		seed:        cfg.Seed,
		chunkSize:   cfg.ChunkSize,
		parallelism: cfg.Parallelism,
	}
}

// IsIdentity reports whether hashes are the packed words themselves.
func (h *StateHasher) IsIdentity() bool { return h.identity }

// Seed returns the construction seed.
func (h *StateHasher) Seed() int64 { return h.seed }

// EncodedLength returns the expected row width in words.
func (h *StateHasher) EncodedLength() int { return len(h.multipliers) }

// HashRow hashes a single row.
func (h *StateHasher) HashRow(row []uint64) uint64 {
	if h.identity {
		return row[0]
	}
	var acc uint64
	for i, w := range row {
		acc += w * h.multipliers[i]
	}
	return acc
}

// MakeHashes returns one hash per row of b.
func (h *StateHasher) MakeHashes(b bitpack.Batch) []uint64 {
	out := make([]uint64, b.Rows)
	h.MakeHashesInto(out, b)
	return out
}

// MakeHashesInto writes one hash per row of b into dst.
func (h *StateHasher) MakeHashesInto(dst []uint64, b bitpack.Batch) {
	if h.identity {
		copy(dst, b.Data[:b.Rows])
		return
	}
	if b.Rows <= h.chunkSize {
		h.hashRange(dst, b, 0, b.Rows)
		return
	}

	var g errgroup.Group
	g.SetLimit(h.parallelism)
	for lo := 0; lo < b.Rows; lo += h.chunkSize {
		hi := min(lo+h.chunkSize, b.Rows)
		g.Go(func() error {
			h.hashRange(dst, b, lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}

func (h *StateHasher) hashRange(dst []uint64, b bitpack.Batch, lo, hi int) {
	w := b.Width
	for r := lo; r < hi; r++ {
		dst[r] = h.HashRow(b.Data[r*w : (r+1)*w])
	}
}

func splitmix64(state *uint64) uint64 {
	*state += 0x9e3779b97f4a7c15
	z := *state
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}
