package apply

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/cayley/internal/bitpack"
)

// DefaultBatchSize is the default number of source rows per job (2^25).
const DefaultBatchSize = 1 << 25

// minParallelRows is the output size below which jobs run inline.
const minParallelRows = 4096

// Allocator provides destination buffers. *arena.Arena satisfies it.
type Allocator interface {
	Words(n int) ([]uint64, error)
}

// Governor is consulted with the estimated output size before allocating.
// *resource.Controller satisfies it.
type Governor interface {
	MaybeRelease(estimatedBytes int64) bool
}

// Config configures an Applier.
type Config struct {
	// BatchSize is the number of source rows per job. If 0, DefaultBatchSize.
	BatchSize int

	// Parallelism bounds concurrent jobs. If 0, GOMAXPROCS.
	Parallelism int

	// Governor may reclaim memory before large outputs. Optional.
	Governor Governor
}

// Applier applies a fixed generator set to batches of width-word rows.
type Applier struct {
	gens  []Generator
	width int
	cfg   Config
}

// New creates an applier. All generators must accept rows of width words.
func New(gens []Generator, width int, cfg Config) *Applier {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = runtime.GOMAXPROCS(0)
	}
	return &Applier{gens: gens, width: width, cfg: cfg}
}

// NumGenerators returns the number of generators.
func (a *Applier) NumGenerators() int { return len(a.gens) }

// Width returns the row width in words.
func (a *Applier) Width() int { return a.width }

// BatchSize returns the number of source rows per job.
func (a *Applier) BatchSize() int { return a.cfg.BatchSize }

// Apply returns the image of src under generator g.
func (a *Applier) Apply(g int, src bitpack.Batch) bitpack.Batch {
	dst := bitpack.NewBatch(src.Rows, a.width)
	a.gens[g].Apply(src, dst)
	return dst
}

// EstimateNeighborsBytes returns the size of the Neighbors output for rows inputs.
func (a *Applier) EstimateNeighborsBytes(rows int) int64 {
	return int64(rows) * int64(len(a.gens)) * int64(a.width) * 8
}

// Neighbors applies every generator to every row of src and returns the
// generator-major result of src.Rows*NumGenerators rows. If alloc is nil the
// output is heap-allocated.
func (a *Applier) Neighbors(src bitpack.Batch, alloc Allocator) (bitpack.Batch, error) {
	n := src.Rows
	total := n * len(a.gens)

	if a.cfg.Governor != nil {
		a.cfg.Governor.MaybeRelease(a.EstimateNeighborsBytes(n))
	}

	var data []uint64
	if alloc != nil {
		var err error
		if data, err = alloc.Words(total * a.width); err != nil {
			return bitpack.Batch{}, err
		}
	} else {
		data = make([]uint64, total*a.width)
	}
	dst := bitpack.Batch{Rows: total, Width: a.width, Data: data}

	w := a.width
	job := func(g, lo, hi int) {
		out := bitpack.Batch{
			Rows:  hi - lo,
			Width: w,
			Data:  data[(g*n+lo)*w : (g*n+hi)*w],
		}
		a.gens[g].Apply(src.Slice(lo, hi), out)
	}

	if total <= minParallelRows || a.cfg.Parallelism == 1 {
		for g := range a.gens {
			for lo := 0; lo < n; lo += a.cfg.BatchSize {
				job(g, lo, min(lo+a.cfg.BatchSize, n))
			}
		}
		return dst, nil
	}

	var eg errgroup.Group
	eg.SetLimit(a.cfg.Parallelism)
	for g := range a.gens {
		for lo := 0; lo < n; lo += a.cfg.BatchSize {
			hi := min(lo+a.cfg.BatchSize, n)
			eg.Go(func() error {
				job(g, lo, hi)
				return nil
			})
		}
	}
	_ = eg.Wait()
	return dst, nil
}
