package cli

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/cayley"
)

// graphFlags are the flags shared by every command that builds a Graph.
type graphFlags struct {
	source         graphSource
	bitWidth       int
	noBitEncoding  bool
	batchSize      int
	memoryLimit    int64
	parallelism    int
	seed           int64
	collisionCheck bool
}

func (f *graphFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.source.file, "graph", "g", "", "YAML graph definition file")
	fs.StringVarP(&f.source.family, "family", "f", "", "built-in generator family (see 'cayley families')")
	fs.IntVarP(&f.source.n, "size", "n", 5, "family parameter (permutation size, or modulus for heisenberg)")
	fs.IntVar(&f.bitWidth, "bit-width", 0, "bits per packed element (0 = auto)")
	fs.BoolVar(&f.noBitEncoding, "no-bit-encoding", false, "store one element per word")
	fs.IntVar(&f.batchSize, "batch-size", cayley.DefaultBatchSize, "states per generator application chunk")
	fs.Int64Var(&f.memoryLimit, "memory-limit", cayley.DefaultMemoryLimit, "scratch memory limit in bytes (0 = unlimited)")
	fs.IntVar(&f.parallelism, "parallelism", 0, "worker goroutines (0 = GOMAXPROCS)")
	fs.Int64Var(&f.seed, "seed", cayley.DefaultRandomSeed, "hash and walk seed")
	fs.BoolVar(&f.collisionCheck, "collision-check", false, "verify equal hashes compare equal")
}

func (f *graphFlags) options(c *CLI) []cayley.Option {
	opts := []cayley.Option{
		cayley.WithBatchSize(f.batchSize),
		cayley.WithMemoryLimit(f.memoryLimit),
		cayley.WithParallelism(f.parallelism),
		cayley.WithRandomSeed(f.seed),
		cayley.WithLogger(graphLogger(c.Logger)),
	}
	switch {
	case f.noBitEncoding:
		opts = append(opts, cayley.WithoutBitEncoding())
	case f.bitWidth > 0:
		opts = append(opts, cayley.WithBitEncodingWidth(f.bitWidth))
	}
	if f.collisionCheck {
		opts = append(opts, cayley.WithCollisionCheck())
	}
	return opts
}

func (f *graphFlags) graph(c *CLI) (*cayley.Graph, error) {
	def, err := f.source.definition()
	if err != nil {
		return nil, err
	}
	return cayley.New(def, f.options(c)...)
}
