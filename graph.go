package cayley

import (
	"context"
	"fmt"

	"github.com/hupe1980/cayley/internal/apply"
	"github.com/hupe1980/cayley/internal/bitpack"
	"github.com/hupe1980/cayley/internal/dedup"
	"github.com/hupe1980/cayley/internal/hash"
	"github.com/hupe1980/cayley/internal/resource"
)

// Graph explores the implicit graph of a GraphDefinition.
//
// A Graph is safe for concurrent use: every BFS call owns its scratch
// buffers and seen sets, and only the memory governor is shared.
type Graph struct {
	def      *GraphDefinition
	opts     options
	encoder  *bitpack.Encoder // nil if states are not bit-packed
	width    int              // words per encoded state
	applier  *apply.Applier
	hasher   *hash.StateHasher
	governor *resource.Controller
	logger   *Logger
	metrics  MetricsCollector
}

// New creates a Graph for def.
func New(def *GraphDefinition, optFns ...Option) (*Graph, error) {
	if def == nil {
		return nil, configErrorf("definition", nil, "must not be nil")
	}

	opts := applyOptions(optFns)
	if err := opts.validate(); err != nil {
		return nil, err
	}

	g := &Graph{
		def:     def,
		opts:    opts,
		logger:  opts.logger.WithGraph(def.StateSize(), def.NGenerators()),
		metrics: opts.metricsCollector,
	}

	g.governor = resource.NewController(resource.Config{
		MemoryLimitBytes:   opts.memoryLimit,
		ReleaseFraction:    opts.releaseFraction,
		MinReleaseInterval: opts.minReleaseInterval,
	})

	gens, err := g.buildGenerators()
	if err != nil {
		return nil, err
	}

	g.applier = apply.New(gens, g.width, apply.Config{
		BatchSize:   opts.batchSize,
		Parallelism: opts.parallelism,
		Governor:    g,
	})
	g.hasher = hash.New(g.width, hash.Config{
		Seed:        opts.seed,
		ChunkSize:   opts.hashChunkSize,
		Parallelism: opts.parallelism,
	})

	g.logger.Debug("graph created",
		"kind", def.Kind().String(),
		"bit_width", g.BitEncodingWidth(),
		"encoded_length", g.width,
		"inverse_closed", def.GeneratorsInverseClosed(),
	)

	return g, nil
}

func (g *Graph) buildGenerators() ([]apply.Generator, error) {
	def := g.def

	if def.Kind() == KindMatrix {
		if g.opts.encoding == encodingExplicit {
			return nil, configErrorf("bit encoding width", nil, "matrix graphs are not bit-packed")
		}
		g.width = def.StateSize()
		gens := make([]apply.Generator, len(def.matrices))
		for i, m := range def.matrices {
			gens[i] = apply.NewMatrix(m, def.n, def.m, def.modulus)
		}
		return gens, nil
	}

	width := 0
	switch g.opts.encoding {
	case encodingExplicit:
		width = g.opts.bitWidth
	case encodingAuto:
		if w, ok := bitpack.AutoWidth(def.central); ok {
			width = w
		}
	}

	if width == 0 {
		g.width = def.StateSize()
		gens := make([]apply.Generator, len(def.permutations))
		for i, p := range def.permutations {
			gens[i] = apply.Permutation(p)
		}
		return gens, nil
	}

	enc, err := bitpack.NewEncoder(width, def.StateSize())
	if err != nil {
		return nil, configErrorf("bit encoding width", err, "width %d", width)
	}
	if err := enc.EncodeRow(make([]uint64, enc.EncodedLength()), def.central); err != nil {
		return nil, configErrorf("bit encoding width", err, "central state does not fit %d bits", width)
	}
	g.encoder = enc
	g.width = enc.EncodedLength()

	gens := make([]apply.Generator, len(def.permutations))
	for i, p := range def.permutations {
		pp, err := enc.ImplementPermutation(p)
		if err != nil {
			return nil, configErrorf("generators", err, "generator %d", i)
		}
		gens[i] = pp
	}
	return gens, nil
}

// Definition returns the graph definition.
func (g *Graph) Definition() *GraphDefinition { return g.def }

// BitEncodingWidth returns the bits per packed element, 0 if states are not packed.
func (g *Graph) BitEncodingWidth() int {
	if g.encoder == nil {
		return 0
	}
	return g.encoder.Width()
}

// EncodedLength returns the number of words of an encoded state.
func (g *Graph) EncodedLength() int { return g.width }

// MemoryReleases returns how many memory reclaims have run for this graph.
func (g *Graph) MemoryReleases() int64 { return g.governor.Releases() }

// MaybeRelease forwards a footprint estimate to the memory governor and
// records reclaims that ran.
func (g *Graph) MaybeRelease(estimatedBytes int64) bool {
	if !g.governor.MaybeRelease(estimatedBytes) {
		return false
	}
	g.metrics.RecordMemoryRelease(estimatedBytes)
	g.logger.LogMemoryRelease(context.Background(), estimatedBytes, g.governor.Threshold())
	return true
}

func (g *Graph) encode(states [][]int64) (bitpack.Batch, error) {
	size := g.def.StateSize()
	for i, s := range states {
		if len(s) != size {
			return bitpack.Batch{}, configErrorf("states", nil, "state %d has length %d, want %d", i, len(s), size)
		}
	}

	if g.encoder != nil {
		b, err := g.encoder.Encode(states)
		if err != nil {
			return bitpack.Batch{}, configErrorf("states", err, "cannot encode with %d bits", g.encoder.Width())
		}
		return b, nil
	}

	b := bitpack.NewBatch(len(states), g.width)
	for i, s := range states {
		row := b.Row(i)
		for j, v := range s {
			row[j] = uint64(v)
		}
	}
	return b, nil
}

func (g *Graph) decode(b bitpack.Batch) [][]int64 {
	if g.encoder != nil {
		return g.encoder.Decode(b)
	}
	out := make([][]int64, b.Rows)
	for i := range out {
		row := b.Row(i)
		s := make([]int64, len(row))
		for j, w := range row {
			s[j] = int64(w)
		}
		out[i] = s
	}
	return out
}

func (g *Graph) unique(b bitpack.Batch, hashes []uint64) (bitpack.Batch, []uint64, error) {
	if g.opts.collisionCheck && !g.hasher.IsIdentity() {
		states, uniq, _, err := dedup.UniqueVerified(b, hashes)
		return states, uniq, err
	}
	states, uniq, _ := dedup.Unique(b, hashes)
	return states, uniq, nil
}

// GetNeighbors returns the neighbors of states, generator-major: row
// g*len(states)+i is generator g applied to states[i].
func (g *Graph) GetNeighbors(states [][]int64) ([][]int64, error) {
	b, err := g.encode(states)
	if err != nil {
		return nil, err
	}
	nb, err := g.applier.Neighbors(b, nil)
	if err != nil {
		return nil, translateError(err)
	}
	return g.decode(nb), nil
}

// GetUniqueStates removes duplicates from states. It returns the distinct
// states and their hashes, ordered by hash.
func (g *Graph) GetUniqueStates(states [][]int64) ([][]int64, []uint64, error) {
	b, err := g.encode(states)
	if err != nil {
		return nil, nil, err
	}
	u, hashes, err := g.unique(b, g.hasher.MakeHashes(b))
	if err != nil {
		return nil, nil, err
	}
	return g.decode(u), hashes, nil
}

// EncodeStates returns the packed representation of states, one row per state.
func (g *Graph) EncodeStates(states [][]int64) ([][]uint64, error) {
	b, err := g.encode(states)
	if err != nil {
		return nil, err
	}
	out := make([][]uint64, b.Rows)
	for i := range out {
		out[i] = append([]uint64(nil), b.Row(i)...)
	}
	return out, nil
}

// DecodeStates is the inverse of EncodeStates.
func (g *Graph) DecodeStates(rows [][]uint64) ([][]int64, error) {
	b := bitpack.NewBatch(len(rows), g.width)
	for i, r := range rows {
		if len(r) != g.width {
			return nil, fmt.Errorf("decode states: row %d has %d words, want %d", i, len(r), g.width)
		}
		copy(b.Row(i), r)
	}
	return g.decode(b), nil
}

// HashStates returns the hash of every state. Equal states have equal
// hashes; when EncodedLength is 1 the converse holds too.
func (g *Graph) HashStates(states [][]int64) ([]uint64, error) {
	b, err := g.encode(states)
	if err != nil {
		return nil, err
	}
	return g.hasher.MakeHashes(b), nil
}
