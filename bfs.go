package cayley

import (
	"context"
	"slices"
	"time"

	"github.com/hupe1980/cayley/internal/arena"
	"github.com/hupe1980/cayley/internal/bitpack"
	"github.com/hupe1980/cayley/internal/dedup"
)

// BFS explores the graph layer by layer, starting from the central state or
// the states given with WithStartStates.
//
// The search completes when a layer has no unvisited neighbors. It stops
// early, with Completed set to false, when a layer reaches the exploration
// cap or the diameter cap is hit. ctx and the keep-alive callback are
// checked between layers only.
func (g *Graph) BFS(ctx context.Context, optFns ...BFSOption) (*BFSResult, error) {
	start := time.Now()

	res, err := g.bfs(ctx, applyBFSOptions(optFns))

	var layers, vertices int
	var completed bool
	if res != nil {
		layers, vertices, completed = len(res.LayerSizes), res.NumVertices(), res.Completed
	}
	g.metrics.RecordBFS(layers, vertices, completed, time.Since(start), err)
	g.logger.LogBFS(ctx, layers, vertices, completed, time.Since(start), err)

	return res, err
}

// search holds the per-call state of one BFS.
type search struct {
	g     *Graph
	opts  bfsOptions
	arena *arena.Arena
	seen  dedup.SeenSet
	res   *BFSResult
}

func (g *Graph) bfs(ctx context.Context, opts bfsOptions) (*BFSResult, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	seen, err := g.newSeenSet(opts.seenSetPolicy)
	if err != nil {
		return nil, err
	}

	startStates := opts.startStates
	if startStates == nil {
		startStates = [][]int64{g.def.CentralState()}
	}
	b, err := g.encode(startStates)
	if err != nil {
		return nil, err
	}

	ar := arena.New(g.governor)
	defer ar.Free()

	layer, hashes, err := g.unique(b, g.hasher.MakeHashes(b))
	if err != nil {
		return nil, err
	}

	s := &search{
		g:     g,
		opts:  opts,
		arena: ar,
		seen:  seen,
		res: &BFSResult{
			LayerSizes: []int{layer.Rows},
			Layers:     map[int][][]int64{0: g.decode(layer)},
		},
	}
	seen.Push(hashes)
	g.logger.LogLayer(ctx, 0, layer.Rows, true)

	singleWord := g.hasher.IsIdentity() && !opts.returnAllEdges
	completed := false
	lastEdges := 0

	for i := 1; i <= opts.maxDiameter; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		began := time.Now()

		if opts.returnAllHashes {
			s.res.VerticesHashes = append(s.res.VerticesHashes, hashes...)
		}

		var next bitpack.Batch
		var nextHashes []uint64
		if singleWord {
			next, nextHashes, err = s.expandSingleWord(layer)
		} else {
			lastEdges = len(s.res.EdgesListHashes)
			next, nextHashes, err = s.expand(layer, hashes)
		}
		if err != nil {
			return nil, translateError(err)
		}

		if next.Rows == 0 {
			completed = true
			break
		}

		g.MaybeRelease(next.SizeBytes() + seen.SizeBytes())

		s.res.LayerSizes = append(s.res.LayerSizes, next.Rows)
		stored := opts.maxLayerSizeToStore < 0 || next.Rows <= opts.maxLayerSizeToStore
		if stored {
			s.res.Layers[i] = g.decode(next)
		}
		g.metrics.RecordLayer(i, next.Rows, time.Since(began))
		g.logger.LogLayer(ctx, i, next.Rows, stored)

		layer, hashes = next, nextHashes

		if next.Rows >= opts.maxLayerSizeToExplore {
			break
		}

		seen.Push(nextHashes)

		if opts.keepAlive != nil {
			if err := opts.keepAlive(); err != nil {
				return nil, err
			}
		}
	}

	if !completed {
		if opts.returnAllHashes {
			s.res.VerticesHashes = append(s.res.VerticesHashes, hashes...)
		}
		if opts.returnAllEdges {
			s.mirrorFrontierEdges(lastEdges, hashes)
		}
	}

	last := len(s.res.LayerSizes) - 1
	if _, ok := s.res.Layers[last]; !ok {
		s.res.Layers[last] = g.decode(layer)
	}
	s.res.Completed = completed

	return s.res, nil
}

func (g *Graph) newSeenSet(p SeenSetPolicy) (dedup.SeenSet, error) {
	closed := g.def.GeneratorsInverseClosed()
	switch p {
	case SeenSetTwoLayers:
		if !closed {
			return nil, ErrNotInverseClosed
		}
		return dedup.NewWindow(2), nil
	case SeenSetFullHistory:
		return dedup.NewHistory(), nil
	default:
		if closed {
			return dedup.NewWindow(2), nil
		}
		return dedup.NewHistory(), nil
	}
}

// expand computes the next layer from the full neighbor batch. hashes are
// the hashes of layer, used as edge sources.
func (s *search) expand(layer bitpack.Batch, hashes []uint64) (bitpack.Batch, []uint64, error) {
	g := s.g

	nb, err := g.applier.Neighbors(layer, s.arena)
	if err != nil {
		return bitpack.Batch{}, nil, err
	}
	defer s.arena.Put(nb.Data)

	nbHashes, err := s.arena.Words(nb.Rows)
	if err != nil {
		return bitpack.Batch{}, nil, err
	}
	defer s.arena.Put(nbHashes)
	g.hasher.MakeHashesInto(nbHashes, nb)

	if s.opts.returnAllEdges {
		n := layer.Rows
		for gen := 0; gen < g.applier.NumGenerators(); gen++ {
			for r := 0; r < n; r++ {
				s.res.EdgesListHashes = append(s.res.EdgesListHashes, [2]uint64{hashes[r], nbHashes[gen*n+r]})
			}
		}
	}

	uniq, uniqHashes, err := g.unique(nb, nbHashes)
	if err != nil {
		return bitpack.Batch{}, nil, err
	}
	next, nextHashes := dedup.Exclude(uniq, uniqHashes, s.seen)
	return next, nextHashes, nil
}

// expandSingleWord computes the next layer when a state fits one word and
// therefore equals its hash. Neighbors are produced chunk by chunk and only
// the accumulated unique hashes are kept.
func (s *search) expandSingleWord(layer bitpack.Batch) (bitpack.Batch, []uint64, error) {
	g := s.g
	bs := g.applier.BatchSize()

	var acc []uint64
	for lo := 0; lo < layer.Rows; lo += bs {
		hi := min(lo+bs, layer.Rows)

		nb, err := g.applier.Neighbors(layer.Slice(lo, hi), s.arena)
		if err != nil {
			return bitpack.Batch{}, nil, err
		}
		fresh := dedup.ExcludeHashes(dedup.UniqueHashes(nb.Data), s.seen)
		s.arena.Put(nb.Data)

		acc = dedup.MergeUnique(acc, fresh)
	}

	return bitpack.Batch{Rows: len(acc), Width: 1, Data: acc}, acc, nil
}

// mirrorFrontierEdges adds the reverse of every edge recorded since from
// whose destination lies in the final layer. Edges leaving the final layer
// are never computed on an early stop; for inverse-closed generators the
// reversed edges into it are a subset of them.
func (s *search) mirrorFrontierEdges(from int, finalHashes []uint64) {
	edges := s.res.EdgesListHashes[from:]
	var mirrored [][2]uint64
	for _, e := range edges {
		if _, ok := slices.BinarySearch(finalHashes, e[1]); ok {
			mirrored = append(mirrored, [2]uint64{e[1], e[0]})
		}
	}
	s.res.EdgesListHashes = append(s.res.EdgesListHashes, mirrored...)
}
