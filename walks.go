package cayley

import (
	"context"
	"math/rand/v2"

	"github.com/hupe1980/cayley/internal/bitpack"
)

type walkOptions struct {
	seed  uint64
	start []int64
}

// WalkOption configures RandomWalks.
type WalkOption func(*walkOptions)

// WithWalkSeed seeds the generator choices. Equal seeds give equal walks.
func WithWalkSeed(seed uint64) WalkOption {
	return func(o *walkOptions) {
		o.seed = seed
	}
}

// WithWalkStart starts every walk at state instead of the central state.
func WithWalkStart(state []int64) WalkOption {
	return func(o *walkOptions) {
		o.start = state
	}
}

// RandomWalks runs count independent walks of length states each. Every
// step applies a generator chosen uniformly at random.
//
// States are returned step-major: entry s*count+w is the state of walk w
// after s steps, and distances holds s for that entry.
func (g *Graph) RandomWalks(ctx context.Context, count, length int, optFns ...WalkOption) ([][]int64, []int, error) {
	if count <= 0 {
		return nil, nil, configErrorf("walk count", nil, "must be positive, got %d", count)
	}
	if length <= 0 {
		return nil, nil, configErrorf("walk length", nil, "must be positive, got %d", length)
	}

	o := walkOptions{seed: uint64(g.opts.seed)}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.start == nil {
		o.start = g.def.CentralState()
	}

	startRow, err := g.encode([][]int64{o.start})
	if err != nil {
		return nil, nil, err
	}

	cur := bitpack.NewBatch(count, g.width)
	for w := 0; w < count; w++ {
		copy(cur.Row(w), startRow.Row(0))
	}

	rng := rand.New(rand.NewPCG(o.seed, o.seed^0x9e3779b97f4a7c15))
	nGen := g.applier.NumGenerators()

	states := make([][]int64, 0, count*length)
	distances := make([]int, 0, count*length)

	groups := make([][]int, nGen)
	for step := 0; step < length; step++ {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		for _, s := range g.decode(cur) {
			states = append(states, s)
			distances = append(distances, step)
		}
		if step == length-1 {
			break
		}

		for i := range groups {
			groups[i] = groups[i][:0]
		}
		for w := 0; w < count; w++ {
			gen := rng.IntN(nGen)
			groups[gen] = append(groups[gen], w)
		}
		for gen, rows := range groups {
			if len(rows) == 0 {
				continue
			}
			moved := g.applier.Apply(gen, cur.Gather(rows))
			for i, w := range rows {
				copy(cur.Row(w), moved.Row(i))
			}
		}
	}

	return states, distances, nil
}
