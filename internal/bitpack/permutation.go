package bitpack

import (
	"cmp"
	"slices"
)

// move copies the bits selected by mask from one source word to one
// destination word. shift > 0 moves bits up, shift < 0 moves them down.
type move struct {
	src, dst int
	shift    int
	mask     uint64
}

// PackedPermutation applies a permutation directly to packed states:
// element i of the destination is element perm[i] of the source.
type PackedPermutation struct {
	perm   []int
	width  int
	encLen int
	moves  []move
}

// ImplementPermutation compiles perm into word-level moves.
func (e *Encoder) ImplementPermutation(perm []int) (*PackedPermutation, error) {
	if err := ValidatePermutation(perm, e.n); err != nil {
		return nil, err
	}

	type key struct{ src, dst, shift int }
	masks := make(map[key]uint64)
	w := e.width
	for i, p := range perm {
		srcBit, dstBit := p*w, i*w
		for remaining := w; remaining > 0; {
			so, do := srcBit&63, dstBit&63
			take := min(remaining, 64-so, 64-do)
			k := key{src: srcBit >> 6, dst: dstBit >> 6, shift: do - so}
			masks[k] |= (uint64(1)<<take - 1) << so
			srcBit += take
			dstBit += take
			remaining -= take
		}
	}

	moves := make([]move, 0, len(masks))
	for k, m := range masks {
		moves = append(moves, move{src: k.src, dst: k.dst, shift: k.shift, mask: m})
	}
	slices.SortFunc(moves, func(a, b move) int {
		return cmp.Or(cmp.Compare(a.dst, b.dst), cmp.Compare(a.src, b.src), cmp.Compare(a.shift, b.shift))
	})

	return &PackedPermutation{
		perm:   slices.Clone(perm),
		width:  w,
		encLen: e.encodedLen,
		moves:  moves,
	}, nil
}

// Perm returns a copy of the underlying permutation.
func (p *PackedPermutation) Perm() []int { return slices.Clone(p.perm) }

// NumMoves returns the number of compiled word moves.
func (p *PackedPermutation) NumMoves() int { return len(p.moves) }

// Apply writes the permuted rows of src into dst. Both batches must have the
// same number of rows and EncodedLength words per row; dst may hold garbage.
func (p *PackedPermutation) Apply(src, dst Batch) {
	for r := 0; r < src.Rows; r++ {
		s := src.Data[r*p.encLen : (r+1)*p.encLen]
		d := dst.Data[r*p.encLen : (r+1)*p.encLen]
		clear(d)
		for _, m := range p.moves {
			v := s[m.src] & m.mask
			if m.shift >= 0 {
				v <<= uint(m.shift)
			} else {
				v >>= uint(-m.shift)
			}
			d[m.dst] |= v
		}
	}
}
