package bitpack

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// MaxWidth is the widest supported field. 63 keeps every field representable
// as a non-negative int64.
const MaxWidth = 63

var (
	// ErrInvalidWidth is returned for a field width outside [1, MaxWidth].
	ErrInvalidWidth = errors.New("bitpack: invalid field width")
	// ErrInvalidLength is returned when the state length is not positive or
	// the packed layout would overflow the addressable bit range.
	ErrInvalidLength = errors.New("bitpack: invalid state length")
	// ErrValueOutOfRange is returned when a value does not fit its field.
	ErrValueOutOfRange = errors.New("bitpack: value out of range")
	// ErrNotPermutation is returned when a permutation is not a bijection on [0, n).
	ErrNotPermutation = errors.New("bitpack: not a permutation")
)

// Encoder packs states of n elements into fields of a fixed width.
type Encoder struct {
	width      int
	n          int
	encodedLen int
	mask       uint64
}

// NewEncoder creates an encoder for states of n elements using width bits per element.
func NewEncoder(width, n int) (*Encoder, error) {
	if width <= 0 || width > MaxWidth {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWidth, width)
	}
	if n <= 0 || n > (math.MaxInt-63)/width {
		return nil, fmt.Errorf("%w: %d", ErrInvalidLength, n)
	}
	return &Encoder{
		width:      width,
		n:          n,
		encodedLen: (n*width + 63) / 64,
		mask:       uint64(1)<<width - 1,
	}, nil
}

// AutoWidth returns the smallest width covering [0, max(values)].
// ok is false if any value is negative, in which case packing cannot be used.
func AutoWidth(values []int64) (width int, ok bool) {
	var hi int64
	for _, v := range values {
		if v < 0 {
			return 0, false
		}
		hi = max(hi, v)
	}
	return max(1, bits.Len64(uint64(hi))), true
}

// Width returns the field width in bits.
func (e *Encoder) Width() int { return e.width }

// N returns the number of elements per state.
func (e *Encoder) N() int { return e.n }

// EncodedLength returns the number of words per packed state.
func (e *Encoder) EncodedLength() int { return e.encodedLen }

// MaxValue returns the largest value a field can hold.
func (e *Encoder) MaxValue() int64 { return int64(e.mask) }

// Encode packs the given states into a new batch.
func (e *Encoder) Encode(states [][]int64) (Batch, error) {
	out := NewBatch(len(states), e.encodedLen)
	for i, s := range states {
		if len(s) != e.n {
			return Batch{}, fmt.Errorf("%w: row %d has %d elements, want %d", ErrInvalidLength, i, len(s), e.n)
		}
		if err := e.EncodeRow(out.Row(i), s); err != nil {
			return Batch{}, fmt.Errorf("row %d: %w", i, err)
		}
	}
	return out, nil
}

// EncodeRow packs state into dst, which must hold EncodedLength words.
func (e *Encoder) EncodeRow(dst []uint64, state []int64) error {
	clear(dst)
	w := e.width
	for i, v := range state {
		if v < 0 || uint64(v) > e.mask {
			return fmt.Errorf("%w: %d does not fit %d bits", ErrValueOutOfRange, v, w)
		}
		bit := i * w
		word, off := bit>>6, bit&63
		dst[word] |= uint64(v) << off
		if off+w > 64 {
			dst[word+1] |= uint64(v) >> (64 - off)
		}
	}
	return nil
}

// Decode unpacks every row of b.
func (e *Encoder) Decode(b Batch) [][]int64 {
	out := make([][]int64, b.Rows)
	flat := make([]int64, b.Rows*e.n)
	for i := range out {
		out[i] = flat[i*e.n : (i+1)*e.n : (i+1)*e.n]
		e.DecodeRow(out[i], b.Row(i))
	}
	return out
}

// DecodeRow unpacks row into dst, which must hold N elements.
func (e *Encoder) DecodeRow(dst []int64, row []uint64) {
	w := e.width
	for i := range dst {
		bit := i * w
		word, off := bit>>6, bit&63
		v := row[word] >> off
		if off+w > 64 {
			v |= row[word+1] << (64 - off)
		}
		dst[i] = int64(v & e.mask)
	}
}

// ValidatePermutation checks that perm is a bijection on [0, n).
func ValidatePermutation(perm []int, n int) error {
	if len(perm) != n {
		return fmt.Errorf("%w: length %d, want %d", ErrNotPermutation, len(perm), n)
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return fmt.Errorf("%w: %v", ErrNotPermutation, perm)
		}
		seen[p] = true
	}
	return nil
}
