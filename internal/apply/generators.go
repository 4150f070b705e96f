package apply

import (
	"math/bits"

	"github.com/hupe1980/cayley/internal/bitpack"
)

// Generator maps each row of src to the row with the same index in dst.
// Implementations must be safe for concurrent use on disjoint batches.
type Generator interface {
	Apply(src, dst bitpack.Batch)
}

var (
	_ Generator = (*bitpack.PackedPermutation)(nil)
	_ Generator = Permutation(nil)
	_ Generator = (*Matrix)(nil)
)

// Permutation is a column gather over unpacked states: dst[i] = src[p[i]].
type Permutation []int

// Apply implements Generator.
func (p Permutation) Apply(src, dst bitpack.Batch) {
	w := src.Width
	for r := 0; r < src.Rows; r++ {
		s := src.Data[r*w : (r+1)*w]
		d := dst.Data[r*w : (r+1)*w]
		for i, j := range p {
			d[i] = s[j]
		}
	}
}

// Matrix left-multiplies states viewed as n×m integer matrices by an n×n
// generator. Words hold two's-complement int64 entries.
type Matrix struct {
	n, m    int
	entries []int64 // n*n, row-major
	modulus int64   // 0 for plain wraparound arithmetic
}

// NewMatrix creates a matrix generator. entries is n*n row-major and is
// copied. With modulus > 0 every result entry is reduced into [0, modulus).
func NewMatrix(entries []int64, n, m int, modulus int64) *Matrix {
	cp := make([]int64, len(entries))
	copy(cp, entries)
	if modulus > 0 {
		for i, c := range cp {
			cp[i] = Mod(c, modulus)
		}
	}
	return &Matrix{n: n, m: m, entries: cp, modulus: modulus}
}

// Apply implements Generator.
func (g *Matrix) Apply(src, dst bitpack.Batch) {
	if g.modulus > 0 {
		g.applyMod(src, dst)
		return
	}
	n, m := g.n, g.m
	w := n * m
	for r := 0; r < src.Rows; r++ {
		s := src.Data[r*w : (r+1)*w]
		d := dst.Data[r*w : (r+1)*w]
		for i := 0; i < n; i++ {
			row := g.entries[i*n : (i+1)*n]
			for j := 0; j < m; j++ {
				var acc int64
				for k, c := range row {
					if c != 0 {
						acc += c * int64(s[k*m+j])
					}
				}
				d[i*m+j] = uint64(acc)
			}
		}
	}
}

// applyMod multiplies with full 128-bit products, so any positive int64
// modulus is exact. Entries are already in [0, modulus).
func (g *Matrix) applyMod(src, dst bitpack.Batch) {
	n, m := g.n, g.m
	w := n * m
	mod := uint64(g.modulus)
	for r := 0; r < src.Rows; r++ {
		s := src.Data[r*w : (r+1)*w]
		d := dst.Data[r*w : (r+1)*w]
		for i := 0; i < n; i++ {
			row := g.entries[i*n : (i+1)*n]
			for j := 0; j < m; j++ {
				var acc uint64
				for k, c := range row {
					if c == 0 {
						continue
					}
					acc += uint64(MulMod(c, int64(s[k*m+j]), g.modulus))
					if acc >= mod {
						acc -= mod
					}
				}
				d[i*m+j] = acc
			}
		}
	}
}

// Mod reduces v into [0, m). m must be positive.
func Mod(v, m int64) int64 {
	v %= m
	if v < 0 {
		v += m
	}
	return v
}

// MulMod returns a*b reduced into [0, m) without overflow. m must be
// positive.
func MulMod(a, b, m int64) int64 {
	hi, lo := bits.Mul64(uint64(Mod(a, m)), uint64(Mod(b, m)))
	return int64(bits.Rem64(hi, lo, uint64(m)))
}
