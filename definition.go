package cayley

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/hupe1980/cayley/internal/apply"
	"github.com/hupe1980/cayley/internal/bitpack"
)

// GeneratorKind selects the algebra acting on states.
type GeneratorKind int

const (
	// KindPermutation generators reorder the elements of a state vector.
	KindPermutation GeneratorKind = iota
	// KindMatrix generators left-multiply a state viewed as an n×m matrix.
	KindMatrix
)

func (k GeneratorKind) String() string {
	switch k {
	case KindPermutation:
		return "permutation"
	case KindMatrix:
		return "matrix"
	default:
		return "GeneratorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// GraphDefinition describes an implicit graph: the generators and the
// central state. It is immutable after construction.
type GraphDefinition struct {
	kind          GeneratorKind
	permutations  [][]int
	matrices      [][]int64 // n*n, row-major
	names         []string
	central       []int64
	n, m          int
	modulus       int64
	inverseClosed bool
}

type definitionOptions struct {
	central []int64
	names   []string
	modulus int64
}

// DefinitionOption configures a GraphDefinition.
type DefinitionOption func(*definitionOptions)

// WithCentralState sets the central state. For permutation graphs it
// defaults to the identity [0, 1, ..., n-1]. For matrix graphs the state is
// the row-major flattening of an n×m matrix and defaults to the identity
// matrix (m = n).
func WithCentralState(state []int64) DefinitionOption {
	return func(o *definitionOptions) {
		o.central = slices.Clone(state)
	}
}

// WithGeneratorNames names the generators, in order.
func WithGeneratorNames(names ...string) DefinitionOption {
	return func(o *definitionOptions) {
		o.names = slices.Clone(names)
	}
}

// WithModulus makes matrix arithmetic modular: every entry of a product is
// reduced into [0, modulus). Ignored for permutation graphs.
func WithModulus(modulus int64) DefinitionOption {
	return func(o *definitionOptions) {
		o.modulus = modulus
	}
}

// NewPermutationDefinition validates permutation generators of a common
// length n and returns the definition. Every central state value must lie in
// [0, n).
func NewPermutationDefinition(generators [][]int, opts ...DefinitionOption) (*GraphDefinition, error) {
	var o definitionOptions
	for _, fn := range opts {
		fn(&o)
	}

	if len(generators) == 0 {
		return nil, configErrorf("generators", nil, "at least one generator is required")
	}
	n := len(generators[0])
	if n == 0 {
		return nil, configErrorf("generators", nil, "permutations must not be empty")
	}

	perms := make([][]int, len(generators))
	for i, g := range generators {
		if len(g) != n {
			return nil, configErrorf("generators", nil, "generator %d has length %d, want %d", i, len(g), n)
		}
		if err := bitpack.ValidatePermutation(g, n); err != nil {
			return nil, configErrorf("generators", err, "generator %d", i)
		}
		perms[i] = slices.Clone(g)
	}

	central := o.central
	if central == nil {
		central = make([]int64, n)
		for i := range central {
			central[i] = int64(i)
		}
	}
	if len(central) != n {
		return nil, configErrorf("central state", nil, "has length %d, want %d", len(central), n)
	}
	for i, v := range central {
		if v < 0 || v >= int64(n) {
			return nil, configErrorf("central state", nil, "element %d is %d, want [0, %d)", i, v, n)
		}
	}

	names, err := generatorNames(o.names, len(perms), func(i int) string {
		parts := make([]string, n)
		for j, v := range perms[i] {
			parts[j] = strconv.Itoa(v)
		}
		return strings.Join(parts, ",")
	})
	if err != nil {
		return nil, err
	}

	return &GraphDefinition{
		kind:          KindPermutation,
		permutations:  perms,
		names:         names,
		central:       central,
		n:             n,
		m:             1,
		inverseClosed: permutationsInverseClosed(perms),
	}, nil
}

// NewMatrixDefinition validates n×n integer generators and returns the
// definition. States are n×m matrices, m being inferred from the central
// state length.
func NewMatrixDefinition(generators [][][]int64, opts ...DefinitionOption) (*GraphDefinition, error) {
	var o definitionOptions
	for _, fn := range opts {
		fn(&o)
	}

	if len(generators) == 0 {
		return nil, configErrorf("generators", nil, "at least one generator is required")
	}
	if o.modulus < 0 {
		return nil, configErrorf("modulus", nil, "must not be negative, got %d", o.modulus)
	}
	n := len(generators[0])
	if n == 0 {
		return nil, configErrorf("generators", nil, "matrices must not be empty")
	}

	mats := make([][]int64, len(generators))
	for i, g := range generators {
		if len(g) != n {
			return nil, configErrorf("generators", nil, "generator %d has %d rows, want %d", i, len(g), n)
		}
		flat := make([]int64, 0, n*n)
		for r, row := range g {
			if len(row) != n {
				return nil, configErrorf("generators", nil, "generator %d row %d has %d columns, want %d", i, r, len(row), n)
			}
			for _, v := range row {
				if o.modulus > 0 {
					v = apply.Mod(v, o.modulus)
				}
				flat = append(flat, v)
			}
		}
		mats[i] = flat
	}

	central := o.central
	if central == nil {
		central = make([]int64, n*n)
		for i := 0; i < n; i++ {
			central[i*n+i] = 1
		}
	}
	if len(central) == 0 || len(central)%n != 0 {
		return nil, configErrorf("central state", nil, "length %d is not a multiple of %d", len(central), n)
	}
	if o.modulus > 0 {
		for i, v := range central {
			if v < 0 || v >= o.modulus {
				return nil, configErrorf("central state", nil, "element %d is %d, want [0, %d)", i, v, o.modulus)
			}
		}
	}

	names, err := generatorNames(o.names, len(mats), func(i int) string {
		return "m" + strconv.Itoa(i)
	})
	if err != nil {
		return nil, err
	}

	return &GraphDefinition{
		kind:          KindMatrix,
		matrices:      mats,
		names:         names,
		central:       central,
		n:             n,
		m:             len(central) / n,
		modulus:       o.modulus,
		inverseClosed: matricesInverseClosed(mats, n, o.modulus),
	}, nil
}

func generatorNames(names []string, count int, def func(int) string) ([]string, error) {
	if names == nil {
		names = make([]string, count)
		for i := range names {
			names[i] = def(i)
		}
		return names, nil
	}
	if len(names) != count {
		return nil, configErrorf("generator names", nil, "got %d names for %d generators", len(names), count)
	}
	return names, nil
}

// Kind returns the generator kind.
func (d *GraphDefinition) Kind() GeneratorKind { return d.kind }

// StateSize returns the number of elements of a decoded state.
func (d *GraphDefinition) StateSize() int { return d.n * d.m }

// NGenerators returns the number of generators.
func (d *GraphDefinition) NGenerators() int {
	if d.kind == KindMatrix {
		return len(d.matrices)
	}
	return len(d.permutations)
}

// GeneratorsInverseClosed reports whether the inverse of every generator is
// also a generator.
func (d *GraphDefinition) GeneratorsInverseClosed() bool { return d.inverseClosed }

// DecodedStateShape returns the (n, m) matrix shape of a state. Permutation
// states have shape (n, 1).
func (d *GraphDefinition) DecodedStateShape() (n, m int) { return d.n, d.m }

// Modulus returns the matrix modulus, 0 when arithmetic is not modular.
func (d *GraphDefinition) Modulus() int64 { return d.modulus }

// CentralState returns a copy of the central state.
func (d *GraphDefinition) CentralState() []int64 { return slices.Clone(d.central) }

// GeneratorNames returns a copy of the generator names.
func (d *GraphDefinition) GeneratorNames() []string { return slices.Clone(d.names) }

// Permutation returns a copy of permutation generator i.
func (d *GraphDefinition) Permutation(i int) []int { return slices.Clone(d.permutations[i]) }

// Matrix returns a copy of matrix generator i as rows.
func (d *GraphDefinition) Matrix(i int) [][]int64 {
	out := make([][]int64, d.n)
	for r := range out {
		out[r] = slices.Clone(d.matrices[i][r*d.n : (r+1)*d.n])
	}
	return out
}

func (d *GraphDefinition) String() string {
	return fmt.Sprintf("%s graph: %d generators, state size %d", d.kind, d.NGenerators(), d.StateSize())
}

func permutationsInverseClosed(perms [][]int) bool {
	for _, p := range perms {
		inv := make([]int, len(p))
		for i, v := range p {
			inv[v] = i
		}
		if !slices.ContainsFunc(perms, func(q []int) bool { return slices.Equal(q, inv) }) {
			return false
		}
	}
	return true
}

func matricesInverseClosed(mats [][]int64, n int, modulus int64) bool {
	prod := make([]int64, n*n)
	for _, a := range mats {
		found := false
		for _, b := range mats {
			matMul(prod, a, b, n, modulus)
			if isIdentity(prod, n) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func matMul(dst, a, b []int64, n int, modulus int64) {
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if modulus > 0 {
				var acc uint64
				for k := 0; k < n; k++ {
					acc += uint64(apply.MulMod(a[i*n+k], b[k*n+j], modulus))
					if acc >= uint64(modulus) {
						acc -= uint64(modulus)
					}
				}
				dst[i*n+j] = int64(acc)
				continue
			}
			var acc int64
			for k := 0; k < n; k++ {
				acc += a[i*n+k] * b[k*n+j]
			}
			dst[i*n+j] = acc
		}
	}
}

func isIdentity(a []int64, n int) bool {
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := int64(0)
			if i == j {
				want = 1
			}
			if a[i*n+j] != want {
				return false
			}
		}
	}
	return true
}
