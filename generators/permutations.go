package generators

import (
	"fmt"

	"github.com/hupe1980/cayley"
)

func identity(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	return p
}

func shiftLeft(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = (i + 1) % n
	}
	return p
}

func shiftRight(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = (i + n - 1) % n
	}
	return p
}

func transposition(n, i, j int) []int {
	p := identity(n)
	p[i], p[j] = p[j], p[i]
	return p
}

func prefixReversal(n, k int) []int {
	p := identity(n)
	for i := 0; i < k; i++ {
		p[i] = k - 1 - i
	}
	return p
}

func checkN(family string, n, minN int) error {
	if n < minN {
		return fmt.Errorf("%s: n must be at least %d, got %d", family, minN, n)
	}
	return nil
}

// LRX returns the left shift, right shift and exchange of the first two
// elements on n elements.
func LRX(n int) (*cayley.GraphDefinition, error) {
	if err := checkN("lrx", n, 3); err != nil {
		return nil, err
	}
	return cayley.NewPermutationDefinition(
		[][]int{shiftLeft(n), shiftRight(n), transposition(n, 0, 1)},
		cayley.WithGeneratorNames("L", "R", "X"),
	)
}

// TopSpin returns the left and right shifts plus the reversal of the first
// four elements.
func TopSpin(n int) (*cayley.GraphDefinition, error) {
	if err := checkN("top-spin", n, 4); err != nil {
		return nil, err
	}
	return cayley.NewPermutationDefinition(
		[][]int{shiftLeft(n), shiftRight(n), prefixReversal(n, 4)},
		cayley.WithGeneratorNames("L", "R", "T"),
	)
}

// CoxeterTranspositions returns the n-1 adjacent transpositions (i, i+1).
func CoxeterTranspositions(n int) (*cayley.GraphDefinition, error) {
	if err := checkN("coxeter", n, 2); err != nil {
		return nil, err
	}
	gens := make([][]int, 0, n-1)
	names := make([]string, 0, n-1)
	for i := 0; i+1 < n; i++ {
		gens = append(gens, transposition(n, i, i+1))
		names = append(names, fmt.Sprintf("(%d,%d)", i, i+1))
	}
	return cayley.NewPermutationDefinition(gens, cayley.WithGeneratorNames(names...))
}

// AllTranspositions returns every transposition (i, j) with i < j.
func AllTranspositions(n int) (*cayley.GraphDefinition, error) {
	if err := checkN("all-transpositions", n, 2); err != nil {
		return nil, err
	}
	var gens [][]int
	var names []string
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			gens = append(gens, transposition(n, i, j))
			names = append(names, fmt.Sprintf("(%d,%d)", i, j))
		}
	}
	return cayley.NewPermutationDefinition(gens, cayley.WithGeneratorNames(names...))
}

// PancakeFlips returns the reversals of every prefix of length 2..n.
func PancakeFlips(n int) (*cayley.GraphDefinition, error) {
	if err := checkN("pancake", n, 2); err != nil {
		return nil, err
	}
	gens := make([][]int, 0, n-1)
	names := make([]string, 0, n-1)
	for k := 2; k <= n; k++ {
		gens = append(gens, prefixReversal(n, k))
		names = append(names, fmt.Sprintf("R%d", k))
	}
	return cayley.NewPermutationDefinition(gens, cayley.WithGeneratorNames(names...))
}

// CyclicShifts returns the left and right cyclic shifts.
func CyclicShifts(n int) (*cayley.GraphDefinition, error) {
	if err := checkN("cyclic-shifts", n, 2); err != nil {
		return nil, err
	}
	return cayley.NewPermutationDefinition(
		[][]int{shiftLeft(n), shiftRight(n)},
		cayley.WithGeneratorNames("L", "R"),
	)
}
