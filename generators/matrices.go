package generators

import (
	"fmt"

	"github.com/hupe1980/cayley"
)

// Heisenberg returns the two unipotent generators of the discrete
// Heisenberg group and their inverses as 3×3 integer matrices. With
// modulus > 0 the group is taken over Z/modulus; with 0 it is infinite and
// a search must be bounded by a diameter or layer cap.
func Heisenberg(modulus int64) (*cayley.GraphDefinition, error) {
	if modulus < 0 || modulus == 1 {
		return nil, fmt.Errorf("heisenberg: modulus must be 0 or at least 2, got %d", modulus)
	}
	x := [][]int64{{1, 1, 0}, {0, 1, 0}, {0, 0, 1}}
	xInv := [][]int64{{1, -1, 0}, {0, 1, 0}, {0, 0, 1}}
	y := [][]int64{{1, 0, 0}, {0, 1, 1}, {0, 0, 1}}
	yInv := [][]int64{{1, 0, 0}, {0, 1, -1}, {0, 0, 1}}

	return cayley.NewMatrixDefinition(
		[][][]int64{x, xInv, y, yInv},
		cayley.WithGeneratorNames("x", "x'", "y", "y'"),
		cayley.WithModulus(modulus),
	)
}
