package generators

import (
	"fmt"
	"slices"
	"strings"

	"github.com/hupe1980/cayley"
)

var families = map[string]func(n int) (*cayley.GraphDefinition, error){
	"lrx":                LRX,
	"top-spin":           TopSpin,
	"coxeter":            CoxeterTranspositions,
	"all-transpositions": AllTranspositions,
	"pancake":            PancakeFlips,
	"cyclic-shifts":      CyclicShifts,
	"heisenberg":         func(n int) (*cayley.GraphDefinition, error) { return Heisenberg(int64(n)) },
}

// Families returns the names accepted by ByName, sorted.
func Families() []string {
	names := make([]string, 0, len(families))
	for name := range families {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// ByName builds the family called name with parameter n. For "heisenberg"
// n is the modulus.
func ByName(name string, n int) (*cayley.GraphDefinition, error) {
	fn, ok := families[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown generator family %q (known: %s)", name, strings.Join(Families(), ", "))
	}
	return fn(n)
}
