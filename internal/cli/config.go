package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/hupe1980/cayley"
	"github.com/hupe1980/cayley/generators"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// GraphFile is the YAML form of a graph definition.
//
//	kind: permutation
//	generators:
//	  - [1, 0, 2, 3]
//	  - [0, 2, 1, 3]
//	  - [0, 1, 3, 2]
//	central_state: [0, 0, 1, 1]
type GraphFile struct {
	Kind         string      `yaml:"kind" validate:"required,oneof=permutation matrix"`
	Generators   [][]int     `yaml:"generators" validate:"required_if=Kind permutation,excluded_if=Kind matrix"`
	Matrices     [][][]int64 `yaml:"matrices" validate:"required_if=Kind matrix,excluded_if=Kind permutation"`
	CentralState []int64     `yaml:"central_state,omitempty"`
	Names        []string    `yaml:"names,omitempty" validate:"omitempty,dive,required"`
	Modulus      int64       `yaml:"modulus,omitempty" validate:"gte=0"`
}

// LoadGraphFile reads and validates a YAML graph file.
func LoadGraphFile(path string) (*GraphFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read graph file: %w", err)
	}
	return ParseGraphFile(data)
}

// ParseGraphFile decodes and validates a YAML graph definition.
func ParseGraphFile(data []byte) (*GraphFile, error) {
	var f GraphFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse graph file: %w", err)
	}
	if err := validate.Struct(&f); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return nil, fmt.Errorf("invalid graph file: field %s fails %q", fe.Namespace(), fe.Tag())
		}
		return nil, fmt.Errorf("invalid graph file: %w", err)
	}
	return &f, nil
}

// Definition builds the graph definition described by the file.
func (f *GraphFile) Definition() (*cayley.GraphDefinition, error) {
	var opts []cayley.DefinitionOption
	if f.CentralState != nil {
		opts = append(opts, cayley.WithCentralState(f.CentralState))
	}
	if f.Names != nil {
		opts = append(opts, cayley.WithGeneratorNames(f.Names...))
	}

	if f.Kind == "matrix" {
		if f.Modulus > 0 {
			opts = append(opts, cayley.WithModulus(f.Modulus))
		}
		return cayley.NewMatrixDefinition(f.Matrices, opts...)
	}
	return cayley.NewPermutationDefinition(f.Generators, opts...)
}

// graphSource selects the definition either from a file or a family.
type graphSource struct {
	file   string
	family string
	n      int
}

func (s *graphSource) definition() (*cayley.GraphDefinition, error) {
	switch {
	case s.file != "" && s.family != "":
		return nil, errors.New("--graph and --family are mutually exclusive")
	case s.file != "":
		f, err := LoadGraphFile(s.file)
		if err != nil {
			return nil, err
		}
		return f.Definition()
	case s.family != "":
		return generators.ByName(s.family, s.n)
	default:
		return nil, errors.New("one of --graph or --family is required")
	}
}
