package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/cayley"
	"github.com/hupe1980/cayley/generators"
)

type walksFlags struct {
	graphFlags
	count    int
	length   int
	walkSeed uint64
	output   string
	codec    string
}

// walksExport is the document written by --output.
type walksExport struct {
	Count     int       `json:"count"`
	Length    int       `json:"length"`
	States    [][]int64 `json:"states"`
	Distances []int     `json:"distances"`
}

func (c *CLI) walksCommand() *cobra.Command {
	var f walksFlags

	cmd := &cobra.Command{
		Use:     "walks",
		Short:   "Run random walks from the central state",
		Example: `  cayley walks --family pancake -n 6 --count 4 --length 10`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runWalks(cmd, &f)
		},
	}

	f.register(cmd)
	fs := cmd.Flags()
	fs.IntVar(&f.count, "count", 1, "number of walks")
	fs.IntVar(&f.length, "length", 10, "states per walk, including the start")
	fs.Uint64Var(&f.walkSeed, "walk-seed", 0, "generator choice seed (0 = --seed)")
	fs.StringVarP(&f.output, "output", "o", "", "export the walks to this file")
	fs.StringVar(&f.codec, "codec", "go-json", "export codec")

	return cmd
}

func (c *CLI) runWalks(cmd *cobra.Command, f *walksFlags) error {
	g, err := f.graph(c)
	if err != nil {
		return err
	}

	var opts []cayley.WalkOption
	if f.walkSeed != 0 {
		opts = append(opts, cayley.WithWalkSeed(f.walkSeed))
	}

	prog := newProgress(c.Logger)
	states, dists, err := g.RandomWalks(cmd.Context(), f.count, f.length, opts...)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("generated %d walks", f.count))

	if f.output != "" {
		doc := walksExport{Count: f.count, Length: f.length, States: states, Distances: dists}
		if err := exportResult(f.output, f.codec, "", doc); err != nil {
			return err
		}
		c.Logger.Info("exported walks", "path", f.output)
		return nil
	}

	w := cmd.OutOrStdout()
	for walk := 0; walk < f.count; walk++ {
		fmt.Fprintf(w, "walk %d:\n", walk)
		for step := 0; step < f.length; step++ {
			i := step*f.count + walk
			fmt.Fprintf(w, "  %3d %v\n", dists[i], states[i])
		}
	}
	return nil
}

func (c *CLI) familiesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "families",
		Short: "List the built-in generator families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range generators.Families() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
