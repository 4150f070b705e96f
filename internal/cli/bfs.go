package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hupe1980/cayley"
	"github.com/hupe1980/cayley/codec"
)

type bfsFlags struct {
	graphFlags
	maxStore    int
	maxExplore  int
	maxDiameter int
	edges       bool
	hashes      bool
	seen        string
	output      string
	codecName   string
	compression string
}

// bfsExport is the document written by --output.
type bfsExport struct {
	Definition string            `json:"definition"`
	BitWidth   int               `json:"bit_width"`
	Diameter   int               `json:"diameter"`
	Vertices   int               `json:"vertices"`
	Result     *cayley.BFSResult `json:"result"`
}

func (c *CLI) bfsCommand() *cobra.Command {
	var f bfsFlags

	cmd := &cobra.Command{
		Use:   "bfs",
		Short: "Run a breadth-first search and print the growth function",
		Example: `  cayley bfs --family lrx -n 8
  cayley bfs --graph heisenberg.yaml --max-diameter 10 --output layers.json.zst`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.runBFS(cmd, &f)
		},
	}

	f.register(cmd)
	fs := cmd.Flags()
	fs.IntVar(&f.maxStore, "max-store", cayley.DefaultMaxLayerSizeToStore, "largest layer whose states are kept (-1 = all)")
	fs.IntVar(&f.maxExplore, "max-explore", cayley.DefaultMaxLayerSizeToExplore, "stop once a layer reaches this size")
	fs.IntVar(&f.maxDiameter, "max-diameter", cayley.DefaultMaxDiameter, "maximum number of BFS iterations")
	fs.BoolVar(&f.edges, "edges", false, "record edges as hash pairs")
	fs.BoolVar(&f.hashes, "hashes", false, "record the hash of every vertex")
	fs.StringVar(&f.seen, "seen", "auto", "seen set policy: auto, two-layers, full-history")
	fs.StringVarP(&f.output, "output", "o", "", "export the result to this file")
	fs.StringVar(&f.codecName, "codec", "go-json", "export codec: "+strings.Join(codec.Names(), ", "))
	fs.StringVar(&f.compression, "compress", "", "export compression: none, lz4, zstd (default from file extension)")

	return cmd
}

func (c *CLI) runBFS(cmd *cobra.Command, f *bfsFlags) error {
	ctx := cmd.Context()

	policy, err := parseSeenSetPolicy(f.seen)
	if err != nil {
		return err
	}

	g, err := f.graph(c)
	if err != nil {
		return err
	}
	c.Logger.Debug("graph ready", "definition", g.Definition().String(), "bit_width", g.BitEncodingWidth())

	opts := []cayley.BFSOption{
		cayley.WithMaxLayerSizeToStore(f.maxStore),
		cayley.WithMaxLayerSizeToExplore(f.maxExplore),
		cayley.WithMaxDiameter(f.maxDiameter),
		cayley.WithSeenSetPolicy(policy),
		cayley.WithKeepAlive(ctx.Err),
	}
	if f.edges {
		opts = append(opts, cayley.WithReturnAllEdges())
	}
	if f.hashes {
		opts = append(opts, cayley.WithReturnAllHashes())
	}

	prog := newProgress(c.Logger)
	res, err := g.BFS(ctx, opts...)
	if err != nil {
		return err
	}
	prog.done("search finished")

	printSummary(cmd.OutOrStdout(), res)

	if f.output == "" {
		return nil
	}
	doc := bfsExport{
		Definition: g.Definition().String(),
		BitWidth:   g.BitEncodingWidth(),
		Diameter:   res.Diameter(),
		Vertices:   res.NumVertices(),
		Result:     res,
	}
	if err := exportResult(f.output, f.codecName, f.compression, doc); err != nil {
		return err
	}
	c.Logger.Info("exported result", "path", f.output)
	return nil
}

func printSummary(w io.Writer, res *cayley.BFSResult) {
	fmt.Fprintf(w, "layer sizes: %v\n", res.LayerSizes)
	fmt.Fprintf(w, "diameter:    %d\n", res.Diameter())
	fmt.Fprintf(w, "vertices:    %d\n", res.NumVertices())
	fmt.Fprintf(w, "completed:   %t\n", res.Completed)
	if len(res.EdgesListHashes) > 0 {
		fmt.Fprintf(w, "edges:       %d\n", len(res.EdgesListHashes))
	}
}

func parseSeenSetPolicy(name string) (cayley.SeenSetPolicy, error) {
	for _, p := range []cayley.SeenSetPolicy{cayley.SeenSetAuto, cayley.SeenSetTwoLayers, cayley.SeenSetFullHistory} {
		if p.String() == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown seen set policy %q", name)
}

// exportResult writes v to path. An empty compression name is inferred
// from the file extension.
func exportResult(path, codecName, compression string, v any) error {
	cd, ok := codec.ByName(codecName)
	if !ok {
		return fmt.Errorf("unknown codec %q (known: %s)", codecName, strings.Join(codec.Names(), ", "))
	}

	if compression == "" {
		switch filepath.Ext(path) {
		case codec.CompressionZSTD.Extension():
			compression = codec.CompressionZSTD.String()
		case codec.CompressionLZ4.Extension():
			compression = codec.CompressionLZ4.String()
		}
	}
	comp, err := codec.ParseCompression(compression)
	if err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := codec.Encode(file, cd, comp, v); err != nil {
		file.Close()
		return fmt.Errorf("export: %w", err)
	}
	return file.Close()
}
