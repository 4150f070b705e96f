// Package cli implements the cayley command-line interface.
//
// The commands explore Cayley graphs defined either by a built-in generator
// family or by a YAML graph file, and export search results through the
// codec package.
//
// # Commands
//
//   - bfs: breadth-first search with layer statistics and optional export
//   - walks: random walks from the central state
//   - families: list the built-in generator families
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The
// charmbracelet logger also backs the library's slog output, so per-layer
// progress shows up in the same stream.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

const appName = "cayley"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance writing logs to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Explore Cayley graphs of permutation and matrix groups",
		Long:         `cayley runs breadth-first searches and random walks over implicitly defined Cayley graphs, reporting growth functions and exporting layers, hashes and edges.`,
		SilenceUsage: true,
	}

	root.AddCommand(c.bfsCommand())
	root.AddCommand(c.walksCommand())
	root.AddCommand(c.familiesCommand())

	return root
}
