package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "loom",
		Short: "Incremental UI runtime for Go",
		Long: `Loom is an incremental tree-reconciliation runtime for Go.

Components describe output trees; the runtime diffs descriptions
against the committed tree in cooperative time slices and applies
the minimal set of mutations per commit. Features include:

  • Double-buffered fiber tree with keyed reconciliation
  • Cooperative time-sliced scheduling
  • Hooks: state, reducer, effect, memo, ref
  • Live commit stream over WebSocket
  • Prometheus metrics per commit`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		benchCmd(),
		demoCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}
