package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for crawlkit.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawlkit",
		Short: "Generic, extensible concurrent crawling engine",
		Long: `crawlkit dispatches bounded-parallelism crawling sessions over a
pluggable set of InputProcessors (web fetch, crypto address extraction,
social handle extraction, EXIF metadata, email address extraction), and
persists each session's result to a configurable store (memory, JSON
files, or SQLite).`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewSubmitCmd())
	cmd.AddCommand(NewCompareCmd())
	cmd.AddCommand(NewConfigCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
