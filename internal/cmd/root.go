package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for skydiff
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skydiff",
		Short: "Differential verification of two unused-code detectors",
		Long: `skydiff runs two implementations of the same unused-code detector
against one codebase and compares their JSON findings.

The reference implementation is treated as ground truth. Findings only the
candidate reports are false positives; findings it misses are false negatives.
The report also shows how long each implementation took.

Configuration is loaded from .skydiff/config.yaml if present.
CLI flags override configuration file settings.`,
		Version: Version,
		// main prints the error once; usage text would bury it
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewCompareCommand())

	return cmd
}
