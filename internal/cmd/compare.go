package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/skydiff/internal/reconcile"
	"github.com/harrison/skydiff/internal/report"
)

// NewCompareCommand creates the compare command
func NewCompareCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <reference.json> <candidate.json>",
		Short: "Compare two saved analyzer outputs without running anything",
		Long: `Load two previously captured JSON outputs and print the accuracy table.

No commands are executed, so the timing table is omitted.

Examples:
  skydiff compare python_output.json rust_output.json
  skydiff compare a.json b.json --reference-name v1 --candidate-name v2 --show-items`,
		Args: cobra.ExactArgs(2),
		RunE: compareCommand,
	}

	addCommonFlags(cmd)

	return cmd
}

func compareCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	runID := uuid.New().String()
	s, err := newSession(cmd, cfg, runID)
	if err != nil {
		return err
	}
	defer s.close()

	refDoc, candDoc, err := s.loadBoth(args[0], args[1])
	if err != nil {
		return err
	}

	summary := reconcile.Reconcile(refDoc, candDoc, cfg.Categories)
	s.log.LogSummary(summary)

	rep := report.New(runID, cfg.Reference.Name, cfg.Candidate.Name, summary, nil)
	return s.writeReport(rep)
}
