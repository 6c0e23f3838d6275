package cmd

import (
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/harrison/skydiff/internal/reconcile"
	"github.com/harrison/skydiff/internal/report"
	"github.com/harrison/skydiff/internal/runner"
)

// NewRunCommand creates the run command
func NewRunCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run both analyzers and compare their findings",
		Long: `Run the reference and the candidate analyzer one after the other,
capture each one's JSON output to a file, then print an accuracy table and a
timing table.

If either command fails or either output cannot be loaded, a diagnostic is
printed and no report is produced.

Examples:
  # Compare the default Python and Rust builds on the current directory
  skydiff run

  # Custom commands and output files
  skydiff run --reference-cmd "skylos src --json" \
              --candidate-cmd "./skylos-rs src --json" \
              --reference-out py.json --candidate-out rs.json

  # Only imports, listing every disagreement
  skydiff run --category unused_imports --show-items

  # Machine-readable report with a structured run log
  skydiff run --format json --log-dir .skydiff/logs`,
		Args: cobra.NoArgs,
		RunE: runCommand,
	}

	addCommonFlags(cmd)
	addRunFlags(cmd)

	return cmd
}

// runCommand implements the run command logic
func runCommand(cmd *cobra.Command, args []string) error {
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

	r := runner.NewRunner(s.log)
	r.Timeout = cfg.Timeout

	// The candidate only starts after the reference has exited.
	s.log.LogPhase("Generating Data")
	refRun, refErr := r.Run(cmd.Context(), cfg.Reference)
	candRun, candErr := r.Run(cmd.Context(), cfg.Candidate)
	if refErr != nil || candErr != nil {
		return s.fail("failed to generate data", refErr, candErr)
	}

	refDoc, candDoc, err := s.loadBoth(refRun.OutputPath, candRun.OutputPath)
	if err != nil {
		return err
	}

	summary := reconcile.Reconcile(refDoc, candDoc, cfg.Categories)
	s.log.LogSummary(summary)

	rep := report.New(runID, cfg.Reference.Name, cfg.Candidate.Name, summary, &report.Timing{
		Reference: refRun.Duration,
		Candidate: candRun.Duration,
	})
	return s.writeReport(rep)
}
