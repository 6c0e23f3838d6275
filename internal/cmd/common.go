package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/harrison/skydiff/internal/config"
	"github.com/harrison/skydiff/internal/display"
	"github.com/harrison/skydiff/internal/loader"
	"github.com/harrison/skydiff/internal/logger"
	"github.com/harrison/skydiff/internal/models"
	"github.com/harrison/skydiff/internal/report"
)

// addCommonFlags registers the flags shared by run and compare.
func addCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Path to config file (default: .skydiff/config.yaml)")
	cmd.Flags().String("reference-name", "", "Display name of the reference implementation")
	cmd.Flags().String("candidate-name", "", "Display name of the candidate implementation")
	cmd.Flags().StringSlice("category", nil, "Category to compare, repeatable (default: all four)")
	cmd.Flags().String("format", "", "Report format: markdown, html or json")
	cmd.Flags().Bool("show-items", false, "List every false positive and missed item")
	cmd.Flags().String("log-level", "", "Log verbosity: trace, debug, info, warn, error")
	cmd.Flags().String("log-dir", "", "Write a structured run log to this directory")
}

// addRunFlags registers the flags that only make sense when analyzers are executed.
func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().String("reference-cmd", "", "Shell command producing the reference JSON")
	cmd.Flags().String("candidate-cmd", "", "Shell command producing the candidate JSON")
	cmd.Flags().String("reference-out", "", "File receiving the reference output")
	cmd.Flags().String("candidate-out", "", "File receiving the candidate output")
	cmd.Flags().String("timeout", "", "Per-command timeout (e.g., 30s, 10m); 0 waits forever")
}

// loadConfig reads the config file, applies explicitly set flags and validates.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error

	if configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".")
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	var overrides config.FlagOverrides
	overrides.ReferenceName = changedString(cmd, "reference-name")
	overrides.CandidateName = changedString(cmd, "candidate-name")
	overrides.ReferenceCommand = changedString(cmd, "reference-cmd")
	overrides.CandidateCommand = changedString(cmd, "candidate-cmd")
	overrides.ReferenceOutput = changedString(cmd, "reference-out")
	overrides.CandidateOutput = changedString(cmd, "candidate-out")
	overrides.Format = changedString(cmd, "format")
	overrides.LogLevel = changedString(cmd, "log-level")
	overrides.LogDir = changedString(cmd, "log-dir")

	if cmd.Flags().Changed("show-items") {
		showItems, _ := cmd.Flags().GetBool("show-items")
		overrides.ShowItems = &showItems
	}

	if cmd.Flags().Changed("category") {
		keys, _ := cmd.Flags().GetStringSlice("category")
		categories, err := models.ParseCategories(keys)
		if err != nil {
			return nil, fmt.Errorf("invalid --category: %w", err)
		}
		overrides.Categories = categories
	}

	if timeoutStr := changedString(cmd, "timeout"); timeoutStr != nil {
		timeout, err := time.ParseDuration(*timeoutStr)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout format %q: %w", *timeoutStr, err)
		}
		overrides.Timeout = &timeout
	}

	cfg.MergeWithFlags(overrides)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// changedString returns the flag value only when the user set it.
func changedString(cmd *cobra.Command, name string) *string {
	if cmd.Flags().Lookup(name) == nil || !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetString(name)
	return &v
}

// session bundles the per-invocation logger and output streams.
type session struct {
	cfg    *config.Config
	runID  string
	log    logger.Logger
	record logger.Logger // run log only, never the console
	stdout io.Writer
	stderr io.Writer
	close  func()
}

// reportedError is a failure whose details were already shown to the
// operator; its message is only the one-line summary.
type reportedError struct {
	summary string
	err     error
}

func (e *reportedError) Error() string {
	return e.summary
}

func (e *reportedError) Unwrap() error {
	return e.err
}

func newSession(cmd *cobra.Command, cfg *config.Config, runID string) (*session, error) {
	s := &session{
		cfg:    cfg,
		runID:  runID,
		record: logger.NewNoOpLogger(),
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
		close:  func() {},
	}

	console := logger.NewConsoleLogger(s.stderr, cfg.LogLevel)
	if cfg.LogDir == "" {
		s.log = console
		return s, nil
	}

	fileLog, err := logger.NewFileLogger(cfg.LogDir, cfg.LogLevel, runID)
	if err != nil {
		return nil, err
	}
	s.log = logger.NewMultiLogger(console, fileLog)
	s.record = fileLog
	s.close = func() { fileLog.Close() }
	console.LogDebug(fmt.Sprintf("Run log: %s", fileLog.Path()))
	return s, nil
}

// fail shows every error as an operator warning, records it in the run log
// and returns them joined behind summary.
func (s *session) fail(summary string, errs ...error) error {
	var shown []error
	for _, err := range errs {
		if err == nil {
			continue
		}
		w := display.FailureWarning(err)
		w.Color = isColorTerminal(s.stderr)
		w.Display(s.stderr)
		s.record.LogError(err.Error())
		shown = append(shown, err)
	}
	return &reportedError{summary: summary, err: errors.Join(shown...)}
}

// loadBoth loads both result files, reporting every failure before aborting.
func (s *session) loadBoth(referencePath, candidatePath string) (*models.Document, *models.Document, error) {
	s.log.LogPhase("Loading Data")

	refDoc, refErr := loader.Load(referencePath)
	if refErr == nil {
		s.log.LogLoaded(referencePath, refDoc)
	}
	candDoc, candErr := loader.Load(candidatePath)
	if candErr == nil {
		s.log.LogLoaded(candidatePath, candDoc)
	}

	if refErr != nil || candErr != nil {
		return nil, nil, s.fail("failed to load data", refErr, candErr)
	}
	return refDoc, candDoc, nil
}

// writeReport renders rep on stdout in the configured format.
func (s *session) writeReport(rep *report.Report) error {
	format, err := report.ParseFormat(s.cfg.Format)
	if err != nil {
		return err
	}
	opts := report.Options{
		ShowItems: s.cfg.ShowItems,
		Color:     format == report.FormatMarkdown && isColorTerminal(s.stdout),
	}
	return report.Write(s.stdout, rep, format, opts)
}

// isColorTerminal reports whether w is a terminal that should receive ANSI colors.
func isColorTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || color.NoColor {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
