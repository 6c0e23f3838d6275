// Package runner executes analyzer commands and captures their output.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/harrison/skydiff/internal/filelock"
	"github.com/harrison/skydiff/internal/models"
)

// pipeDrainDelay bounds how long Run waits for output pipes to close once
// the command has exited or been killed.
const pipeDrainDelay = 2 * time.Second

// ErrCommandFailed matches any *CommandFailedError via errors.Is.
var ErrCommandFailed = errors.New("command failed")

// CommandFailedError reports a command that exited non-zero or never started.
type CommandFailedError struct {
	Command  string
	ExitCode int    // -1 when the process could not be launched or was killed
	Stderr   string // Captured standard error, possibly empty
	Err      error
}

// Error implements the error interface for CommandFailedError.
func (e *CommandFailedError) Error() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error running command: %s", e.Command))
	if e.ExitCode >= 0 {
		sb.WriteString(fmt.Sprintf(" (exit status %d)", e.ExitCode))
	} else if e.Err != nil {
		sb.WriteString(fmt.Sprintf(": %v", e.Err))
	}
	return sb.String()
}

// Unwrap returns the underlying error for error wrapping support.
func (e *CommandFailedError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrCommandFailed.
func (e *CommandFailedError) Is(target error) bool {
	return target == ErrCommandFailed
}

// Logger receives command lifecycle events. logger.Logger satisfies it.
type Logger interface {
	LogDebug(message string)
	LogCommandStart(impl models.Implementation)
	LogCommandComplete(result *models.RunResult)
}

// Runner launches analyzer commands through the system shell.
// Create once and call Run for each implementation in turn.
type Runner struct {
	// Shell is the interpreter and flag that precede the command string.
	// Defaults to DefaultShell().
	Shell []string

	// Timeout bounds each command. Zero means wait indefinitely.
	Timeout time.Duration

	// Logger can be nil for silent operation.
	Logger Logger
}

// DefaultShell returns "sh -c", or "cmd /C" on Windows.
func DefaultShell() []string {
	if runtime.GOOS == "windows" {
		return []string{"cmd", "/C"}
	}
	return []string{"sh", "-c"}
}

// NewRunner creates a Runner using the default shell and no timeout.
func NewRunner(logger Logger) *Runner {
	return &Runner{
		Shell:  DefaultShell(),
		Logger: logger,
	}
}

// Run executes impl.Command and, when it exits zero, replaces impl.Output with
// the captured stdout. The returned duration covers launch to exit only.
// On failure nothing is written and a *CommandFailedError is returned.
func (r *Runner) Run(ctx context.Context, impl models.Implementation) (*models.RunResult, error) {
	if strings.TrimSpace(impl.Command) == "" {
		return nil, &CommandFailedError{Command: impl.Command, ExitCode: -1, Err: fmt.Errorf("empty command")}
	}
	if r.Logger != nil {
		r.Logger.LogCommandStart(impl)
	}

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	shell := r.Shell
	if len(shell) == 0 {
		shell = DefaultShell()
	}
	args := append(append([]string{}, shell[1:]...), impl.Command)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, shell[0], args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	setupProcessGroup(cmd)
	cmd.Cancel = func() error { return killProcessGroup(cmd) }
	cmd.WaitDelay = pipeDrainDelay

	start := time.Now()
	err := cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = fmt.Errorf("%w: %w", ctxErr, err)
			exitCode = -1
		}
		return nil, &CommandFailedError{
			Command:  impl.Command,
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}

	if r.Logger != nil && stderr.Len() > 0 {
		r.Logger.LogDebug(fmt.Sprintf("%s stderr: %s", impl.Name, strings.TrimSpace(stderr.String())))
	}

	if err := filelock.LockAndWrite(ctx, impl.Output, stdout.Bytes()); err != nil {
		return nil, fmt.Errorf("failed to save output of %s: %w", impl.Name, err)
	}

	result := &models.RunResult{
		Implementation: impl.Name,
		Command:        impl.Command,
		OutputPath:     impl.Output,
		Duration:       elapsed,
	}
	if r.Logger != nil {
		r.Logger.LogCommandComplete(result)
	}
	return result, nil
}
