// Package logger provides logging implementations for skydiff runs.
//
// ConsoleLogger writes timestamped progress and diagnostics for the operator,
// FileLogger keeps a structured per-run log on disk. Both satisfy Logger and
// can be combined with NewMultiLogger.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/harrison/skydiff/internal/models"
	"github.com/harrison/skydiff/internal/reconcile"
)

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// ValidLevels lists the accepted log level names.
var ValidLevels = []string{"trace", "debug", "info", "warn", "error"}

// ConsoleLogger logs run progress to a writer with [HH:MM:SS] timestamps.
// Color output is enabled only for os.Stdout/os.Stderr terminals.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided io.Writer.
// If writer is nil, messages are silently discarded.
// An empty or unknown logLevel falls back to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// color.NoColor already accounts for NO_COLOR and non-TTY output.
func isTerminal(w io.Writer) bool {
	if w == nil {
		return false
	}
	if w == os.Stdout || w == os.Stderr {
		return !color.NoColor
	}
	return false
}

// normalizeLogLevel converts a log level string to lowercase and validates it.
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if IsValidLevel(normalized) {
		return normalized
	}
	return "info"
}

// IsValidLevel reports whether level is one of ValidLevels.
func IsValidLevel(level string) bool {
	for _, l := range ValidLevels {
		if l == level {
			return true
		}
	}
	return false
}

func logLevelToInt(level string) int {
	switch level {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

func (cl *ConsoleLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(cl.logLevel)
}

// LogTrace logs a trace-level message.
func (cl *ConsoleLogger) LogTrace(message string) {
	cl.logWithLevel("TRACE", message)
}

// LogDebug logs a debug-level message.
func (cl *ConsoleLogger) LogDebug(message string) {
	cl.logWithLevel("DEBUG", message)
}

// LogInfo logs an info-level message.
// Format: "[HH:MM:SS] [INFO] <message>"
func (cl *ConsoleLogger) LogInfo(message string) {
	cl.logWithLevel("INFO", message)
}

// LogWarn logs a warning-level message.
func (cl *ConsoleLogger) LogWarn(message string) {
	cl.logWithLevel("WARN", message)
}

// LogError logs an error-level message.
func (cl *ConsoleLogger) LogError(message string) {
	cl.logWithLevel("ERROR", message)
}

func (cl *ConsoleLogger) logWithLevel(level string, message string) {
	if cl.writer == nil || !cl.shouldLog(strings.ToLower(level)) {
		return
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	var formatted string
	if cl.colorOutput {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", timestamp(), levelColor(level).Sprint(level), message)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message)
	}
	cl.writer.Write([]byte(formatted))
}

func levelColor(level string) *color.Color {
	switch level {
	case "TRACE":
		return color.New(color.FgHiBlack)
	case "DEBUG":
		return color.New(color.FgCyan)
	case "WARN":
		return color.New(color.FgYellow)
	case "ERROR":
		return color.New(color.FgRed)
	default:
		return color.New(color.FgBlue)
	}
}

// LogPhase logs a section header such as "=== Generating Data ===".
func (cl *ConsoleLogger) LogPhase(name string) {
	if cl.colorOutput {
		name = color.New(color.Bold).Sprint(name)
	}
	cl.LogInfo(fmt.Sprintf("=== %s ===", name))
}

// LogCommandStart logs the command about to be launched.
// Format: "[HH:MM:SS] [INFO] Running: <command>"
func (cl *ConsoleLogger) LogCommandStart(impl models.Implementation) {
	cl.LogInfo(fmt.Sprintf("Running: %s", impl.Command))
}

// LogCommandComplete logs a successful run with its wall-clock duration.
// Format: "[HH:MM:SS] [INFO] Done in 1.23s"
func (cl *ConsoleLogger) LogCommandComplete(result *models.RunResult) {
	done := "Done"
	if cl.colorOutput {
		done = color.New(color.FgGreen).Sprint(done)
	}
	cl.LogInfo(fmt.Sprintf("%s in %.2fs (%s -> %s)", done, result.Seconds(), result.Implementation, result.OutputPath))
}

// LogLoaded logs a successfully loaded result file.
func (cl *ConsoleLogger) LogLoaded(path string, doc *models.Document) {
	var counts []string
	for _, c := range models.DefaultCategories {
		counts = append(counts, fmt.Sprintf("%s=%d", c, len(doc.Items(c))))
	}
	cl.LogDebug(fmt.Sprintf("Loaded %s (%s)", path, strings.Join(counts, ", ")))
}

// LogSummary logs the one-line verdict after reconciliation.
func (cl *ConsoleLogger) LogSummary(summary reconcile.Summary) {
	verdict := summary.Total.Discrepancy()
	if cl.colorOutput {
		if summary.PerfectMatch() {
			verdict = color.New(color.FgGreen).Sprint(verdict)
		} else {
			verdict = color.New(color.FgYellow).Sprint(verdict)
		}
	}
	cl.LogInfo(fmt.Sprintf("Compared %d categories: %s", len(summary.Categories), verdict))
}

func timestamp() string {
	return time.Now().Format("15:04:05")
}
