package display

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/skydiff/internal/loader"
	"github.com/harrison/skydiff/internal/runner"
)

// maxStderrLines caps how much of a failing command's stderr is echoed back.
const maxStderrLines = 20

// Warning represents a user-facing failure or warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Details    []string // Verbatim lines such as captured stderr (optional)
	Suggestion string   // Action to take (optional)
	Color      bool     // Render in yellow
}

// Display writes the formatted warning to out.
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected file:\n")
		} else {
			b.WriteString("    Affected files:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if len(w.Details) > 0 {
		for _, line := range w.Details {
			b.WriteString("    | ")
			b.WriteString(line)
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	text := b.String()
	if w.Color {
		text = color.New(color.FgYellow).Sprint(text)
	}
	io.WriteString(out, text)
}

// FailureWarning turns a pipeline error into a specific operator message
// naming the failing command or file.
func FailureWarning(err error) Warning {
	var cmdErr *runner.CommandFailedError
	var loadErr *loader.LoadError

	switch {
	case errors.As(err, &cmdErr):
		return Warning{
			Title:      "Command failed",
			Message:    cmdErr.Error(),
			Details:    tailLines(cmdErr.Stderr, maxStderrLines),
			Suggestion: "Run the command by hand and check that it prints JSON to stdout",
		}
	case errors.As(err, &loadErr) && loadErr.Kind == loader.KindNotFound:
		return Warning{
			Title:      "Result file missing",
			Message:    loadErr.Error(),
			Files:      []string{loadErr.Path},
			Suggestion: "Check the output path configured for this implementation",
		}
	case errors.As(err, &loadErr) && loadErr.Kind == loader.KindInvalidFormat:
		return Warning{
			Title:      "Invalid result file",
			Message:    loadErr.Error(),
			Files:      []string{loadErr.Path},
			Suggestion: "Make sure the analyzer was run with its JSON output flag",
		}
	default:
		return Warning{
			Title:   "Run aborted",
			Message: err.Error(),
		}
	}
}

// tailLines returns at most n trailing non-empty lines of s.
func tailLines(s string, n int) []string {
	var lines []string
	for _, line := range strings.Split(strings.TrimRight(s, "\n"), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return lines
}
