// Package report renders a reconciled comparison for the operator.
//
// The accuracy table lists one row per category plus a TOTAL row
// (Metric | reference count | candidate count | Discrepancy). The timing table
// lists each implementation's wall-clock time and its speed relative to the
// reference (Implementation | Time (seconds) | Relative Speed).
package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harrison/skydiff/internal/reconcile"
)

// Format selects the report renderer.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// Formats lists every supported output format.
var Formats = []Format{FormatMarkdown, FormatHTML, FormatJSON}

// ParseFormat validates a format name.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown report format %q, must be one of: markdown, html, json", name)
}

// Timing holds the measured duration of each implementation.
type Timing struct {
	Reference time.Duration
	Candidate time.Duration
}

// Speed returns the candidate's speed relative to the reference.
func (t Timing) Speed() reconcile.Speed {
	return reconcile.RelativeSpeed(t.Reference, t.Candidate)
}

// Report is everything a renderer needs. Timing is nil when the outputs were
// compared without running the analyzers.
type Report struct {
	RunID         string
	ReferenceName string
	CandidateName string
	Summary       reconcile.Summary
	Timing        *Timing
	GeneratedAt   time.Time
}

// New creates a report for run runID; an empty runID gets a fresh one. Pass
// nil timing when the analyzers were not run.
func New(runID, referenceName, candidateName string, summary reconcile.Summary, timing *Timing) *Report {
	if runID == "" {
		runID = uuid.New().String()
	}
	return &Report{
		RunID:         runID,
		ReferenceName: referenceName,
		CandidateName: candidateName,
		Summary:       summary,
		Timing:        timing,
		GeneratedAt:   time.Now(),
	}
}

// Options tune the human-readable renderers.
type Options struct {
	// ShowItems appends the individual false positives and misses.
	ShowItems bool
	// Color highlights discrepancy labels; only for terminal markdown.
	Color bool
}

// Write renders r in the requested format.
func Write(w io.Writer, r *Report, format Format, opts Options) error {
	switch format {
	case FormatMarkdown, "":
		return WriteMarkdown(w, r, opts)
	case FormatHTML:
		return WriteHTML(w, r, opts)
	case FormatJSON:
		return WriteJSON(w, r)
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
