package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/harrison/skydiff/internal/reconcile"
)

type jsonTiming struct {
	ReferenceSeconds float64  `json:"reference_seconds"`
	CandidateSeconds float64  `json:"candidate_seconds"`
	RelativeSpeed    *float64 `json:"relative_speed"` // null when unknown
}

type jsonReport struct {
	RunID        string                         `json:"run_id,omitempty"`
	GeneratedAt  *time.Time                     `json:"generated_at,omitempty"`
	Reference    string                         `json:"reference"`
	Candidate    string                         `json:"candidate"`
	PerfectMatch bool                           `json:"perfect_match"`
	Categories   []reconcile.CategoryComparison `json:"categories"`
	Total        reconcile.Totals               `json:"total"`
	Timing       *jsonTiming                    `json:"timing,omitempty"`
}

// WriteJSON emits the report as an indented JSON document.
func WriteJSON(w io.Writer, r *Report) error {
	out := jsonReport{
		RunID:        r.RunID,
		Reference:    r.ReferenceName,
		Candidate:    r.CandidateName,
		PerfectMatch: r.Summary.PerfectMatch(),
		Categories:   r.Summary.Categories,
		Total:        r.Summary.Total,
	}
	if out.Categories == nil {
		out.Categories = []reconcile.CategoryComparison{}
	}
	if !r.GeneratedAt.IsZero() {
		generated := r.GeneratedAt.UTC()
		out.GeneratedAt = &generated
	}
	if r.Timing != nil {
		timing := &jsonTiming{
			ReferenceSeconds: r.Timing.Reference.Seconds(),
			CandidateSeconds: r.Timing.Candidate.Seconds(),
		}
		if speed := r.Timing.Speed(); speed.Known {
			ratio := speed.Ratio
			timing.RelativeSpeed = &ratio
		}
		out.Timing = timing
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
