package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/skydiff/internal/reconcile"
)

// WriteMarkdown renders the accuracy and timing tables as GitHub markdown.
func WriteMarkdown(w io.Writer, r *Report, opts Options) error {
	var b bytes.Buffer
	label := discrepancyStyler(opts.Color)

	b.WriteString("### Accuracy Comparison\n\n")
	fmt.Fprintf(&b, "| Metric | %s | %s | Discrepancy |\n", tableCell(r.ReferenceName), tableCell(r.CandidateName))
	b.WriteString("|--------|----------|---------|-------------|\n")
	for _, c := range r.Summary.Categories {
		fmt.Fprintf(&b, "| **%s** | %d | %d | %s |\n",
			c.Category.Label(), c.CountA, c.CountB, label(c.Discrepancy(), c.FalsePositiveCount()+c.FalseNegativeCount() == 0))
	}
	total := r.Summary.Total
	fmt.Fprintf(&b, "| **TOTAL** | **%d** | **%d** | **%s** |\n",
		total.CountA, total.CountB, label(total.Discrepancy(), r.Summary.PerfectMatch()))

	if r.Timing != nil {
		b.WriteString("\n### Execution Time\n\n")
		b.WriteString("| Implementation | Time (seconds) | Relative Speed |\n")
		b.WriteString("|---------------|----------------|----------------|\n")
		fmt.Fprintf(&b, "| **%s** | %.2fs | 1.0x (baseline) |\n", tableCell(r.ReferenceName), r.Timing.Reference.Seconds())

		speed := r.Timing.Speed()
		if speed.Known {
			fmt.Fprintf(&b, "| **%s** | %.2fs | **%s** |\n", tableCell(r.CandidateName), r.Timing.Candidate.Seconds(), speed)
		} else {
			fmt.Fprintf(&b, "| **%s** | %.2fs | %s |\n", tableCell(r.CandidateName), r.Timing.Candidate.Seconds(), speed)
		}
	}

	if opts.ShowItems && !r.Summary.PerfectMatch() {
		writeItems(&b, r.Summary)
	}

	_, err := w.Write(b.Bytes())
	return err
}

// writeItems lists each category's disagreements, "+" for false positives and
// "-" for missed identities.
func writeItems(b *bytes.Buffer, summary reconcile.Summary) {
	b.WriteString("\n### Discrepancies\n")
	for _, c := range summary.Categories {
		if c.FalsePositiveCount() == 0 && c.FalseNegativeCount() == 0 {
			continue
		}
		fmt.Fprintf(b, "\n#### %s\n\n", c.Category.Label())
		for _, id := range c.FalsePositives {
			fmt.Fprintf(b, "- %s\n", codeSpan("+ "+id))
		}
		for _, id := range c.FalseNegatives {
			fmt.Fprintf(b, "- %s\n", codeSpan("- "+id))
		}
	}
}

// tableCell escapes text for use inside a GFM table cell.
func tableCell(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// codeSpan wraps s in a backtick fence longer than any backtick run inside it.
func codeSpan(s string) string {
	longest, run := 0, 0
	for _, r := range s {
		if r == '`' {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}
	if longest == 0 {
		return "`" + s + "`"
	}
	fence := strings.Repeat("`", longest+1)
	// One space on each side is stripped by the renderer.
	return fence + " " + s + " " + fence
}

func discrepancyStyler(enabled bool) func(text string, perfect bool) string {
	if !enabled {
		return func(text string, _ bool) string { return text }
	}
	good := color.New(color.FgGreen)
	bad := color.New(color.FgRed)
	return func(text string, perfect bool) string {
		if perfect {
			return good.Sprint(text)
		}
		return bad.Sprint(text)
	}
}
