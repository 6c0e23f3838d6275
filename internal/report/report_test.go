package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/skydiff/internal/models"
	"github.com/harrison/skydiff/internal/reconcile"
)

func sampleSummary() reconcile.Summary {
	a := models.NewDocument(map[models.Category][]models.Item{
		models.UnusedFunctions: {{FullName: "app.main"}, {FullName: "app.helper"}},
		models.UnusedImports:   {{FullName: "x"}},
	})
	b := models.NewDocument(map[models.Category][]models.Item{
		models.UnusedFunctions: {{FullName: "app.main"}},
		models.UnusedImports:   {{FullName: "x"}, {FullName: "y"}},
	})
	return reconcile.Reconcile(a, b, models.DefaultCategories)
}

func render(t *testing.T, r *Report, opts Options) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, r, opts))
	return buf.String()
}

func TestWriteMarkdownAccuracyTable(t *testing.T) {
	r := New("", "Python", "Rust", sampleSummary(), nil)
	out := render(t, r, Options{})

	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 9)
	assert.Equal(t, "### Accuracy Comparison", lines[0])
	assert.Equal(t, "| Metric | Python | Rust | Discrepancy |", lines[2])
	assert.Equal(t, "| **Unused Functions** | 2 | 1 | -1 missed |", lines[4])
	assert.Equal(t, "| **Unused Imports** | 1 | 2 | +1 false positives |", lines[5])
	assert.Equal(t, "| **Unused Classes** | 0 | 0 | Perfect match |", lines[6])
	assert.Equal(t, "| **Unused Variables** | 0 | 0 | Perfect match |", lines[7])
	assert.Equal(t, "| **TOTAL** | **3** | **3** | **+1 false positives, -1 missed** |", lines[8])

	assert.NotContains(t, out, "Execution Time", "no timing section without timing data")
	assert.NotContains(t, out, "Discrepancies", "items only with ShowItems")
}

func TestWriteMarkdownTiming(t *testing.T) {
	tests := []struct {
		name         string
		timing       Timing
		referenceRow string
		candidateRow string
	}{
		{
			name:         "candidate twice as fast",
			timing:       Timing{Reference: 10 * time.Second, Candidate: 5 * time.Second},
			referenceRow: "| **Python** | 10.00s | 1.0x (baseline) |",
			candidateRow: "| **Rust** | 5.00s | **2.0x faster** |",
		},
		{
			name:         "zero baseline is unknown",
			timing:       Timing{Reference: 0, Candidate: 5 * time.Second},
			referenceRow: "| **Python** | 0.00s | 1.0x (baseline) |",
			candidateRow: "| **Rust** | 5.00s | ? |",
		},
		{
			name:         "zero candidate is guarded",
			timing:       Timing{Reference: 2 * time.Second, Candidate: 0},
			referenceRow: "| **Python** | 2.00s | 1.0x (baseline) |",
			candidateRow: "| **Rust** | 0.00s | **0.0x faster** |",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timing := tt.timing
			out := render(t, New("", "Python", "Rust", sampleSummary(), &timing), Options{})

			assert.Contains(t, out, "### Execution Time\n\n| Implementation | Time (seconds) | Relative Speed |\n")
			assert.Contains(t, out, tt.referenceRow+"\n")
			assert.Contains(t, out, tt.candidateRow+"\n")
			assert.Less(t, strings.Index(out, tt.referenceRow), strings.Index(out, tt.candidateRow))
		})
	}
}

func TestWriteMarkdownShowItems(t *testing.T) {
	out := render(t, New("", "Python", "Rust", sampleSummary(), nil), Options{ShowItems: true})

	assert.Contains(t, out, "### Discrepancies")
	assert.Contains(t, out, "#### Unused Functions\n\n- `- app.helper`\n")
	assert.Contains(t, out, "#### Unused Imports\n\n- `+ y`\n")
	assert.NotContains(t, out, "#### Unused Classes")
}

func TestWriteMarkdownEscapesNamesAndIdentities(t *testing.T) {
	a := models.NewDocument(map[models.Category][]models.Item{
		models.UnusedVariables: {{Name: "tmpl`x`"}},
	})
	b := models.NewDocument(map[models.Category][]models.Item{
		models.UnusedVariables: {{Name: "a|b"}, {Name: "fence``run"}},
	})
	summary := reconcile.Reconcile(a, b, []models.Category{models.UnusedVariables})
	timing := Timing{Reference: 2 * time.Second, Candidate: time.Second}
	r := New("", "Py|thon", "Rust\nport", summary, &timing)

	out := render(t, r, Options{ShowItems: true})
	assert.Contains(t, out, "| Metric | Py\\|thon | Rust port | Discrepancy |")
	assert.Contains(t, out, "| **Py\\|thon** | 2.00s | 1.0x (baseline) |")
	assert.Contains(t, out, "- `+ a|b`\n")
	assert.Contains(t, out, "- ``` + fence``run ```\n")
	assert.Contains(t, out, "- `` - tmpl`x` ``\n")

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, r, Options{ShowItems: true}))
	html := buf.String()
	assert.Contains(t, html, "<th>Py|thon</th>")
	assert.Contains(t, html, "<code>+ a|b</code>")
	assert.Contains(t, html, "<code>+ fence``run</code>")
	assert.Contains(t, html, "<code>- tmpl`x`</code>")
	assert.Contains(t, html, "<strong>TOTAL</strong>")
}

func TestWriteMarkdownShowItemsPerfectMatch(t *testing.T) {
	summary := reconcile.Reconcile(nil, nil, models.DefaultCategories)
	out := render(t, New("", "A", "B", summary, nil), Options{ShowItems: true})

	assert.NotContains(t, out, "Discrepancies")
	assert.Contains(t, out, "| **TOTAL** | **0** | **0** | **Perfect match** |")
}

func TestWriteMarkdownColor(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	out := render(t, New("", "Python", "Rust", sampleSummary(), nil), Options{Color: true})
	assert.Contains(t, out, "\x1b[32mPerfect match\x1b[0m")
	assert.Contains(t, out, "\x1b[31m-1 missed\x1b[0m")

	plain := render(t, New("", "Python", "Rust", sampleSummary(), nil), Options{})
	assert.NotContains(t, plain, "\x1b[")
}

func TestWriteHTML(t *testing.T) {
	timing := Timing{Reference: 10 * time.Second, Candidate: 5 * time.Second}
	r := New("", "Python", "Rust <beta>", sampleSummary(), &timing)

	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, r, Options{Color: true}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>"))
	assert.Contains(t, out, "<title>Python vs Rust &lt;beta&gt;</title>")
	assert.Contains(t, out, "<h3>Accuracy Comparison</h3>")
	assert.Contains(t, out, "<table>")
	assert.Contains(t, out, "<th>Metric</th>")
	assert.Contains(t, out, "<td><strong>Unused Imports</strong></td>")
	assert.Contains(t, out, "<strong>2.0x faster</strong>")
	assert.NotContains(t, out, "\x1b[")
}

func TestWriteJSON(t *testing.T) {
	timing := Timing{Reference: 10 * time.Second, Candidate: 5 * time.Second}
	r := New("", "Python", "Rust", sampleSummary(), &timing)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, r))

	var decoded struct {
		RunID        string `json:"run_id"`
		Reference    string `json:"reference"`
		Candidate    string `json:"candidate"`
		PerfectMatch bool   `json:"perfect_match"`
		Categories   []struct {
			Category       string   `json:"category"`
			ReferenceCount int      `json:"reference_count"`
			CandidateCount int      `json:"candidate_count"`
			FalsePositives []string `json:"false_positives"`
			FalseNegatives []string `json:"false_negatives"`
		} `json:"categories"`
		Total struct {
			FalsePositives int `json:"false_positives"`
			FalseNegatives int `json:"false_negatives"`
		} `json:"total"`
		Timing struct {
			ReferenceSeconds float64  `json:"reference_seconds"`
			RelativeSpeed    *float64 `json:"relative_speed"`
		} `json:"timing"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	_, err := uuid.Parse(decoded.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "Python", decoded.Reference)
	assert.False(t, decoded.PerfectMatch)
	require.Len(t, decoded.Categories, 4)
	assert.Equal(t, "unused_imports", decoded.Categories[1].Category)
	assert.Equal(t, []string{"y"}, decoded.Categories[1].FalsePositives)
	assert.Equal(t, []string{}, decoded.Categories[1].FalseNegatives)
	assert.Equal(t, 1, decoded.Total.FalsePositives)
	assert.Equal(t, 1, decoded.Total.FalseNegatives)
	assert.Equal(t, 10.0, decoded.Timing.ReferenceSeconds)
	require.NotNil(t, decoded.Timing.RelativeSpeed)
	assert.InDelta(t, 2.0, *decoded.Timing.RelativeSpeed, 1e-9)
}

func TestNewRunID(t *testing.T) {
	const runID = "0b5f6a3e-7c1d-4e2a-9f00-3d2c1b0a9e8f"
	assert.Equal(t, runID, New(runID, "A", "B", sampleSummary(), nil).RunID)

	generated := New("", "A", "B", sampleSummary(), nil).RunID
	_, err := uuid.Parse(generated)
	assert.NoError(t, err)
	assert.NotEqual(t, generated, New("", "A", "B", sampleSummary(), nil).RunID)
}

func TestWriteJSONUnknownSpeedAndNoTiming(t *testing.T) {
	timing := Timing{Reference: 0, Candidate: time.Second}

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, New("", "A", "B", sampleSummary(), &timing)))
	assert.Contains(t, buf.String(), `"relative_speed": null`)

	buf.Reset()
	require.NoError(t, WriteJSON(&buf, New("", "A", "B", sampleSummary(), nil)))
	assert.NotContains(t, buf.String(), `"timing"`)
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"markdown", "HTML", " json "} {
		_, err := ParseFormat(name)
		assert.NoError(t, err, name)
	}
	_, err := ParseFormat("csv")
	assert.ErrorContains(t, err, "unknown report format")
}

func TestWriteDispatch(t *testing.T) {
	r := New("", "A", "B", sampleSummary(), nil)

	var md, js bytes.Buffer
	require.NoError(t, Write(&md, r, FormatMarkdown, Options{}))
	require.NoError(t, Write(&js, r, FormatJSON, Options{}))
	assert.True(t, strings.HasPrefix(md.String(), "### Accuracy Comparison"))
	assert.True(t, strings.HasPrefix(js.String(), "{"))

	assert.Error(t, Write(&md, r, Format("yaml"), Options{}))
}
