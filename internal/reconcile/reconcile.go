// Package reconcile compares the findings of a reference analyzer with those
// of a candidate analyzer.
//
// Findings are matched by identity (full name, else short name) using exact
// string equality. The reference side is treated as ground truth: identities
// only the candidate reports are false positives, identities only the
// reference reports are false negatives ("missed").
//
// Every function here is pure; calling it twice on the same documents yields
// the same result.
package reconcile

import (
	"fmt"
	"sort"
	"strings"

	"github.com/harrison/skydiff/internal/models"
)

// IdentitySet is a duplicate-free collection of item identities.
type IdentitySet map[string]struct{}

// Contains reports whether id is in the set.
func (s IdentitySet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Minus returns the identities in s that are not in other, sorted.
func (s IdentitySet) Minus(other IdentitySet) []string {
	diff := []string{}
	for id := range s {
		if !other.Contains(id) {
			diff = append(diff, id)
		}
	}
	sort.Strings(diff)
	return diff
}

// Sorted returns the identities in lexical order.
func (s IdentitySet) Sorted() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ExtractIdentities collects the identities of every countable item in
// category c. A nil document or an absent category yields an empty set.
func ExtractIdentities(doc *models.Document, c models.Category) IdentitySet {
	set := make(IdentitySet)
	for _, item := range doc.Items(c) {
		if id := item.Identity(); id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

// CategoryComparison is the outcome of comparing one category.
type CategoryComparison struct {
	Category       models.Category `json:"category"`
	CountA         int             `json:"reference_count"`
	CountB         int             `json:"candidate_count"`
	FalsePositives []string        `json:"false_positives"` // in B, not in A
	FalseNegatives []string        `json:"false_negatives"` // in A, not in B
}

// FalsePositiveCount returns the number of identities only the candidate reported.
func (c CategoryComparison) FalsePositiveCount() int {
	return len(c.FalsePositives)
}

// FalseNegativeCount returns the number of identities the candidate missed.
func (c CategoryComparison) FalseNegativeCount() int {
	return len(c.FalseNegatives)
}

// Discrepancy returns the row label for this comparison.
func (c CategoryComparison) Discrepancy() string {
	return Discrepancy(c.FalsePositiveCount(), c.FalseNegativeCount())
}

// Compare reconciles category c of the reference document a against the
// candidate document b.
func Compare(a, b *models.Document, c models.Category) CategoryComparison {
	setA := ExtractIdentities(a, c)
	setB := ExtractIdentities(b, c)

	return CategoryComparison{
		Category:       c,
		CountA:         len(setA),
		CountB:         len(setB),
		FalsePositives: setB.Minus(setA),
		FalseNegatives: setA.Minus(setB),
	}
}

// Totals aggregates counts across all compared categories.
type Totals struct {
	CountA         int `json:"reference_count"`
	CountB         int `json:"candidate_count"`
	FalsePositives int `json:"false_positives"`
	FalseNegatives int `json:"false_negatives"`
}

// Discrepancy returns the label for the total row.
func (t Totals) Discrepancy() string {
	return Discrepancy(t.FalsePositives, t.FalseNegatives)
}

// Summary holds per-category comparisons in report order plus their total.
type Summary struct {
	Categories []CategoryComparison `json:"categories"`
	Total      Totals               `json:"total"`
}

// PerfectMatch reports whether the candidate agrees with the reference on
// every compared category.
func (s Summary) PerfectMatch() bool {
	return s.Total.FalsePositives == 0 && s.Total.FalseNegatives == 0
}

// Reconcile compares every category in order and accumulates the totals.
func Reconcile(a, b *models.Document, categories []models.Category) Summary {
	summary := Summary{Categories: make([]CategoryComparison, 0, len(categories))}
	for _, c := range categories {
		cmp := Compare(a, b, c)
		summary.Categories = append(summary.Categories, cmp)

		summary.Total.CountA += cmp.CountA
		summary.Total.CountB += cmp.CountB
		summary.Total.FalsePositives += cmp.FalsePositiveCount()
		summary.Total.FalseNegatives += cmp.FalseNegativeCount()
	}
	return summary
}

// PerfectMatchLabel is the discrepancy label when both counts are zero.
const PerfectMatchLabel = "Perfect match"

// Discrepancy composes "+<fp> false positives" and "-<fn> missed", keeping
// only the non-zero parts.
func Discrepancy(falsePositives, falseNegatives int) string {
	var parts []string
	if falsePositives > 0 {
		parts = append(parts, fmt.Sprintf("+%d false positives", falsePositives))
	}
	if falseNegatives > 0 {
		parts = append(parts, fmt.Sprintf("-%d missed", falseNegatives))
	}
	if len(parts) == 0 {
		return PerfectMatchLabel
	}
	return strings.Join(parts, ", ")
}
