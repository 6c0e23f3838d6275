package models

import (
	"encoding/json"
	"fmt"
)

// Item is a single finding reported by an analyzer.
// Only Name and FullName take part in matching; the rest is carried for display.
type Item struct {
	Name     string `json:"name,omitempty"`
	FullName string `json:"full_name,omitempty"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line,omitempty"`
}

// Identity returns the string used to match the item across documents:
// FullName when present, otherwise Name. An empty identity means the item
// cannot be counted.
func (i Item) Identity() string {
	if i.FullName != "" {
		return i.FullName
	}
	return i.Name
}

// Document is the parsed output of one analyzer run.
// It is read-only once decoded. A nil *Document behaves as an empty one.
type Document struct {
	findings map[Category][]Item
}

// NewDocument builds a Document from already-decoded findings.
func NewDocument(findings map[Category][]Item) *Document {
	doc := &Document{findings: make(map[Category][]Item, len(findings))}
	for c, items := range findings {
		doc.findings[c] = items
	}
	return doc
}

// Items returns the findings in category c. Absent categories yield nil.
func (d *Document) Items(c Category) []Item {
	if d == nil {
		return nil
	}
	return d.findings[c]
}

// Has reports whether the document carries category c at all.
func (d *Document) Has(c Category) bool {
	if d == nil {
		return false
	}
	_, ok := d.findings[c]
	return ok
}

// UnmarshalJSON decodes a JSON object keyed by category. Keys that are not
// finding categories (secrets, analysis_summary, ...) are ignored.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == nil {
		return fmt.Errorf("document must be a JSON object, got null")
	}

	d.findings = make(map[Category][]Item)
	for key, value := range raw {
		c := Category(key)
		if !c.IsKnown() {
			continue
		}
		var items []Item
		if err := json.Unmarshal(value, &items); err != nil {
			return fmt.Errorf("category %s: %w", key, err)
		}
		d.findings[c] = items
	}
	return nil
}

// MarshalJSON encodes the document back to its category-keyed form.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[Category][]Item)
	if d != nil {
		for c, items := range d.findings {
			out[c] = items
		}
	}
	return json.Marshal(out)
}
