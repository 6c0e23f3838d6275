package models

import "fmt"

// Category identifies one kind of finding reported by an unused-code detector.
type Category string

// Finding categories compared between implementations
const (
	UnusedFunctions Category = "unused_functions"
	UnusedImports   Category = "unused_imports"
	UnusedClasses   Category = "unused_classes"
	UnusedVariables Category = "unused_variables"
)

// DefaultCategories is the fixed, ordered list of categories in a report.
var DefaultCategories = []Category{
	UnusedFunctions,
	UnusedImports,
	UnusedClasses,
	UnusedVariables,
}

var categoryLabels = map[Category]string{
	UnusedFunctions: "Unused Functions",
	UnusedImports:   "Unused Imports",
	UnusedClasses:   "Unused Classes",
	UnusedVariables: "Unused Variables",
}

// Label returns the human-readable row name for the category.
func (c Category) Label() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// IsKnown reports whether c is one of DefaultCategories.
func (c Category) IsKnown() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategories converts raw category keys into Categories, rejecting unknown
// or repeated keys. Order is preserved.
func ParseCategories(keys []string) ([]Category, error) {
	seen := make(map[Category]bool, len(keys))
	categories := make([]Category, 0, len(keys))
	for _, key := range keys {
		c := Category(key)
		if !c.IsKnown() {
			return nil, fmt.Errorf("unknown category %q", key)
		}
		if seen[c] {
			return nil, fmt.Errorf("duplicate category %q", key)
		}
		seen[c] = true
		categories = append(categories, c)
	}
	return categories, nil
}
