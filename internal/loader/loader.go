// Package loader reads captured analyzer output into models.Document values.
package loader

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/harrison/skydiff/internal/models"
)

// Sentinel errors for errors.Is checks against a *LoadError.
var (
	ErrNotFound      = errors.New("file not found")
	ErrInvalidFormat = errors.New("invalid JSON")
)

// Kind classifies a load failure.
type Kind int

const (
	// KindNotFound means the output file does not exist.
	KindNotFound Kind = iota
	// KindInvalidFormat means the content is not a well-formed document.
	KindInvalidFormat
)

// String returns the string representation of Kind.
func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindInvalidFormat:
		return "invalid_format"
	default:
		return "unknown"
	}
}

// LoadError reports why a result file could not be loaded.
type LoadError struct {
	Path string
	Kind Kind
	Err  error // Underlying error (optional)
}

// Error implements the error interface for LoadError.
func (e *LoadError) Error() string {
	switch e.Kind {
	case KindNotFound:
		return fmt.Sprintf("File not found: %s", e.Path)
	case KindInvalidFormat:
		if e.Err != nil {
			return fmt.Sprintf("Invalid JSON in file: %s (%v)", e.Path, e.Err)
		}
		return fmt.Sprintf("Invalid JSON in file: %s", e.Path)
	default:
		return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
	}
}

// Unwrap returns the underlying error for error wrapping support.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is matches the package sentinels by kind.
func (e *LoadError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Kind == KindNotFound
	case ErrInvalidFormat:
		return e.Kind == KindInvalidFormat
	}
	return false
}

// Load reads path and decodes it as a single JSON document.
// Absent categories are left empty; no further schema checks are applied.
func Load(path string) (*models.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &LoadError{Path: path, Kind: KindNotFound, Err: err}
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes data read from path.
func Parse(path string, data []byte) (*models.Document, error) {
	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Path: path, Kind: KindInvalidFormat, Err: err}
	}
	return &doc, nil
}
