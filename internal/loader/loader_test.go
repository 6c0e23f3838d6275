package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/skydiff/internal/models"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "output.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadValidDocument(t *testing.T) {
	path := writeFile(t, `{"unused_imports":[{"full_name":"a.b.c"}],"unused_functions":[]}`)

	doc, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, doc)

	items := doc.Items(models.UnusedImports)
	require.Len(t, items, 1)
	assert.Equal(t, "a.b.c", items[0].FullName)
	assert.Empty(t, doc.Items(models.UnusedClasses))
}

func TestLoadEmptyObject(t *testing.T) {
	doc, err := Load(writeFile(t, `{}`))
	require.NoError(t, err)
	assert.False(t, doc.Has(models.UnusedFunctions))
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.json")

	doc, err := Load(path)
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrInvalidFormat))

	var loadErr *LoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, KindNotFound, loadErr.Kind)
	assert.Equal(t, path, loadErr.Path)
	assert.Contains(t, err.Error(), "File not found: "+path)
}

func TestLoadInvalidFormat(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "truncated", content: `{"unused_imports": [`},
		{name: "empty file", content: ``},
		{name: "plain text", content: "Analyzing 12 files...\n"},
		{name: "array root", content: `[]`},
		{name: "wrong category type", content: `{"unused_classes": {"name": "C"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, tt.content)

			doc, err := Load(path)
			assert.Nil(t, doc)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidFormat))
			assert.Contains(t, err.Error(), "Invalid JSON in file: "+path)
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "not_found", KindNotFound.String())
	assert.Equal(t, "invalid_format", KindInvalidFormat.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
