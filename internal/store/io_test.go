package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"passvault/internal/domain"
)

func TestWriteDocument_YAMLByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "export.yml")
	doc := domain.ExportDocument{
		Username: "alice",
		Email:    "a@x.com",
		Entries:  domain.Entries{"mail": {Username: "alice_m", Password: "secret"}},
	}
	require.NoError(t, DocumentFileWriter{}.WriteDocument(path, doc))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	var got domain.ExportDocument
	require.NoError(t, yaml.Unmarshal(raw, &got))
	assert.Equal(t, doc, got)
}

func TestWriteFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	require.NoError(t, writeFile(path, []byte("one"), fileMode))
	require.NoError(t, writeFile(path, []byte("two"), fileMode))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(raw))
}

func TestWithLock_ReleasesOnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")

	err := withLock(path, func() error { return os.ErrPermission })
	assert.ErrorIs(t, err, os.ErrPermission)

	// Re-acquiring would block forever if the first lock leaked.
	ran := false
	require.NoError(t, withLock(path, func() error { ran = true; return nil }))
	assert.True(t, ran)
}

func TestReadFile_Missing(t *testing.T) {
	b, found, err := readFile(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, b)
}
