package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindFilesByExtension(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
	for _, name := range []string{"a.hcl", "b.yaml", "nested/c.hcl", "d.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(""), 0o644))
	}

	t.Run("finds matches recursively", func(t *testing.T) {
		files, err := FindFilesByExtension(dir, ".hcl")
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})

	t.Run("multiple extensions", func(t *testing.T) {
		files, err := FindFilesByExtension(dir, ".hcl", ".yaml")
		require.NoError(t, err)
		assert.Len(t, files, 3)
	})

	t.Run("no matches", func(t *testing.T) {
		files, err := FindFilesByExtension(dir, ".json")
		require.NoError(t, err)
		assert.Empty(t, files)
	})

	t.Run("no extensions panics", func(t *testing.T) {
		assert.Panics(t, func() { FindFilesByExtension(dir) })
	})
}

func TestResolveDocumentPaths(t *testing.T) {
	t.Run("plain file is returned as-is", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "p.hcl")
		require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

		paths, err := ResolveDocumentPaths(path, ".hcl")
		require.NoError(t, err)
		assert.Equal(t, []string{path}, paths)
	})

	t.Run("directory is expanded", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "a.hcl"), []byte(""), 0o644))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "b.hcl"), []byte(""), 0o644))

		paths, err := ResolveDocumentPaths(dir, ".hcl")
		require.NoError(t, err)
		assert.Len(t, paths, 2)
	})

	t.Run("empty directory fails", func(t *testing.T) {
		_, err := ResolveDocumentPaths(t.TempDir(), ".hcl")
		assert.ErrorContains(t, err, "no .hcl pipeline documents found")
	})

	t.Run("missing path fails", func(t *testing.T) {
		_, err := ResolveDocumentPaths(filepath.Join(t.TempDir(), "nope"), ".hcl")
		assert.ErrorContains(t, err, "pipeline document path")
	})
}
