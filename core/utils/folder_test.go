package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareFolder(t *testing.T) {
	t.Run("CreatesNested", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "a", "b", "c")

		got, err := PrepareFolder(dir, false)
		require.NoError(t, err)
		assert.Equal(t, dir, got)
		assert.DirExists(t, dir)
	})

	t.Run("ClearEmptiesExisting", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested"), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "old.csv"), []byte("1\n"), 0o644))

		_, err := PrepareFolder(dir, true)
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("KeepsContentWithoutClear", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "keep.csv")
		require.NoError(t, os.WriteFile(file, []byte("1\n"), 0o644))

		_, err := PrepareFolder(dir, false)
		require.NoError(t, err)
		assert.FileExists(t, file)
	})

	t.Run("ClearMissingIsFine", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "missing")

		_, err := PrepareFolder(dir, true)
		require.NoError(t, err)
		assert.DirExists(t, dir)
	})

	t.Run("Idempotent", func(t *testing.T) {
		dir := t.TempDir()
		for i := 0; i < 2; i++ {
			_, err := PrepareFolder(dir, false)
			require.NoError(t, err)
		}
	})

	t.Run("Relative", func(t *testing.T) {
		t.Chdir(t.TempDir())

		got, err := PrepareFolder("data_rds", true)
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(got))
		assert.Equal(t, "data_rds", filepath.Base(got))
		assert.DirExists(t, got)
	})

	t.Run("FileInTheWay", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "plain")
		require.NoError(t, os.WriteFile(file, nil, 0o644))

		_, err := PrepareFolder(file, true)
		assert.Error(t, err)
	})
}
