package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTargetDir(t *testing.T) {
	t.Run("DefaultsToCwd", func(t *testing.T) {
		dir, err := targetDir(nil)
		require.NoError(t, err)
		cwd, err := os.Getwd()
		require.NoError(t, err)
		assert.Equal(t, cwd, dir)
	})

	t.Run("ResolvesRelativePath", func(t *testing.T) {
		base := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(base, "proj"), 0o755))
		prev, err := os.Getwd()
		require.NoError(t, err)
		require.NoError(t, os.Chdir(base))
		t.Cleanup(func() { _ = os.Chdir(prev) })

		dir, err := targetDir([]string{"proj"})
		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(dir))
		assert.Equal(t, "proj", filepath.Base(dir))
	})

	t.Run("RejectsMissingPath", func(t *testing.T) {
		_, err := targetDir([]string{filepath.Join(t.TempDir(), "nope")})
		assert.Error(t, err)
	})

	t.Run("RejectsFiles", func(t *testing.T) {
		dir := t.TempDir()
		file := filepath.Join(dir, "main.c")
		require.NoError(t, os.WriteFile(file, nil, 0o644))

		_, err := targetDir([]string{file})
		assert.Error(t, err)
	})
}

func TestOutputFormat(t *testing.T) {
	var f outputFormat
	for _, valid := range []string{"table", "json", "yaml"} {
		assert.NoError(t, f.Set(valid))
		assert.Equal(t, valid, f.String())
	}
	assert.Error(t, f.Set("xml"))
}

func TestChildExitError(t *testing.T) {
	err := &childExitError{code: 7}
	assert.Equal(t, "exit code 7", err.Error())
}
