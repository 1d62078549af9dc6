package project_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolchest/rig/pkg/project"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestDetect(t *testing.T) {
	t.Run("Makefile", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Makefile", "all:\n\ttrue\n")

		p, err := project.Detect(dir)
		require.NoError(t, err)
		assert.Equal(t, project.TypeMake, p.Type)
		assert.Empty(t, p.Entry)
	})

	t.Run("CargoProject", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Cargo.toml", "[package]\nname = \"widget\"\nversion = \"0.1.0\"\n")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0o755))

		p, err := project.Detect(dir)
		require.NoError(t, err)
		assert.Equal(t, project.TypeCargo, p.Type)
		assert.Equal(t, "widget", p.Name)
	})

	t.Run("CargoManifestWithoutSrcFallsThrough", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Cargo.toml", "[package]\nname = \"widget\"\n")
		writeFile(t, dir, "main.lua", "print('hi')\n")

		p, err := project.Detect(dir)
		require.NoError(t, err)
		assert.Equal(t, project.TypeLua, p.Type)
		assert.Equal(t, "main.lua", p.Entry)
	})

	t.Run("MakefileBeatsCargo", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Makefile", "all:\n")
		writeFile(t, dir, "Cargo.toml", "[package]\nname = \"widget\"\n")
		require.NoError(t, os.Mkdir(filepath.Join(dir, "src"), 0o755))

		p, err := project.Detect(dir)
		require.NoError(t, err)
		assert.Equal(t, project.TypeMake, p.Type)
	})

	t.Run("MarkerBeatsEntryFiles", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "Makefile", "all:\n")
		writeFile(t, dir, "index.js", "")
		writeFile(t, dir, "main.rs", "")

		p, err := project.Detect(dir)
		require.NoError(t, err)
		assert.Equal(t, project.TypeMake, p.Type)
	})

	t.Run("EntryFileLanguages", func(t *testing.T) {
		cases := []struct {
			entry string
			want  project.Type
		}{
			{"index.js", project.TypeJavaScript},
			{"main.rs", project.TypeRust},
			{"main.cpp", project.TypeCpp},
			{"main.c", project.TypeC},
			{"test.lua", project.TypeLua},
			{"main.bash", project.TypeShell},
			{"main.sh", project.TypeShell},
		}
		for _, tc := range cases {
			t.Run(tc.entry, func(t *testing.T) {
				dir := t.TempDir()
				writeFile(t, dir, tc.entry, "")

				p, err := project.Detect(dir)
				require.NoError(t, err)
				assert.Equal(t, tc.want, p.Type)
				assert.Equal(t, tc.entry, p.Entry)
			})
		}
	})

	t.Run("IndexBeatsMainBeatsTest", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "test.js", "")
		writeFile(t, dir, "main.js", "")
		writeFile(t, dir, "index.js", "")

		p, err := project.Detect(dir)
		require.NoError(t, err)
		assert.Equal(t, "index.js", p.Entry)

		require.NoError(t, os.Remove(filepath.Join(dir, "index.js")))
		p, err = project.Detect(dir)
		require.NoError(t, err)
		assert.Equal(t, "main.js", p.Entry)
	})

	t.Run("AmbiguousLanguages", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "index.js", "")
		writeFile(t, dir, "main.rs", "")

		_, err := project.Detect(dir)
		var ambiguous *project.AmbiguousError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, []string{"index.js", "main.rs"}, ambiguous.Candidates)
	})

	t.Run("SameLanguageTwoEntriesIsNotAmbiguous", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "main.bash", "")
		writeFile(t, dir, "test.sh", "")

		p, err := project.Detect(dir)
		require.NoError(t, err)
		assert.Equal(t, project.TypeShell, p.Type)
		assert.Equal(t, "main.bash", p.Entry)
	})

	t.Run("NoProject", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "notes.txt", "nothing to see")
		writeFile(t, dir, "helper.js", "not an entry file")

		_, err := project.Detect(dir)
		assert.ErrorIs(t, err, project.ErrNoProject)
	})

	t.Run("MissingDirectory", func(t *testing.T) {
		_, err := project.Detect(filepath.Join(t.TempDir(), "nope"))
		assert.Error(t, err)
	})

	t.Run("Deterministic", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "main.sh", "")
		writeFile(t, dir, "main.bash", "")

		first, err := project.Detect(dir)
		require.NoError(t, err)
		for i := 0; i < 10; i++ {
			p, err := project.Detect(dir)
			require.NoError(t, err)
			assert.Equal(t, first.Entry, p.Entry)
		}
		assert.Equal(t, "main.bash", first.Entry)
	})
}
