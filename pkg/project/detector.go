package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ErrNoProject is returned when a directory has no recognizable marker or
// entry file.
var ErrNoProject = errors.New("no project detected")

// AmbiguousError is returned when entry files for more than one language
// qualify and no build-system marker settles the question.
type AmbiguousError struct {
	Candidates []string // entry file names, one per language, sorted
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous project: multiple candidate entry files (%s)", strings.Join(e.Candidates, ", "))
}

// extLanguages maps each supported entry-file extension to its language.
// Ordered so that detection is deterministic when two extensions of the same
// language are present (.bash is preferred over .sh).
var extLanguages = []struct {
	ext  string
	lang Type
}{
	{".js", TypeJavaScript},
	{".rs", TypeRust},
	{".cpp", TypeCpp},
	{".c", TypeC},
	{".lua", TypeLua},
	{".bash", TypeShell},
	{".sh", TypeShell},
}

// entryStems are the conventional entry-file base names, highest precedence
// first. index.js beats main.js beats test.js for the same language.
var entryStems = []string{"index", "main", "test"}

// Detect classifies dir. Build-system markers take precedence over entry
// files because they encode explicit build intent: a Makefile wins over
// everything, a Cargo project (manifest plus src tree) wins over loose
// source files. The scan is non-recursive.
func Detect(dir string) (Project, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return Project{}, fmt.Errorf("resolving %s: %w", dir, err)
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		return Project{}, fmt.Errorf("reading %s: %w", abs, err)
	}

	names := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names[e.Name()] = true
		}
	}

	if names["Makefile"] {
		return Project{Type: TypeMake, Dir: abs}, nil
	}

	if names["Cargo.toml"] && hasSrcTree(abs) {
		return Project{
			Type: TypeCargo,
			Dir:  abs,
			Name: cargoPackageName(filepath.Join(abs, "Cargo.toml")),
		}, nil
	}

	// One best entry file per language, then see how many languages qualify.
	best := make(map[Type]string)
	for _, stem := range entryStems {
		for _, el := range extLanguages {
			if _, found := best[el.lang]; found {
				continue
			}
			if name := stem + el.ext; names[name] {
				best[el.lang] = name
			}
		}
	}

	switch len(best) {
	case 0:
		return Project{}, ErrNoProject
	case 1:
		for lang, entry := range best {
			return Project{Type: lang, Dir: abs, Entry: entry}, nil
		}
	}

	candidates := make([]string, 0, len(best))
	for _, entry := range best {
		candidates = append(candidates, entry)
	}
	sort.Strings(candidates)
	return Project{}, &AmbiguousError{Candidates: candidates}
}

func hasSrcTree(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, "src"))
	return err == nil && info.IsDir()
}
