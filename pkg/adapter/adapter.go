// Package adapter maps project types to the external toolchains that serve
// them. The mapping is a declarative table: each adapter names the binaries
// it needs and an argv template per action, so supporting a new language is
// a data change, not new dispatch logic.
package adapter

import (
	"path/filepath"
	"strings"

	"github.com/toolchest/rig/pkg/project"
)

// Action is one of the operations the CLI can dispatch.
type Action string

const (
	ActionBuild   Action = "build"
	ActionRun     Action = "run"
	ActionRelease Action = "release"
	ActionLint    Action = "lint"
)

// Actions lists every action in a stable order.
func Actions() []Action {
	return []Action{ActionBuild, ActionRun, ActionRelease, ActionLint}
}

// CommandSpec is an argv template for one action. Placeholders are expanded
// against the detected project:
//
//	{file}  entry file name (main.rs)
//	{bin}   entry file name with its extension stripped (main)
//	{shell} bash for .bash entry files, sh for .sh
//
// A Noop spec means the action completes successfully without spawning
// anything (there is nothing to build for an interpreted language).
type CommandSpec struct {
	Argv []string
	Noop bool
}

// Expand substitutes placeholders against p and returns a fresh argv.
func (s CommandSpec) Expand(p project.Project) []string {
	argv := make([]string, len(s.Argv))
	for i, arg := range s.Argv {
		arg = strings.ReplaceAll(arg, "{file}", p.Entry)
		arg = strings.ReplaceAll(arg, "{bin}", binaryName(p.Entry))
		arg = strings.ReplaceAll(arg, "{shell}", shellInterpreter(p.Entry))
		argv[i] = arg
	}
	return argv
}

// Adapter binds a project type to its toolchain: the binaries that must be
// resolvable before anything is spawned, and the command table itself.
type Adapter struct {
	Type     project.Type
	Requires []string
	Commands map[Action]CommandSpec
}

// Command returns the spec for action, reporting whether the adapter
// supports it at all.
func (a Adapter) Command(action Action) (CommandSpec, bool) {
	spec, ok := a.Commands[action]
	return spec, ok
}

func binaryName(entry string) string {
	return strings.TrimSuffix(entry, filepath.Ext(entry))
}

func shellInterpreter(entry string) string {
	if strings.HasSuffix(entry, ".bash") {
		return "bash"
	}
	return "sh"
}
