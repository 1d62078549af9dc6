package adapter

import (
	"fmt"

	"github.com/toolchest/rig/pkg/project"
)

// Registry is the adapter table. It is built once by NewRegistry and never
// mutated afterwards, which is what makes concurrent dispatch requests safe
// without locks.
type Registry struct {
	adapters map[project.Type]Adapter
}

// Overrides replace default command templates per type and action. They come
// from configuration and are applied at construction time only.
type Overrides map[project.Type]map[Action][]string

// NewRegistry builds the registry from the default table with overrides
// layered on top. It rejects overrides naming a type or action it does not
// know, so a typo in configuration surfaces at startup rather than silently
// doing nothing.
func NewRegistry(overrides Overrides) (*Registry, error) {
	adapters := make(map[project.Type]Adapter, len(defaultTable))
	for _, a := range defaultTable {
		commands := make(map[Action]CommandSpec, len(a.Commands))
		for action, spec := range a.Commands {
			commands[action] = spec
		}
		a.Commands = commands
		adapters[a.Type] = a
	}

	for typ, commands := range overrides {
		a, ok := adapters[typ]
		if !ok {
			return nil, fmt.Errorf("command override for unknown project type %q", typ)
		}
		for action, argv := range commands {
			if !validAction(action) {
				return nil, fmt.Errorf("command override for unknown action %q (type %q)", action, typ)
			}
			if len(argv) == 0 {
				return nil, fmt.Errorf("empty command override for %s %s", typ, action)
			}
			a.Commands[action] = CommandSpec{Argv: argv}
		}
	}

	return &Registry{adapters: adapters}, nil
}

// Resolve returns the adapter for a project type. Every type the detector
// can produce has a row in the default table, so a miss here means the
// caller bypassed detection.
func (r *Registry) Resolve(typ project.Type) (Adapter, error) {
	a, ok := r.adapters[typ]
	if !ok {
		return Adapter{}, fmt.Errorf("no adapter for project type %q", typ)
	}
	return a, nil
}

// Adapters returns every adapter in detector order, for listing.
func (r *Registry) Adapters() []Adapter {
	out := make([]Adapter, 0, len(r.adapters))
	for _, typ := range project.Types() {
		if a, ok := r.adapters[typ]; ok {
			out = append(out, a)
		}
	}
	return out
}

func validAction(a Action) bool {
	switch a {
	case ActionBuild, ActionRun, ActionRelease, ActionLint:
		return true
	}
	return false
}

// noop is shorthand for the table below.
var noop = CommandSpec{Noop: true}

var defaultTable = []Adapter{
	{
		Type:     project.TypeMake,
		Requires: []string{"make"},
		Commands: map[Action]CommandSpec{
			ActionBuild:   {Argv: []string{"make"}},
			ActionRun:     {Argv: []string{"make", "run"}},
			ActionRelease: {Argv: []string{"make", "release"}},
		},
	},
	{
		Type:     project.TypeCargo,
		Requires: []string{"cargo"},
		Commands: map[Action]CommandSpec{
			ActionBuild:   {Argv: []string{"cargo", "build"}},
			ActionRun:     {Argv: []string{"cargo", "run"}},
			ActionRelease: {Argv: []string{"cargo", "build", "--release"}},
		},
	},
	{
		Type:     project.TypeJavaScript,
		Requires: []string{"node", "eslint"},
		Commands: map[Action]CommandSpec{
			ActionBuild:   noop,
			ActionRun:     {Argv: []string{"node", "{file}"}},
			ActionRelease: noop,
			ActionLint:    {Argv: []string{"eslint", "{file}"}},
		},
	},
	{
		Type:     project.TypeRust,
		Requires: []string{"rustc", "cargo"},
		Commands: map[Action]CommandSpec{
			ActionBuild:   {Argv: []string{"rustc", "{file}"}},
			ActionRun:     {Argv: []string{"./{bin}"}},
			ActionRelease: {Argv: []string{"rustc", "-O", "{file}"}},
		},
	},
	{
		Type:     project.TypeCpp,
		Requires: []string{"g++"},
		Commands: map[Action]CommandSpec{
			ActionBuild:   {Argv: []string{"g++", "{file}", "-o", "{bin}"}},
			ActionRun:     {Argv: []string{"./{bin}"}},
			ActionRelease: {Argv: []string{"g++", "-O2", "{file}", "-o", "{bin}"}},
		},
	},
	{
		Type:     project.TypeC,
		Requires: []string{"gcc"},
		Commands: map[Action]CommandSpec{
			ActionBuild:   {Argv: []string{"gcc", "{file}", "-o", "{bin}"}},
			ActionRun:     {Argv: []string{"./{bin}"}},
			ActionRelease: {Argv: []string{"gcc", "-O2", "{file}", "-o", "{bin}"}},
		},
	},
	{
		Type:     project.TypeLua,
		Requires: []string{"lua", "luacheck"},
		Commands: map[Action]CommandSpec{
			ActionBuild:   noop,
			ActionRun:     {Argv: []string{"lua", "{file}"}},
			ActionRelease: noop,
			ActionLint:    {Argv: []string{"luacheck", "{file}"}},
		},
	},
	{
		Type:     project.TypeShell,
		Requires: []string{"bash", "shellcheck"},
		Commands: map[Action]CommandSpec{
			ActionBuild:   noop,
			ActionRun:     {Argv: []string{"{shell}", "{file}"}},
			ActionRelease: noop,
			ActionLint:    {Argv: []string{"shellcheck", "{file}"}},
		},
	},
}
