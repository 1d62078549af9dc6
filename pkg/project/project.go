// Package project classifies a directory into the kind of source project it
// contains, using build-system markers and entry-file naming conventions.
package project

type Type string

const (
	TypeMake       Type = "make"
	TypeCargo      Type = "cargo"
	TypeJavaScript Type = "javascript"
	TypeRust       Type = "rust"
	TypeCpp        Type = "cpp"
	TypeC          Type = "c"
	TypeLua        Type = "lua"
	TypeShell      Type = "shell"
)

// Types lists every type the detector can produce, in a stable order.
func Types() []Type {
	return []Type{
		TypeMake, TypeCargo, TypeJavaScript, TypeRust,
		TypeCpp, TypeC, TypeLua, TypeShell,
	}
}

// Project is the result of detection. It is resolved fresh per request and
// holds no state beyond what was read from the directory.
type Project struct {
	Type Type
	Dir  string // absolute path of the detected directory
	// Entry is the entry file name (e.g. "main.rs") for single-file
	// projects. Empty for make and cargo projects.
	Entry string
	// Name is the cargo package name when the manifest declares one.
	Name string
}
