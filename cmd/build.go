package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toolchest/rig/pkg/adapter"
)

func init() {
	rootCmd.AddCommand(newBuildCmd())
}

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build [path]",
		Short: "Build the project in the given directory",
		Long: `Detects the project in the target directory (default: current directory)
and invokes its toolchain's build command, e.g. make, cargo build, or the
language compiler for single-file projects. Interpreted languages have
nothing to build and succeed immediately.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAction(adapter.ActionBuild),
	}
}
