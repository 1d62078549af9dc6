package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toolchest/rig/pkg/adapter"
)

func init() {
	rootCmd.AddCommand(newRunCmd())
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [path]",
		Short: "Run the project in the given directory",
		Long: `Detects the project in the target directory and runs it: make run,
cargo run, the language interpreter for script projects, or the compiled
binary for single-file compiled projects. rig's exit code is the child
process's exit code, unchanged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAction(adapter.ActionRun),
	}
}
