package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toolchest/rig/pkg/adapter"
)

func init() {
	rootCmd.AddCommand(newReleaseCmd())
}

func newReleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release [path]",
		Short: "Build the project with release optimizations",
		Long: `Like build, but with the toolchain's optimized/release mode:
make release, cargo build --release, or the compiler's optimization flags
for single-file projects.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAction(adapter.ActionRelease),
	}
}
