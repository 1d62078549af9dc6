package cmd

import (
	"github.com/spf13/cobra"

	"github.com/toolchest/rig/pkg/adapter"
)

func init() {
	rootCmd.AddCommand(newLintCmd())
}

func newLintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lint [path]",
		Short: "Lint the project in the given directory",
		Long: `Runs the language's lint tool against the detected entry file:
eslint for JavaScript, luacheck for Lua, shellcheck for shell scripts.
Project types without an established lint tool report the action as
unsupported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAction(adapter.ActionLint),
	}
}
