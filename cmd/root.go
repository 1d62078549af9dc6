// Package cmd implements the rig command line interface.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/toolchest/rig/pkg/dispatch"
)

var (
	flagVerbose bool
	flagNoColor bool
	flagConfig  string
)

var rootCmd = &cobra.Command{
	Use:   "rig",
	Short: "Detect a project's toolchain and dispatch build, run, release and lint to it",
	Long: `rig inspects a directory, figures out what kind of project it contains
(Makefile, Cargo, or a conventionally named entry file), and invokes the
matching external toolchain for you.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a rig.toml (default: project dir, then user config dir)")
}

// childExitError carries a child process's nonzero exit code up to Execute.
// The child already wrote its own diagnostics, so nothing is printed for it.
type childExitError struct {
	code int
}

func (e *childExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// Execute runs the CLI and returns the process exit code: the child's own
// code when one was spawned, otherwise a stage-specific failure code.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		var child *childExitError
		if errors.As(err, &child) {
			return child.code
		}
		fmt.Fprintln(os.Stderr, renderError(err))
		return dispatch.ExitCode(err)
	}
	return 0
}

// newLogger builds the logger threaded through the dispatch pipeline.
func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if flagVerbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}
