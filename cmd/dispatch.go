package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/toolchest/rig/pkg/adapter"
	"github.com/toolchest/rig/pkg/config"
	"github.com/toolchest/rig/pkg/deps"
	"github.com/toolchest/rig/pkg/dispatch"
	"github.com/toolchest/rig/pkg/executor"
)

// targetDir resolves the optional path argument to an absolute directory.
// The directory is threaded explicitly through every stage; nothing below
// the CLI consults the working directory.
func targetDir(args []string) (string, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

// newDispatcher assembles the pipeline for one invocation: configuration,
// registry, checker and executor are built fresh and shared with nothing.
func newDispatcher(dir string) (*dispatch.Dispatcher, error) {
	cfg, err := config.Load(flagConfig, dir)
	if err != nil {
		return nil, err
	}

	registry, err := adapter.NewRegistry(cfg.Overrides())
	if err != nil {
		return nil, err
	}

	constraints, raw, err := cfg.Constraints()
	if err != nil {
		return nil, err
	}

	logger := newLogger()
	if cfg.Path != "" {
		logger.WithField("path", cfg.Path).Debug("Loaded configuration")
	}

	return dispatch.New(registry, deps.NewChecker(constraints, raw), executor.New(logger), logger), nil
}

// runAction is the RunE body shared by build, run, release and lint.
func runAction(action adapter.Action) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		dir, err := targetDir(args)
		if err != nil {
			return err
		}

		d, err := newDispatcher(dir)
		if err != nil {
			return err
		}

		fmt.Println(render(bannerStyle, fmt.Sprintf("rig %s", action)) + render(dimStyle, " "+dir))

		outcome, err := d.Dispatch(cmd.Context(), action, dir)
		if err != nil {
			return err
		}

		if outcome.Noop {
			fmt.Println(render(dimStyle, fmt.Sprintf("nothing to %s for a %s project", action, outcome.Project.Type)))
			return nil
		}

		target := outcome.Project.Entry
		if target == "" {
			target = outcome.Project.Name
		}
		label := string(outcome.Project.Type)
		if target != "" {
			label = fmt.Sprintf("%s, %s", label, target)
		}

		if outcome.ExitCode == 0 {
			fmt.Println(render(successStyle, fmt.Sprintf("%s ok", action)) +
				render(dimStyle, fmt.Sprintf(" (%s) in %s", label, outcome.Duration.Round(time.Millisecond))))
			return nil
		}

		fmt.Println(render(failureStyle, fmt.Sprintf("%s failed", action)) +
			render(dimStyle, fmt.Sprintf(" (%s) exit code %d", label, outcome.ExitCode)))
		return &childExitError{code: outcome.ExitCode}
	}
}
