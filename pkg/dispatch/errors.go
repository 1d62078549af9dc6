package dispatch

import (
	"errors"
	"fmt"

	"github.com/toolchest/rig/pkg/adapter"
	"github.com/toolchest/rig/pkg/deps"
	"github.com/toolchest/rig/pkg/executor"
	"github.com/toolchest/rig/pkg/project"
)

// Stage identifies where in the pipeline a dispatch failed.
type Stage string

const (
	StageDetect  Stage = "detect"
	StageResolve Stage = "resolve"
	StageAction  Stage = "action"
	StageDeps    Stage = "deps"
	StageExecute Stage = "execute"
)

// Error tags a pipeline failure with the stage that produced it. No stage
// retries; the underlying error is surfaced verbatim.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// UnsupportedActionError is returned when the adapter's command table has no
// template for the requested action. It fires before any dependency check or
// process spawn.
type UnsupportedActionError struct {
	Action adapter.Action
	Type   project.Type
}

func (e *UnsupportedActionError) Error() string {
	return fmt.Sprintf("%s is not supported for %s projects", e.Action, e.Type)
}

// Exit codes by failing stage, used by the CLI. A successfully spawned
// child's own exit code is passed through unchanged instead.
const (
	ExitFailure     = 1
	ExitDetection   = 2
	ExitMissingDeps = 3
	ExitUnsupported = 4
	ExitSpawn       = 5
)

// ExitCode maps a dispatch error onto the CLI exit-code policy.
func ExitCode(err error) int {
	var (
		ambiguous   *project.AmbiguousError
		missing     *deps.MissingError
		unsupported *UnsupportedActionError
		spawn       *executor.SpawnError
	)
	switch {
	case errors.Is(err, project.ErrNoProject), errors.As(err, &ambiguous):
		return ExitDetection
	case errors.As(err, &missing):
		return ExitMissingDeps
	case errors.As(err, &unsupported):
		return ExitUnsupported
	case errors.As(err, &spawn):
		return ExitSpawn
	}
	return ExitFailure
}
