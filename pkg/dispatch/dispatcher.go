// Package dispatch drives one (action, directory) request through the
// pipeline: detect the project, resolve its adapter, verify the action and
// the toolchain, then execute. Each stage short-circuits on failure and no
// stage retries.
package dispatch

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/toolchest/rig/pkg/adapter"
	"github.com/toolchest/rig/pkg/deps"
	"github.com/toolchest/rig/pkg/executor"
	"github.com/toolchest/rig/pkg/project"
)

// Outcome is a completed dispatch. For noop actions no process was spawned
// and the embedded result is zero apart from the exit code.
type Outcome struct {
	executor.Result
	Project project.Project
	Argv    []string
	Noop    bool
}

// Dispatcher wires the pipeline together. The registry is immutable and the
// other components hold no per-request state, so a single Dispatcher is safe
// for concurrent use.
type Dispatcher struct {
	registry *adapter.Registry
	checker  *deps.Checker
	executor *executor.Executor
	logger   *logrus.Logger
}

func New(registry *adapter.Registry, checker *deps.Checker, exec *executor.Executor, logger *logrus.Logger) *Dispatcher {
	return &Dispatcher{
		registry: registry,
		checker:  checker,
		executor: exec,
		logger:   logger,
	}
}

// Dispatch runs action against dir. Everything resolved along the way
// (project, adapter, argv) is private to this request and discarded after.
func (d *Dispatcher) Dispatch(ctx context.Context, action adapter.Action, dir string) (Outcome, error) {
	proj, err := project.Detect(dir)
	if err != nil {
		return Outcome{}, &Error{Stage: StageDetect, Err: err}
	}
	d.logger.WithFields(logrus.Fields{
		"type":  proj.Type,
		"entry": proj.Entry,
		"dir":   proj.Dir,
	}).Debug("Detected project")

	adp, err := d.registry.Resolve(proj.Type)
	if err != nil {
		return Outcome{}, &Error{Stage: StageResolve, Err: err}
	}

	// Action support is checked before dependencies so an unsupported
	// request fails without touching the environment.
	spec, ok := adp.Command(action)
	if !ok {
		return Outcome{}, &Error{Stage: StageAction, Err: &UnsupportedActionError{
			Action: action,
			Type:   proj.Type,
		}}
	}

	if spec.Noop {
		d.logger.WithFields(logrus.Fields{"action": action, "type": proj.Type}).
			Debug("Nothing to do for this action")
		return Outcome{Project: proj, Noop: true}, nil
	}

	if err := d.checker.Check(adp); err != nil {
		return Outcome{}, &Error{Stage: StageDeps, Err: err}
	}

	argv := spec.Expand(proj)
	result, err := d.executor.Execute(ctx, argv, proj.Dir)
	if err != nil {
		return Outcome{}, &Error{Stage: StageExecute, Err: err}
	}

	return Outcome{Result: result, Project: proj, Argv: argv}, nil
}
