// Package executor spawns a single external toolchain process, streaming its
// output live while capturing it, and reports the exit status as data rather
// than translating it.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
)

// Result is the outcome of a process that was successfully spawned. A
// nonzero exit code is reported here as-is; it is not an error.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
	Duration time.Duration
}

// SpawnError means the child process never started, for example when the
// binary disappeared between the dependency check and execution. It is
// distinct from a nonzero exit so a broken environment is never mistaken for
// a failing build.
type SpawnError struct {
	Binary string
	Err    error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("failed to spawn %s: %v", e.Binary, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// Executor runs one child process per call. Output writers default to the
// executor process's own streams so long-running builds give live feedback.
type Executor struct {
	Stdout io.Writer
	Stderr io.Writer
	Stdin  io.Reader
	Logger *logrus.Logger

	// GracePeriod bounds how long a cancelled child may linger after the
	// interrupt is forwarded before it is killed outright.
	GracePeriod time.Duration
}

func New(logger *logrus.Logger) *Executor {
	return &Executor{
		Stdout:      os.Stdout,
		Stderr:      os.Stderr,
		Stdin:       os.Stdin,
		Logger:      logger,
		GracePeriod: 10 * time.Second,
	}
}

// Execute spawns argv in dir and blocks until the child exits. Cancelling ctx
// forwards an interrupt to the child rather than orphaning it.
func (x *Executor) Execute(ctx context.Context, argv []string, dir string) (Result, error) {
	if len(argv) == 0 {
		return Result{}, &SpawnError{Err: errors.New("empty argument vector")}
	}

	var stdout, stderr bytes.Buffer

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Stdin = x.Stdin
	cmd.Stdout = io.MultiWriter(x.Stdout, &stdout)
	cmd.Stderr = io.MultiWriter(x.Stderr, &stderr)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = x.GracePeriod

	x.Logger.WithFields(logrus.Fields{"argv": argv, "dir": dir}).Debug("Spawning process")

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return Result{}, &SpawnError{Binary: argv[0], Err: err}
	}

	err := cmd.Wait()

	code := cmd.ProcessState.ExitCode()
	if status, ok := cmd.ProcessState.Sys().(syscall.WaitStatus); ok && status.Signaled() {
		// Shell convention for signal deaths, so a forwarded SIGINT
		// surfaces as 130 rather than 255.
		code = 128 + int(status.Signal())
	}

	result := Result{
		ExitCode: code,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return Result{}, fmt.Errorf("waiting for %s: %w", argv[0], err)
		}
	}

	x.Logger.WithFields(logrus.Fields{
		"argv":     argv,
		"exitCode": result.ExitCode,
		"duration": result.Duration,
	}).Debug("Process exited")

	return result, nil
}
