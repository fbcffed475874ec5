// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package toolchain runs the external document converters.
//
// A converter that exits with a non-zero status is not treated as an error:
// the status is reported to the caller and the batch carries on. Only a
// failure to start the process (missing binary, permission denied) is an
// error.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Runner executes external tools synchronously.
type Runner interface {
	// Run executes bin with args and waits for it to finish. It returns the
	// process exit code; err is non-nil only when the process could not be
	// started or waited on.
	Run(ctx context.Context, bin string, args ...string) (exitCode int, err error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// runner implements Runner on top of an executor. The converters' own output
// is passed straight through to stdout and stderr.
type runner struct {
	exec   executor
	stdout io.Writer
	stderr io.Writer
}

var defaultExec = &osExecutor{}

// New returns a Runner that streams tool output to stdout and stderr.
// Nil writers default to the process's standard streams.
func New(stdout, stderr io.Writer) Runner {
	return newRunner(defaultExec, stdout, stderr)
}

func newRunner(exec executor, stdout, stderr io.Writer) *runner {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &runner{exec: exec, stdout: stdout, stderr: stderr}
}

func (r *runner) Run(ctx context.Context, bin string, args ...string) (int, error) {
	err := r.exec.Run(ctx, bin, args, r.stdout, r.stderr)
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("running %s: %w", bin, err)
}

// Status reports whether a tool binary can be found.
type Status struct {
	Bin  string
	Path string
	Err  error
}

// Available reports whether the binary was found on PATH.
func (s Status) Available() bool {
	return s.Err == nil
}

// Check looks up each binary on PATH.
func Check(bins ...string) []Status {
	return check(defaultExec, bins...)
}

func check(exec executor, bins ...string) []Status {
	out := make([]Status, 0, len(bins))
	for _, bin := range bins {
		path, err := exec.LookPath(bin)
		out = append(out, Status{Bin: bin, Path: path, Err: err})
	}
	return out
}
