package git

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// RunResult is the outcome of a process that was started successfully
type RunResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Runner starts external processes
type Runner interface {
	// Run returns an error only when the process could not be started.
	// A nonzero exit code is reported through RunResult.
	Run(ctx context.Context, dir, name string, args ...string) (RunResult, error)
}

// ExecRunner runs processes with os/exec
type ExecRunner struct{}

// Run executes name with args in dir
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (RunResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := RunResult{Stdout: stdout.String(), Stderr: stderr.String()}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}
	return res, nil
}
