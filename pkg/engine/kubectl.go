package engine

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
)

// Result holds the exit status and captured output of one kubectl run.
type Result struct {
	Code   int
	Stdout string
	Stderr string
}

// Runner runs a kubectl command to completion. A non-zero exit status is
// data, returned in Result; the error is reserved for commands that could
// not be started at all.
type Runner interface {
	Run(ctx context.Context, args ...string) (Result, error)
}

// KubectlExecutor an executor that shells out to run kubectl commands.
type KubectlExecutor struct {
	envVars []string
}

// NewKubectlExecutor creates a new executor that runs kubectl commands.
func NewKubectlExecutor(envVars []string) *KubectlExecutor {
	return &KubectlExecutor{
		envVars: envVars,
	}
}

// Run executes the given argument vector, the first token being the binary.
func (e *KubectlExecutor) Run(ctx context.Context, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	if len(e.envVars) > 0 {
		cmd.Env = e.envVars
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Code = exitErr.ExitCode()
			return res, nil
		}
		return res, err
	}

	return res, nil
}
