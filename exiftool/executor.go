// exiftool/executor.go

// Package exiftool locates the external ExifTool executable and runs it against a single media file.
// The application never parses metadata itself; everything here is process plumbing.
package exiftool

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

// Result holds the raw output of one tool invocation.
type Result struct {
	Stdout   []byte
	Stderr   []byte
	ExitCode int
	Duration time.Duration
}

// Executor launches a process and waits for it to finish.
// A non-zero exit status is reported through Result.ExitCode, not as an error.
// The returned error is reserved for launch failures (missing executable, permission denied, timeout).
type Executor interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecExecutor runs commands with os/exec.
type ExecExecutor struct {
	// Timeout bounds each run. Zero means no timeout.
	Timeout time.Duration
}

// NewExecExecutor returns an executor with the given timeout (zero disables it).
func NewExecExecutor(timeout time.Duration) *ExecExecutor {
	return &ExecExecutor{Timeout: timeout}
}

// Run executes name with args and captures stdout and stderr separately.
func (e *ExecExecutor) Run(ctx context.Context, name string, args ...string) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if e.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.Timeout)
		defer cancel()
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	started := time.Now()
	err := cmd.Run()
	result := Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(started),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		if ctx.Err() != nil {
			return result, ctx.Err()
		}
		return result, err
	}

	return result, nil
}
