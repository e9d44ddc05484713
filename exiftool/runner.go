// exiftool/runner.go

package exiftool

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"unicode/utf8"
)

// Operation identifies one of the three fixed command shapes.
type Operation string

const (
	OperationSummary  Operation = "summary"
	OperationDetailed Operation = "detailed"
	OperationClear    Operation = "clear"
)

// Args returns the argument vector for the operation applied to file.
func (o Operation) Args(file string) []string {
	switch o {
	case OperationDetailed:
		return []string{"-a", "-u", "-g1", file}
	case OperationClear:
		return []string{"-all=", "-overwrite_original", file}
	default:
		return []string{file}
	}
}

// Mutates reports whether the operation rewrites the target file.
func (o Operation) Mutates() bool {
	return o == OperationClear
}

// ClearOutcome is the evaluated result of a clear run.
type ClearOutcome struct {
	Result Result
	Failed bool
	// Reason is the text shown to the user on failure: stderr when present, otherwise the exit status.
	Reason string
}

// Runner executes the fixed command shapes against a resolved ToolReference.
type Runner struct {
	ref      ToolReference
	executor Executor
	stat     StatFunc
	names    []string
	logger   Logger
}

// RunnerOption customises a Runner.
type RunnerOption func(*Runner)

// WithRunnerExecutor replaces the executor.
func WithRunnerExecutor(executor Executor) RunnerOption {
	return func(r *Runner) {
		if executor != nil {
			r.executor = executor
		}
	}
}

// WithRunnerStat replaces os.Stat used to re-resolve directory references.
func WithRunnerStat(stat StatFunc) RunnerOption {
	return func(r *Runner) {
		if stat != nil {
			r.stat = stat
		}
	}
}

// WithExecutableNames sets the names looked up inside a directory reference, in order of preference.
func WithExecutableNames(names ...string) RunnerOption {
	return func(r *Runner) {
		if len(names) > 0 {
			r.names = append([]string(nil), names...)
		}
	}
}

// WithRunnerLogger attaches a logger.
func WithRunnerLogger(logger Logger) RunnerOption {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a runner bound to ref.
func NewRunner(ref ToolReference, opts ...RunnerOption) *Runner {
	r := &Runner{
		ref:      ref,
		executor: NewExecExecutor(0),
		stat:     os.Stat,
		names:    DirectoryExecutableNames(runtime.GOOS),
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reference returns the reference the runner was created with.
func (r *Runner) Reference() ToolReference {
	return r.ref
}

// Available reports whether a tool reference was found.
func (r *Runner) Available() bool {
	return r.ref.Found()
}

// ResolveExecutable returns the program to launch. Directory references are re-resolved on every
// call to the first existing known executable name inside the directory.
func (r *Runner) ResolveExecutable() (string, error) {
	if !r.ref.Found() {
		return "", ErrToolNotFound
	}
	if r.ref.Kind != KindDirectory {
		return r.ref.Value, nil
	}

	for _, name := range r.names {
		candidate := filepath.Join(r.ref.Value, name)
		if info, err := r.stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrExecutableNotInDirectory, r.ref.Value)
}

// Run executes op against file and returns the raw result.
// Launch failures are returned as errors; a non-zero exit status is not.
func (r *Runner) Run(ctx context.Context, op Operation, file string) (Result, error) {
	if strings.TrimSpace(file) == "" {
		return Result{}, ErrNoTargetFile
	}
	executable, err := r.ResolveExecutable()
	if err != nil {
		return Result{}, err
	}

	args := op.Args(file)
	r.logger.Info("Running %s: %s %s", op, executable, strings.Join(args, " "))
	result, err := r.executor.Run(ctx, executable, args...)
	if err != nil {
		r.logger.Error("ExifTool %s failed to launch: %v", op, err)
		return result, fmt.Errorf("%s %s: %w", executable, op, err)
	}
	r.logger.Info("ExifTool %s finished with exit code %d in %s", op, result.ExitCode, result.Duration)
	return result, nil
}

// Summary runs the summary view and returns decoded stdout.
func (r *Runner) Summary(ctx context.Context, file string) (string, error) {
	return r.view(ctx, OperationSummary, file)
}

// Detailed runs the detailed, grouped view and returns decoded stdout.
func (r *Runner) Detailed(ctx context.Context, file string) (string, error) {
	return r.view(ctx, OperationDetailed, file)
}

// Clear strips all metadata from file in place and evaluates the outcome.
// The exit status is the primary failure signal; an "error" substring in stderr is the fallback.
func (r *Runner) Clear(ctx context.Context, file string) (ClearOutcome, error) {
	result, err := r.Run(ctx, OperationClear, file)
	if err != nil {
		return ClearOutcome{Result: result}, err
	}
	return EvaluateClear(result), nil
}

func (r *Runner) view(ctx context.Context, op Operation, file string) (string, error) {
	result, err := r.Run(ctx, op, file)
	if err != nil {
		return "", err
	}
	return DecodeOutput(result.Stdout)
}

// EvaluateClear decides whether a clear run failed.
func EvaluateClear(result Result) ClearOutcome {
	outcome := ClearOutcome{Result: result}
	stderr := strings.TrimSpace(string(result.Stderr))

	switch {
	case result.ExitCode != 0:
		outcome.Failed = true
		outcome.Reason = stderr
		if outcome.Reason == "" {
			outcome.Reason = fmt.Sprintf("exit status %d", result.ExitCode)
		}
	case StderrReportsError(result.Stderr):
		outcome.Failed = true
		outcome.Reason = stderr
	}
	return outcome
}

// StderrReportsError reports whether stderr is non-empty and mentions "error" in any case.
func StderrReportsError(stderr []byte) bool {
	if len(stderr) == 0 {
		return false
	}
	return strings.Contains(strings.ToLower(string(stderr)), "error")
}

// DecodeOutput converts raw tool output to text.
func DecodeOutput(raw []byte) (string, error) {
	if !utf8.Valid(raw) {
		return "", ErrUndecodableOutput
	}
	return string(raw), nil
}

// Version runs "<tool> -ver" and returns the trimmed version string.
func (r *Runner) Version(ctx context.Context) (string, error) {
	executable, err := r.ResolveExecutable()
	if err != nil {
		return "", err
	}
	result, err := r.executor.Run(ctx, executable, "-ver")
	if err != nil {
		return "", fmt.Errorf("%s -ver: %w", executable, err)
	}
	if result.ExitCode != 0 {
		return "", fmt.Errorf("%s -ver: exit status %d", executable, result.ExitCode)
	}
	text, err := DecodeOutput(result.Stdout)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}
