// exiftool/locator.go

package exiftool

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// Sentinel errors returned by the locator and the runner.
var (
	ErrToolNotFound             = errors.New("exiftool not found")
	ErrExecutableNotInDirectory = errors.New("exiftool executable not found in directory")
	ErrNoTargetFile             = errors.New("no file selected")
	ErrUndecodableOutput        = errors.New("exiftool output is not valid UTF-8")
)

// Logger is the subset of the application logger used by this package.
type Logger interface {
	Info(format string, args ...interface{})
	Warning(format string, args ...interface{})
	Error(format string, args ...interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})    {}
func (nopLogger) Warning(string, ...interface{}) {}
func (nopLogger) Error(string, ...interface{})   {}

// RefKind describes what a ToolReference points at.
type RefKind int

const (
	// KindNone is the zero value: no tool was found.
	KindNone RefKind = iota
	// KindExecutable is an absolute path to the executable itself.
	KindExecutable
	// KindDirectory is a directory expected to contain one of the known executable names.
	KindDirectory
	// KindCommand is a bare command name resolved through the process search path.
	KindCommand
)

// String returns a short lowercase name of the kind.
func (k RefKind) String() string {
	switch k {
	case KindExecutable:
		return "executable"
	case KindDirectory:
		return "directory"
	case KindCommand:
		return "command"
	default:
		return "none"
	}
}

// ToolReference identifies how to invoke the tool. It is resolved once and never mutated.
type ToolReference struct {
	Value string
	Kind  RefKind
}

// Found reports whether the reference points at anything.
func (r ToolReference) Found() bool {
	return r.Kind != KindNone && r.Value != ""
}

// String returns the raw reference value.
func (r ToolReference) String() string {
	return r.Value
}

// StatFunc reports file information for a path, like os.Stat.
type StatFunc func(path string) (fs.FileInfo, error)

// Locator resolves the ToolReference from a candidate list.
type Locator struct {
	paths    SearchPaths
	stat     StatFunc
	executor Executor
	logger   Logger
	warn     func(message string)

	warnOnce sync.Once
}

// LocatorOption customises a Locator.
type LocatorOption func(*Locator)

// WithStat replaces os.Stat for existence checks.
func WithStat(stat StatFunc) LocatorOption {
	return func(l *Locator) {
		if stat != nil {
			l.stat = stat
		}
	}
}

// WithExecutor replaces the executor used for the version probe.
func WithExecutor(executor Executor) LocatorOption {
	return func(l *Locator) {
		if executor != nil {
			l.executor = executor
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger Logger) LocatorOption {
	return func(l *Locator) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithWarning sets the callback invoked once when no candidate is usable.
func WithWarning(warn func(message string)) LocatorOption {
	return func(l *Locator) {
		l.warn = warn
	}
}

// NewLocator creates a locator over the given candidate list.
func NewLocator(paths SearchPaths, opts ...LocatorOption) *Locator {
	l := &Locator{
		paths:    paths,
		stat:     os.Stat,
		executor: NewExecExecutor(0),
		logger:   nopLogger{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Locate walks the candidate list and returns the first usable reference.
// Order: primary path, alternatives, then "<command> -ver" through the search path.
// When nothing works the warning callback fires (at most once per Locator) and ErrToolNotFound is returned.
func (l *Locator) Locate(ctx context.Context) (ToolReference, error) {
	if ref, ok := l.probePath(l.paths.Primary); ok {
		l.logger.Info("ExifTool found at primary location: %s", ref.Value)
		return ref, nil
	}

	for _, candidate := range l.paths.Alternatives {
		if ref, ok := l.probePath(candidate); ok {
			l.logger.Info("ExifTool found at alternative location: %s (%s)", ref.Value, ref.Kind)
			return ref, nil
		}
	}

	if command := strings.TrimSpace(l.paths.Command); command != "" {
		ok, err := l.probeCommand(ctx, command)
		if ok {
			l.logger.Info("ExifTool available on search path as '%s'", command)
			return ToolReference{Value: command, Kind: KindCommand}, nil
		}
		if err != nil {
			l.logger.Warning("ExifTool version probe failed for '%s': %v", command, err)
		}
	}

	l.logger.Warning("ExifTool not found in any configured location")
	l.warnOnce.Do(func() {
		if l.warn != nil {
			l.warn(fmt.Sprintf("%s: %s", ErrToolNotFound, strings.Join(l.paths.All(), ", ")))
		}
	})
	return ToolReference{}, ErrToolNotFound
}

// probePath checks a single fixed candidate.
func (l *Locator) probePath(path string) (ToolReference, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return ToolReference{}, false
	}
	info, err := l.stat(path)
	if err != nil {
		return ToolReference{}, false
	}
	if info.IsDir() {
		return ToolReference{Value: path, Kind: KindDirectory}, true
	}
	return ToolReference{Value: path, Kind: KindExecutable}, true
}

// probeCommand runs "<command> -ver" and reports whether it exited with status zero.
// A missing command is reported as (false, nil) since it only means "not found".
func (l *Locator) probeCommand(ctx context.Context, command string) (bool, error) {
	result, err := l.executor.Run(ctx, command, "-ver")
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if result.ExitCode != 0 {
		return false, fmt.Errorf("exit status %d", result.ExitCode)
	}
	return true, nil
}
