package exiftool

import (
	"context"
	"io/fs"
	"sync"
	"time"
)

type fakeInfo struct {
	name string
	dir  bool
}

func (f fakeInfo) Name() string       { return f.name }
func (f fakeInfo) Size() int64        { return 0 }
func (f fakeInfo) Mode() fs.FileMode  { return 0o755 }
func (f fakeInfo) ModTime() time.Time { return time.Time{} }
func (f fakeInfo) IsDir() bool        { return f.dir }
func (f fakeInfo) Sys() interface{}   { return nil }

// fakeFS answers stat calls from a fixed set of paths and records every probe.
type fakeFS struct {
	mu     sync.Mutex
	files  map[string]bool // path -> isDir
	probed []string
}

func newFakeFS() *fakeFS {
	return &fakeFS{files: map[string]bool{}}
}

func (f *fakeFS) addFile(path string) *fakeFS { f.files[path] = false; return f }
func (f *fakeFS) addDir(path string) *fakeFS  { f.files[path] = true; return f }

func (f *fakeFS) stat(path string) (fs.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probed = append(f.probed, path)
	isDir, ok := f.files[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return fakeInfo{name: path, dir: isDir}, nil
}

type call struct {
	name string
	args []string
}

// fakeExecutor returns a canned result or error and records every call.
type fakeExecutor struct {
	mu     sync.Mutex
	result Result
	err    error
	calls  []call
}

func (f *fakeExecutor) Run(_ context.Context, name string, args ...string) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{name: name, args: append([]string(nil), args...)})
	return f.result, f.err
}

type recordingLogger struct {
	mu       sync.Mutex
	warnings []string
}

func (l *recordingLogger) Info(string, ...interface{}) {}
func (l *recordingLogger) Warning(format string, _ ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warnings = append(l.warnings, format)
}
func (l *recordingLogger) Error(string, ...interface{}) {}
