package modules

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"MetaCleaner/common"
	"MetaCleaner/exiftool"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	mu        sync.Mutex
	ref       exiftool.ToolReference
	summary   string
	detailed  string
	viewErr   error
	outcome   exiftool.ClearOutcome
	clearErr  error
	summaries int
	details   int
	clears    int
}

func (f *fakeRunner) Reference() exiftool.ToolReference { return f.ref }
func (f *fakeRunner) Available() bool                   { return f.ref.Found() }

func (f *fakeRunner) Summary(ctx context.Context, file string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.summaries++
	return f.summary, f.viewErr
}

func (f *fakeRunner) Detailed(ctx context.Context, file string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.details++
	return f.detailed, f.viewErr
}

func (f *fakeRunner) Clear(ctx context.Context, file string) (exiftool.ClearOutcome, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.clears++
	return f.outcome, f.clearErr
}

type fakeRecorder struct {
	entries []common.JournalEntry
	err     error
}

func (r *fakeRecorder) Record(entry common.JournalEntry) (common.JournalEntry, error) {
	if r.err != nil {
		return entry, r.err
	}
	r.entries = append(r.entries, entry)
	return entry, nil
}

func foundRunner() *fakeRunner {
	return &fakeRunner{
		ref:      exiftool.ToolReference{Value: "/usr/bin/exiftool", Kind: exiftool.KindExecutable},
		summary:  "File Name : a.jpg\nMake : Canon\n",
		detailed: "---- System ----\nFile Name : a.jpg\n",
	}
}

type cleanerFixture struct {
	module    *MetadataCleanerModule
	runner    *fakeRunner
	recorder  *fakeRecorder
	confirmed *bool
	notified  int
	file      string
}

func newCleanerFixture(t *testing.T, runner *fakeRunner) *cleanerFixture {
	t.Helper()
	test.NewApp()

	dir := t.TempDir()
	file := filepath.Join(dir, "a.jpg")
	require.NoError(t, os.WriteFile(file, []byte("jpeg"), 0644))

	cfgMgr, err := common.NewConfigManager(filepath.Join(dir, common.FileNameSettings))
	require.NoError(t, err)

	f := &cleanerFixture{runner: runner, recorder: &fakeRecorder{}, file: file}
	f.module = NewMetadataCleanerModule(nil, cfgMgr, common.NewErrorHandler(nil, nil), runner, f.recorder)
	f.module.SetAsyncRunner(func(work func()) { work() })
	f.module.chooseFile = func(string, string) (string, error) { return file, nil }
	f.module.confirm = func(title, message string, callback func(bool)) {
		if f.confirmed == nil {
			t.Fatal("unexpected confirmation")
		}
		callback(*f.confirmed)
	}
	f.module.notify = func(string, string) { f.notified++ }
	return f
}

func answer(yes bool) *bool { return &yes }

func TestCleanerControlsDisabledWithoutFile(t *testing.T) {
	f := newCleanerFixture(t, foundRunner())

	assert.Empty(t, f.module.TargetFile())
	assert.False(t, f.module.selectBtn.Disabled())
	assert.True(t, f.module.detailBtn.Disabled())
	assert.True(t, f.module.clearBtn.Disabled())
}

func TestCleanerSelectShowsSummaryAndEnablesControls(t *testing.T) {
	f := newCleanerFixture(t, foundRunner())

	f.module.selectFile()

	assert.Equal(t, f.file, f.module.TargetFile())
	assert.Equal(t, f.runner.summary, f.module.output.Text)
	assert.Equal(t, 1, f.runner.summaries)
	assert.False(t, f.module.detailBtn.Disabled())
	assert.False(t, f.module.clearBtn.Disabled())
	assert.Equal(t, filepath.Dir(f.file), f.module.ConfigMgr.GetCleanerCfg().LastDirectory.Value)
}

func TestCleanerSelectCancelledKeepsState(t *testing.T) {
	f := newCleanerFixture(t, foundRunner())
	f.module.chooseFile = func(string, string) (string, error) { return "", nil }

	f.module.selectFile()

	assert.Empty(t, f.module.TargetFile())
	assert.Zero(t, f.runner.summaries)
}

func TestCleanerDetailedOnSelect(t *testing.T) {
	f := newCleanerFixture(t, foundRunner())
	f.module.detailedCheck.SetChecked(true)

	f.module.selectFile()

	assert.Equal(t, f.runner.detailed, f.module.output.Text)
	assert.Zero(t, f.runner.summaries)
	assert.Equal(t, "true", f.module.ConfigMgr.GetCleanerCfg().ShowDetailedOnSelect.Value)
}

func TestCleanerWithoutToolKeepsControlsDisabled(t *testing.T) {
	f := newCleanerFixture(t, &fakeRunner{})

	f.module.selectFile()

	assert.Equal(t, f.file, f.module.TargetFile())
	assert.Zero(t, f.runner.summaries)
	assert.True(t, f.module.detailBtn.Disabled())
	assert.True(t, f.module.clearBtn.Disabled())
}

func TestCleanerViewErrorShownInline(t *testing.T) {
	runner := foundRunner()
	runner.viewErr = exiftool.ErrUndecodableOutput
	f := newCleanerFixture(t, runner)

	f.module.selectFile()

	assert.Equal(t, describeRunError(exiftool.ErrUndecodableOutput), f.module.output.Text)
	assert.False(t, f.module.clearBtn.Disabled())
}

func TestCleanerDeclineLaunchesNothing(t *testing.T) {
	f := newCleanerFixture(t, foundRunner())
	f.module.selectFile()
	f.confirmed = answer(false)

	f.module.requestClear()

	assert.Zero(t, f.runner.clears)
	assert.Equal(t, 1, f.runner.summaries)
	assert.Empty(t, f.recorder.entries)
	assert.Equal(t, f.file, f.module.TargetFile())
}

func TestCleanerClearSuccessRefreshesSummary(t *testing.T) {
	runner := foundRunner()
	runner.outcome = exiftool.ClearOutcome{Result: exiftool.Result{Stderr: []byte("    1 image files updated\n")}}
	f := newCleanerFixture(t, runner)
	f.module.selectFile()
	f.confirmed = answer(true)

	cleared := 0
	f.module.OnCleared = func() { cleared++ }
	f.module.requestClear()

	assert.Equal(t, 1, runner.clears)
	assert.Equal(t, 2, runner.summaries)
	assert.Equal(t, 1, f.notified)
	assert.Equal(t, 1, cleared)
	require.Len(t, f.recorder.entries, 1)
	assert.True(t, f.recorder.entries[0].Succeeded)
	assert.Equal(t, f.file, f.recorder.entries[0].FilePath)
	assert.Equal(t, "/usr/bin/exiftool", f.recorder.entries[0].ToolPath)
	assert.False(t, f.module.IsBusy())
	assert.False(t, f.module.clearBtn.Disabled())
}

func TestCleanerClearFailureStillRefreshesSummary(t *testing.T) {
	runner := foundRunner()
	runner.outcome = exiftool.EvaluateClear(exiftool.Result{Stderr: []byte("Error: File format error")})
	f := newCleanerFixture(t, runner)
	f.module.selectFile()
	f.confirmed = answer(true)

	f.module.requestClear()

	assert.Equal(t, 2, runner.summaries)
	assert.Zero(t, f.notified)
	require.Len(t, f.recorder.entries, 1)
	assert.False(t, f.recorder.entries[0].Succeeded)
	assert.Contains(t, f.recorder.entries[0].Stderr, "File format error")
}

func TestCleanerClearLaunchFailure(t *testing.T) {
	runner := foundRunner()
	runner.clearErr = errors.New("permission denied")
	f := newCleanerFixture(t, runner)
	f.module.selectFile()
	f.confirmed = answer(true)

	assert.NotPanics(t, f.module.requestClear)

	require.Len(t, f.recorder.entries, 1)
	assert.False(t, f.recorder.entries[0].Succeeded)
	assert.Zero(t, f.notified)
}

func TestCleanerJournalFailureDoesNotBlockClear(t *testing.T) {
	f := newCleanerFixture(t, foundRunner())
	f.recorder.err = errors.New("disk full")
	f.module.selectFile()
	f.confirmed = answer(true)

	f.module.requestClear()

	assert.Equal(t, 1, f.runner.clears)
	assert.Equal(t, 1, f.notified)
}

func TestCleanerClearRejectsMissingFile(t *testing.T) {
	f := newCleanerFixture(t, foundRunner())
	f.module.selectFile()
	require.NoError(t, os.Remove(f.file))

	f.module.requestClear()

	assert.Zero(t, f.runner.clears)
}

func TestCleanerBusyDisablesControls(t *testing.T) {
	f := newCleanerFixture(t, foundRunner())
	var pending []func()
	f.module.SetAsyncRunner(func(work func()) { pending = append(pending, work) })

	f.module.SelectFile(f.file)
	require.Len(t, pending, 1)
	assert.True(t, f.module.selectBtn.Disabled())
	assert.True(t, f.module.detailBtn.Disabled())
	assert.True(t, f.module.clearBtn.Disabled())

	f.module.showDetailed()
	assert.Len(t, pending, 1)

	pending[0]()
	assert.False(t, f.module.selectBtn.Disabled())
	assert.False(t, f.module.detailBtn.Disabled())
}
