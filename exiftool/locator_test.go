package exiftool

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPaths() SearchPaths {
	return SearchPaths{
		Primary:      "/tools/exiftool/exiftool.exe",
		Alternatives: []string{"/tools/exiftool/exiftool(-k).exe", "/tools/exiftool/exiftool.exe", "/tools/exiftool"},
		Command:      "exiftool",
	}
}

func TestLocatePrimaryPathWins(t *testing.T) {
	fsys := newFakeFS().addFile("/tools/exiftool/exiftool.exe").addDir("/tools/exiftool")
	exe := &fakeExecutor{}

	loc := NewLocator(testPaths(), WithStat(fsys.stat), WithExecutor(exe))
	ref, err := loc.Locate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ToolReference{Value: "/tools/exiftool/exiftool.exe", Kind: KindExecutable}, ref)
	assert.Equal(t, []string{"/tools/exiftool/exiftool.exe"}, fsys.probed, "alternatives must not be probed")
	assert.Empty(t, exe.calls, "command must not be probed")
}

func TestLocateFirstExistingAlternative(t *testing.T) {
	fsys := newFakeFS().addFile("/tools/exiftool/exiftool(-k).exe").addDir("/tools/exiftool")

	loc := NewLocator(testPaths(), WithStat(fsys.stat), WithExecutor(&fakeExecutor{}))
	ref, err := loc.Locate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/tools/exiftool/exiftool(-k).exe", ref.Value)
	assert.Equal(t, KindExecutable, ref.Kind)
}

func TestLocateDirectoryAlternative(t *testing.T) {
	fsys := newFakeFS().addDir("/tools/exiftool")

	loc := NewLocator(testPaths(), WithStat(fsys.stat), WithExecutor(&fakeExecutor{}))
	ref, err := loc.Locate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ToolReference{Value: "/tools/exiftool", Kind: KindDirectory}, ref)
}

func TestLocateFallsBackToCommand(t *testing.T) {
	exe := &fakeExecutor{result: Result{Stdout: []byte("12.76\n")}}
	warned := 0

	loc := NewLocator(testPaths(), WithStat(newFakeFS().stat), WithExecutor(exe), WithWarning(func(string) { warned++ }))
	ref, err := loc.Locate(context.Background())

	require.NoError(t, err)
	assert.Equal(t, ToolReference{Value: "exiftool", Kind: KindCommand}, ref)
	require.Len(t, exe.calls, 1)
	assert.Equal(t, "exiftool", exe.calls[0].name)
	assert.Equal(t, []string{"-ver"}, exe.calls[0].args)
	assert.Zero(t, warned)
}

func TestLocateCommandMissingWarnsOnce(t *testing.T) {
	exe := &fakeExecutor{err: &exec.Error{Name: "exiftool", Err: exec.ErrNotFound}}
	var warnings []string

	loc := NewLocator(testPaths(), WithStat(newFakeFS().stat), WithExecutor(exe), WithWarning(func(msg string) {
		warnings = append(warnings, msg)
	}))

	ref, err := loc.Locate(context.Background())
	assert.ErrorIs(t, err, ErrToolNotFound)
	assert.False(t, ref.Found())

	_, err = loc.Locate(context.Background())
	assert.ErrorIs(t, err, ErrToolNotFound)

	assert.Len(t, warnings, 1)
}

func TestLocateCommandNonZeroExitIsNotFound(t *testing.T) {
	exe := &fakeExecutor{result: Result{ExitCode: 2}}
	logger := &recordingLogger{}
	warned := 0

	loc := NewLocator(testPaths(), WithStat(newFakeFS().stat), WithExecutor(exe), WithLogger(logger), WithWarning(func(string) { warned++ }))
	_, err := loc.Locate(context.Background())

	assert.True(t, errors.Is(err, ErrToolNotFound))
	assert.Equal(t, 1, warned)
	assert.NotEmpty(t, logger.warnings)
}

func TestLocateWithoutCommand(t *testing.T) {
	paths := testPaths()
	paths.Command = ""
	exe := &fakeExecutor{}

	loc := NewLocator(paths, WithStat(newFakeFS().stat), WithExecutor(exe))
	_, err := loc.Locate(context.Background())

	assert.ErrorIs(t, err, ErrToolNotFound)
	assert.Empty(t, exe.calls)
}

func TestSearchPathsOverrideAndExtra(t *testing.T) {
	base := DefaultSearchPaths("windows")

	withOverride := base.WithOverride(`d:\bin\exiftool.exe`)
	assert.Equal(t, `d:\bin\exiftool.exe`, withOverride.Primary)
	assert.Equal(t, base.Primary, withOverride.Alternatives[0])
	assert.Equal(t, `c:\exiftool\exiftool.exe`, base.Primary, "original must be untouched")

	withExtra := base.WithExtra([]string{" ", `e:\tools`})
	assert.Equal(t, `e:\tools`, withExtra.Alternatives[0])
	assert.Len(t, withExtra.Alternatives, len(base.Alternatives)+1)

	assert.Equal(t, base, base.WithOverride(""))
	assert.Equal(t, "exiftool", base.All()[len(base.All())-1])
}

func TestDefaultSearchPathsUnix(t *testing.T) {
	paths := DefaultSearchPaths("linux")
	assert.Equal(t, "/usr/local/bin/exiftool", paths.Primary)
	assert.Equal(t, DefaultCommand, paths.Command)
	assert.Equal(t, []string{"exiftool", "exiftool.pl"}, DirectoryExecutableNames("linux"))
	assert.Equal(t, []string{"exiftool.exe", "exiftool(-k).exe"}, DirectoryExecutableNames("windows"))
}
