// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStrategy struct {
	err   error
	calls *atomic.Int32
	name  string
	root  string
}

func (s fakeStrategy) Name() string { return s.name }

func (s fakeStrategy) Locate(context.Context) (string, error) {
	if s.calls != nil {
		s.calls.Add(1)
	}

	return s.root, s.err
}

func TestLocateRootOrder(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var third atomic.Int32

	root, err := LocateRoot(context.Background(), []RootStrategy{
		fakeStrategy{name: "first", err: ErrCommandUnavailable},
		fakeStrategy{name: "second", root: dir},
		fakeStrategy{name: "third", root: "/", calls: &third},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, dir, root)
	assert.Zero(t, third.Load(), "strategies after the first success must not run")
}

func TestLocateRootSkipsMissingDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))

	root, err := LocateRoot(context.Background(), []RootStrategy{
		fakeStrategy{name: "missing", root: filepath.Join(dir, "missing")},
		fakeStrategy{name: "file", root: file},
		fakeStrategy{name: "dir", root: dir},
	}, nil)
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestLocateRootAllFail(t *testing.T) {
	t.Parallel()

	_, err := LocateRoot(context.Background(), []RootStrategy{
		fakeStrategy{name: "npm", err: ErrCommandUnavailable},
		fakeStrategy{name: "shell", err: ErrEmptyOutput},
	}, nil)

	require.ErrorIs(t, err, ErrRootNotFound)
	assert.ErrorIs(t, err, ErrCommandUnavailable)
	assert.ErrorIs(t, err, ErrEmptyOutput)
	assert.Contains(t, err.Error(), "npm")
	assert.Contains(t, err.Error(), "shell")

	_, err = LocateRoot(context.Background(), nil, nil)
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestCommandStrategy(t *testing.T) {
	t.Parallel()

	var gotName string
	var gotArgs []string
	runner := func(_ context.Context, dir string, env []string, name string, args ...string) ([]byte, error) {
		assert.Equal(t, "/work", dir)
		assert.Nil(t, env)
		gotName, gotArgs = name, args
		return []byte("npm notice update available\n/work/app\n\n"), nil
	}

	root, err := CommandStrategy{Runner: runner, Dir: "/work", Command: []string{"npm", "prefix"}}.Locate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/work/app", root)
	assert.Equal(t, "npm", gotName)
	assert.Equal(t, []string{"prefix"}, gotArgs)
}

func TestCommandStrategyErrors(t *testing.T) {
	t.Parallel()

	empty := func(context.Context, string, []string, string, ...string) ([]byte, error) {
		return []byte(" \n\n"), nil
	}

	_, err := CommandStrategy{Runner: empty, Command: []string{"npm", "prefix"}}.Locate(context.Background())
	assert.ErrorIs(t, err, ErrEmptyOutput)

	_, err = CommandStrategy{Runner: empty}.Locate(context.Background())
	assert.ErrorIs(t, err, ErrCommandUnavailable)
}

func TestShellStrategy(t *testing.T) {
	t.Parallel()

	var gotName string
	var gotArgs, gotEnv []string
	runner := func(_ context.Context, _ string, env []string, name string, args ...string) ([]byte, error) {
		gotName, gotArgs, gotEnv = name, args, env
		return []byte("/work\n"), nil
	}

	s := ShellStrategy{Runner: runner, Shell: "/bin/zsh", Dir: "/work", Command: []string{"pnpm", "--dir", "my app", "root"}}
	root, err := s.Locate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/work", root)
	assert.Equal(t, "/bin/zsh", gotName)
	assert.Equal(t, []string{"-lc", "pnpm --dir 'my app' root"}, gotArgs)
	assert.NotEmpty(t, gotEnv)
	assert.Equal(t, "shell /bin/zsh", s.Name())
}

func TestWalkUpStrategy(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/repo/package.json", []byte("{}"), 0o600))
	require.NoError(t, fsys.MkdirAll("/repo/packages/web/src", 0o755))

	root, err := WalkUpStrategy{Fs: fsys, Start: "/repo/packages/web/src"}.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/repo", root)

	require.NoError(t, afero.WriteFile(fsys, "/repo/packages/web/package.json", []byte("{}"), 0o600))
	root, err = WalkUpStrategy{Fs: fsys, Start: "/repo/packages/web/src"}.Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/repo/packages/web", root, "nearest manifest wins")

	_, err = WalkUpStrategy{Fs: fsys, Start: "/other", Marker: "deno.json"}.Locate(context.Background())
	assert.Error(t, err)
}

func TestDefaultRootStrategies(t *testing.T) {
	t.Parallel()

	strategies := DefaultRootStrategies("/work", RootOptions{Shell: "/bin/bash"})
	require.Len(t, strategies, 3)
	assert.Equal(t, "command npm prefix", strategies[0].Name())
	assert.Equal(t, "shell /bin/bash", strategies[1].Name())
	assert.Equal(t, "walk up for package.json", strategies[2].Name())

	strategies = DefaultRootStrategies("/work", RootOptions{DisableWalkUp: true, Command: []string{"yarn", "root"}})
	require.Len(t, strategies, 2)
	assert.Equal(t, "command yarn root", strategies[0].Name())
}

func TestRootLocatorMemoizes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	var calls atomic.Int32
	locator := NewRootLocator(RootOptions{
		WorkDir:    dir,
		Strategies: []RootStrategy{fakeStrategy{name: "count", root: dir, calls: &calls}},
	})

	for i := 0; i < 3; i++ {
		root, err := locator.Root(context.Background())
		require.NoError(t, err)
		assert.Equal(t, dir, root)
	}

	assert.Equal(t, int32(1), calls.Load())
}

func TestRootLocatorFallsBackToWalkUp(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}"), 0o600))
	sub := filepath.Join(dir, "src", "pages")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	root, err := NewRootLocator(RootOptions{Runner: unavailableRunner, WorkDir: sub}).Root(context.Background())
	require.NoError(t, err)
	assert.Equal(t, dir, root)
}

func TestReconcileRootSymlink(t *testing.T) {
	t.Parallel()

	base, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	realDir := filepath.Join(base, "realDir", "project")
	require.NoError(t, os.MkdirAll(filepath.Join(realDir, "src"), 0o755))

	link := filepath.Join(base, "link")
	if err := os.Symlink(realDir, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	logical := filepath.Join(link, "src")
	physical := filepath.Join(realDir, "src")

	assert.Equal(t, link, reconcileRoot(realDir, logical, physical))
	assert.Equal(t, realDir, reconcileRoot(realDir, physical, physical))
	assert.Equal(t, "/elsewhere", reconcileRoot("/elsewhere", logical, physical))
}

func TestQuoteCommand(t *testing.T) {
	t.Parallel()

	got, err := quoteCommand([]string{"npm", "prefix", "--prefix", "/home/me/my app"})
	require.NoError(t, err)
	assert.Equal(t, `npm prefix --prefix '/home/me/my app'`, got)

	_, err = quoteCommand(nil)
	assert.True(t, errors.Is(err, ErrCommandUnavailable))
}
