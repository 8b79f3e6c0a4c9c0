// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/afero"
	"mvdan.cc/sh/v3/syntax"
)

const (
	// ProjectManifestFile marks the project root directory.
	ProjectManifestFile = "package.json"

	defaultShell = "/bin/sh"
)

// DefaultRootCommand prints the project prefix of the package manager.
var DefaultRootCommand = []string{"npm", "prefix"}

// RootStrategy is one way of locating the project root.
type RootStrategy interface {
	// Name is used in logs and aggregated errors.
	Name() string
	// Locate returns a root directory candidate.
	Locate(ctx context.Context) (string, error)
}

// CommandStrategy runs the package manager prefix command directly.
type CommandStrategy struct {
	Runner  CommandRunner
	Dir     string
	Command []string
}

// Name implements RootStrategy.
func (s CommandStrategy) Name() string {
	return "command " + strings.Join(s.Command, " ")
}

// Locate implements RootStrategy.
func (s CommandStrategy) Locate(ctx context.Context) (string, error) {
	if len(s.Command) == 0 {
		return "", fmt.Errorf("%w: empty command", ErrCommandUnavailable)
	}

	out, err := runnerOrExec(s.Runner)(ctx, s.Dir, nil, s.Command[0], s.Command[1:]...)
	if err != nil {
		return "", err
	}

	return nonEmptyLine(out)
}

// ShellStrategy runs the prefix command through the user's login shell,
// which picks up PATH entries set by shell profiles (version managers and the like).
type ShellStrategy struct {
	Runner CommandRunner
	// Shell defaults to $SHELL, then /bin/sh.
	Shell   string
	Dir     string
	Command []string
}

// Name implements RootStrategy.
func (s ShellStrategy) Name() string {
	return "shell " + s.shell()
}

// Locate implements RootStrategy.
func (s ShellStrategy) Locate(ctx context.Context) (string, error) {
	script, err := quoteCommand(s.Command)
	if err != nil {
		return "", err
	}

	env := os.Environ()
	if os.Getenv("PATH") == "" {
		env = append(env, "PATH=/usr/local/bin:/usr/bin:/bin")
	}

	out, err := runnerOrExec(s.Runner)(ctx, s.Dir, env, s.shell(), "-lc", script)
	if err != nil {
		return "", err
	}

	return nonEmptyLine(out)
}

func (s ShellStrategy) shell() string {
	if s.Shell != "" {
		return s.Shell
	}

	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}

	return defaultShell
}

// WalkUpStrategy searches parent directories for the project manifest file.
type WalkUpStrategy struct {
	Fs     afero.Fs
	Start  string
	Marker string
}

// Name implements RootStrategy.
func (s WalkUpStrategy) Name() string {
	return "walk up for " + s.marker()
}

// Locate implements RootStrategy.
func (s WalkUpStrategy) Locate(_ context.Context) (string, error) {
	fsys := s.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	dir, err := filepath.Abs(s.Start)
	if err != nil {
		return "", fmt.Errorf("abs start: %w", err)
	}

	for {
		if info, err := fsys.Stat(filepath.Join(dir, s.marker())); err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s in %s or any parent", s.marker(), s.Start)
		}

		dir = parent
	}
}

func (s WalkUpStrategy) marker() string {
	if s.Marker != "" {
		return s.Marker
	}

	return ProjectManifestFile
}

// RootOptions configures RootLocator.
type RootOptions struct {
	Runner CommandRunner
	Logger *log.Logger
	Fs     afero.Fs
	// WorkDir defaults to the process working directory.
	WorkDir string
	// Shell overrides the shell used by ShellStrategy.
	Shell string
	// Command overrides DefaultRootCommand.
	Command []string
	// Strategies replaces the default strategy list when set.
	Strategies []RootStrategy
	// DisableWalkUp drops WalkUpStrategy from the default list.
	DisableWalkUp bool
}

// RootLocator resolves the project root once and memoizes the result.
type RootLocator struct {
	opts RootOptions
	root string
	err  error
	once sync.Once
}

// NewRootLocator creates a memoizing root locator.
func NewRootLocator(opts RootOptions) *RootLocator {
	return &RootLocator{opts: opts}
}

// Root returns the project root, locating it on first call.
func (l *RootLocator) Root(ctx context.Context) (string, error) {
	l.once.Do(func() {
		l.root, l.err = l.locate(ctx)
	})

	return l.root, l.err
}

func (l *RootLocator) locate(ctx context.Context) (string, error) {
	wd := l.opts.WorkDir
	if wd == "" {
		var err error
		if wd, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("working directory: %w", err)
		}
	}

	logical, err := filepath.Abs(wd)
	if err != nil {
		return "", fmt.Errorf("abs working directory: %w", err)
	}

	strategies := l.opts.Strategies
	if len(strategies) == 0 {
		strategies = DefaultRootStrategies(logical, l.opts)
	}

	root, err := LocateRoot(ctx, strategies, l.opts.Logger)
	if err != nil {
		return "", err
	}

	physical, err := resolvePathOrAbs(logical)
	if err != nil {
		return root, nil
	}

	return reconcileRoot(root, logical, physical), nil
}

// DefaultRootStrategies returns package manager, login shell and walk-up strategies for wd.
func DefaultRootStrategies(wd string, opts RootOptions) []RootStrategy {
	command := opts.Command
	if len(command) == 0 {
		command = DefaultRootCommand
	}

	strategies := []RootStrategy{
		CommandStrategy{Runner: opts.Runner, Dir: wd, Command: command},
		ShellStrategy{Runner: opts.Runner, Dir: wd, Command: command, Shell: opts.Shell},
	}

	if !opts.DisableWalkUp {
		strategies = append(strategies, WalkUpStrategy{Fs: opts.Fs, Start: wd})
	}

	return strategies
}

// LocateRoot tries strategies in order and returns the first existing directory candidate.
// Intermediate failures are logged; exhausting all strategies returns ErrRootNotFound.
func LocateRoot(ctx context.Context, strategies []RootStrategy, logger *log.Logger) (string, error) {
	logger = loggerOrDiscard(logger)

	var merr *multierror.Error
	for _, strategy := range strategies {
		candidate, err := strategy.Locate(ctx)
		if err == nil {
			candidate, err = existingDir(candidate)
		}

		if err != nil {
			logger.Debug("root strategy failed", "strategy", strategy.Name(), "err", err)
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", strategy.Name(), err))
			continue
		}

		logger.Debug("project root located", "strategy", strategy.Name(), "root", candidate)
		return candidate, nil
	}

	if merr == nil {
		return "", fmt.Errorf("%w: no strategies", ErrRootNotFound)
	}

	return "", fmt.Errorf("%w: %w", ErrRootNotFound, merr)
}

// reconcileRoot rewrites the resolved root onto the symlink-preserving working
// directory so that paths derived from root match what tools see from wd.
func reconcileRoot(root string, logical string, physical string) string {
	if logical == physical {
		return root
	}

	resolvedRoot, err := resolvePathOrAbs(root)
	if err != nil {
		return root
	}

	rel, ok := relSlash(resolvedRoot, physical)
	if !ok {
		return root
	}

	candidate := logical
	if rel != "." {
		for range strings.Split(rel, "/") {
			candidate = filepath.Dir(candidate)
		}
	}

	// Symlinks below the root change the depth; keep the plain root then.
	if resolved, err := resolvePathOrAbs(candidate); err != nil || resolved != resolvedRoot {
		return root
	}

	return candidate
}

// existingDir returns absolute candidate when it is an existing directory.
func existingDir(candidate string) (string, error) {
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}

	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}

	return abs, nil
}

// quoteCommand renders args as one POSIX shell command line.
func quoteCommand(args []string) (string, error) {
	if len(args) == 0 {
		return "", fmt.Errorf("%w: empty command", ErrCommandUnavailable)
	}

	quoted := make([]string, 0, len(args))
	for _, arg := range args {
		q, err := syntax.Quote(arg, syntax.LangPOSIX)
		if err != nil {
			return "", fmt.Errorf("quote %q: %w", arg, err)
		}

		quoted = append(quoted, q)
	}

	return strings.Join(quoted, " "), nil
}

func nonEmptyLine(out []byte) (string, error) {
	line := lastLine(out)
	if line == "" {
		return "", ErrEmptyOutput
	}

	return line, nil
}

func runnerOrExec(r CommandRunner) CommandRunner {
	if r == nil {
		return ExecRunner
	}

	return r
}

func loggerOrDiscard(logger *log.Logger) *log.Logger {
	if logger != nil {
		return logger
	}

	return discardLogger
}
