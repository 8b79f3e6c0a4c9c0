// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	goerrors "github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/woozymasta/pathalias"
	"github.com/woozymasta/pathalias/internal/config"
)

// globalFlags are persistent flags of the root command.
type globalFlags struct {
	configFile string
	logLevel   string
	manifest   string
	workDir    string
}

// app holds state shared by all subcommands of one invocation.
type app struct {
	stdout io.Writer
	stderr io.Writer
	logger *log.Logger
	cfg    *config.Config
	// runner overrides external command execution; nil uses os/exec.
	runner pathalias.CommandRunner
	flags  globalFlags
}

func newApp(stdout io.Writer, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		logger: log.NewWithOptions(stderr, log.Options{Prefix: "pathalias"}),
	}
}

// rootCommand builds the command tree.
func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "pathalias",
		Short: "Resolve project roots, ignore rules and import aliases",
		Long: titleStyle.Render("pathalias") + mutedStyle.Render(" - path alias resolution for JavaScript projects") + `

Locates the project root, compiles version-control ignore rules, searches
files outside ignored trees and maps paths to and from the import aliases
declared in tsconfig.json or jsconfig.json.`,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configFile, "config", "", "config file (default is ./.pathalias.{yaml,toml,json})")
	pf.StringVar(&a.flags.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&a.flags.manifest, "manifest", "", "path-mapping manifest, skips the manifest search")
	pf.StringVar(&a.flags.workDir, "workdir", "", "directory to start from (default is the current directory)")

	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.AddCommand(
		a.rootDirCommand(),
		a.ignoreCommand(),
		a.findCommand(),
		a.aliasCommand(),
		a.resolveCommand(),
		a.emitCommand(),
		a.aliasesCommand(),
	)

	return root
}

// setup loads config and applies flag overrides.
func (a *app) setup(_ *cobra.Command, _ []string) error {
	cfg, used, err := config.Load(config.LoadOptions{
		ConfigFile: a.flags.configFile,
		WorkDir:    a.flags.workDir,
	})
	if err != nil {
		return goerrors.Wrap(err, 0)
	}

	if a.flags.logLevel != "" {
		cfg.LogLevel = a.flags.logLevel
	}

	if a.flags.manifest != "" {
		cfg.Manifest = a.flags.manifest
	}

	level, err := cfg.Level()
	if err != nil {
		return goerrors.Wrap(err, 0)
	}

	a.logger.SetLevel(level)
	a.cfg = cfg

	if used != "" {
		a.logger.Debug("config loaded", "file", used)
	}

	return nil
}

// commandContext applies the configured timeout to external commands.
func (a *app) commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.cfg.CommandTimeout > 0 {
		return context.WithTimeout(ctx, a.cfg.CommandTimeout)
	}

	return context.WithCancel(ctx)
}

func (a *app) rootOptions() (pathalias.RootOptions, error) {
	command, err := a.cfg.RootCommand()
	if err != nil {
		return pathalias.RootOptions{}, err
	}

	return pathalias.RootOptions{
		Runner:        a.runner,
		Logger:        a.logger,
		WorkDir:       a.flags.workDir,
		Shell:         a.cfg.Root.Shell,
		Command:       command,
		DisableWalkUp: !a.cfg.Root.WalkUp,
	}, nil
}

// locateRoot resolves the project root only.
func (a *app) locateRoot(ctx context.Context) (string, error) {
	opts, err := a.rootOptions()
	if err != nil {
		return "", goerrors.Wrap(err, 0)
	}

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	root, err := pathalias.NewRootLocator(opts).Root(ctx)
	if err != nil {
		return "", goerrors.Wrap(err, 0)
	}

	return root, nil
}

// ignoreSet resolves the root and compiles its ignore rules.
func (a *app) ignoreSet(ctx context.Context, extra []string) (*pathalias.IgnoreSet, error) {
	root, err := a.locateRoot(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	return pathalias.CompileIgnoreRules(ctx, pathalias.IgnoreOptions{
		Runner:        a.runner,
		Logger:        a.logger,
		Root:          root,
		RulesFileName: a.cfg.Ignore.RulesFile,
		Extra:         append(append([]string(nil), a.cfg.Ignore.Extra...), extra...),
		Defaults:      a.cfg.Ignore.Defaults,
	}), nil
}

// openProject builds the full project with its alias registry.
func (a *app) openProject(ctx context.Context) (*pathalias.Project, error) {
	rootOpts, err := a.rootOptions()
	if err != nil {
		return nil, goerrors.Wrap(err, 0)
	}

	ctx, cancel := a.commandContext(ctx)
	defer cancel()

	project, err := pathalias.OpenProject(ctx, pathalias.ProjectOptions{
		Runner:         a.runner,
		Logger:         a.logger,
		Root:           rootOpts,
		ManifestPath:   a.cfg.Manifest,
		ManifestNames:  a.cfg.ManifestNames,
		RulesFileName:  a.cfg.Ignore.RulesFile,
		IgnoreExtra:    a.cfg.Ignore.Extra,
		IgnoreDefaults: a.cfg.Ignore.Defaults,
	})
	if err != nil {
		return nil, goerrors.Wrap(err, 0)
	}

	return project, nil
}

// reportError prints err, with its stack trace at debug level.
func (a *app) reportError(err error) {
	fmt.Fprintln(a.stderr, errorStyle.Render("Error: ")+err.Error())

	if a.logger.GetLevel() > log.DebugLevel {
		return
	}

	var stack *goerrors.Error
	if goerrors.As(err, &stack) {
		fmt.Fprintln(a.stderr, mutedStyle.Render(stack.ErrorStack()))
	}
}

// workDir returns the effective working directory.
func (a *app) workDir() (string, error) {
	if a.flags.workDir != "" {
		return a.flags.workDir, nil
	}

	return os.Getwd()
}
