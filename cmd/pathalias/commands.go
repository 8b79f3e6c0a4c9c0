// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	goerrors "github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"github.com/woozymasta/pathalias"
)

// Output formats of the ignore and emit commands.
const (
	formatList       = "list"
	formatRegex      = "regex"
	formatGlobs      = "globs"
	formatBundler    = "bundler"
	formatLinter     = "linter"
	formatTranspiler = "transpiler"
	formatTestRunner = "testrunner"
	formatRaw        = "raw"
)

func (a *app) rootDirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Print the project root directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root, err := a.locateRoot(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), root)
			return nil
		},
	}
}

func (a *app) ignoreCommand() *cobra.Command {
	var (
		format string
		extra  []string
	)

	cmd := &cobra.Command{
		Use:   "ignore",
		Short: "Print the compiled ignore list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			set, err := a.ignoreSet(cmd.Context(), extra)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch format {
			case formatList:
				for _, entry := range set.List() {
					fmt.Fprintln(out, entry)
				}
			case formatRegex:
				if re := set.Regex(); re != nil {
					fmt.Fprintln(out, re.String())
				}
			case formatGlobs:
				for _, glob := range set.Globs() {
					fmt.Fprintln(out, glob)
				}
			default:
				return goerrors.Errorf("unknown format %q, want %s", format,
					strings.Join([]string{formatList, formatRegex, formatGlobs}, ", "))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatList, "output format: list, regex, globs")
	cmd.Flags().StringArrayVar(&extra, "extra", nil, "additional ignored entry (repeatable)")

	return cmd
}

func (a *app) findCommand() *cobra.Command {
	var (
		start      string
		ignored    []string
		depthFirst bool
	)

	cmd := &cobra.Command{
		Use:   "find NAME",
		Short: "Find the first file named NAME outside ignored trees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := a.ignoreSet(cmd.Context(), nil)
			if err != nil {
				return err
			}

			if start != "" && !filepath.IsAbs(start) {
				wd, err := a.workDir()
				if err != nil {
					return goerrors.Wrap(err, 0)
				}

				start = filepath.Join(wd, start)
			}

			finder := pathalias.NewFinder(pathalias.FinderOptions{
				Logger: a.logger,
				Ignore: set,
				Root:   set.Root(),
			})

			p, ok := finder.Find(args[0], pathalias.FindOptions{
				StartDir:       start,
				IgnoredEntries: ignored,
				DepthFirst:     depthFirst || a.cfg.Find.DepthFirst,
			})
			if !ok {
				return goerrors.Errorf("%s not found under %s", args[0], set.Root())
			}

			fmt.Fprintln(cmd.OutOrStdout(), p)
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "directory to search from (default is the project root)")
	cmd.Flags().StringArrayVar(&ignored, "ignore", nil, "entry ignored for this search only (repeatable)")
	cmd.Flags().BoolVar(&depthFirst, "depth-first", false, "descend into directories before visiting siblings")

	return cmd
}

func (a *app) aliasCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "alias PATH...",
		Short: "Print the shortest aliased form of each path",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := a.openProject(cmd.Context())
			if err != nil {
				return err
			}

			wd, err := a.workDir()
			if err != nil {
				return goerrors.Wrap(err, 0)
			}

			for _, arg := range args {
				p := arg
				if !filepath.IsAbs(p) {
					p = filepath.Join(wd, p)
				}

				if p, err = filepath.Abs(p); err != nil {
					return goerrors.Wrap(err, 0)
				}

				fmt.Fprintln(cmd.OutOrStdout(), project.Registry().BestAliasFor(p))
			}

			return nil
		},
	}
}

func (a *app) resolveCommand() *cobra.Command {
	var excludeRoot bool

	cmd := &cobra.Command{
		Use:   "resolve ALIASED...",
		Short: "Replace alias tokens with real paths",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := a.openProject(cmd.Context())
			if err != nil {
				return err
			}

			for _, arg := range args {
				fmt.Fprintln(cmd.OutOrStdout(), project.Registry().RealPathFor(arg, excludeRoot))
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&excludeRoot, "exclude-root", false, "print paths relative to the project root")

	return cmd
}

func (a *app) emitCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "emit",
		Short: "Print aliases in a build tool configuration shape as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			project, err := a.openProject(cmd.Context())
			if err != nil {
				return err
			}

			value, err := a.emitValue(project, format)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			enc.SetEscapeHTML(false)
			if err := enc.Encode(value); err != nil {
				return goerrors.Wrap(err, 0)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatRaw,
		"output shape: bundler, linter, transpiler, testrunner, raw")

	return cmd
}

// emitValue shapes the registry for one consumer format.
func (a *app) emitValue(project *pathalias.Project, format string) (any, error) {
	registry := project.Registry()

	switch format {
	case formatBundler:
		return registry.ToCustomObject(pathalias.BundlerAliases(project.Root())), nil
	case formatLinter:
		return map[string]any{
			"paths":           registry.ToCustomObject(pathalias.LinterResolverPaths()),
			"internalPattern": pathalias.LinterInternalPattern(registry),
		}, nil
	case formatTranspiler:
		return registry.ToCustomObject(pathalias.TranspilerAliases()), nil
	case formatTestRunner:
		return registry.ToCustomObject(pathalias.TestRunnerModuleNameMapper(a.cfg.Emit.RootToken)), nil
	case formatRaw:
		return registry.ToCustomObject(pathalias.EmitOptions{}), nil
	default:
		return nil, goerrors.Errorf("unknown format %q, want %s", format, strings.Join([]string{
			formatBundler, formatLinter, formatTranspiler, formatTestRunner, formatRaw,
		}, ", "))
	}
}

func (a *app) aliasesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "aliases",
		Short: "List registered aliases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			project, err := a.openProject(cmd.Context())
			if err != nil {
				return err
			}

			entries := project.Registry().Entries()
			width := 0
			for _, entry := range entries {
				width = max(width, len(entry.Alias))
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render(project.ManifestPath()))
			for _, entry := range entries {
				fmt.Fprintln(out, padRight(aliasStyle, entry.Alias, width+2)+
					strings.Join(entry.Match.Paths(), mutedStyle.Render(", ")))
			}

			return nil
		},
	}
}
