// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// ProjectOptions configures OpenProject.
type ProjectOptions struct {
	Runner CommandRunner
	Logger *log.Logger
	Fs     afero.Fs
	// Root configures root location; Runner, Logger and Fs are inherited when unset.
	Root RootOptions
	// ManifestPath skips the manifest search; relative paths are taken from the root.
	ManifestPath string
	// RulesFileName defaults to ".gitignore".
	RulesFileName string
	// ManifestNames defaults to DefaultManifestNames.
	ManifestNames []string
	// IgnoreExtra entries are always ignored.
	IgnoreExtra []string
	// IgnoreDefaults replace the last-resort ignore entries.
	IgnoreDefaults []string
}

// Project wires root, ignore set, finder and registry of one project.
type Project struct {
	ignore       *IgnoreSet
	finder       *Finder
	registry     *Registry
	root         string
	manifestPath string
}

// OpenProject locates the root, compiles ignore rules, finds the manifest and
// builds the alias registry.
func OpenProject(ctx context.Context, opts ProjectOptions) (*Project, error) {
	logger := loggerOrDiscard(opts.Logger)
	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	rootOpts := opts.Root
	if rootOpts.Runner == nil {
		rootOpts.Runner = opts.Runner
	}

	if rootOpts.Logger == nil {
		rootOpts.Logger = logger
	}

	if rootOpts.Fs == nil {
		rootOpts.Fs = fsys
	}

	root, err := NewRootLocator(rootOpts).Root(ctx)
	if err != nil {
		return nil, err
	}

	ignore := CompileIgnoreRules(ctx, IgnoreOptions{
		Runner:        opts.Runner,
		Logger:        logger,
		Fs:            fsys,
		Root:          root,
		RulesFileName: opts.RulesFileName,
		Extra:         opts.IgnoreExtra,
		Defaults:      opts.IgnoreDefaults,
	})

	finder := NewFinder(FinderOptions{
		Fs:     fsys,
		Logger: logger,
		Ignore: ignore,
		Root:   root,
	})

	manifestPath, err := locateManifest(finder, root, opts)
	if err != nil {
		return nil, err
	}

	m, err := LoadManifest(fsys, manifestPath)
	if err != nil {
		return nil, err
	}

	if len(m.Paths) == 0 {
		logger.Warn("manifest declares no path aliases", "manifest", manifestPath)
	}

	registry, err := NewRegistry(root, m, RegistryOptions{Fs: fsys, Logger: logger})
	if err != nil {
		return nil, err
	}

	logger.Debug("project opened", "root", root, "manifest", manifestPath, "aliases", len(m.Paths))

	return &Project{
		root:         root,
		ignore:       ignore,
		finder:       finder,
		registry:     registry,
		manifestPath: manifestPath,
	}, nil
}

// locateManifest returns the explicit manifest path or searches by names.
func locateManifest(finder *Finder, root string, opts ProjectOptions) (string, error) {
	if opts.ManifestPath != "" {
		if filepath.IsAbs(opts.ManifestPath) {
			return opts.ManifestPath, nil
		}

		return filepath.Join(root, opts.ManifestPath), nil
	}

	names := opts.ManifestNames
	if len(names) == 0 {
		names = DefaultManifestNames
	}

	for _, name := range names {
		if p, ok := finder.Find(name, FindOptions{StartDir: root}); ok {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: none of %s under %s", ErrManifestNotFound, strings.Join(names, ", "), root)
}

// Root returns the project root.
func (p *Project) Root() string {
	return p.root
}

// Ignore returns the compiled project ignore set.
func (p *Project) Ignore() *IgnoreSet {
	return p.ignore
}

// Finder returns the project file finder.
func (p *Project) Finder() *Finder {
	return p.finder
}

// Registry returns the alias registry.
func (p *Project) Registry() *Registry {
	return p.registry
}

// ManifestPath returns the manifest the registry was built from.
func (p *Project) ManifestPath() string {
	return p.manifestPath
}
