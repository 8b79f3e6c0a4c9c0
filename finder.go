// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// FinderOptions configures a Finder.
type FinderOptions struct {
	Fs     afero.Fs
	Logger *log.Logger
	// Index is shared memo storage; a new index is created when nil.
	Index *FileIndex
	// Ignore is the project-wide ignore set; defaults to NewIgnoreSet(Root, nil).
	Ignore *IgnoreSet
	// Root is the default start directory.
	Root string
}

// FindOptions controls one Find call.
type FindOptions struct {
	// StartDir overrides the finder root for this call.
	StartDir string
	// IgnoredEntries are added to the ignore set for this call only.
	IgnoredEntries []string
	// DepthFirst descends into each directory as soon as it is seen.
	DepthFirst bool
}

// Finder searches a directory tree for files by name, skipping ignored paths.
//
// Symlink loops are not detected; the ignore set is expected to exclude
// dependency directories where they usually come from.
type Finder struct {
	fs     afero.Fs
	logger *log.Logger
	index  *FileIndex
	ignore *IgnoreSet
	root   string
}

// NewFinder creates a finder.
func NewFinder(opts FinderOptions) *Finder {
	f := &Finder{
		fs:     opts.Fs,
		logger: loggerOrDiscard(opts.Logger),
		index:  opts.Index,
		ignore: opts.Ignore,
		root:   opts.Root,
	}

	if f.fs == nil {
		f.fs = afero.NewOsFs()
	}

	if f.index == nil {
		f.index = NewFileIndex()
	}

	if f.ignore == nil {
		f.ignore = NewIgnoreSet(opts.Root, nil)
	}

	return f
}

// Index returns the memo storage shared by all Find calls.
func (f *Finder) Index() *FileIndex {
	return f.index
}

// Ignore returns the project-wide ignore set.
func (f *Finder) Ignore() *IgnoreSet {
	return f.ignore
}

// Find returns the first absolute path whose base name equals name.
//
// Results and every entry visited on the way are memoized by base name, so a
// repeated lookup never touches the file system. Not found is a normal outcome.
func (f *Finder) Find(name string, opts FindOptions) (string, bool) {
	if name == "" {
		return "", false
	}

	if p, ok := f.index.Lookup(name); ok {
		return p, true
	}

	ignore := f.ignore
	if len(opts.IgnoredEntries) > 0 {
		ignore = f.ignore.Extend(opts.IgnoredEntries...)
	}

	start := opts.StartDir
	if start == "" {
		start = f.root
	}

	start, err := filepath.Abs(start)
	if err != nil {
		f.logger.Debug("invalid start directory", "dir", opts.StartDir, "err", err)
		return "", false
	}

	p, ok := f.search(start, name, ignore, opts.DepthFirst)
	f.logger.Debug("find", "name", name, "start", start, "found", ok, "path", p)

	return p, ok
}

// search scans dir entries before descending into the queued subdirectories,
// or descends immediately in depth-first mode.
func (f *Finder) search(dir string, name string, ignore *IgnoreSet, depthFirst bool) (string, bool) {
	entries, err := afero.ReadDir(f.fs, dir)
	if err != nil {
		f.logger.Debug("skip unreadable directory", "dir", dir, "err", err)
		return "", false
	}

	var queued []string
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())

		// Stat follows symlinks; entries removed since listing fail here.
		info, err := f.fs.Stat(full)
		if err != nil {
			continue
		}

		if ignore.Ignores(full, info.IsDir()) {
			continue
		}

		f.index.Record(entry.Name(), full)
		if entry.Name() == name {
			return full, true
		}

		if !info.IsDir() {
			continue
		}

		if !depthFirst {
			queued = append(queued, full)
			continue
		}

		if p, ok := f.search(full, name, ignore, depthFirst); ok {
			return p, true
		}
	}

	for _, sub := range queued {
		if p, ok := f.search(sub, name, ignore, depthFirst); ok {
			return p, true
		}
	}

	return "", false
}
