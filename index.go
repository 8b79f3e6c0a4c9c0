// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import "github.com/puzpuzpuz/xsync/v3"

// FileIndex maps bare file names to the first absolute path seen.
// Entries are never replaced or removed.
type FileIndex struct {
	paths *xsync.MapOf[string, string]
}

// NewFileIndex creates an empty index.
func NewFileIndex() *FileIndex {
	return &FileIndex{paths: xsync.NewMapOf[string, string]()}
}

// Lookup returns the recorded path for name.
func (x *FileIndex) Lookup(name string) (string, bool) {
	return x.paths.Load(name)
}

// Record stores path for name unless name is already known and returns the kept path.
func (x *FileIndex) Record(name string, path string) string {
	kept, _ := x.paths.LoadOrStore(name, path)
	return kept
}

// Len returns number of recorded names.
func (x *FileIndex) Len() int {
	return x.paths.Size()
}
