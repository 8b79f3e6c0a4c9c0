// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

// AliasEntry is one normalized alias with its real paths.
type AliasEntry struct {
	Match PathMatch `json:"match" yaml:"match"`
	// Alias has no trailing slash except the root alias "/".
	Alias string `json:"alias" yaml:"alias"`
}

// RegistryOptions configures NewRegistry.
type RegistryOptions struct {
	// Fs is used by RealPathFor to choose among multiple real paths.
	Fs     afero.Fs
	Logger *log.Logger
}

// EmitOptions shapes ToCustomObject output. Nil functions are identity.
type EmitOptions struct {
	// AliasModifier formats the output key.
	AliasModifier func(alias string) string
	// PathMatchModifier formats the output value.
	PathMatchModifier func(match PathMatch) any
}

// Registry holds normalized alias entries of a path-mapping manifest.
// It is read-only after construction.
type Registry struct {
	fs      afero.Fs
	logger  *log.Logger
	root    string
	entries []AliasEntry
}

// BuildRegistry loads manifestPath and builds a registry rooted at root.
func BuildRegistry(fsys afero.Fs, root string, manifestPath string) (*Registry, error) {
	m, err := LoadManifest(fsys, manifestPath)
	if err != nil {
		return nil, err
	}

	return NewRegistry(root, m, RegistryOptions{Fs: fsys})
}

// NewRegistry normalizes manifest entries.
//
// Real paths are resolved against the manifest directory and `baseUrl`, then
// stored relative to root. A later duplicate alias replaces the earlier paths
// but keeps its position.
func NewRegistry(root string, m *Manifest, opts RegistryOptions) (*Registry, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil manifest", ErrInvalidManifest)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("abs root: %w", err)
	}

	r := &Registry{
		fs:     opts.Fs,
		logger: loggerOrDiscard(opts.Logger),
		root:   absRoot,
	}

	if r.fs == nil {
		r.fs = afero.NewOsFs()
	}

	prefix := "."
	if m.Path != "" {
		manifestDir, err := filepath.Abs(filepath.Dir(m.Path))
		if err != nil {
			return nil, fmt.Errorf("abs manifest dir: %w", err)
		}

		if rel, err := filepath.Rel(absRoot, manifestDir); err == nil {
			prefix = filepath.ToSlash(rel)
		}
	}

	base := path.Join(prefix, toSlash(m.BaseURL))
	index := make(map[string]int, len(m.Paths))

	for _, raw := range m.Paths {
		alias := normalizeAlias(raw.Alias)
		paths := make([]string, 0, len(raw.Targets))
		for _, target := range raw.Targets {
			p := path.Join(base, normalizeTarget(target))
			if !containsString(paths, p) {
				paths = append(paths, p)
			}
		}

		entry := AliasEntry{Alias: alias, Match: newPathMatch(paths)}
		if i, ok := index[alias]; ok {
			r.logger.Debug("duplicate alias replaced", "alias", alias)
			r.entries[i] = entry
			continue
		}

		index[alias] = len(r.entries)
		r.entries = append(r.entries, entry)
	}

	return r, nil
}

// Root returns the absolute project root.
func (r *Registry) Root() string {
	return r.root
}

// Entries returns alias entries in manifest order.
func (r *Registry) Entries() []AliasEntry {
	return append([]AliasEntry(nil), r.entries...)
}

// Lookup returns the match registered for a normalized alias.
func (r *Registry) Lookup(alias string) (PathMatch, bool) {
	for _, entry := range r.entries {
		if entry.Alias == alias {
			return entry.Match, true
		}
	}

	return nil, false
}

// ToCustomObject re-emits every entry as key/value shaped by opts.
// It has no knowledge of any particular consumer. When two aliases format to
// the same key the later entry wins.
func (r *Registry) ToCustomObject(opts EmitOptions) map[string]any {
	out := make(map[string]any, len(r.entries))
	for _, entry := range r.entries {
		key := entry.Alias
		if opts.AliasModifier != nil {
			key = opts.AliasModifier(key)
		}

		var value any = entry.Match
		if opts.PathMatchModifier != nil {
			value = opts.PathMatchModifier(entry.Match)
		}

		out[key] = value
	}

	return out
}

// BestAliasFor returns the shortest alias form of absPath.
//
// Every real path of every alias containing absPath is a candidate; the one
// leaving the shortest remainder wins and the first registered wins ties. The
// aliased result is used only when it is not longer than the root-relative
// path, so a long alias token never lengthens the result. Otherwise the
// root-relative path is returned, unless it is not shorter than absPath, which
// is then returned unchanged. Relative input is taken relative to root.
func (r *Registry) BestAliasFor(absPath string) string {
	target := absPath
	if !filepath.IsAbs(target) {
		target = filepath.Join(r.root, target)
	}

	target = filepath.Clean(target)

	var (
		bestAlias string
		bestRem   string
		found     bool
	)

	for _, entry := range r.entries {
		for _, p := range entry.Match.Paths() {
			rem, ok := relSlash(filepath.Join(r.root, filepath.FromSlash(p)), target)
			if !ok {
				continue
			}

			if !found || len(rem) < len(bestRem) {
				bestAlias, bestRem, found = entry.Alias, rem, true
			}
		}
	}

	rootRel, err := filepath.Rel(r.root, target)
	if err != nil {
		if found {
			return JoinAlias(bestAlias, bestRem)
		}

		return absPath
	}

	rootRel = filepath.ToSlash(rootRel)
	if found {
		aliased := aliasedForm(bestAlias, bestRem)
		if aliasedLen(bestAlias, aliased) <= len(rootRel) {
			return aliased
		}
	}

	if len(rootRel) >= len(absPath) {
		return absPath
	}

	return rootRel
}

// RealPathFor replaces a leading alias token with its real path.
//
// The longest alias followed by "/" wins. For multi-path aliases the first
// real path under which the remainder exists is used, otherwise the first one.
// With excludeRoot the result is root-relative. Input without a known alias,
// and absolute paths already inside root, are returned unchanged.
func (r *Registry) RealPathFor(aliased string, excludeRoot bool) string {
	if filepath.IsAbs(aliased) && isPathWithinRoot(r.root, aliased) {
		return aliased
	}

	entry, rem, ok := r.matchAlias(toSlash(aliased))
	if !ok {
		return aliased
	}

	target := path.Join(r.pickPath(entry.Match.Paths(), rem), rem)
	if excludeRoot {
		return filepath.FromSlash(target)
	}

	return filepath.Join(r.root, filepath.FromSlash(target))
}

// matchAlias finds the entry with the longest alias prefix of input.
func (r *Registry) matchAlias(input string) (AliasEntry, string, bool) {
	var (
		best    AliasEntry
		bestLen = -1
		rem     string
	)

	for _, entry := range r.entries {
		prefix := AliasPrefix(entry.Alias)
		switch {
		case strings.HasPrefix(input, prefix):
			if len(prefix) > bestLen {
				best, bestLen, rem = entry, len(prefix), input[len(prefix):]
			}
		case input == entry.Alias:
			if len(input) > bestLen {
				best, bestLen, rem = entry, len(input), ""
			}
		}
	}

	return best, rem, bestLen >= 0
}

// pickPath returns the first real path where rem exists.
func (r *Registry) pickPath(paths []string, rem string) string {
	if len(paths) == 1 {
		return paths[0]
	}

	for _, p := range paths {
		candidate := filepath.Join(r.root, filepath.FromSlash(p), filepath.FromSlash(rem))
		if _, err := r.fs.Stat(candidate); err == nil {
			return p
		}
	}

	return paths[0]
}

// AliasPrefix returns alias with exactly one trailing slash.
func AliasPrefix(alias string) string {
	if strings.HasSuffix(alias, "/") {
		return alias
	}

	return alias + "/"
}

// aliasedForm joins alias and rem; the "." alias adds no prefix.
func aliasedForm(alias string, rem string) string {
	if alias == "." {
		return rem
	}

	return JoinAlias(alias, rem)
}

// aliasedLen is the length of aliased compared against the root-relative form.
// The root alias "/" only anchors the root-relative path, so its slash is not counted.
func aliasedLen(alias string, aliased string) int {
	if alias == "/" {
		return len(strings.TrimPrefix(aliased, "/"))
	}

	return len(aliased)
}

// JoinAlias joins alias and a slash remainder; "." yields the bare alias.
func JoinAlias(alias string, rem string) string {
	if rem == "" || rem == "." {
		return alias
	}

	return AliasPrefix(alias) + rem
}

// normalizeAlias strips the trailing wildcard segment; the root alias keeps "/".
func normalizeAlias(raw string) string {
	alias := toSlash(strings.TrimSpace(raw))
	if alias == "*" {
		return "."
	}

	alias = strings.TrimRight(strings.TrimSuffix(alias, "/*"), "/")
	if alias == "" {
		return "/"
	}

	return alias
}

// normalizeTarget strips the trailing wildcard segment; the bare wildcard becomes ".".
func normalizeTarget(raw string) string {
	target := toSlash(strings.TrimSpace(raw))
	if target == "*" {
		return "."
	}

	target = strings.TrimSuffix(target, "/*")
	if target == "" {
		return "."
	}

	return path.Clean(target)
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}

	return false
}
