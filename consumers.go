// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// DefaultRootToken is the root placeholder understood by common test runners.
const DefaultRootToken = "<rootDir>"

// BundlerAliases emits `{alias: absPath | []absPath}` rooted at root.
func BundlerAliases(root string) EmitOptions {
	abs := func(p string) string {
		return filepath.Join(root, filepath.FromSlash(p))
	}

	return EmitOptions{
		PathMatchModifier: func(m PathMatch) any {
			switch m := m.(type) {
			case SinglePath:
				return abs(string(m))
			case MultiPath:
				return mapPaths(m.Paths(), abs)
			default:
				return nil
			}
		},
	}
}

// LinterResolverPaths emits `{alias: []"./relPath"}` for import resolvers.
func LinterResolverPaths() EmitOptions {
	return EmitOptions{
		PathMatchModifier: func(m PathMatch) any {
			return mapPaths(m.Paths(), dotRelative)
		},
	}
}

// LinterInternalPattern returns a regex source matching imports that start
// with any registered alias, longest alias first.
func LinterInternalPattern(r *Registry) string {
	if r == nil || len(r.entries) == 0 {
		return ""
	}

	prefixes := make([]string, 0, len(r.entries))
	for _, entry := range r.entries {
		prefixes = append(prefixes, regexp.QuoteMeta(AliasPrefix(entry.Alias)))
	}

	sort.SliceStable(prefixes, func(i, j int) bool {
		if len(prefixes[i]) != len(prefixes[j]) {
			return len(prefixes[i]) > len(prefixes[j])
		}

		return prefixes[i] < prefixes[j]
	})

	return "^(?:" + strings.Join(prefixes, "|") + ")"
}

// TranspilerAliases emits `{alias: "./relPath/"}`. Multi-path aliases use
// their first path since the rewriting plugin takes a single target.
func TranspilerAliases() EmitOptions {
	return EmitOptions{
		PathMatchModifier: func(m PathMatch) any {
			paths := m.Paths()
			if len(paths) == 0 {
				return nil
			}

			p := dotRelative(toSlash(paths[0]))
			if !strings.HasSuffix(p, "/") {
				p += "/"
			}

			return p
		},
	}
}

// TestRunnerModuleNameMapper emits `{"^alias/(.*)$": "token/relPath/$1"}`.
// An empty rootToken means DefaultRootToken.
func TestRunnerModuleNameMapper(rootToken string) EmitOptions {
	if rootToken == "" {
		rootToken = DefaultRootToken
	}

	target := func(p string) string {
		if p == "." {
			return rootToken + "/$1"
		}

		return rootToken + "/" + p + "/$1"
	}

	return EmitOptions{
		AliasModifier: func(alias string) string {
			return "^" + regexp.QuoteMeta(AliasPrefix(alias)) + "(.*)$"
		},
		PathMatchModifier: func(m PathMatch) any {
			switch m := m.(type) {
			case SinglePath:
				return target(string(m))
			case MultiPath:
				return mapPaths(m.Paths(), target)
			default:
				return nil
			}
		},
	}
}

// dotRelative prefixes a root-relative slash path with "./".
func dotRelative(p string) string {
	if p == "." || p == "" {
		return "./"
	}

	return "./" + strings.TrimPrefix(p, "./")
}

func mapPaths(paths []string, fn func(string) string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = fn(p)
	}

	return out
}
