// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

/*
Package pathalias resolves import aliases and discovers files for web-application build tooling.

Bundlers, linters, transpilers and test runners all need the same answers: where the project
root is, which paths are ignored by version control, where a given file lives, and how an
import alias such as "@" maps to a real directory. This package computes them once and hands
them to every consumer in the shape it needs.

Basic flow:
  - locate the project root (`RootLocator`, `LocateRoot`)
  - compile ignore rules (`CompileIgnoreRules`) into a list, a regexp, globs and a rule matcher
  - search files skipping ignored paths (`Finder.Find`), memoized in a `FileIndex`
  - load the path-mapping manifest (`LoadManifest`, `BuildRegistry`)
  - re-emit aliases per consumer (`Registry.ToCustomObject` with presets from consumers.go)
  - convert paths (`Registry.BestAliasFor` / `Registry.RealPathFor`)

`OpenProject` wires all of the above for the common case.

Ignore rules use gitignore-like syntax:
  - blank lines and comments are ignored
  - "!" creates include (negated) rule
  - "/" prefix anchors a rule to the root, "/" suffix targets directories only
*/
package pathalias
