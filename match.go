// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"encoding/json"
	"regexp"
	"strings"
)

// PathMatch is the real-path side of an alias: either SinglePath or MultiPath.
// Consumers that need a specific shape switch on the concrete type.
type PathMatch interface {
	// Paths returns root-relative slash paths in manifest order.
	Paths() []string
	// String returns the path for SinglePath and the combined pattern for MultiPath.
	String() string

	pathMatch()
}

// SinglePath is a root-relative slash path; "." is the root itself.
type SinglePath string

// Paths implements PathMatch.
func (p SinglePath) Paths() []string {
	return []string{string(p)}
}

// String implements PathMatch.
func (p SinglePath) String() string {
	return string(p)
}

func (SinglePath) pathMatch() {}

// MultiPath is an alias mapped to several real paths. The combined pattern and
// the path list are built together and cannot be changed afterwards.
type MultiPath struct {
	pattern string
	paths   []string
}

// NewMultiPath builds the combined `(p1|p2|...)` pattern over quoted paths.
func NewMultiPath(paths ...string) MultiPath {
	quoted := make([]string, len(paths))
	for i, p := range paths {
		quoted[i] = regexp.QuoteMeta(p)
	}

	return MultiPath{
		pattern: "(" + strings.Join(quoted, "|") + ")",
		paths:   append([]string(nil), paths...),
	}
}

// Pattern returns the combined regular expression source.
func (m MultiPath) Pattern() string {
	return m.pattern
}

// Paths implements PathMatch.
func (m MultiPath) Paths() []string {
	return append([]string(nil), m.paths...)
}

// String implements PathMatch.
func (m MultiPath) String() string {
	return m.pattern
}

// MarshalJSON encodes both forms.
func (m MultiPath) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Pattern string   `json:"pattern"`
		Paths   []string `json:"paths"`
	}{m.pattern, m.paths})
}

func (MultiPath) pathMatch() {}

// newPathMatch picks the variant by number of paths.
func newPathMatch(paths []string) PathMatch {
	if len(paths) == 1 {
		return SinglePath(paths[0])
	}

	return NewMultiPath(paths...)
}
