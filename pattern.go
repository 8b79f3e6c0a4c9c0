// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"fmt"
	"regexp"
	"strings"
)

// compiledPattern is matcher-internal compiled representation of one ignore rule.
type compiledPattern struct {
	// re matches patterns with char classes or "**".
	re *regexp.Regexp
	// exact is a literal component or path without glob meta.
	exact string
	// glob is a component pattern with "*" and "?" only.
	glob string
	// source is original source rule.
	source Rule
	// anchored means source pattern starts with "/".
	anchored bool
	// dirOnly means source pattern ends with "/".
	dirOnly bool
	// hasSlash means pattern is matched against the whole relative path.
	hasSlash bool
}

// compilePattern picks the cheapest matching strategy that keeps gitignore-like semantics.
func compilePattern(rule Rule, fold bool) (*compiledPattern, error) {
	if !rule.Action.valid() {
		return nil, fmt.Errorf("%w: unsupported action %d", ErrInvalidRule, rule.Action)
	}

	pattern := normalizePattern(rule.Pattern)
	if fold {
		pattern = asciiLower(pattern)
	}

	cp := &compiledPattern{
		source:   rule,
		anchored: strings.HasPrefix(pattern, "/"),
		dirOnly:  strings.HasSuffix(pattern, "/"),
	}

	pattern = strings.Trim(pattern, "/")
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty after normalization (%q)", ErrInvalidPattern, rule.Pattern)
	}

	// "/name" is matched against the full path even without an inner slash.
	cp.hasSlash = cp.anchored || strings.Contains(pattern, "/")

	if !hasGlobMeta(pattern) {
		cp.exact = pattern
		return cp, nil
	}

	if !cp.hasSlash && !hasCharClass(pattern) && !strings.Contains(pattern, "**") {
		cp.glob = pattern
		return cp, nil
	}

	var expr string
	switch {
	case !cp.hasSlash:
		expr = "^" + globToRegex(pattern, false) + "$"
	case cp.anchored:
		expr = "^" + globToRegex(pattern, true)
	default:
		expr = `(?:^|.*/)` + globToRegex(pattern, true)
	}

	if cp.hasSlash {
		if cp.dirOnly {
			expr += `(?:/.*)?$`
		} else {
			expr += `$`
		}
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: compile %q: %v", ErrInvalidPattern, rule.Pattern, err)
	}

	cp.re = re
	return cp, nil
}

// matches reports whether pattern matches normalized root-relative candidate path.
func (p *compiledPattern) matches(candidate string, isDir bool) bool {
	if candidate == "" {
		return false
	}

	if p.hasSlash {
		if p.exact != "" {
			return p.matchExactPath(candidate, isDir)
		}

		return p.re.MatchString(candidate)
	}

	match := p.matchComponent
	if !p.dirOnly {
		return match(pathBase(candidate))
	}

	return anyDirComponent(candidate, isDir, match)
}

// matchComponent matches one path component.
func (p *compiledPattern) matchComponent(component string) bool {
	switch {
	case p.exact != "":
		return component == p.exact
	case p.glob != "":
		return wildcardMatch(p.glob, component)
	default:
		return p.re.MatchString(component)
	}
}

// matchExactPath matches slash-containing literal pattern.
func (p *compiledPattern) matchExactPath(candidate string, isDir bool) bool {
	literal := p.exact
	if candidate == literal || (!p.anchored && strings.HasSuffix(candidate, "/"+literal)) {
		return !p.dirOnly || isDir
	}

	if !p.dirOnly {
		return false
	}

	// Directory rules also cover everything below the directory.
	if strings.HasPrefix(candidate, literal+"/") {
		return true
	}

	return !p.anchored && strings.Contains(candidate, "/"+literal+"/")
}

// anyDirComponent reports whether any directory component of candidate satisfies match.
// The last component counts only when candidate itself is a directory.
func anyDirComponent(candidate string, isDir bool, match func(string) bool) bool {
	start := 0
	for i := 0; i <= len(candidate); i++ {
		if i != len(candidate) && candidate[i] != '/' {
			continue
		}

		if i > start {
			if i == len(candidate) && !isDir {
				return false
			}

			if match(candidate[start:i]) {
				return true
			}
		}

		start = i + 1
	}

	return false
}

// hasGlobMeta reports whether pattern contains supported glob meta.
func hasGlobMeta(pattern string) bool {
	return strings.ContainsAny(pattern, "*?") || hasCharClass(pattern)
}

// hasCharClass reports whether pattern contains at least one valid "[...]" class.
func hasCharClass(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '[' && charClassEnd(pattern, i) >= 0 {
			return true
		}
	}

	return false
}

// wildcardMatch matches "*" and "?" wildcard pattern against one component.
func wildcardMatch(pattern string, input string) bool {
	pIdx, sIdx := 0, 0
	star, mark := -1, 0

	for sIdx < len(input) {
		switch {
		case pIdx < len(pattern) && (pattern[pIdx] == '?' || pattern[pIdx] == input[sIdx]):
			pIdx++
			sIdx++
		case pIdx < len(pattern) && pattern[pIdx] == '*':
			star = pIdx
			mark = sIdx
			pIdx++
		case star >= 0:
			// Let the last "*" swallow one more byte and retry.
			pIdx = star + 1
			mark++
			sIdx = mark
		default:
			return false
		}
	}

	for pIdx < len(pattern) && pattern[pIdx] == '*' {
		pIdx++
	}

	return pIdx == len(pattern)
}

// globToRegex converts a gitignore-like pattern to regexp body.
// When multiSegment is false "**" degrades to "*".
func globToRegex(pat string, multiSegment bool) string {
	var b strings.Builder

	for i := 0; i < len(pat); i++ {
		if multiSegment && strings.HasPrefix(pat[i:], "**/") {
			// "**/" matches zero or more directories.
			b.WriteString(`(?:.*/)?`)
			i += 2
			continue
		}

		if next, ok := writeCharClass(pat, i, &b); ok {
			i = next
			continue
		}

		switch c := pat[i]; c {
		case '*':
			double := i+1 < len(pat) && pat[i+1] == '*'
			if double {
				i++
			}

			if double && multiSegment {
				b.WriteString(`.*`)
			} else {
				b.WriteString(`[^/]*`)
			}
		case '?':
			b.WriteString(`[^/]`)
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	return b.String()
}

// writeCharClass writes a glob char class (`[...]`) as regexp class.
func writeCharClass(pat string, start int, b *strings.Builder) (int, bool) {
	end := charClassEnd(pat, start)
	if end < 0 {
		return start, false
	}

	b.WriteByte('[')

	idx := start + 1
	switch {
	case idx < end && pat[idx] == '!':
		b.WriteByte('^')
		idx++
	case idx < end && pat[idx] == '^':
		b.WriteString(`\^`)
		idx++
	}

	if idx < end && pat[idx] == ']' {
		b.WriteByte(']')
		idx++
	}

	for ; idx < end; idx++ {
		if pat[idx] == '\\' {
			b.WriteString(`\\`)
			continue
		}

		b.WriteByte(pat[idx])
	}

	b.WriteByte(']')
	return end, true
}

// charClassEnd locates closing bracket for a glob char class, -1 when unterminated.
func charClassEnd(pat string, start int) int {
	if start < 0 || start >= len(pat) || pat[start] != '[' {
		return -1
	}

	idx := start + 1
	if idx < len(pat) && (pat[idx] == '!' || pat[idx] == '^') {
		idx++
	}

	if idx < len(pat) && pat[idx] == ']' {
		idx++
	}

	for ; idx < len(pat); idx++ {
		if pat[idx] == ']' {
			return idx
		}
	}

	return -1
}

// pathBase returns final path component using slash separator.
func pathBase(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}

	return path
}
