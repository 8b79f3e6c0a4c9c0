// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

// Matcher evaluates ignore decisions against compiled ordered rules.
type Matcher struct {
	compiled []compiledPattern
	fold     bool
}

// NewMatcher compiles ordered rules into matcher.
// With fold set, ASCII letters are compared case-insensitively.
func NewMatcher(rules []Rule, fold bool) (*Matcher, error) {
	compiled := make([]compiledPattern, 0, len(rules))
	for _, rule := range rules {
		cp, err := compilePattern(rule, fold)
		if err != nil {
			return nil, err
		}

		compiled = append(compiled, *cp)
	}

	return &Matcher{compiled: compiled, fold: fold}, nil
}

// Decide returns deterministic ignore decision for one root-relative path.
//
// Decision policy:
// - last matched rule wins
// - if no rule matched, path is not ignored
func (m *Matcher) Decide(path string, isDir bool) MatchResult {
	res := MatchResult{RuleIndex: -1}
	if m == nil {
		return res
	}

	candidate := normalizePath(path)
	if m.fold {
		candidate = asciiLower(candidate)
	}

	for i := range m.compiled {
		if !m.compiled[i].matches(candidate, isDir) {
			continue
		}

		res.Matched = true
		res.RuleIndex = i
		res.Ignored = m.compiled[i].source.Action == ActionIgnore
	}

	return res
}

// Ignored reports whether path is ignored by decision policy.
func (m *Matcher) Ignored(path string, isDir bool) bool {
	return m.Decide(path, isDir).Ignored
}

// Len returns number of compiled rules.
func (m *Matcher) Len() int {
	if m == nil {
		return 0
	}

	return len(m.compiled)
}
