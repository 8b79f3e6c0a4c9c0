// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Action represents a decision action of one ignore rule.
type Action uint8

const (
	// ActionUnknown is unset/invalid action placeholder.
	ActionUnknown Action = iota
	// ActionIgnore means matching path is skipped.
	ActionIgnore
	// ActionKeep means matching path is kept (negated "!" rule).
	ActionKeep
)

// Rule is one ignore rule in gitignore-like syntax.
type Rule struct {
	// Pattern is a gitignore-like pattern.
	Pattern string `json:"pattern" yaml:"pattern"`
	// Action is applied when the rule matches.
	Action Action `json:"action" yaml:"action"`
}

// MatchResult is a deterministic decision produced by a rule matcher.
type MatchResult struct {
	// Ignored reports final ignore decision.
	Ignored bool `json:"ignored" yaml:"ignored"`
	// Matched reports whether at least one rule matched.
	Matched bool `json:"matched" yaml:"matched"`
	// RuleIndex is the matched rule index in matcher input order, -1 when no match.
	RuleIndex int `json:"rule_index" yaml:"rule_index"`
}

// valid reports whether action value is supported.
func (a Action) valid() bool {
	return a == ActionIgnore || a == ActionKeep
}

// ParseRules parses ignore rules from reader.
//
// Semantics:
// - blank lines and comments are ignored
// - "!" creates keep rule
// - plain lines create ignore rule
// - "\#" and "\!" escape leading comment/negation tokens
func ParseRules(r io.Reader) ([]Rule, error) {
	s := bufio.NewScanner(r)
	rules := make([]Rule, 0, 16)

	for s.Scan() {
		line := trimTrailingSpaces(strings.TrimRight(s.Text(), "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, `\#`) {
			line = line[1:]
		}

		action := ActionIgnore
		switch {
		case strings.HasPrefix(line, "!"):
			action = ActionKeep
			line = line[1:]
		case strings.HasPrefix(line, `\!`):
			line = line[1:]
		}

		if line == "" {
			continue
		}

		rules = append(rules, Rule{Action: action, Pattern: line})
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("scan rules: %w", err)
	}

	return rules, nil
}

// ParseRulesString parses rules from string input.
func ParseRulesString(src string) ([]Rule, error) {
	return ParseRules(strings.NewReader(src))
}

// IgnoredPatterns returns patterns of ignore rules preserving order.
func IgnoredPatterns(rules []Rule) []string {
	out := make([]string, 0, len(rules))
	for _, rule := range rules {
		if rule.Action == ActionIgnore {
			out = append(out, rule.Pattern)
		}
	}

	return out
}

// trimTrailingSpaces removes trailing spaces unless escaped by "\".
func trimTrailingSpaces(s string) string {
	for len(s) > 0 && (s[len(s)-1] == ' ' || s[len(s)-1] == '\t') {
		if len(s) >= 2 && s[len(s)-2] == '\\' {
			s = s[:len(s)-2] + s[len(s)-1:]
			break
		}

		s = s[:len(s)-1]
	}

	return s
}
