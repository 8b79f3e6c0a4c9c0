// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
)

const (
	// VCSMetadataDir is always ignored.
	VCSMetadataDir = ".git"
	// DefaultRulesFileName is the ignore-rules file read when git is unavailable.
	DefaultRulesFileName = ".gitignore"
	// DefaultDependencyDir is ignored when neither git nor a rules file is available.
	DefaultDependencyDir = "node_modules"
)

// IgnoreOptions configures ignore rule compilation.
type IgnoreOptions struct {
	Runner CommandRunner
	Logger *log.Logger
	Fs     afero.Fs
	// Root is the project root, used as git working directory and rules file location.
	Root string
	// RulesFileName defaults to ".gitignore".
	RulesFileName string
	// Extra entries are supplied by the caller and always kept.
	Extra []string
	// Defaults replace DefaultDependencyDir as the last fallback tier.
	Defaults []string
}

// IgnoreSet is an ordered deduplicated ignore list with its derived matchers.
// It is immutable; Extend returns a new set.
type IgnoreSet struct {
	regex   *regexp.Regexp
	matcher *Matcher
	names   map[string]struct{}
	logger  *log.Logger
	root    string
	entries []string
	globs   []string
	// validGlobs are globs accepted by doublestar.
	validGlobs []string
	// discovered are rules found by the source tiers, kept for Extend.
	discovered []Rule
	extra      []string
}

// ignoreSource is one tier of ignore rule discovery.
type ignoreSource struct {
	load func(ctx context.Context, opts IgnoreOptions) ([]Rule, error)
	name string
}

// ignoreSources lists discovery tiers in fallback order.
var ignoreSources = []ignoreSource{
	{name: "git status", load: gitIgnoredRules},
	{name: "rules file", load: rulesFileRules},
	{name: "defaults", load: defaultRules},
}

// CompileIgnoreRules discovers ignore rules and compiles them.
// It never fails: every source error falls through to the next tier.
func CompileIgnoreRules(ctx context.Context, opts IgnoreOptions) *IgnoreSet {
	logger := loggerOrDiscard(opts.Logger)

	var discovered []Rule
	for _, src := range ignoreSources {
		rules, err := src.load(ctx, opts)
		if err != nil {
			logger.Debug("ignore source failed", "source", src.name, "err", err)
			continue
		}

		logger.Debug("ignore rules discovered", "source", src.name, "count", len(rules))
		discovered = rules
		break
	}

	return newIgnoreSet(opts.Root, opts.Extra, discovered, logger)
}

// NewIgnoreSet compiles a set from explicit entries only.
func NewIgnoreSet(root string, entries []string) *IgnoreSet {
	return newIgnoreSet(root, entries, nil, nil)
}

// Extend returns an independent set compiled with extra caller entries added
// in front of the current ones. Discovery is not repeated.
func (s *IgnoreSet) Extend(extra ...string) *IgnoreSet {
	combined := make([]string, 0, len(extra)+len(s.extra))
	combined = append(combined, extra...)
	combined = append(combined, s.extra...)

	return newIgnoreSet(s.root, combined, s.discovered, s.logger)
}

func newIgnoreSet(root string, extra []string, discovered []Rule, logger *log.Logger) *IgnoreSet {
	logger = loggerOrDiscard(logger)

	entries := dedupeEntries(extra, []string{VCSMetadataDir}, IgnoredPatterns(discovered))
	s := &IgnoreSet{
		root:       root,
		entries:    entries,
		extra:      append([]string(nil), extra...),
		discovered: discovered,
		logger:     logger,
		names:      make(map[string]struct{}, len(entries)),
		matcher:    &Matcher{fold: true},
	}

	for _, entry := range entries {
		s.names[entry] = struct{}{}
	}

	s.regex = compileIgnoreRegex(entries)

	for _, entry := range entries {
		glob := ignoreGlob(entry)
		if glob == "" {
			continue
		}

		s.globs = append(s.globs, glob)
		if doublestar.ValidatePattern(glob) {
			s.validGlobs = append(s.validGlobs, glob)
		} else {
			logger.Debug("invalid ignore glob", "glob", glob)
		}
	}

	// Entries first, then negations from the rules file so the latter win.
	rules := make([]Rule, 0, len(entries)+len(discovered))
	for _, entry := range entries {
		rules = append(rules, Rule{Action: ActionIgnore, Pattern: entry})
	}

	for _, rule := range discovered {
		if rule.Action == ActionKeep {
			rules = append(rules, rule)
		}
	}

	for _, rule := range rules {
		cp, err := compilePattern(rule, true)
		if err != nil {
			logger.Debug("skip ignore rule", "pattern", rule.Pattern, "err", err)
			continue
		}

		s.matcher.compiled = append(s.matcher.compiled, *cp)
	}

	return s
}

// Root returns the directory relative paths are evaluated against.
func (s *IgnoreSet) Root() string {
	return s.root
}

// List returns the deduplicated entries.
func (s *IgnoreSet) List() []string {
	return append([]string(nil), s.entries...)
}

// Regex returns the combined case-insensitive expression, nil for an empty set.
func (s *IgnoreSet) Regex() *regexp.Regexp {
	return s.regex
}

// Globs returns entries rewritten to match at any directory depth.
func (s *IgnoreSet) Globs() []string {
	return append([]string(nil), s.globs...)
}

// Matcher returns the gitignore-semantics rule matcher.
func (s *IgnoreSet) Matcher() *Matcher {
	return s.matcher
}

// Contains reports whether name is an entry as is or with a trailing slash.
func (s *IgnoreSet) Contains(name string) bool {
	if _, ok := s.names[name]; ok {
		return true
	}

	_, ok := s.names[name+"/"]
	return ok
}

// MatchGlob reports whether slash-separated relative path matches any glob.
func (s *IgnoreSet) MatchGlob(rel string) bool {
	rel = normalizePath(rel)
	for _, glob := range s.validGlobs {
		if ok, _ := doublestar.Match(glob, rel); ok {
			return true
		}
	}

	return false
}

// Ignores reports whether fullPath is excluded from search.
//
// A path is ignored by name (with or without trailing slash), by the combined
// expression, or by the rule matcher. A negated rule that matches last keeps the path.
//
// The expression is matched against the path relative to the root, not the
// full path, so ancestors of the root never cause a match. Consumers applying
// Regex to absolute paths can match more than Ignores does.
func (s *IgnoreSet) Ignores(fullPath string, isDir bool) bool {
	rel, inside := relSlash(s.root, fullPath)
	if !inside || s.root == "" {
		rel = filepath.ToSlash(fullPath)
	}

	var decision MatchResult
	if inside {
		decision = s.matcher.Decide(rel, isDir)
		if decision.Matched && !decision.Ignored {
			return false
		}
	}

	if s.Contains(filepath.Base(fullPath)) {
		return true
	}

	if s.regex != nil && s.regex.MatchString(rel) {
		return true
	}

	return decision.Ignored
}

// compileIgnoreRegex builds `(.*\bENTRY\b.*)|...` over entries with wildcards stripped.
func compileIgnoreRegex(entries []string) *regexp.Regexp {
	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		entry = strings.NewReplacer("*", "", "?", "").Replace(entry)
		if entry == "" {
			continue
		}

		parts = append(parts, "(.*"+wordBoundary(entry[0])+regexp.QuoteMeta(entry)+wordBoundary(entry[len(entry)-1])+".*)")
	}

	if len(parts) == 0 {
		return nil
	}

	return regexp.MustCompile("(?i)" + strings.Join(parts, "|"))
}

// wordBoundary returns `\b` when c is a word character; a boundary next to
// punctuation would require a word character on the other side instead.
func wordBoundary(c byte) string {
	if c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') {
		return `\b`
	}

	return ""
}

// ignoreGlob rewrites a depth-relative entry into a glob usable at any depth.
func ignoreGlob(entry string) string {
	glob := strings.TrimSpace(entry)
	if after, ok := strings.CutPrefix(glob, "/"); ok {
		glob = "**/" + after
	}

	if before, ok := strings.CutSuffix(glob, "/"); ok {
		glob = before + "/**"
	}

	if glob == "**/" || glob == "/**" || glob == "**//**" {
		return ""
	}

	return glob
}

// dedupeEntries merges entry lists preserving first occurrence order.
func dedupeEntries(sets ...[]string) []string {
	total := 0
	for _, set := range sets {
		total += len(set)
	}

	seen := make(map[string]struct{}, total)
	out := make([]string, 0, total)
	for _, set := range sets {
		for _, entry := range set {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}

			if _, ok := seen[entry]; ok {
				continue
			}

			seen[entry] = struct{}{}
			out = append(out, entry)
		}
	}

	return out
}

// gitIgnoredRules lists ignored paths reported by git, already expanded.
func gitIgnoredRules(ctx context.Context, opts IgnoreOptions) ([]Rule, error) {
	out, err := runnerOrExec(opts.Runner)(ctx, opts.Root, nil,
		"git", "status", "--ignored", "--porcelain", "-z")
	if err != nil {
		return nil, err
	}

	paths := parseGitIgnored(out)
	rules := make([]Rule, 0, len(paths))
	for _, p := range paths {
		rules = append(rules, Rule{Action: ActionIgnore, Pattern: p})
	}

	return rules, nil
}

// parseGitIgnored extracts "!!" records from NUL-separated porcelain v1 output.
func parseGitIgnored(out []byte) []string {
	var paths []string
	for _, record := range bytes.Split(out, []byte{0}) {
		if len(record) < 4 || !bytes.HasPrefix(record, []byte("!! ")) {
			continue
		}

		paths = append(paths, string(record[3:]))
	}

	return paths
}

// rulesFileRules parses the ignore-rules file in the root.
func rulesFileRules(_ context.Context, opts IgnoreOptions) ([]Rule, error) {
	name := opts.RulesFileName
	if name == "" {
		name = DefaultRulesFileName
	}

	fsys := opts.Fs
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	return LoadRulesFile(fsys, filepath.Join(opts.Root, name))
}

// defaultRules is the last tier and never fails.
func defaultRules(_ context.Context, opts IgnoreOptions) ([]Rule, error) {
	defaults := opts.Defaults
	if len(defaults) == 0 {
		defaults = []string{DefaultDependencyDir}
	}

	rules := make([]Rule, 0, len(defaults))
	for _, entry := range defaults {
		rules = append(rules, Rule{Action: ActionIgnore, Pattern: entry})
	}

	return rules, nil
}
