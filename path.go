// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"os"
	"path"
	"path/filepath"
	"strings"
)

// normalizePath normalizes matching path to slash-separated relative clean form.
func normalizePath(raw string) string {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), `\`, `/`)
	raw = strings.TrimPrefix(raw, "./")
	raw = strings.TrimPrefix(raw, "/")
	if raw == "" {
		return ""
	}

	raw = strings.TrimPrefix(path.Clean("/"+raw), "/")
	if raw == "." {
		return ""
	}

	return raw
}

// normalizePattern normalizes source pattern for compilation.
func normalizePattern(raw string) string {
	return strings.ReplaceAll(strings.TrimSpace(raw), `\`, `/`)
}

// asciiLower converts only ASCII A-Z to a-z and leaves all other bytes unchanged.
func asciiLower(s string) string {
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			continue
		}

		b := []byte(s)
		for j := i; j < len(b); j++ {
			if b[j] >= 'A' && b[j] <= 'Z' {
				b[j] += 'a' - 'A'
			}
		}

		return string(b)
	}

	return s
}

// relSlash returns target relative to base in slash form.
// ok is false when target is outside base.
func relSlash(base string, target string) (string, bool) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", false
	}

	rel = filepath.ToSlash(rel)
	if rel == ".." || strings.HasPrefix(rel, "../") {
		return rel, false
	}

	return rel, true
}

// isPathWithinRoot reports whether target path is inside root path.
func isPathWithinRoot(root string, target string) bool {
	_, ok := relSlash(root, target)
	return ok
}

// resolvePathOrAbs resolves symlinks and falls back to absolute path for missing paths.
func resolvePathOrAbs(p string) (string, error) {
	resolved, err := filepath.EvalSymlinks(p)
	if err == nil {
		return resolved, nil
	}

	abs, absErr := filepath.Abs(p)
	if absErr != nil {
		return "", absErr
	}

	if os.IsNotExist(err) {
		return abs, nil
	}

	return "", err
}
