// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import "errors"

// Sentinel errors for pathalias operations.
var (
	// ErrInvalidRule indicates malformed or unsupported rule input.
	ErrInvalidRule = errors.New("invalid rule")
	// ErrInvalidPattern indicates malformed or unsupported rule pattern.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrCommandUnavailable indicates an external command is not on PATH.
	ErrCommandUnavailable = errors.New("command unavailable")
	// ErrEmptyOutput indicates an external command printed nothing useful.
	ErrEmptyOutput = errors.New("empty command output")
	// ErrRootNotFound indicates every root location strategy failed.
	ErrRootNotFound = errors.New("project root not found")
	// ErrManifestNotFound indicates the path-mapping manifest is missing.
	ErrManifestNotFound = errors.New("path-mapping manifest not found")
	// ErrInvalidManifest indicates malformed path-mapping manifest content.
	ErrInvalidManifest = errors.New("invalid path-mapping manifest")
)
