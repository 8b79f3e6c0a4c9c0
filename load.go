// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"fmt"

	"github.com/spf13/afero"
)

// LoadRulesFile reads and parses ignore rules from a file.
func LoadRulesFile(fsys afero.Fs, path string) ([]Rule, error) {
	f, err := fsys.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rules, err := ParseRules(f)
	if err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	return rules, nil
}
