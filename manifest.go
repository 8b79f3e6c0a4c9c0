// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/tailscale/hujson"
	"github.com/tidwall/gjson"
)

// DefaultManifestNames are path-mapping manifest file names in lookup order.
var DefaultManifestNames = []string{"tsconfig.json", "jsconfig.json"}

// Manifest is the parsed `compilerOptions` subset of a path-mapping manifest.
type Manifest struct {
	// Path is the file the manifest was read from, empty for in-memory input.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// BaseURL is `compilerOptions.baseUrl`, "." when absent.
	BaseURL string `json:"base_url" yaml:"base_url"`
	// Paths keeps `compilerOptions.paths` entries in file order.
	Paths []ManifestPath `json:"paths" yaml:"paths"`
}

// ManifestPath is one raw `"alias/*": ["real/path/*"]` entry.
type ManifestPath struct {
	Alias   string   `json:"alias" yaml:"alias"`
	Targets []string `json:"targets" yaml:"targets"`
}

// LoadManifest reads and parses a manifest file.
// Comments and trailing commas are accepted.
func LoadManifest(fsys afero.Fs, path string) (*Manifest, error) {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, path)
		}

		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	m.Path = path
	return m, nil
}

// ParseManifest parses manifest content.
func ParseManifest(data []byte) (*Manifest, error) {
	std, err := hujson.Standardize(bytes.Clone(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	if !gjson.ValidBytes(std) {
		return nil, fmt.Errorf("%w: not valid JSON", ErrInvalidManifest)
	}

	opts := gjson.GetBytes(std, "compilerOptions")
	if !opts.IsObject() {
		return nil, fmt.Errorf("%w: compilerOptions must be an object", ErrInvalidManifest)
	}

	m := &Manifest{BaseURL: "."}
	if base := opts.Get("baseUrl"); base.Exists() {
		if base.Type != gjson.String {
			return nil, fmt.Errorf("%w: compilerOptions.baseUrl must be a string", ErrInvalidManifest)
		}

		if base.String() != "" {
			m.BaseURL = base.String()
		}
	}

	paths := opts.Get("paths")
	if !paths.IsObject() {
		return nil, fmt.Errorf("%w: compilerOptions.paths must be an object", ErrInvalidManifest)
	}

	var entryErr error
	paths.ForEach(func(key, value gjson.Result) bool {
		entry, err := parseManifestPath(key.String(), value)
		if err != nil {
			entryErr = err
			return false
		}

		m.Paths = append(m.Paths, entry)
		return true
	})

	if entryErr != nil {
		return nil, entryErr
	}

	return m, nil
}

func parseManifestPath(alias string, value gjson.Result) (ManifestPath, error) {
	if alias == "" {
		return ManifestPath{}, fmt.Errorf("%w: empty alias", ErrInvalidManifest)
	}

	if !value.IsArray() {
		return ManifestPath{}, fmt.Errorf("%w: paths[%q] must be an array", ErrInvalidManifest, alias)
	}

	items := value.Array()
	if len(items) == 0 {
		return ManifestPath{}, fmt.Errorf("%w: paths[%q] is empty", ErrInvalidManifest, alias)
	}

	entry := ManifestPath{Alias: alias, Targets: make([]string, 0, len(items))}
	for i, item := range items {
		if item.Type != gjson.String || item.String() == "" {
			return ManifestPath{}, fmt.Errorf("%w: paths[%q][%d] must be a non-empty string", ErrInvalidManifest, alias, i)
		}

		entry.Targets = append(entry.Targets, item.String())
	}

	return entry, nil
}
