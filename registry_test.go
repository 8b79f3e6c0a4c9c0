// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pathalias

package pathalias

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T, fsys afero.Fs, paths ...ManifestPath) *Registry {
	t.Helper()

	if fsys == nil {
		fsys = afero.NewMemMapFs()
	}

	r, err := NewRegistry("/p", &Manifest{Path: "/p/tsconfig.json", BaseURL: ".", Paths: paths}, RegistryOptions{Fs: fsys})
	require.NoError(t, err)

	return r
}

func mp(alias string, targets ...string) ManifestPath {
	return ManifestPath{Alias: alias, Targets: targets}
}

func TestRegistryNormalization(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, nil,
		mp("@/*", "src/*"),
		mp("~/*", "lib/*", "vendor/*", "./lib/*"),
		mp("/*", "*"),
		mp("*", "types/*"),
		mp("#config", "config/index.ts"),
	)

	entries := r.Entries()
	require.Len(t, entries, 5)

	assert.Equal(t, "@", entries[0].Alias)
	assert.Equal(t, SinglePath("src"), entries[0].Match)

	assert.Equal(t, "~", entries[1].Alias)
	multi, ok := entries[1].Match.(MultiPath)
	require.True(t, ok)
	assert.Equal(t, []string{"lib", "vendor"}, multi.Paths(), "duplicate targets collapse")
	assert.Equal(t, "(lib|vendor)", multi.Pattern())

	assert.Equal(t, "/", entries[2].Alias)
	assert.Equal(t, SinglePath("."), entries[2].Match)

	assert.Equal(t, ".", entries[3].Alias)
	assert.Equal(t, SinglePath("types"), entries[3].Match)

	assert.Equal(t, "#config", entries[4].Alias)
	assert.Equal(t, SinglePath("config/index.ts"), entries[4].Match)

	match, ok := r.Lookup("~")
	require.True(t, ok)
	assert.Equal(t, []string{"lib", "vendor"}, match.Paths())

	_, ok = r.Lookup("@/*")
	assert.False(t, ok)
}

func TestRegistryBaseURLAndManifestDir(t *testing.T) {
	t.Parallel()

	r, err := NewRegistry("/p", &Manifest{
		Path:    "/p/packages/web/tsconfig.json",
		BaseURL: "./app",
		Paths:   []ManifestPath{mp("@/*", "src/*"), mp("shared/*", "../../shared/*")},
	}, RegistryOptions{})
	require.NoError(t, err)

	entries := r.Entries()
	assert.Equal(t, SinglePath("packages/web/app/src"), entries[0].Match)
	assert.Equal(t, SinglePath("packages/shared"), entries[1].Match)
}

func TestRegistryDuplicateAlias(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, nil,
		mp("@/*", "old/*"),
		mp("x/*", "x/*"),
		mp("@", "new"),
	)

	entries := r.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, "@", entries[0].Alias)
	assert.Equal(t, SinglePath("new"), entries[0].Match)
}

func TestRegistryNilManifest(t *testing.T) {
	t.Parallel()

	_, err := NewRegistry("/p", nil, RegistryOptions{})
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestBuildRegistry(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/p/tsconfig.json",
		[]byte(`{"compilerOptions": {"baseUrl": ".", "paths": {"@/*": ["src/*"]}}}`), 0o600))

	r, err := BuildRegistry(fsys, "/p", "/p/tsconfig.json")
	require.NoError(t, err)
	assert.Equal(t, "/p", r.Root())
	assert.Equal(t, "/p/src/main.ts", r.RealPathFor("@/main.ts", false))

	_, err = BuildRegistry(fsys, "/p", "/p/jsconfig.json")
	assert.ErrorIs(t, err, ErrManifestNotFound)
}

func TestBestAliasFor(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, nil,
		mp("@/*", "src/*"),
		mp("@components/*", "src/components/*"),
		mp("#a/*", "lib/*"),
		mp("#b/*", "lib/*"),
		mp("~/*", "packages/ui/*", "vendor/ui/*"),
	)

	tests := []struct {
		in   string
		want string
	}{
		{in: "/p/src/index.ts", want: "@/index.ts"},
		{in: "/p/src/components/Button.tsx", want: "@components/Button.tsx"},
		{in: "/p/src/components", want: "@components"},
		{in: "/p/src", want: "@"},
		{in: "/p/lib/util.ts", want: "#a/util.ts"},
		{in: "/p/vendor/ui/theme.ts", want: "~/theme.ts"},
		{in: "/p/README.md", want: "README.md"},
		{in: "/p/srcx/file.ts", want: "srcx/file.ts"},
		{in: "src/index.ts", want: "@/index.ts"},
		{in: "/etc/hosts", want: "/etc/hosts"},
	}

	for _, tc := range tests {
		if got := r.BestAliasFor(tc.in); got != tc.want {
			t.Fatalf("BestAliasFor(%q)=%q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestBestAliasForRootAlias(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, nil, mp("/*", "*"))

	assert.Equal(t, "/index.html", r.BestAliasFor("/p/index.html"))
	assert.Equal(t, "/p/index.html", r.RealPathFor("/index.html", false))
	assert.Equal(t, "index.html", r.RealPathFor("/index.html", true))
}

func TestBestAliasForShortestRemainder(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, nil,
		mp("@/*", "src/*"),
		mp("@deep/*", "src/app/features/deep/*"),
		mp("@app/*", "src/app/*"),
	)

	p := "/p/src/app/features/deep/widgets/Chart.tsx"
	got := r.BestAliasFor(p)
	assert.Equal(t, "@deep/widgets/Chart.tsx", got)

	bestRem := "widgets/Chart.tsx"
	for _, entry := range r.Entries() {
		rem, ok := relSlash(filepath.Join("/p", entry.Match.String()), p)
		if !ok {
			continue
		}

		assert.LessOrEqual(t, len(bestRem), len(rem), "alias %s", entry.Alias)
	}
}

func TestBestAliasForNeverLongerThanRootRelative(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		in    string
		want  string
		paths []ManifestPath
	}{
		{
			name:  "long token",
			paths: []ManifestPath{mp("@design-system-components/*", "ui/*")},
			in:    "/p/ui/Button.tsx",
			want:  "ui/Button.tsx",
		},
		{
			name:  "long token still wins deep",
			paths: []ManifestPath{mp("@design-system/*", "packages/design/system/src/*")},
			in:    "/p/packages/design/system/src/Button.tsx",
			want:  "@design-system/Button.tsx",
		},
		{
			name:  "self alias",
			paths: []ManifestPath{mp("*", "*")},
			in:    "/p/src/x.ts",
			want:  "src/x.ts",
		},
		{
			name:  "self alias loses to shorter alias",
			paths: []ManifestPath{mp("*", "*"), mp("@/*", "src/*")},
			in:    "/p/src/x.ts",
			want:  "@/x.ts",
		},
		{
			name:  "equal length keeps alias",
			paths: []ManifestPath{mp("@sr/*", "src/*")},
			in:    "/p/src/x.ts",
			want:  "@sr/x.ts",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := newTestRegistry(t, nil, tc.paths...)
			got := r.BestAliasFor(tc.in)
			assert.Equal(t, tc.want, got)

			rootRel, err := filepath.Rel("/p", tc.in)
			require.NoError(t, err)
			assert.LessOrEqual(t, len(got), len(filepath.ToSlash(rootRel)))
		})
	}
}

func TestRealPathFor(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, nil,
		mp("@/*", "src/*"),
		mp("@/ui/*", "packages/ui/src/*"),
		mp("@images/*", "assets/images/*"),
	)

	tests := []struct {
		in          string
		want        string
		excludeRoot bool
	}{
		{in: "@/index.ts", want: "/p/src/index.ts"},
		{in: "@/index.ts", excludeRoot: true, want: "src/index.ts"},
		{in: "@/ui/Button.tsx", want: "/p/packages/ui/src/Button.tsx"},
		{in: "@images/logo.svg", want: "/p/assets/images/logo.svg"},
		{in: "@", want: "/p/src"},
		{in: "@imagesx/logo.svg", want: "@imagesx/logo.svg"},
		{in: "react", want: "react"},
		{in: "/p/src/index.ts", want: "/p/src/index.ts"},
		{in: "./local.ts", want: "./local.ts"},
	}

	for _, tc := range tests {
		if got := r.RealPathFor(tc.in, tc.excludeRoot); got != tc.want {
			t.Fatalf("RealPathFor(%q, %v)=%q, want %q", tc.in, tc.excludeRoot, got, tc.want)
		}
	}
}

func TestRealPathForMultiPath(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/p/vendor/ui/theme.ts", nil, 0o600))

	r := newTestRegistry(t, fsys, mp("~/*", "packages/ui/*", "vendor/ui/*"))

	assert.Equal(t, "/p/vendor/ui/theme.ts", r.RealPathFor("~/theme.ts", false))
	assert.Equal(t, "/p/packages/ui/missing.ts", r.RealPathFor("~/missing.ts", false))
}

func TestAliasRoundTrip(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, nil,
		mp("@/*", "src/*"),
		mp("@components/*", "src/components/*"),
		mp("/*", "*"),
	)

	for _, p := range []string{
		"/p/src/index.ts",
		"/p/src/components/Button.tsx",
		"/p/public/index.html",
		"/p/package.json",
	} {
		aliased := r.BestAliasFor(p)
		if got := r.RealPathFor(aliased, false); got != p {
			t.Fatalf("round trip %q -> %q -> %q", p, aliased, got)
		}
	}
}

func TestToCustomObject(t *testing.T) {
	t.Parallel()

	r := newTestRegistry(t, nil,
		mp("@/*", "src/*"),
		mp("~/*", "lib/*", "vendor/*"),
	)

	raw := r.ToCustomObject(EmitOptions{})
	assert.Equal(t, SinglePath("src"), raw["@"])
	assert.Equal(t, NewMultiPath("lib", "vendor"), raw["~"])

	shaped := r.ToCustomObject(EmitOptions{
		AliasModifier: func(alias string) string { return alias + "/*" },
		PathMatchModifier: func(m PathMatch) any {
			return len(m.Paths())
		},
	})
	assert.Equal(t, map[string]any{"@/*": 1, "~/*": 2}, shaped)

	collapsed := r.ToCustomObject(EmitOptions{
		AliasModifier: func(string) string { return "same" },
	})
	assert.Equal(t, map[string]any{"same": NewMultiPath("lib", "vendor")}, collapsed)
}

func TestJoinAlias(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "@", JoinAlias("@", "."))
	assert.Equal(t, "@/a.ts", JoinAlias("@", "a.ts"))
	assert.Equal(t, "/a.ts", JoinAlias("/", "a.ts"))
	assert.Equal(t, "@/", AliasPrefix("@"))
	assert.Equal(t, "/", AliasPrefix("/"))
}
