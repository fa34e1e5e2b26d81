// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/safepattern

package safepattern

import (
	"testing"

	"github.com/gobwas/glob"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateGlob(t *testing.T) {
	t.Parallel()

	cases := []struct {
		glob    string
		match   []string
		noMatch []string
	}{
		{
			glob:    "*.ts",
			match:   []string{"foo.ts", ".ts", "a.b.ts"},
			noMatch: []string{"foo.js", "dir/foo.ts", "foo.ts.bak"},
		},
		{
			glob:    "src/**/*.ts",
			match:   []string{"src/deep/nested/file.ts", "src/a/b.ts"},
			noMatch: []string{"src/foo.js", "lib/a/b.ts"},
		},
		{
			glob:    "file?.txt",
			match:   []string{"file1.txt", "fileX.txt"},
			noMatch: []string{"file12.txt", "file.txt"},
		},
		{
			glob:    "tsconfig.*.json",
			match:   []string{"tsconfig.build.json", "tsconfig.test.json"},
			noMatch: []string{"tsconfig.json", "tsconfig.build.json5"},
		},
		{
			// Anchoring: a glob matches whole candidates, never substrings.
			glob:    "test",
			match:   []string{"test"},
			noMatch: []string{"testing", "a test", "atest", ""},
		},
		{
			glob:    "**",
			match:   []string{"", "anything", "deep/nested/path"},
			noMatch: nil,
		},
		{
			// Literal metacharacters in the glob stay literal.
			glob:    "cache+v2/*.json",
			match:   []string{"cache+v2/index.json"},
			noMatch: []string{"cacheXv2/index.json"},
		},
	}

	for _, tc := range cases {
		m, err := TranslateGlob(tc.glob, 0)
		require.NoErrorf(t, err, "TranslateGlob(%q)", tc.glob)

		for _, candidate := range tc.match {
			assert.Truef(t, m.MatchString(candidate), "glob %q must match %q", tc.glob, candidate)
		}

		for _, candidate := range tc.noMatch {
			assert.Falsef(t, m.MatchString(candidate), "glob %q must not match %q", tc.glob, candidate)
		}
	}
}

func TestTranslateGlobFlags(t *testing.T) {
	t.Parallel()

	m, err := TranslateGlob("*.TXT", FlagIgnoreCase)
	require.NoError(t, err)

	assert.True(t, m.MatchString("README.TXT"))
	assert.True(t, m.MatchString("readme.txt"))

	exact, err := TranslateGlob("*.TXT", 0)
	require.NoError(t, err)

	assert.True(t, exact.MatchString("README.TXT"))
	assert.False(t, exact.MatchString("readme.txt"))
}

func TestGlobToRegex(t *testing.T) {
	t.Parallel()

	cases := []struct {
		glob string
		want string
	}{
		{"", "^$"},
		{"*.ts", `^[^/]*\.ts$`},
		{"src/**/*.ts", `^src/.*/[^/]*\.ts$`},
		{"file?.txt", `^file.\.txt$`},
		{"a+b*.c", `^a\+b[^/]*\.c$`},
		{"***", `^.*$`},
		{"?", `^.$`},
	}

	for _, tc := range cases {
		assert.Equalf(t, tc.want, globToRegex(tc.glob), "globToRegex(%q)", tc.glob)
	}
}

func TestGlobTokenize(t *testing.T) {
	t.Parallel()

	tokens := tokenizeGlob("src/**/f*?.ts")
	want := []globToken{
		{kind: tokenLiteral, text: "src/"},
		{kind: tokenRecursiveWildcard},
		{kind: tokenLiteral, text: "/f"},
		{kind: tokenSingleWildcard},
		{kind: tokenAnyChar},
		{kind: tokenLiteral, text: ".ts"},
	}

	assert.Equal(t, want, tokens)

	// Any star run of length >= 2 collapses into one recursive token.
	assert.Equal(t, []globToken{{kind: tokenRecursiveWildcard}}, tokenizeGlob("****"))
	assert.Equal(t, []globToken{{kind: tokenSingleWildcard}}, tokenizeGlob("*"))
}

// TestTranslateGlobOracle cross-checks translator semantics against an
// independent glob engine compiled with "/" as the separator.
func TestTranslateGlobOracle(t *testing.T) {
	t.Parallel()

	patterns := []string{
		"*.ts",
		"tsconfig.*.json",
		"test",
		"src/*/file.go",
		"**.go",
		"docs/**",
	}

	candidates := []string{
		"foo.ts",
		"foo.js",
		"dir/foo.ts",
		"tsconfig.json",
		"tsconfig.build.json",
		"test",
		"testing",
		"src/a/file.go",
		"src/a/b/file.go",
		"src/file.go",
		"main.go",
		"pkg/util/main.go",
		"docs/guide/intro.md",
		"doc/guide/intro.md",
	}

	for _, pattern := range patterns {
		m, err := TranslateGlob(pattern, 0)
		require.NoErrorf(t, err, "TranslateGlob(%q)", pattern)

		oracle := glob.MustCompile(pattern, '/')
		for _, candidate := range candidates {
			assert.Equalf(t, oracle.Match(candidate), m.MatchString(candidate),
				"glob %q vs %q disagrees with oracle", pattern, candidate)
		}
	}
}

// Every syntactically valid glob lowers to a pattern the analyzer clears.
func TestTranslateGlobAlwaysClearsAnalyzer(t *testing.T) {
	t.Parallel()

	globs := []string{
		"",
		"plain",
		"a*b*c*d*e*",
		"****",
		"?*?*?",
		"**/*/**",
		"[not-a-class]+{1,2}",
		"end.with.star*",
	}

	for _, g := range globs {
		require.Equalf(t, VerdictSafe, Assess(globToRegex(g)), "translated glob %q", g)

		if _, err := TranslateGlob(g, 0); err != nil {
			t.Fatalf("TranslateGlob(%q): %v", g, err)
		}
	}
}
