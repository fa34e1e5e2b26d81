// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/safepattern

package safepattern

import "strings"

// globTokenKind is a glob token discriminator.
type globTokenKind uint8

const (
	// tokenLiteral is a run of non-wildcard characters.
	tokenLiteral globTokenKind = iota
	// tokenSingleWildcard is one "*": zero or more non-separator characters.
	tokenSingleWildcard
	// tokenRecursiveWildcard is a "*" run of length >= 2: zero or more
	// arbitrary characters, crossing path-separator boundaries.
	tokenRecursiveWildcard
	// tokenAnyChar is one "?": exactly one character.
	tokenAnyChar
)

// globToken is one token of a glob expression.
type globToken struct {
	// text is the source run for literal tokens, empty otherwise.
	text string
	// kind discriminates the token.
	kind globTokenKind
}

// TranslateGlob lowers a glob expression to an anchored regex pattern and
// compiles it through the safety gate.
//
// Supported syntax: "*" matches within one path component, "**" (any run of
// two or more stars) matches across components, "?" matches one character,
// everything else is literal. The result matches whole candidate strings
// only, never substrings.
func TranslateGlob(glob string, flags Flags) (*Matcher, error) {
	// Translation cannot emit nested unbounded repetition, so the analyzer
	// clears every syntactically valid glob; the gate still runs so glob
	// input has no special path past it.
	return Compile(globToRegex(glob), flags)
}

// globToRegex assembles the anchored regex form of a glob expression.
func globToRegex(glob string) string {
	var b strings.Builder
	b.Grow(len(glob) + 8)
	b.WriteByte('^')

	for _, token := range tokenizeGlob(glob) {
		switch token.kind {
		case tokenRecursiveWildcard:
			b.WriteString(`.*`)
		case tokenSingleWildcard:
			b.WriteString(`[^/]*`)
		case tokenAnyChar:
			b.WriteByte('.')
		default:
			b.WriteString(Escape(token.text))
		}
	}

	b.WriteByte('$')
	return b.String()
}

// tokenizeGlob scans a glob expression left to right into an ordered token
// sequence, folding each "*" run into a single wildcard token.
func tokenizeGlob(glob string) []globToken {
	tokens := make([]globToken, 0, 8)

	for i := 0; i < len(glob); {
		switch glob[i] {
		case '*':
			run := i
			for run < len(glob) && glob[run] == '*' {
				run++
			}

			kind := tokenSingleWildcard
			if run-i >= 2 {
				kind = tokenRecursiveWildcard
			}

			tokens = append(tokens, globToken{kind: kind})
			i = run

		case '?':
			tokens = append(tokens, globToken{kind: tokenAnyChar})
			i++

		default:
			end := i
			for end < len(glob) && glob[end] != '*' && glob[end] != '?' {
				end++
			}

			tokens = append(tokens, globToken{kind: tokenLiteral, text: glob[i:end]})
			i = end
		}
	}

	return tokens
}
