// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/safepattern

package safepattern

import (
	"fmt"
	"regexp/syntax"

	"github.com/dlclark/regexp2"
)

// Flags are optional matching-mode flags attached to a pattern at compile
// time. They are orthogonal to safety analysis.
type Flags uint8

const (
	// FlagIgnoreCase enables case-insensitive matching.
	FlagIgnoreCase Flags = 1 << iota
	// FlagMultiline makes "^" and "$" match at line boundaries.
	FlagMultiline
)

// Matcher is an immutable compiled pattern that cleared the risk analyzer.
//
// Matching is a pure read with no side effects, so one Matcher is safe to
// share across any number of concurrent callers.
type Matcher struct {
	re      *regexp2.Regexp
	pattern string
	flags   Flags
}

// Compile validates and compiles a regex pattern through the safety gate.
//
// A pattern that fails to parse is rejected with ErrInvalidSyntax; a pattern
// the risk analyzer cannot prove free of catastrophic backtracking is
// rejected with ErrUnsafePattern. Both are matched with errors.Is. A Matcher
// is only ever returned for a pattern that cleared both checks; there is no
// partially constructed state in between.
func Compile(pattern string, flags Flags) (*Matcher, error) {
	if _, err := syntax.Parse(pattern, syntax.Perl); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSyntax, err)
	}

	if Assess(pattern) != VerdictSafe {
		return nil, fmt.Errorf("%w: %q", ErrUnsafePattern, pattern)
	}

	re, err := regexp2.Compile(pattern, flags.engineOptions())
	if err != nil {
		// The engine dialect is a superset of the analyzer grammar, so this
		// is rare; it is still a syntax-level rejection.
		return nil, fmt.Errorf("%w: engine: %v", ErrInvalidSyntax, err)
	}

	return &Matcher{
		re:      re,
		pattern: pattern,
		flags:   flags,
	}, nil
}

// MatchString reports whether the matcher matches anywhere in s.
func (m *Matcher) MatchString(s string) bool {
	// The engine reports errors only for match timeouts, which are never
	// configured here: worst-case matching cost is bounded statically by
	// the risk analyzer instead.
	ok, err := m.re.MatchString(s)
	return ok && err == nil
}

// Pattern returns the source pattern string.
func (m *Matcher) Pattern() string {
	return m.pattern
}

// Flags returns the matching-mode flags the matcher was compiled with.
func (m *Matcher) Flags() Flags {
	return m.flags
}

// engineOptions maps flags to match-engine options.
func (f Flags) engineOptions() regexp2.RegexOptions {
	opts := regexp2.None
	if f&FlagIgnoreCase != 0 {
		opts |= regexp2.IgnoreCase
	}

	if f&FlagMultiline != 0 {
		opts |= regexp2.Multiline
	}

	return opts
}
