// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/safepattern

package safepattern

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseRules parses glob rules from reader, one rule per line.
//
// Rule text follows the gitignore shape, but each surviving pattern is a
// glob expression destined for the safe compiler:
//
//	# build output
//	dist/**
//	*.tmp
//	!keep.tmp
//
// Semantics:
// - blank lines and "#" comments are ignored
// - "!" creates include rule
// - plain lines create exclude rule
// - "\#" and "\!" escape leading comment/negation tokens
// - trailing whitespace is trimmed unless escaped by "\"
//
// Parsing is purely syntactic; glob translation and the backtracking-risk
// gate run later in NewSet, where a bad pattern surfaces as ErrInvalidRule
// carrying its rule index.
func ParseRules(r io.Reader) ([]Rule, error) {
	s := bufio.NewScanner(r)
	rules := make([]Rule, 0, 16)

	for s.Scan() {
		rule, ok := parseRuleLine(s.Text())
		if !ok {
			continue
		}

		rules = append(rules, rule)
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

// parseRuleLine classifies one line of rule text; ok is false for blanks,
// comments, and lines reduced to nothing by token stripping.
func parseRuleLine(line string) (Rule, bool) {
	line = strings.TrimRight(line, "\r")
	if line == "" {
		return Rule{}, false
	}

	line = trimTrailingSpaces(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Rule{}, false
	}

	if strings.HasPrefix(line, `\#`) {
		line = line[1:]
	}

	action := ActionExclude
	if strings.HasPrefix(line, "!") {
		action = ActionInclude
		line = line[1:]
	} else if strings.HasPrefix(line, `\!`) {
		line = line[1:]
	}

	if line == "" {
		return Rule{}, false
	}

	return Rule{Action: action, Pattern: line}, true
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
