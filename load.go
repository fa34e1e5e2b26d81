// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/safepattern

package safepattern

import (
	"fmt"
	"os"
)

// LoadRulesFile reads and parses one glob rule file.
//
// The result is plain parsed rules; compiling them through the safety gate
// is NewSet's job.
func LoadRulesFile(path string) ([]Rule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open rules file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rules, err := ParseRules(f)
	if err != nil {
		return nil, fmt.Errorf("parse rules file %s: %w", path, err)
	}

	return rules, nil
}

// LoadRulesFiles reads and concatenates rule files in the given order.
//
// Order is preserved across and inside files, so under the set's
// last-match-wins decision later files override earlier ones.
func LoadRulesFiles(paths ...string) ([]Rule, error) {
	out := make([]Rule, 0, len(paths)*8)
	for _, path := range paths {
		rules, err := LoadRulesFile(path)
		if err != nil {
			return nil, err
		}

		out = append(out, rules...)
	}

	return out, nil
}

// MergeRules concatenates rule slices preserving input order, for layering
// built-in defaults under user-supplied rules before NewSet.
func MergeRules(ruleSets ...[]Rule) []Rule {
	total := 0
	for _, set := range ruleSets {
		total += len(set)
	}

	out := make([]Rule, 0, total)
	for _, set := range ruleSets {
		out = append(out, set...)
	}

	return out
}
