// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/safepattern

package safepattern

import "fmt"

// Action represents a decision action of one rule.
type Action uint8

const (
	// ActionUnknown is unset/invalid action placeholder.
	ActionUnknown Action = iota
	// ActionExclude means matching names should be excluded.
	ActionExclude
	// ActionInclude means matching names should be included.
	ActionInclude
)

// Rule is one user-visible glob rule.
type Rule struct {
	// Pattern is a glob expression lowered through the safe compiler.
	Pattern string `json:"pattern" yaml:"pattern"`
	// Action is a decision action applied when the rule matches.
	Action Action `json:"action" yaml:"action"`
}

// SetOptions controls rule-set behavior.
type SetOptions struct {
	// Flags are matching-mode flags applied to every compiled rule.
	Flags Flags `json:"flags,omitempty" yaml:"flags,omitempty"`
	// DefaultAction is applied when no rule matched.
	DefaultAction Action `json:"default_action,omitempty" yaml:"default_action,omitempty"`
}

// MatchResult is a deterministic decision produced by a rule set.
type MatchResult struct {
	// Included reports final include decision.
	Included bool `json:"included" yaml:"included"`
	// Matched reports whether at least one rule matched.
	Matched bool `json:"matched" yaml:"matched"`
	// RuleIndex is the matched rule index in set input order, -1 when no match.
	RuleIndex int `json:"rule_index" yaml:"rule_index"`
}

// setRule is one compiled rule inside a set.
type setRule struct {
	matcher *Matcher
	source  Rule
}

// Set evaluates name decisions against compiled ordered glob rules.
//
// Every rule clears the risk analyzer at construction, so a Set built from
// untrusted rule text cannot be used to smuggle a catastrophic pattern in.
type Set struct {
	compiled      []setRule
	defaultAction Action
}

// NewSet compiles ordered rules into a set. Each pattern goes through the
// glob translator and the safe compiler; the first rejected rule fails the
// whole set with its index and pattern in the error.
func NewSet(rules []Rule, opts SetOptions) (*Set, error) {
	opts.applyDefaults()

	compiled := make([]setRule, 0, len(rules))
	for i, rule := range rules {
		if !rule.Action.valid() {
			return nil, fmt.Errorf("%w: rule %d: unsupported action %d", ErrInvalidRule, i, rule.Action)
		}

		if rule.Pattern == "" {
			return nil, fmt.Errorf("%w: rule %d: empty pattern", ErrInvalidRule, i)
		}

		m, err := TranslateGlob(rule.Pattern, opts.Flags)
		if err != nil {
			return nil, fmt.Errorf("rule %d (%q): %w", i, rule.Pattern, err)
		}

		compiled = append(compiled, setRule{
			matcher: m,
			source:  rule,
		})
	}

	return &Set{
		compiled:      compiled,
		defaultAction: opts.DefaultAction,
	}, nil
}

// Decide returns deterministic include/exclude decision for one name.
//
// Decision policy:
// - last matched rule wins
// - if no rule matched, default action is used
func (s *Set) Decide(name string) MatchResult {
	res := MatchResult{
		Included:  s.defaultAction == ActionInclude,
		Matched:   false,
		RuleIndex: -1,
	}

	for i := range s.compiled {
		if !s.compiled[i].matcher.MatchString(name) {
			continue
		}

		res.Matched = true
		res.RuleIndex = i
		res.Included = s.compiled[i].source.Action == ActionInclude
	}

	return res
}

// Included reports whether name is included by decision policy.
func (s *Set) Included(name string) bool {
	return s.Decide(name).Included
}

// Excluded reports whether name is excluded by decision policy.
func (s *Set) Excluded(name string) bool {
	return !s.Decide(name).Included
}

// Len returns the number of compiled rules.
func (s *Set) Len() int {
	return len(s.compiled)
}

// applyDefaults fills zero-valued options with defaults.
func (opts *SetOptions) applyDefaults() {
	if !opts.DefaultAction.valid() {
		opts.DefaultAction = ActionInclude
	}
}

// valid reports whether action value is supported.
func (a Action) valid() bool {
	return a == ActionExclude || a == ActionInclude
}
