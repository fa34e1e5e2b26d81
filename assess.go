// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/safepattern

package safepattern

import (
	"strings"
	"unicode"
)

// Verdict is the outcome of static backtracking-risk analysis.
type Verdict uint8

const (
	// VerdictUnsafe means the pattern admits super-linear backtracking,
	// is syntactically invalid, or could not be proven safe.
	VerdictUnsafe Verdict = iota
	// VerdictSafe means the pattern cannot trigger catastrophic backtracking.
	VerdictSafe
)

const (
	// maxPatternLength bounds analysis and compilation cost for adversarial
	// inputs. Longer patterns are rejected outright.
	maxPatternLength = 4096
	// repeatCeiling is the bounded-quantifier ceiling: "{m,n}" with n at or
	// above this value is treated the same as unbounded repetition.
	repeatCeiling = 100
)

// String returns verdict name.
func (v Verdict) String() string {
	if v == VerdictSafe {
		return "safe"
	}

	return "unsafe"
}

// Assess analyzes a regex pattern for catastrophic-backtracking risk.
//
// The verdict is a property of the pattern alone: it never depends on any
// candidate input, is deterministic, and is computed in time bounded by the
// pattern's length. A pattern is unsafe when it contains:
//   - unbounded repetition whose body contains further unbounded repetition,
//     at any nesting depth ("(a+)+", "([a-zA-Z]+)*")
//   - unbounded repetition whose body contains an alternation with two or
//     more branches able to match the same prefix ("(a|ab)+")
//   - unbounded repetition whose body can match the empty string ("(a?)+")
//
// The analyzer parses the raw pattern into its own syntax tree instead of
// reusing a simplifying parser: parse-time normalization (collapsing "a|a"
// to "a" and the like) would hide exactly the ambiguity a backtracking
// engine still executes. Syntactically invalid patterns, constructs outside
// the modeled dialect (backreferences, lookaround), and anything else the
// analysis cannot prove safe are reported unsafe: the gate fails closed,
// never open.
func Assess(pattern string) Verdict {
	if len(pattern) > maxPatternLength {
		return VerdictUnsafe
	}

	root, err := parseAnalysisTree(pattern)
	if err != nil {
		return VerdictUnsafe
	}

	if riskyNode(root) {
		return VerdictUnsafe
	}

	return VerdictSafe
}

// riskyNode recursively scans the tree for unsafe repetition shapes.
func riskyNode(n *node) bool {
	if n.kind == nodeQuantified && n.unbounded() && unboundedBodyRisky(n.subs[0]) {
		return true
	}

	for _, sub := range n.subs {
		if riskyNode(sub) {
			return true
		}
	}

	return false
}

// unboundedBodyRisky reports whether the body of one unbounded repetition can
// multiply match attempts per iteration.
func unboundedBodyRisky(body *node) bool {
	if _, empty := leadingRunes(body); empty {
		// A body matching the empty string makes every iteration ambiguous.
		return true
	}

	return repeatBodyRisky(body)
}

// repeatBodyRisky scans a repetition body for nested unbounded repetition and
// ambiguous alternation, descending through groups and bounded repeats.
func repeatBodyRisky(n *node) bool {
	switch n.kind {
	case nodeQuantified:
		if n.unbounded() {
			return true
		}
	case nodeAlternate:
		if alternationOverlaps(n) {
			return true
		}
	}

	for _, sub := range n.subs {
		if repeatBodyRisky(sub) {
			return true
		}
	}

	return false
}

// altBranch is the analyzed shape of one alternation branch.
type altBranch struct {
	// set over-approximates the runes that can start the branch.
	set runeSet
	// literal is the branch text when the branch is one plain literal run.
	literal string
	// isLiteral reports whether literal is valid.
	isLiteral bool
}

// alternationOverlaps reports whether two alternation branches can match the
// same prefix. Pure-literal branches overlap exactly when one is a prefix of
// the other; all other branch pairs are compared by over-approximated
// first-rune sets. Branches that can match the empty string count as
// overlapping.
func alternationOverlaps(n *node) bool {
	branches := make([]altBranch, len(n.subs))
	for i, sub := range n.subs {
		set, empty := leadingRunes(sub)
		if empty {
			return true
		}

		lit, isLit := pureLiteral(sub)
		branches[i] = altBranch{
			set:       set,
			literal:   lit,
			isLiteral: isLit,
		}
	}

	for i := 0; i < len(branches); i++ {
		for j := i + 1; j < len(branches); j++ {
			if branchesOverlap(branches[i], branches[j]) {
				return true
			}
		}
	}

	return false
}

// branchesOverlap reports whether two analyzed branches can match the same prefix.
func branchesOverlap(a altBranch, b altBranch) bool {
	if a.isLiteral && b.isLiteral {
		return strings.HasPrefix(a.literal, b.literal) || strings.HasPrefix(b.literal, a.literal)
	}

	return a.set.intersects(b.set)
}

// runeSet is a set of runes stored as inclusive [lo, hi] pairs.
type runeSet []rune

// intersects reports whether two rune sets share at least one rune.
func (s runeSet) intersects(other runeSet) bool {
	for i := 0; i+1 < len(s); i += 2 {
		for j := 0; j+1 < len(other); j += 2 {
			if s[i] <= other[j+1] && other[j] <= s[i+1] {
				return true
			}
		}
	}

	return false
}

// fullRuneSet covers every rune; it over-approximates negated classes and
// any-char so that undercounting can never hide an overlap.
var fullRuneSet = runeSet{0, unicode.MaxRune}

// leadingRunes over-approximates the set of runes that can start a match of
// n and reports whether n can match the empty string.
func leadingRunes(n *node) (set runeSet, empty bool) {
	switch n.kind {
	case nodeLiteral:
		return foldedRune(n.lit, n.folded), false

	case nodeCharClass:
		return n.set, false

	case nodeAnyChar:
		return fullRuneSet, false

	case nodeZeroWidth:
		return nil, true

	case nodeGroup:
		return leadingRunes(n.subs[0])

	case nodeQuantified:
		set, empty = leadingRunes(n.subs[0])
		return set, empty || n.min == 0

	case nodeConcat:
		for _, sub := range n.subs {
			subSet, subEmpty := leadingRunes(sub)
			set = append(set, subSet...)
			if !subEmpty {
				return set, false
			}
		}

		return set, true

	case nodeAlternate:
		for _, sub := range n.subs {
			subSet, subEmpty := leadingRunes(sub)
			set = append(set, subSet...)
			empty = empty || subEmpty
		}

		return set, empty
	}

	return fullRuneSet, true
}

// pureLiteral extracts branch text when the branch is a plain case-sensitive
// literal run, descending through groups and concatenations.
func pureLiteral(n *node) (string, bool) {
	switch n.kind {
	case nodeLiteral:
		if n.folded {
			return "", false
		}

		return string(n.lit), true

	case nodeGroup:
		return pureLiteral(n.subs[0])

	case nodeConcat:
		var b strings.Builder
		for _, sub := range n.subs {
			part, ok := pureLiteral(sub)
			if !ok {
				return "", false
			}

			b.WriteString(part)
		}

		return b.String(), true
	}

	return "", false
}

// foldedRune returns the rune set for one literal rune, expanded to its
// simple case-fold orbit when the literal is case-insensitive.
func foldedRune(r rune, folded bool) runeSet {
	set := runeSet{r, r}
	if !folded {
		return set
	}

	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		set = append(set, f, f)
	}

	return set
}

// nodeKind discriminates analysis tree nodes.
type nodeKind uint8

const (
	// nodeLiteral is one literal rune.
	nodeLiteral nodeKind = iota
	// nodeCharClass is a bracket expression or shorthand class.
	nodeCharClass
	// nodeAnyChar is ".".
	nodeAnyChar
	// nodeZeroWidth is an anchor, boundary, or flag marker.
	nodeZeroWidth
	// nodeGroup is a capturing or non-capturing group.
	nodeGroup
	// nodeQuantified is a repeated sub-expression.
	nodeQuantified
	// nodeConcat is an ordered sequence.
	nodeConcat
	// nodeAlternate is a "|" branch list.
	nodeAlternate
)

// node is one vertex of the analysis tree.
type node struct {
	// subs holds group/quantifier body, sequence parts, or branches.
	subs []*node
	// set holds class membership for nodeCharClass.
	set runeSet
	// lit holds the rune for nodeLiteral.
	lit rune
	// min and max are quantifier bounds for nodeQuantified; max < 0 is unbounded.
	min int
	max int
	// kind discriminates the node.
	kind nodeKind
	// folded marks literals under a case-insensitive flag.
	folded bool
}

// unbounded reports whether a quantifier is unbounded or effectively so.
func (n *node) unbounded() bool {
	return n.max < 0 || n.max >= repeatCeiling
}
