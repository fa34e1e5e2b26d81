// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/safepattern

/*
Package safepattern compiles caller-supplied regex and glob patterns into
matchers that are statically guaranteed not to backtrack catastrophically.

Patterns may come from untrusted or semi-trusted callers. Instead of guarding
match execution with timeouts, the package inspects each pattern's syntax tree
before compilation and rejects the constructs known to admit super-linear
backtracking (ReDoS): nested unbounded repetition and ambiguous alternation
under repetition. The check is a property of the pattern alone, costs time
proportional to pattern length, and fails closed on anything it cannot prove.

Basic flow:
  - escape literal text for embedding in a pattern (`Escape`)
  - check a pattern without compiling it (`Assess`)
  - compile a regex pattern through the safety gate (`Compile`)
  - compile a glob expression instead (`TranslateGlob`)
  - ask the compiled matcher for decisions (`MatchString`)

For ordered include/exclude glob rule lists, use `Set`:
  - parse rules from text (`ParseRules`)
  - optionally load rules from files (`LoadRulesFile`)
  - compile set (`NewSet`)
  - ask for decision (`Decide` / `Included` / `Excluded`)

All operations are pure functions of their inputs; compiled matchers and sets
are immutable and safe for concurrent use.
*/
package safepattern
