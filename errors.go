// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/safepattern

package safepattern

import "errors"

// Sentinel errors for safepattern operations.
//
// Rejections are deterministic classifications of the input, never transient
// failures: the same pattern always produces the same outcome, so there is
// nothing to retry. Callers doing bulk validation match them with errors.Is.
var (
	// ErrInvalidSyntax indicates the pattern cannot be parsed under the dialect grammar.
	ErrInvalidSyntax = errors.New("invalid pattern syntax")
	// ErrUnsafePattern indicates the pattern admits catastrophic backtracking.
	ErrUnsafePattern = errors.New("unsafe pattern")
	// ErrInvalidRule indicates malformed or unsupported rule input.
	ErrInvalidRule = errors.New("invalid rule")
)
