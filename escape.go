// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/safepattern

package safepattern

import "strings"

// Escape returns a regex fragment that matches s literally.
//
// Every byte carrying special meaning in the pattern dialect is prefixed
// with a backslash; all other bytes pass through unchanged. Defined for
// every input including the empty string.
func Escape(s string) string {
	i := 0
	for i < len(s) && !isMetaByte(s[i]) {
		i++
	}

	if i == len(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 4)
	b.WriteString(s[:i])

	for ; i < len(s); i++ {
		if isMetaByte(s[i]) {
			b.WriteByte('\\')
		}

		b.WriteByte(s[i])
	}

	return b.String()
}

// isMetaByte reports whether b is a regex metacharacter in the dialect.
func isMetaByte(b byte) bool {
	switch b {
	case '.', '*', '+', '?', '^', '$', '{', '}', '(', ')', '|', '[', ']', '\\':
		return true
	default:
		return false
	}
}
