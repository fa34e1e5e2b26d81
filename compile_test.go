// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/safepattern

package safepattern

import (
	"errors"
	"sync"
	"testing"
)

func TestCompileRejectsInvalidSyntax(t *testing.T) {
	t.Parallel()

	patterns := []string{
		"[",
		"(?P<invalid",
		"a{2,1}",
		"*leading",
	}

	for _, p := range patterns {
		m, err := Compile(p, 0)
		if !errors.Is(err, ErrInvalidSyntax) {
			t.Fatalf("Compile(%q) err=%v, want ErrInvalidSyntax", p, err)
		}

		if m != nil {
			t.Fatalf("Compile(%q) returned matcher for rejected pattern", p)
		}
	}
}

func TestCompileRejectsUnsafePattern(t *testing.T) {
	t.Parallel()

	patterns := []string{
		"(a+)+b",
		"([a-zA-Z]+)*",
		"(a|ab)+",
		"(.*)*x",
	}

	for _, p := range patterns {
		m, err := Compile(p, 0)
		if !errors.Is(err, ErrUnsafePattern) {
			t.Fatalf("Compile(%q) err=%v, want ErrUnsafePattern", p, err)
		}

		if m != nil {
			t.Fatalf("Compile(%q) returned matcher for unsafe pattern", p)
		}
	}
}

func TestCompileDeterministicRejection(t *testing.T) {
	t.Parallel()

	// Same input, same outcome: rejection is a classification, not a
	// transient failure.
	for i := 0; i < 10; i++ {
		if _, err := Compile("(a+)+", 0); !errors.Is(err, ErrUnsafePattern) {
			t.Fatalf("attempt %d: err=%v, want ErrUnsafePattern", i, err)
		}
	}
}

func TestCompileMatch(t *testing.T) {
	t.Parallel()

	m, err := Compile("^[a-z]+$", 0)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if m.Pattern() != "^[a-z]+$" {
		t.Fatalf("Pattern()=%q", m.Pattern())
	}

	if !m.MatchString("abc") {
		t.Fatalf("abc must match")
	}

	if m.MatchString("ABC") || m.MatchString("abc1") {
		t.Fatalf("case or digit mismatch expected")
	}
}

func TestCompileFlagIgnoreCase(t *testing.T) {
	t.Parallel()

	m, err := Compile("^readme$", FlagIgnoreCase)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if m.Flags() != FlagIgnoreCase {
		t.Fatalf("Flags()=%v", m.Flags())
	}

	if !m.MatchString("README") || !m.MatchString("ReadMe") {
		t.Fatalf("ignore-case matcher must match any case")
	}
}

func TestCompileFlagMultiline(t *testing.T) {
	t.Parallel()

	m, err := Compile("^foo$", FlagMultiline)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if !m.MatchString("bar\nfoo") {
		t.Fatalf("multiline anchor must match at line boundary")
	}

	plain, err := Compile("^foo$", 0)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	if plain.MatchString("bar\nfoo") {
		t.Fatalf("single-line anchor must not match inner line")
	}
}

func TestMatcherConcurrentUse(t *testing.T) {
	t.Parallel()

	m, err := Compile(`^\d{3}-\d{4}$`, 0)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				if !m.MatchString("123-4567") {
					t.Error("123-4567 must match")
					return
				}

				if m.MatchString("123-456") {
					t.Error("123-456 must not match")
					return
				}
			}
		}()
	}

	wg.Wait()
}
