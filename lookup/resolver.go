// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/safepattern

// Package lookup resolves command names to absolute executable paths with
// process-lifetime memoization.
package lookup

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// ErrInvalidCommandName indicates empty or whitespace-only command input.
var ErrInvalidCommandName = errors.New("invalid command name")

// cachedPath stores one lookup outcome, error included, so repeated calls
// stay deterministic for the lifetime of the resolver.
type cachedPath struct {
	path string
	err  error
}

// Resolver memoizes platform executable lookups by command name.
//
// Entries are never evicted; the cache lives as long as the resolver. Create
// one resolver per process scope that needs command resolution instead of
// relying on a hidden package-level singleton.
type Resolver struct {
	// mu guards cache access.
	mu sync.Mutex
	// cache stores lookup outcome by command name.
	cache map[string]cachedPath
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{
		cache: make(map[string]cachedPath),
	}
}

// Resolve returns the absolute path of a command, consulting the cache first.
func (r *Resolver) Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrInvalidCommandName
	}

	r.mu.Lock()
	cached, ok := r.cache[name]
	r.mu.Unlock()
	if ok {
		return cached.path, cached.err
	}

	path, err := exec.LookPath(name)
	if err != nil {
		err = fmt.Errorf("lookup %s: %w", name, err)
	}

	log.Debug().
		Str("command", name).
		Str("path", path).
		Err(err).
		Msg("resolved command path")

	r.mu.Lock()
	// First writer wins on a concurrent cold lookup, keeping later reads
	// consistent with whatever was returned first.
	if prior, ok := r.cache[name]; ok {
		r.mu.Unlock()
		return prior.path, prior.err
	}

	r.cache[name] = cachedPath{path: path, err: err}
	r.mu.Unlock()

	return path, err
}

// Cached reports whether a command name already has a cached outcome.
func (r *Resolver) Cached(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.cache[strings.TrimSpace(name)]
	return ok
}

// Len returns the number of cached entries.
func (r *Resolver) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.cache)
}
