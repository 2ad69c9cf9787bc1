// Package random holds the process-wide random source binding. Every
// randomized operation in this module accepts an explicit *rand.Rand; the
// binding here is the fallback for call sites that want an implicit default
// without a true global, with a scoped override that is restored on every
// exit path.
package random

import (
	"math/rand"
	"sync"
	"time"
)

var (
	mu      sync.Mutex
	current = rand.New(rand.NewSource(time.Now().UnixNano()))
)

// Default returns the currently bound random source.
func Default() *rand.Rand {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Bind replaces the bound source and returns the previous one so the caller
// can restore it. A nil source panics: the binding is never absent.
func Bind(r *rand.Rand) *rand.Rand {
	if r == nil {
		panic("random: bound source must not be nil")
	}
	mu.Lock()
	defer mu.Unlock()
	prev := current
	current = r
	return prev
}

// Using binds r for the duration of fn and restores the previous binding on
// every exit path, including panics.
func Using(r *rand.Rand, fn func() error) error {
	prev := Bind(r)
	defer Bind(prev)
	return fn()
}

// UsingSeed runs fn with a deterministic source seeded with the given value.
func UsingSeed(seed int64, fn func() error) error {
	return Using(rand.New(rand.NewSource(seed)), fn)
}
