// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// Production code accepts a Clock interface parameter instead of calling
// time.Now, time.After, time.AfterFunc, or time.Sleep directly. In
// production, Real() provides the standard library behavior. In tests,
// Fake() provides a deterministic clock that advances only when Advance
// is called.
//
// The search engine arms its enumeration timeout with AfterFunc; the
// engine tests fire that timeout deterministically:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	engine, _ := search.NewEngine(search.EngineConfig{Clock: c, ...})
//	// ... start a search ...
//	c.Advance(30 * time.Second) // fire the timeout deterministically
//
// When a goroutine calls Sleep, After, or AfterFunc on a FakeClock, it
// registers a pending timer. Use WaitForTimers to block until a given
// number of timers are registered before calling Advance. This
// eliminates the race between timer registration and time advancement
// that plagues tests using time.Sleep for synchronization.
package clock
