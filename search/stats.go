// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"errors"
	"sync"
	"time"
)

// ErrNoSearches is returned by Stats.Report before any search has
// completed. It exists so callers never divide by zero when computing
// per-search averages.
var ErrNoSearches = errors.New("search: no completed searches")

// Stats accumulates counters across completed enumeration requests for
// the lifetime of the process. Only request finalization on the
// end-of-list path records into it — a timed-out search leaves the
// counters untouched. That asymmetry matches the reference behavior
// and is deliberate.
//
// Stats has its own lock so presentation code can call Report while
// the engine's event path is running.
type Stats struct {
	mu              sync.Mutex
	totalSearches   int
	totalMatches    int
	lastResponse    time.Duration
	averageResponse time.Duration
}

// Report is a point-in-time snapshot of the accumulated statistics.
type Report struct {
	TotalSearches           int
	TotalMatches            int
	AverageMatchesPerSearch float64
	LastResponse            time.Duration
	AverageResponse         time.Duration
}

// record folds one completed search into the counters. The average
// response time is maintained as an incremental mean:
// avg' = (avg*(n-1) + new) / n with n the post-increment total.
func (s *Stats) record(matches int, elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.totalSearches++
	s.totalMatches += matches
	s.lastResponse = elapsed

	n := time.Duration(s.totalSearches)
	s.averageResponse = (s.averageResponse*(n-1) + elapsed) / n
}

// Report returns a snapshot of the counters, or ErrNoSearches when no
// search has completed yet. Calling Report never mutates the counters:
// two calls with no intervening completed search return identical
// values.
func (s *Stats) Report() (Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.totalSearches == 0 {
		return Report{}, ErrNoSearches
	}
	return Report{
		TotalSearches:           s.totalSearches,
		TotalMatches:            s.totalMatches,
		AverageMatchesPerSearch: float64(s.totalMatches) / float64(s.totalSearches),
		LastResponse:            s.lastResponse,
		AverageResponse:         s.averageResponse,
	}, nil
}
