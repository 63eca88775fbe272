// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"errors"
	"testing"
	"time"
)

func TestStatsReportBeforeAnySearch(t *testing.T) {
	stats := &Stats{}
	if _, err := stats.Report(); !errors.Is(err, ErrNoSearches) {
		t.Fatalf("Report() error = %v, want ErrNoSearches", err)
	}
}

func TestStatsIncrementalMean(t *testing.T) {
	stats := &Stats{}
	stats.record(2, 1*time.Second)
	stats.record(0, 2*time.Second)
	stats.record(4, 3*time.Second)

	report, err := stats.Report()
	if err != nil {
		t.Fatalf("Report() error: %v", err)
	}

	if report.TotalSearches != 3 {
		t.Errorf("TotalSearches = %d, want 3", report.TotalSearches)
	}
	if report.TotalMatches != 6 {
		t.Errorf("TotalMatches = %d, want 6", report.TotalMatches)
	}
	if report.AverageResponse != 2*time.Second {
		t.Errorf("AverageResponse = %v, want 2s", report.AverageResponse)
	}
	if report.LastResponse != 3*time.Second {
		t.Errorf("LastResponse = %v, want 3s", report.LastResponse)
	}
	if report.AverageMatchesPerSearch != 2.0 {
		t.Errorf("AverageMatchesPerSearch = %v, want 2.0", report.AverageMatchesPerSearch)
	}
}

func TestStatsReportIsIdempotent(t *testing.T) {
	stats := &Stats{}
	stats.record(1, 500*time.Millisecond)

	first, err := stats.Report()
	if err != nil {
		t.Fatalf("Report() error: %v", err)
	}
	second, err := stats.Report()
	if err != nil {
		t.Fatalf("second Report() error: %v", err)
	}
	if first != second {
		t.Errorf("Report() not idempotent: %+v then %+v", first, second)
	}
}
