// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"errors"
	"fmt"
)

// SearchError is a structured failure from the search engine. Callers
// can use errors.As to extract the structured information:
//
//	var searchErr *SearchError
//	if errors.As(err, &searchErr) {
//	    if searchErr.Code == ErrCodeBusy { ... }
//	}
type SearchError struct {
	// Code is the machine-readable error code (e.g., "SEARCH_BUSY").
	Code string
	// Message is the human-readable description.
	Message string
}

func (e *SearchError) Error() string {
	return fmt.Sprintf("search: %s: %s", e.Code, e.Message)
}

// Search error codes.
const (
	// ErrCodeBusy: an enumeration request is already in flight.
	ErrCodeBusy = "SEARCH_BUSY"
	// ErrCodeInvalidPattern: the pattern is empty or does not compile.
	ErrCodeInvalidPattern = "SEARCH_INVALID_PATTERN"
	// ErrCodeTimeout: the end-of-list marker never arrived within the
	// configured window.
	ErrCodeTimeout = "SEARCH_TIMEOUT"
	// ErrCodeNotApplicable: search was invoked outside a channel
	// context that supports enumeration.
	ErrCodeNotApplicable = "SEARCH_NOT_APPLICABLE"
)

// IsSearchError checks whether err is a *SearchError with the given code.
func IsSearchError(err error, code string) bool {
	var searchErr *SearchError
	if errors.As(err, &searchErr) {
		return searchErr.Code == code
	}
	return false
}
