// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"regexp"
	"strings"
)

// regexpErrorPrefix is the boilerplate the stdlib engine prepends to
// every compile error. It is stripped so that user-facing messages
// start with the actual problem ("missing closing )", ...).
const regexpErrorPrefix = "error parsing regexp: "

// CompilePattern validates and compiles a user-supplied search pattern.
// Case sensitivity is baked into the compiled expression via a (?i)
// prefix — match time never re-checks the mode.
//
// An empty pattern or a pattern the engine rejects returns a
// *SearchError with ErrCodeInvalidPattern.
func CompilePattern(pattern string, caseSensitive bool) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, &SearchError{
			Code:    ErrCodeInvalidPattern,
			Message: "empty pattern",
		}
	}

	expression := pattern
	if !caseSensitive {
		expression = "(?i)" + expression
	}

	matcher, err := regexp.Compile(expression)
	if err != nil {
		return nil, &SearchError{
			Code:    ErrCodeInvalidPattern,
			Message: strings.TrimPrefix(err.Error(), regexpErrorPrefix),
		}
	}
	return matcher, nil
}
