// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"strings"
	"unicode"
)

// Entity is one parsed enumeration record. It is constructed from a
// single raw protocol line, consumed immediately by the field selector
// and matcher, and discarded — nothing retains it after filtering.
type Entity struct {
	// Nick is the entity's nickname.
	Nick string
	// IdentHost is the "ident@host" pair.
	IdentHost string
	// RealName is the free-text portion after hop-count extraction.
	RealName string
	// HopCount is the numeric hop token, or "unknown" when the free
	// text carries no leading digit run.
	HopCount string
	// ContextName is the channel the record belongs to.
	ContextName string
	// OriginServer is the server that produced the record.
	OriginServer string
}

// recordFieldCount is the number of positional tokens before the
// colon-separated free text: self-marker, channel, ident, host,
// origin server, nick, mode flags.
const recordFieldCount = 7

// HopUnknown is the HopCount sentinel for records whose free text does
// not start with a digit run.
const HopUnknown = "unknown"

// ParseRecord turns one raw enumeration reply payload into an Entity.
// The payload is everything after the reply's numeric:
//
//	<self> <channel> <ident> <host> <server> <nick> <flags> :<hops> <real name>
//
// Returns ok=false when the line has no colon separator or fewer than
// seven fixed tokens. Callers drop such lines silently — a malformed
// record never aborts the request.
func ParseRecord(raw string) (Entity, bool) {
	head, trailing, found := strings.Cut(raw, ":")
	if !found {
		return Entity{}, false
	}

	fixed := splitFields(head, recordFieldCount)
	if len(fixed) < recordFieldCount {
		return Entity{}, false
	}

	hopCount, realName := splitHopCount(trailing)

	return Entity{
		Nick:         fixed[5],
		IdentHost:    fixed[2] + "@" + fixed[3],
		RealName:     realName,
		HopCount:     hopCount,
		ContextName:  fixed[1],
		OriginServer: fixed[4],
	}, true
}

// splitFields splits s on runs of whitespace into at most max tokens.
// The final token absorbs the remainder unsplit, so a flags field
// containing whitespace artifacts cannot shift field alignment.
func splitFields(s string, max int) []string {
	tokens := make([]string, 0, max)
	s = strings.TrimSpace(s)
	for s != "" && len(tokens) < max-1 {
		boundary := strings.IndexFunc(s, unicode.IsSpace)
		if boundary < 0 {
			break
		}
		tokens = append(tokens, s[:boundary])
		s = strings.TrimLeftFunc(s[boundary:], unicode.IsSpace)
	}
	if s != "" {
		tokens = append(tokens, s)
	}
	return tokens
}

// splitHopCount extracts a leading digit run followed by whitespace
// from the free text. Without one, the hop count is HopUnknown and the
// text is used verbatim as the real name.
func splitHopCount(text string) (hopCount, realName string) {
	digits := 0
	for digits < len(text) && text[digits] >= '0' && text[digits] <= '9' {
		digits++
	}
	if digits > 0 && digits < len(text) && (text[digits] == ' ' || text[digits] == '\t') {
		return text[:digits], strings.TrimLeft(text[digits:], " \t")
	}
	return HopUnknown, text
}
