// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package search

import "strings"

// Field selection flags for the search.fields setting. Membership is
// tested by substring containment against the configured string, which
// permits combined configurations like "nick,host".
const (
	// FieldAll selects every entity field. It supersedes any other
	// flag present in the same configuration.
	FieldAll = "all"
	// FieldNick selects the nickname.
	FieldNick = "nick"
	// FieldHost selects the ident@host pair.
	FieldHost = "host"
	// FieldRealName selects the real-name text.
	FieldRealName = "realname"
)

// DefaultFields is the field configuration used when none is set.
const DefaultFields = FieldAll

// BuildSearchString assembles the text the matcher runs against. With
// FieldAll present, all six fields join in a fixed order regardless of
// other flags. Otherwise only the explicitly enabled fields appear, in
// nick, host, realname order, with disabled fields omitted entirely.
func BuildSearchString(entity Entity, fields string) string {
	if strings.Contains(fields, FieldAll) {
		return strings.Join([]string{
			entity.Nick,
			entity.IdentHost,
			entity.RealName,
			entity.ContextName,
			entity.OriginServer,
			entity.HopCount,
		}, " ")
	}

	parts := make([]string, 0, 3)
	if strings.Contains(fields, FieldNick) {
		parts = append(parts, entity.Nick)
	}
	if strings.Contains(fields, FieldHost) {
		parts = append(parts, entity.IdentHost)
	}
	if strings.Contains(fields, FieldRealName) {
		parts = append(parts, entity.RealName)
	}
	return strings.Join(parts, " ")
}
