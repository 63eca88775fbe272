// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

// Package search implements the enumeration request lifecycle: issuing
// exactly one bulk WHO-style query at a time against a chat server,
// correlating the asynchronous per-record and end-of-list events with
// that request, filtering each record against a compiled pattern, and
// enforcing a timeout that force-resets state when the server never
// sends the terminator.
//
// The central type is [Engine]. One Engine owns the single in-flight
// [request] slot and the process-lifetime [Stats] accumulator; callers
// obtain an Engine explicitly — there are no package-level globals.
// The engine talks to the server through the [Transport] interface
// (implemented by transport/irc) and reports results through the
// [Notifier] interface (implemented by the console).
//
// The state machine is Idle → Active → Idle. Search transitions to
// Active, binding a record handler and an end-of-list handler scoped
// to the request and arming a timeout. The end-of-list event finalizes
// normally (statistics updated, summary emitted); the timeout retires
// the request without touching statistics. Both the timer callback and
// late transport events are guarded by state checks rather than by
// unbind ordering, so events arriving after a reset are stray no-ops.
//
// Supporting pieces: [CompilePattern] bakes the case mode into the
// matcher, [ParseRecord] turns one raw reply payload into an [Entity],
// and [BuildSearchString] selects which entity fields the matcher sees.
package search
