// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

// Package irc implements the search.Transport interface over a raw IRC
// connection.
//
// [Client] owns the socket and a single read loop goroutine. The loop
// answers server PINGs, closes the ready channel on the 001 welcome,
// and dispatches enumeration replies to bound handlers: RPL_WHOREPLY
// (352) payloads go to search.EventRecord bindings and RPL_ENDOFWHO
// (315) to search.EventEndOfList bindings. Handlers run on the read
// loop, one event at a time in delivery order — the ordering guarantee
// the search engine's single event path relies on.
//
// Bindings are handle-based and may be added or removed while the loop
// runs. Close is idempotent and unblocks the read loop.
package irc
