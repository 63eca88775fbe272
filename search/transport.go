// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package search

// EventKind identifies a class of inbound protocol events the engine
// can bind to.
type EventKind string

const (
	// EventRecord carries one raw enumeration reply line.
	EventRecord EventKind = "record"
	// EventEndOfList marks the end of the current enumeration.
	EventEndOfList EventKind = "end-of-list"
)

// Binding is an opaque handle for a registered event handler. The
// engine holds one per bound kind and releases it on every exit path.
type Binding any

// Transport is the connection the engine enumerates over. One
// implementation lives in transport/irc; tests use an in-memory fake.
//
// Handlers registered through BindEvent are invoked from the
// transport's own read loop, one event at a time in delivery order.
type Transport interface {
	// SendRawCommand writes one raw protocol line to the server.
	SendRawCommand(line string) error

	// BindEvent registers a handler for one event kind. The handler
	// receives the raw event payload.
	BindEvent(kind EventKind, handler func(raw string)) (Binding, error)

	// Unbind removes a previously registered handler. Unbinding an
	// already-removed handle is a no-op.
	Unbind(binding Binding)
}
