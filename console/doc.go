// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

// Package console is the user-facing command surface over the search
// engine.
//
// [Console] owns one search.Engine and implements its Notifier: match,
// summary, and failure notifications render as themed lines on the
// console's writer. User input is one command per line — "search
// <pattern>", "stats", "help" — dispatched by [Console.Execute] or
// pumped from a reader by [Console.Run].
//
// Errors are reported as user-visible message lines, never as process
// exits: the console is an embedded component. A search issued with no
// channel context renders the not-applicable error; a busy engine or a
// bad pattern renders the engine's error and changes nothing.
//
// Styling lives in [Theme], a set of lipgloss styles. The zero Theme
// renders plain text, which the tests rely on.
package console
