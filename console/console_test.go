// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/whogrep/whogrep/lib/clock"
	"github.com/whogrep/whogrep/search"
)

// fakeTransport is the minimal in-memory search.Transport the console
// tests need: it records sent commands and replays inbound events.
type fakeTransport struct {
	mu       sync.Mutex
	sent     []string
	nextID   int
	handlers map[int]fakeBinding
}

type fakeBinding struct {
	kind    search.EventKind
	handler func(raw string)
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{handlers: make(map[int]fakeBinding)}
}

func (t *fakeTransport) SendRawCommand(line string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = append(t.sent, line)
	return nil
}

func (t *fakeTransport) BindEvent(kind search.EventKind, handler func(raw string)) (search.Binding, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	t.handlers[t.nextID] = fakeBinding{kind: kind, handler: handler}
	return t.nextID, nil
}

func (t *fakeTransport) Unbind(binding search.Binding) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if id, ok := binding.(int); ok {
		delete(t.handlers, id)
	}
}

func (t *fakeTransport) deliver(kind search.EventKind, raw string) {
	t.mu.Lock()
	var targets []func(string)
	for id := 1; id <= t.nextID; id++ {
		if bound, ok := t.handlers[id]; ok && bound.kind == kind {
			targets = append(targets, bound.handler)
		}
	}
	t.mu.Unlock()
	for _, handler := range targets {
		handler(raw)
	}
}

type consoleFixture struct {
	console   *Console
	transport *fakeTransport
	clock     *clock.FakeClock
	out       *strings.Builder
}

func newConsoleFixture(t *testing.T, target string) *consoleFixture {
	t.Helper()
	fixture := &consoleFixture{
		transport: newFakeTransport(),
		clock:     clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)),
		out:       &strings.Builder{},
	}
	console, err := New(Config{
		Transport: fixture.transport,
		Clock:     fixture.clock,
		Target:    target,
		Out:       fixture.out,
		// Zero Theme: plain text output for exact assertions.
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	fixture.console = console
	return fixture
}

func TestConsoleSearchWithoutContext(t *testing.T) {
	fixture := newConsoleFixture(t, "")

	fixture.console.Execute("search admin")

	if got := fixture.out.String(); !strings.Contains(got, "channel context") {
		t.Errorf("output = %q, want not-applicable message", got)
	}
	fixture.transport.mu.Lock()
	sent := len(fixture.transport.sent)
	fixture.transport.mu.Unlock()
	if sent != 0 {
		t.Errorf("sent %d commands, want 0", sent)
	}
}

func TestConsoleSearchFlow(t *testing.T) {
	fixture := newConsoleFixture(t, "#ops")

	fixture.console.Execute("search ^admin")

	fixture.transport.mu.Lock()
	sent := append([]string(nil), fixture.transport.sent...)
	fixture.transport.mu.Unlock()
	if len(sent) != 1 || sent[0] != "WHO #ops" {
		t.Fatalf("sent = %v, want [\"WHO #ops\"]", sent)
	}

	fixture.clock.Advance(1 * time.Second)
	fixture.transport.deliver(search.EventRecord,
		"self #ops admin svc.example.net irc1.example.net AdminBot H :2 Admin Bot")
	fixture.transport.deliver(search.EventRecord,
		"self #ops u1 users.example.net irc1.example.net user1 H :1 Ordinary User")
	fixture.transport.deliver(search.EventEndOfList, "#ops :End of WHO list")

	got := fixture.out.String()
	if !strings.Contains(got, "AdminBot") {
		t.Errorf("output missing match line: %q", got)
	}
	if strings.Contains(got, "user1") {
		t.Errorf("output contains non-matching nick: %q", got)
	}
	if !strings.Contains(got, "1 match in 1.00s") {
		t.Errorf("output missing summary: %q", got)
	}
}

func TestConsoleSearchEmptyPattern(t *testing.T) {
	fixture := newConsoleFixture(t, "#ops")

	fixture.console.Execute("search")

	if got := fixture.out.String(); !strings.Contains(got, "empty pattern") {
		t.Errorf("output = %q, want empty-pattern error", got)
	}
}

func TestConsoleSearchWhileBusy(t *testing.T) {
	fixture := newConsoleFixture(t, "#ops")

	fixture.console.Execute("search admin")
	fixture.console.Execute("search other")

	if got := fixture.out.String(); !strings.Contains(got, "already in flight") {
		t.Errorf("output = %q, want busy error", got)
	}
}

func TestConsoleStats(t *testing.T) {
	fixture := newConsoleFixture(t, "#ops")

	fixture.console.Execute("stats")
	if got := fixture.out.String(); !strings.Contains(got, "no searches yet") {
		t.Errorf("output = %q, want no-searches sentinel", got)
	}
	fixture.out.Reset()

	fixture.console.Execute("search admin")
	fixture.clock.Advance(2 * time.Second)
	fixture.transport.deliver(search.EventRecord,
		"self #ops admin svc.example.net irc1.example.net AdminBot H :2 Admin Bot")
	fixture.transport.deliver(search.EventEndOfList, "#ops :End of WHO list")
	fixture.out.Reset()

	fixture.console.Execute("stats")
	got := fixture.out.String()
	for _, want := range []string{"search statistics", "searches", "matches/search", "2.00s"} {
		if !strings.Contains(got, want) {
			t.Errorf("stats output missing %q: %q", want, got)
		}
	}
}

func TestConsoleHelp(t *testing.T) {
	fixture := newConsoleFixture(t, "#ops")

	fixture.console.Execute("help")

	got := fixture.out.String()
	for _, want := range []string{"search <pattern>", "stats", "help"} {
		if !strings.Contains(got, want) {
			t.Errorf("help output missing %q: %q", want, got)
		}
	}
}

func TestConsoleUnknownCommand(t *testing.T) {
	fixture := newConsoleFixture(t, "#ops")

	fixture.console.Execute("frobnicate")

	if got := fixture.out.String(); !strings.Contains(got, `unknown command "frobnicate"`) {
		t.Errorf("output = %q, want unknown-command error", got)
	}
}

func TestConsoleRunPumpsLines(t *testing.T) {
	fixture := newConsoleFixture(t, "#ops")

	input := strings.NewReader("help\n\nstats\n")
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := fixture.console.Run(ctx, input); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	got := fixture.out.String()
	if !strings.Contains(got, "whogrep commands") || !strings.Contains(got, "no searches yet") {
		t.Errorf("Run output = %q, want help and stats output", got)
	}
}
