// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package search

import (
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/whogrep/whogrep/lib/clock"
)

// Match is the notification payload for one entity that satisfied the
// matcher. Emission order follows record arrival order, which carries
// no global sorting guarantee.
type Match struct {
	Nick         string
	IdentHost    string
	RealName     string
	ContextName  string
	OriginServer string
	HopCount     string
}

// Summary is the notification payload for a normally completed search.
type Summary struct {
	// Matches is the number of entities that satisfied the matcher.
	Matches int
	// Elapsed is the time from command send to end-of-list.
	Elapsed time.Duration
}

// Notifier receives the engine's user-visible events. Implementations
// must not call back into the engine from within a notification — the
// engine invokes them on its serialized event path.
type Notifier interface {
	// MatchFound is emitted once per matching entity, in arrival order.
	MatchFound(match Match)
	// SearchComplete is emitted when the end-of-list marker arrives.
	SearchComplete(summary Summary)
	// SearchFailed is emitted when the request times out. Start-time
	// failures (busy, invalid pattern) are returned from Search
	// directly instead.
	SearchFailed(searchErr *SearchError)
}

// Options carries the per-engine search settings, normally sourced
// from lib/config.
type Options struct {
	// CaseSensitive controls pattern compilation. Default false.
	CaseSensitive bool
	// Fields selects which entity fields the matcher sees (see
	// BuildSearchString). Default "all".
	Fields string
	// Timeout bounds the wait for the end-of-list marker. Default 30s.
	Timeout time.Duration
	// Debug enables per-record drop logging for unparseable lines.
	Debug bool
}

// DefaultTimeout bounds the wait for the end-of-list marker when
// Options.Timeout is zero.
const DefaultTimeout = 30 * time.Second

// EngineConfig holds the collaborators for NewEngine.
type EngineConfig struct {
	// Transport carries the enumeration command and inbound events.
	Transport Transport
	// Notifier receives match, summary, and failure events.
	Notifier Notifier
	// Clock is used for latency measurement and the request timeout.
	// If nil, clock.Real() is used.
	Clock clock.Clock
	// Logger is used for structured logging. If nil, slog.Default().
	Logger *slog.Logger
	// Options are the search settings.
	Options Options
}

// Engine owns the single in-flight enumeration request. It issues the
// enumeration command, binds the per-record and end-of-list handlers
// around the active window, enforces the timeout, and folds completed
// requests into its statistics.
//
// At most one request is active at any instant. All state transitions
// run under one mutex, so the engine is safe regardless of which
// goroutine the transport delivers events on. Stray events — records
// or terminators arriving after a reset — are ignored by the
// active-request check, never by trusting unbind ordering.
type Engine struct {
	transport Transport
	notifier  Notifier
	clock     clock.Clock
	logger    *slog.Logger
	options   Options
	stats     *Stats

	mu     sync.Mutex
	active *request
}

// request is the single live enumeration request. Owned exclusively by
// the engine; retired on every exit path.
type request struct {
	// id correlates the timeout callback with the request it was armed
	// for. A timer firing after its request retired finds a different
	// id (or no request) and does nothing.
	id         string
	target     string
	pattern    string
	matcher    *regexp.Regexp
	fields     string
	matchCount int
	startedAt  time.Time

	timer         *clock.Timer
	recordBinding Binding
	endBinding    Binding
}

// NewEngine validates the collaborators and applies defaults.
func NewEngine(config EngineConfig) (*Engine, error) {
	if config.Transport == nil {
		return nil, fmt.Errorf("search: Transport is required")
	}
	if config.Notifier == nil {
		return nil, fmt.Errorf("search: Notifier is required")
	}

	options := config.Options
	if options.Timeout <= 0 {
		options.Timeout = DefaultTimeout
	}
	if options.Fields == "" {
		options.Fields = DefaultFields
	}

	engineClock := config.Clock
	if engineClock == nil {
		engineClock = clock.Real()
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		transport: config.Transport,
		notifier:  config.Notifier,
		clock:     engineClock,
		logger:    logger,
		options:   options,
		stats:     &Stats{},
	}, nil
}

// Statistics returns the engine's accumulator. It is safe to call
// Report on it concurrently with an active search.
func (e *Engine) Statistics() *Stats {
	return e.stats
}

// Search starts one enumeration of target, filtering records against
// pattern. It returns immediately after sending the command — results
// arrive through the Notifier on the transport's read loop.
//
// Returns *SearchError with ErrCodeBusy while a request is in flight
// (the in-flight request is untouched), or ErrCodeInvalidPattern when
// the pattern is empty or does not compile.
func (e *Engine) Search(target, pattern string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return &SearchError{
			Code:    ErrCodeBusy,
			Message: fmt.Sprintf("a search of %s is already in flight", e.active.target),
		}
	}

	matcher, err := CompilePattern(pattern, e.options.CaseSensitive)
	if err != nil {
		return err
	}

	req := &request{
		id:        uuid.NewString(),
		target:    target,
		pattern:   pattern,
		matcher:   matcher,
		fields:    e.options.Fields,
		startedAt: e.clock.Now(),
	}

	recordBinding, err := e.transport.BindEvent(EventRecord, e.handleRecord)
	if err != nil {
		return fmt.Errorf("search: binding record handler: %w", err)
	}
	req.recordBinding = recordBinding

	endBinding, err := e.transport.BindEvent(EventEndOfList, e.handleEnd)
	if err != nil {
		e.transport.Unbind(recordBinding)
		return fmt.Errorf("search: binding end-of-list handler: %w", err)
	}
	req.endBinding = endBinding

	requestID := req.id
	req.timer = e.clock.AfterFunc(e.options.Timeout, func() {
		e.searchExpired(requestID)
	})

	e.active = req

	if err := e.transport.SendRawCommand("WHO " + target); err != nil {
		e.retireLocked(req)
		return fmt.Errorf("search: sending enumeration command: %w", err)
	}

	e.logger.Debug("enumeration started",
		"request_id", req.id,
		"target", target,
		"pattern", pattern,
		"fields", req.fields,
	)
	return nil
}

// handleRecord processes one per-record event. Runs on the transport's
// read loop. Stray records (no active request) and unparseable lines
// are dropped without any observable state change.
func (e *Engine) handleRecord(raw string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	req := e.active
	if req == nil {
		return
	}

	entity, ok := ParseRecord(raw)
	if !ok {
		if e.options.Debug {
			e.logger.Debug("dropping unparseable record",
				"request_id", req.id,
				"raw", raw,
			)
		}
		return
	}

	if !req.matcher.MatchString(BuildSearchString(entity, req.fields)) {
		return
	}

	req.matchCount++
	e.notifier.MatchFound(Match{
		Nick:         entity.Nick,
		IdentHost:    entity.IdentHost,
		RealName:     entity.RealName,
		ContextName:  entity.ContextName,
		OriginServer: entity.OriginServer,
		HopCount:     entity.HopCount,
	})
}

// handleEnd finalizes the active request on the end-of-list marker:
// records statistics, emits the summary, and resets to idle. A stray
// terminator with no active request is ignored.
func (e *Engine) handleEnd(string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	req := e.active
	if req == nil {
		return
	}

	elapsed := e.clock.Now().Sub(req.startedAt)
	e.stats.record(req.matchCount, elapsed)
	e.notifier.SearchComplete(Summary{
		Matches: req.matchCount,
		Elapsed: elapsed,
	})

	e.logger.Debug("enumeration completed",
		"request_id", req.id,
		"matches", req.matchCount,
		"elapsed", elapsed,
	)
	e.retireLocked(req)
}

// searchExpired is the timeout callback. The request ID check resolves
// the race between timer cancellation and firing: a timer that fires
// after its request retired (or after a new request started) finds a
// mismatched ID and does nothing. Matches accumulated so far are
// reported only through the error message; statistics are not updated
// on timeout.
func (e *Engine) searchExpired(requestID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	req := e.active
	if req == nil || req.id != requestID {
		return
	}

	e.notifier.SearchFailed(&SearchError{
		Code: ErrCodeTimeout,
		Message: fmt.Sprintf("no end-of-list from %s after %s (%d matches discarded)",
			req.target, e.options.Timeout, req.matchCount),
	})

	e.logger.Debug("enumeration timed out",
		"request_id", req.id,
		"target", req.target,
		"discarded_matches", req.matchCount,
	)
	e.retireLocked(req)
}

// retireLocked releases everything the request holds and returns the
// engine to idle. Every exit path — completion, timeout, send failure —
// funnels through here. Caller holds e.mu.
func (e *Engine) retireLocked(req *request) {
	if req.timer != nil {
		req.timer.Stop()
	}
	e.transport.Unbind(req.recordBinding)
	e.transport.Unbind(req.endBinding)
	e.active = nil
}
