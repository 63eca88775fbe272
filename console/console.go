// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/whogrep/whogrep/lib/clock"
	"github.com/whogrep/whogrep/search"
)

// Config holds the collaborators for New.
type Config struct {
	// Transport carries the enumeration traffic.
	Transport search.Transport
	// Clock is passed through to the engine. If nil, clock.Real().
	Clock clock.Clock
	// Logger is used for structured logging. If nil, slog.Default().
	Logger *slog.Logger
	// Options are the engine's search settings.
	Options search.Options
	// Target is the channel context searches are scoped to. Empty
	// means no context: search commands report not-applicable.
	Target string
	// Out receives all rendered lines.
	Out io.Writer
	// Theme styles the output. The zero Theme renders plain text.
	Theme Theme
}

// Console dispatches user command lines to the search engine and
// renders the engine's notifications. It implements search.Notifier.
type Console struct {
	engine *search.Engine
	target string
	theme  Theme

	writeMu sync.Mutex
	out     io.Writer
}

// Compile-time check: *Console implements search.Notifier.
var _ search.Notifier = (*Console)(nil)

// New creates a Console and the engine it fronts.
func New(config Config) (*Console, error) {
	if config.Out == nil {
		return nil, fmt.Errorf("console: Out is required")
	}

	console := &Console{
		target: config.Target,
		theme:  config.Theme,
		out:    config.Out,
	}

	engine, err := search.NewEngine(search.EngineConfig{
		Transport: config.Transport,
		Notifier:  console,
		Clock:     config.Clock,
		Logger:    config.Logger,
		Options:   config.Options,
	})
	if err != nil {
		return nil, err
	}
	console.engine = engine
	return console, nil
}

// Engine returns the engine the console fronts.
func (c *Console) Engine() *search.Engine {
	return c.engine
}

// Run pumps command lines from r until EOF or ctx cancellation.
// Blank lines are skipped.
func (c *Console) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.Execute(line)
	}
	return scanner.Err()
}

// Execute dispatches one command line. Failures render as message
// lines on the console's writer; Execute never returns an error
// because the console is an embedded surface, not a process boundary.
func (c *Console) Execute(line string) {
	command, argument, _ := strings.Cut(strings.TrimSpace(line), " ")
	argument = strings.TrimSpace(argument)

	switch command {
	case "search":
		c.runSearch(argument)
	case "stats":
		c.printStats()
	case "help":
		c.printHelp()
	default:
		c.printError(fmt.Sprintf("unknown command %q (try \"help\")", command))
	}
}

// runSearch starts one enumeration of the current channel context.
func (c *Console) runSearch(pattern string) {
	if c.target == "" {
		c.printSearchError(&search.SearchError{
			Code:    search.ErrCodeNotApplicable,
			Message: "search needs a channel context",
		})
		return
	}

	if err := c.engine.Search(c.target, pattern); err != nil {
		var searchErr *search.SearchError
		if errors.As(err, &searchErr) {
			c.printSearchError(searchErr)
			return
		}
		c.printError(err.Error())
	}
}

// MatchFound renders one matching entity. Runs on the transport's
// read loop.
func (c *Console) MatchFound(match search.Match) {
	c.println(fmt.Sprintf("%s %s",
		c.theme.Nick.Render(match.Nick),
		c.theme.Detail.Render(fmt.Sprintf("[%s] %s (%s, %s, hops %s)",
			match.IdentHost, match.RealName, match.ContextName,
			match.OriginServer, match.HopCount)),
	))
}

// SearchComplete renders the end-of-search summary.
func (c *Console) SearchComplete(summary search.Summary) {
	noun := "matches"
	if summary.Matches == 1 {
		noun = "match"
	}
	c.println(c.theme.Summary.Render(fmt.Sprintf("%d %s in %.2fs",
		summary.Matches, noun, summary.Elapsed.Seconds())))
}

// SearchFailed renders an engine failure (timeout).
func (c *Console) SearchFailed(searchErr *search.SearchError) {
	c.printSearchError(searchErr)
}

// printStats renders the statistics block, or the no-searches sentinel.
func (c *Console) printStats() {
	report, err := c.engine.Statistics().Report()
	if errors.Is(err, search.ErrNoSearches) {
		c.println("no searches yet")
		return
	}
	if err != nil {
		c.printError(err.Error())
		return
	}

	var block strings.Builder
	block.WriteString(c.theme.Header.Render("search statistics"))
	block.WriteString("\n")
	tw := tabwriter.NewWriter(&block, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  searches\t%d\n", report.TotalSearches)
	fmt.Fprintf(tw, "  matches\t%d\n", report.TotalMatches)
	fmt.Fprintf(tw, "  matches/search\t%.2f\n", report.AverageMatchesPerSearch)
	fmt.Fprintf(tw, "  last response\t%.2fs\n", report.LastResponse.Seconds())
	fmt.Fprintf(tw, "  average response\t%.2fs\n", report.AverageResponse.Seconds())
	tw.Flush()
	c.print(block.String())
}

// printHelp renders the command reference.
func (c *Console) printHelp() {
	var block strings.Builder
	block.WriteString(c.theme.Header.Render("whogrep commands"))
	block.WriteString("\n")
	tw := tabwriter.NewWriter(&block, 2, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  search <pattern>\tenumerate the channel and print entries matching the pattern\n")
	fmt.Fprintf(tw, "  stats\tshow accumulated search statistics\n")
	fmt.Fprintf(tw, "  help\tshow this reference\n")
	tw.Flush()
	c.print(block.String())
}

func (c *Console) printSearchError(searchErr *search.SearchError) {
	c.println(c.theme.Error.Render("search failed: " + searchErr.Message))
}

func (c *Console) printError(message string) {
	c.println(c.theme.Error.Render(message))
}

func (c *Console) println(line string) {
	c.print(line + "\n")
}

// print serializes writes: notifications arrive on the transport's
// read loop while Execute runs on the caller's goroutine.
func (c *Console) print(text string) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	io.WriteString(c.out, text)
}
