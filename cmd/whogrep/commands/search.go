// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/spf13/pflag"

	"github.com/whogrep/whogrep/cmd/whogrep/cli"
	"github.com/whogrep/whogrep/console"
	"github.com/whogrep/whogrep/search"
	"github.com/whogrep/whogrep/transport/irc"
)

// connectTimeout bounds the wait for the server's welcome during
// one-shot and console startup.
const connectTimeout = 30 * time.Second

// searchCommand builds the one-shot search subcommand: connect, join
// the channel, run one enumeration, print matches and the summary, and
// exit. Exit code follows grep conventions: 0 when something matched,
// 1 when nothing matched or the enumeration timed out.
func searchCommand() *cli.Command {
	var (
		configPath    string
		timeout       int
		fields        string
		caseSensitive bool
		debug         bool
		flagSet       *pflag.FlagSet
	)

	return &cli.Command{
		Name:    "search",
		Summary: "Run one enumeration search and exit",
		Usage:   "whogrep search [flags] <channel> <pattern>",
		Examples: []cli.Example{
			{
				Description: "Find operators whose nick starts with admin",
				Command:     "whogrep search --config whogrep.yaml '#ops' '^admin'",
			},
			{
				Description: "Match against the realname field only",
				Command:     "whogrep search --fields realname '#ops' 'Smith'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet = pflag.NewFlagSet("search", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path (default: $WHOGREP_CONFIG)")
			flagSet.IntVar(&timeout, "timeout", 0, "seconds to wait for the end-of-list marker (default: from config)")
			flagSet.StringVar(&fields, "fields", "", "fields to match: all, or nick,host,realname (default: from config)")
			flagSet.BoolVar(&caseSensitive, "case-sensitive", false, "match case-sensitively")
			flagSet.BoolVar(&debug, "debug", false, "log dropped records")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) != 2 {
				return fmt.Errorf("expected <channel> and <pattern>, got %d arguments", len(args))
			}
			channel, pattern := args[0], args[1]

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if flagSet.Changed("timeout") {
				cfg.Search.TimeoutSeconds = timeout
			}
			if flagSet.Changed("fields") {
				cfg.Search.Fields = fields
			}
			if flagSet.Changed("case-sensitive") {
				cfg.Search.CaseSensitive = caseSensitive
			}
			if flagSet.Changed("debug") {
				cfg.Search.Debug = debug
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger := cli.NewCommandLogger().With("command", "search")

			client, err := irc.Dial(irc.ClientConfig{
				Address: cfg.Server.Address,
				Nick:    cfg.Server.Nick,
				TLS:     cfg.Server.TLS,
				Logger:  logger,
			})
			if err != nil {
				return err
			}
			defer client.Close()

			ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
			defer cancel()
			if err := client.WaitReady(ctx); err != nil {
				return err
			}
			if err := client.JoinChannel(channel); err != nil {
				return err
			}

			notifier := newOneShotNotifier(os.Stdout, console.DefaultTheme())
			engine, err := search.NewEngine(search.EngineConfig{
				Transport: client,
				Notifier:  notifier,
				Logger:    logger,
				Options:   searchOptions(cfg),
			})
			if err != nil {
				return err
			}

			if err := engine.Search(channel, pattern); err != nil {
				return err
			}

			// The engine's timeout guarantees one of SearchComplete or
			// SearchFailed eventually fires, so this wait is bounded.
			outcome := <-notifier.done
			if outcome.failed != nil || outcome.matches == 0 {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

// searchOutcome is the terminal state of a one-shot enumeration.
type searchOutcome struct {
	matches int
	failed  *search.SearchError
}

// oneShotNotifier renders engine notifications for the one-shot search
// command and signals the terminal outcome on done. Notifications
// arrive on the transport's read loop.
type oneShotNotifier struct {
	theme console.Theme
	done  chan searchOutcome

	writeMu sync.Mutex
	out     io.Writer
}

var _ search.Notifier = (*oneShotNotifier)(nil)

func newOneShotNotifier(out io.Writer, theme console.Theme) *oneShotNotifier {
	return &oneShotNotifier{
		theme: theme,
		done:  make(chan searchOutcome, 1),
		out:   out,
	}
}

func (n *oneShotNotifier) MatchFound(match search.Match) {
	n.println(fmt.Sprintf("%s %s",
		n.theme.Nick.Render(match.Nick),
		n.theme.Detail.Render(fmt.Sprintf("[%s] %s (%s, %s, hops %s)",
			match.IdentHost, match.RealName, match.ContextName,
			match.OriginServer, match.HopCount)),
	))
}

func (n *oneShotNotifier) SearchComplete(summary search.Summary) {
	noun := "matches"
	if summary.Matches == 1 {
		noun = "match"
	}
	n.println(n.theme.Summary.Render(fmt.Sprintf("%d %s in %.2fs",
		summary.Matches, noun, summary.Elapsed.Seconds())))
	n.done <- searchOutcome{matches: summary.Matches}
}

func (n *oneShotNotifier) SearchFailed(searchErr *search.SearchError) {
	n.println(n.theme.Error.Render("search failed: " + searchErr.Message))
	n.done <- searchOutcome{failed: searchErr}
}

func (n *oneShotNotifier) println(line string) {
	n.writeMu.Lock()
	defer n.writeMu.Unlock()
	io.WriteString(n.out, line+"\n")
}
