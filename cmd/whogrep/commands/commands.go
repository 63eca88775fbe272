// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

// Package commands builds the complete whogrep CLI command tree. The
// whogrep binary's main imports this package; keeping the tree in its
// own package keeps main.go down to error-to-exit-code plumbing.
package commands

import (
	"fmt"
	"time"

	"github.com/whogrep/whogrep/cmd/whogrep/cli"
	"github.com/whogrep/whogrep/lib/config"
	"github.com/whogrep/whogrep/lib/version"
	"github.com/whogrep/whogrep/search"
)

// Root builds and returns the complete whogrep CLI command tree.
func Root() *cli.Command {
	return &cli.Command{
		Name: "whogrep",
		Description: `whogrep: pattern search over chat-server WHO enumerations.

Connect to a server, enumerate the members of a channel, and print the
entries whose fields match a regular expression.`,
		Subcommands: []*cli.Command{
			searchCommand(),
			consoleCommand(),
			{
				Name:    "version",
				Summary: "Print version information",
				Run: func(args []string) error {
					fmt.Printf("whogrep %s\n", version.Full())
					return nil
				},
			},
		},
		Examples: []cli.Example{
			{
				Description: "Search #ops for nicks starting with admin",
				Command:     "whogrep search --config whogrep.yaml '#ops' '^admin'",
			},
			{
				Description: "Search only the realname field, case-sensitively",
				Command:     "whogrep search --fields realname --case-sensitive '#ops' 'Smith'",
			},
			{
				Description: "Start the interactive console on a channel",
				Command:     "whogrep console --config whogrep.yaml '#ops'",
			},
		},
	}
}

// loadConfig resolves the configuration: an explicit --config path wins,
// otherwise the WHOGREP_CONFIG environment variable names the file.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// searchOptions converts the config's search section into engine
// options.
func searchOptions(cfg *config.Config) search.Options {
	return search.Options{
		CaseSensitive: cfg.Search.CaseSensitive,
		Debug:         cfg.Search.Debug,
		Timeout:       time.Duration(cfg.Search.TimeoutSeconds) * time.Second,
		Fields:        cfg.Search.Fields,
	}
}
