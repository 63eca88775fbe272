// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/whogrep/whogrep/cmd/whogrep/cli"
	"github.com/whogrep/whogrep/console"
	"github.com/whogrep/whogrep/transport/irc"
)

// consoleCommand builds the interactive console subcommand: connect,
// join the channel if one was given, then pump command lines from
// stdin until EOF.
func consoleCommand() *cli.Command {
	var configPath string

	return &cli.Command{
		Name:    "console",
		Summary: "Interactive search console",
		Usage:   "whogrep console [flags] [channel]",
		Examples: []cli.Example{
			{
				Description: "Open a console scoped to #ops",
				Command:     "whogrep console --config whogrep.yaml '#ops'",
			},
		},
		Flags: func() *pflag.FlagSet {
			flagSet := pflag.NewFlagSet("console", pflag.ContinueOnError)
			flagSet.StringVar(&configPath, "config", "", "config file path (default: $WHOGREP_CONFIG)")
			return flagSet
		},
		Run: func(args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("expected at most one channel argument, got %d", len(args))
			}
			var channel string
			if len(args) == 1 {
				channel = args[0]
			}

			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			logger := cli.NewCommandLogger().With("command", "console")

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
			if channel != "" {
				if err := client.JoinChannel(channel); err != nil {
					return err
				}
			}

			cons, err := console.New(console.Config{
				Transport: client,
				Logger:    logger,
				Options:   searchOptions(cfg),
				Target:    channel,
				Out:       os.Stdout,
				Theme:     console.DefaultTheme(),
			})
			if err != nil {
				return err
			}

			cons.Execute("help")
			return cons.Run(context.Background(), os.Stdin)
		},
	}
}
