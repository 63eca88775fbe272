// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"strings"
	"testing"

	"github.com/whogrep/whogrep/cmd/whogrep/cli"
)

// TestCommandTreeShape walks the full production command tree and
// validates the invariants the dispatcher relies on: every command has
// a name, every non-root command has a summary for its parent's help
// listing, every command is actionable (Run or Subcommands), and
// sibling names are unique.
func TestCommandTreeShape(t *testing.T) {
	root := Root()
	walkCommands(root, nil, func(command *cli.Command, path []string) {
		name := strings.Join(path, " ")
		if command.Name == "" {
			t.Errorf("%s: command with empty name", name)
		}
		if command != root && command.Summary == "" {
			t.Errorf("%s: command missing Summary", name)
		}
		if command.Run == nil && len(command.Subcommands) == 0 {
			t.Errorf("%s: command has neither Run nor Subcommands", name)
		}

		seen := make(map[string]bool)
		for _, sub := range command.Subcommands {
			if seen[sub.Name] {
				t.Errorf("%s: duplicate subcommand %q", name, sub.Name)
			}
			seen[sub.Name] = true
		}
	})
}

func TestCommandTreeSubcommands(t *testing.T) {
	root := Root()
	for _, want := range []string{"search", "console", "version"} {
		found := false
		for _, sub := range root.Subcommands {
			if sub.Name == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root tree missing %q subcommand", want)
		}
	}
}

// walkCommands recursively visits every command in the tree, calling
// visit for each node with the accumulated command path.
func walkCommands(command *cli.Command, path []string, visit func(*cli.Command, []string)) {
	current := make([]string, len(path)+1)
	copy(current, path)
	current[len(path)] = command.Name
	visit(command, current)
	for _, sub := range command.Subcommands {
		walkCommands(sub, current, visit)
	}
}
