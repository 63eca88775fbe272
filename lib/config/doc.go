// Copyright 2026 The Whogrep Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides configuration loading for whogrep.
//
// Configuration is loaded from a single YAML file specified by:
//   - WHOGREP_CONFIG environment variable, or
//   - --config flag passed to the command
//
// There are no fallbacks or automatic discovery. The config file is the
// single source of truth; environment variables do not override config
// values. This ensures deterministic, auditable configuration with no
// hidden overrides.
package config
