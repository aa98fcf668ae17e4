// Package config loads, normalizes, and validates wardlookup configuration.
//
// Settings come from Default, then an optional TOML or YAML file, then the
// WARDLOOKUP_* environment variables. Command-line flags are applied on top
// by the CLI.
package config
