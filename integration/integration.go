// Package integration defines the contract between the toolkit host and the
// external integrations it forwards to. An integration supplies a parse
// function that turns raw CLI arguments into a Config and a run function
// that consumes that Config. The host interprets neither the arguments nor
// the fields; it only moves them across.
package integration

import "context"

// ParseHints carries host-provided defaults into a parse function.
type ParseHints struct {
	// SaveDir is the default directory for per-command artifacts, derived
	// from the host executable's own location unless overridden. Empty when
	// the command does not take the hint.
	SaveDir string
}

// ParseFunc parses an integration's own CLI arguments into a Config.
// The host never inspects argv; malformed input is the parse function's
// error to report.
type ParseFunc func(ctx context.Context, argv []string, hints ParseHints) (*Config, error)

// RunFunc executes an integration action with a parsed Config.
// The returned value and any error are forwarded to the caller verbatim;
// the host adds no retry, timeout, or recovery behavior.
type RunFunc func(ctx context.Context, cfg *Config) (any, error)
