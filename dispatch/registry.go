// Package dispatch routes flat command names to per-integration parse/run
// function pairs. The command table is enumerated once at startup, so name
// collisions and wiring mistakes surface before any dispatch occurs. At
// invocation the flow is linear: look up, parse, check the contract, run,
// forward the result or failure.
package dispatch

import (
	"fmt"
	"sort"

	"github.com/prunekit/prunekit-host-sdk/integration"
)

// Command binds one user-invocable action to an integration's parse/run pair.
type Command struct {
	// Integration is the external toolkit the command belongs to, e.g. "yolo".
	Integration string

	// Action is the operation within the integration, e.g. "train".
	Action string

	// Parse turns the command's raw CLI arguments into a Config.
	Parse integration.ParseFunc

	// Run consumes the parsed Config.
	Run integration.RunFunc

	// Params are the config fields Run requires. The dispatcher refuses to
	// call Run when the parsed Config does not cover them.
	Params []string

	// WantsSaveDir marks commands whose parse function takes the default
	// artifact directory hint.
	WantsSaveDir bool
}

// Name returns the flat command name, "<integration>.<action>".
func (c Command) Name() string {
	return c.Integration + "." + c.Action
}

// Registry is the static command table. Built once, read-only afterwards.
type Registry struct {
	commands map[string]Command
	names    []string
}

// NewRegistry builds a command table. Every command needs an integration,
// an action, and both functions; duplicate names are rejected.
func NewRegistry(cmds ...Command) (*Registry, error) {
	r := &Registry{commands: make(map[string]Command, len(cmds))}
	for _, cmd := range cmds {
		if cmd.Integration == "" || cmd.Action == "" {
			return nil, fmt.Errorf("command %q: integration and action must be set", cmd.Name())
		}
		if cmd.Parse == nil || cmd.Run == nil {
			return nil, fmt.Errorf("command %q: parse and run functions must be set", cmd.Name())
		}
		name := cmd.Name()
		if _, exists := r.commands[name]; exists {
			return nil, &DuplicateCommandError{Name: name}
		}
		r.commands[name] = cmd
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// MustRegistry is NewRegistry that panics on error.
// Intended for static tables built at program start.
func MustRegistry(cmds ...Command) *Registry {
	r, err := NewRegistry(cmds...)
	if err != nil {
		panic(err)
	}
	return r
}

// Lookup returns the command and whether it exists.
func (r *Registry) Lookup(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// Names returns all command names, sorted.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Commands returns all commands in name order.
func (r *Registry) Commands() []Command {
	out := make([]Command, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.commands[name])
	}
	return out
}
