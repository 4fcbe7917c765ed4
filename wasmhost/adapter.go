package wasmhost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/prunekit/prunekit-host-sdk/dispatch"
	"github.com/prunekit/prunekit-host-sdk/integration"
)

func encodeJSON(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode guest request: %w", err)
	}
	return data, nil
}

// commandDescriptor is how a guest advertises one command it implements.
type commandDescriptor struct {
	Integration  string   `json:"integration"`
	Action       string   `json:"action"`
	Params       []string `json:"params"`
	WantsSaveDir bool     `json:"wants_save_dir"`
}

type parseRequest struct {
	Command string   `json:"command"`
	Argv    []string `json:"argv"`
	SaveDir string   `json:"save_dir,omitempty"`
}

type parseReply struct {
	Config map[string]any `json:"config"`
	Error  string         `json:"error,omitempty"`
}

type runRequest struct {
	Command string         `json:"command"`
	Config  map[string]any `json:"config"`
}

type runReply struct {
	Result any    `json:"result"`
	Error  string `json:"error,omitempty"`
}

// Commands asks the guest which commands it implements and adapts each one
// into a dispatchable command backed by the guest's parse and run exports.
func (i *Instance) Commands(ctx context.Context) ([]dispatch.Command, error) {
	var descriptors []commandDescriptor
	if err := i.call(ctx, "commands", nil, &descriptors); err != nil {
		return nil, fmt.Errorf("list guest commands: %w", err)
	}

	cmds := make([]dispatch.Command, 0, len(descriptors))
	for _, d := range descriptors {
		if d.Integration == "" || d.Action == "" {
			return nil, fmt.Errorf("guest command descriptor missing integration or action")
		}
		cmds = append(cmds, dispatch.Command{
			Integration:  d.Integration,
			Action:       d.Action,
			Params:       d.Params,
			WantsSaveDir: d.WantsSaveDir,
			Parse:        i.parseFunc(d.Integration + "." + d.Action),
			Run:          i.runFunc(d.Integration + "." + d.Action),
		})
	}
	return cmds, nil
}

func (i *Instance) parseFunc(command string) integration.ParseFunc {
	return func(ctx context.Context, argv []string, hints integration.ParseHints) (*integration.Config, error) {
		req, err := encodeJSON(parseRequest{Command: command, Argv: argv, SaveDir: hints.SaveDir})
		if err != nil {
			return nil, err
		}

		var reply parseReply
		if err := i.call(ctx, "parse", req, &reply); err != nil {
			return nil, err
		}
		if reply.Error != "" {
			return nil, errors.New(reply.Error)
		}
		return integration.NewConfig(reply.Config), nil
	}
}

func (i *Instance) runFunc(command string) integration.RunFunc {
	return func(ctx context.Context, cfg *integration.Config) (any, error) {
		req, err := encodeJSON(runRequest{Command: command, Config: cfg.Map()})
		if err != nil {
			return nil, err
		}

		var reply runReply
		if err := i.call(ctx, "run", req, &reply); err != nil {
			return nil, err
		}
		if reply.Error != "" {
			return nil, errors.New(reply.Error)
		}
		return reply.Result, nil
	}
}
