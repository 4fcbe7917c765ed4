package dispatch_test

import (
	"errors"
	"testing"

	"github.com/prunekit/prunekit-host-sdk/dispatch"
	"github.com/stretchr/testify/assert"
)

func TestExitStatusClasses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "success", err: nil, want: dispatch.ExitSuccess},
		{name: "unknown command", err: &dispatch.CommandNotFoundError{Name: "x"}, want: dispatch.ExitConfiguration},
		{name: "duplicate command", err: &dispatch.DuplicateCommandError{Name: "x"}, want: dispatch.ExitConfiguration},
		{name: "parse", err: &dispatch.ParseError{Command: "x", Err: errors.New("bad flag")}, want: dispatch.ExitParseFailure},
		{name: "contract", err: &dispatch.ContractError{Command: "x", Missing: []string{"c"}}, want: dispatch.ExitContract},
		{name: "run", err: &dispatch.RunError{Command: "x", Err: errors.New("oom")}, want: dispatch.ExitRunFailure},
		{name: "plain error", err: errors.New("anything"), want: dispatch.ExitRunFailure},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, dispatch.ExitStatus(tc.err))
		})
	}
}
