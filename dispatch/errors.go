package dispatch

import (
	"errors"
	"fmt"
	"strings"
)

// Exit statuses, one per failure class, so calling scripts can branch on
// what stage a command died in.
const (
	ExitSuccess       = 0
	ExitRunFailure    = 1
	ExitConfiguration = 2
	ExitParseFailure  = 3
	ExitContract      = 4
)

// Sentinel errors for common error patterns.
// These allow both errors.Is() checks and errors.As() for detail.
var (
	// ErrCommandNotFound is returned when a command name is not registered.
	ErrCommandNotFound = errors.New("command not found")

	// ErrDuplicateCommand is returned when two commands register the same name.
	ErrDuplicateCommand = errors.New("command already registered")

	// ErrContract is returned when a parsed configuration does not cover the
	// run function's required fields.
	ErrContract = errors.New("integration contract violation")
)

// CommandNotFoundError reports an unregistered command name together with
// the known names, so usage output can list them.
type CommandNotFoundError struct {
	Name  string
	Known []string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("unknown command %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

// Is implements error matching for errors.Is() checks.
func (e *CommandNotFoundError) Is(target error) bool {
	return target == ErrCommandNotFound
}

// DuplicateCommandError indicates a command name collision at registry build
// time. Collisions are a configuration defect, never a user error.
type DuplicateCommandError struct {
	Name string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command already registered: %s", e.Name)
}

// Is implements error matching for errors.Is() checks.
func (e *DuplicateCommandError) Is(target error) bool {
	return target == ErrDuplicateCommand
}

// ParseError wraps a failure from an integration's parse function.
// Malformed flags and missing required values land here.
type ParseError struct {
	Command string
	Err     error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Command, e.Err)
}

// Unwrap returns the parse function's own error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ContractError reports a mismatch between what a parse function produced
// and what the run function requires: fields that are absent, or present
// with the wrong shape. This is a defect in the glue layer, not a user
// error; absence fails before the run function is ever called.
type ContractError struct {
	Command string
	Missing []string
	Reason  string // set for shape mismatches on fields that are present
}

func (e *ContractError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("command %s: %s", e.Command, e.Reason)
	}
	return fmt.Sprintf(
		"command %s: parsed configuration is missing required fields: %s",
		e.Command, strings.Join(e.Missing, ", "),
	)
}

// Is implements error matching for errors.Is() checks.
func (e *ContractError) Is(target error) bool {
	return target == ErrContract
}

// RunError classifies a failure surfaced from the wrapped toolkit's run
// function. The underlying error is forwarded verbatim via Unwrap; the host
// has no domain knowledge to add.
type RunError struct {
	Command string
	Err     error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("run %s: %v", e.Command, e.Err)
}

// Unwrap returns the run function's own error, unmodified.
func (e *RunError) Unwrap() error {
	return e.Err
}

// ExitStatus maps an error to the exit status of its failure class.
// A nil error is success.
func ExitStatus(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrCommandNotFound), errors.Is(err, ErrDuplicateCommand):
		return ExitConfiguration
	case isParseError(err):
		return ExitParseFailure
	case errors.Is(err, ErrContract):
		return ExitContract
	default:
		return ExitRunFailure
	}
}

func isParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
