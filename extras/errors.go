package extras

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error patterns.
// These allow both errors.Is() checks and errors.As() for detail.
var (
	// ErrUnknownCapability is returned when a capability name is not in the registry.
	ErrUnknownCapability = errors.New("unknown capability")

	// ErrDuplicateCapability is returned when a capability name is registered twice.
	ErrDuplicateCapability = errors.New("capability already registered")
)

// UnknownCapabilityError names the capability that is not registered.
// Selecting an unknown capability is a configuration mistake, caught before
// any requirement is resolved.
type UnknownCapabilityError struct {
	Name  string
	Known []string
}

func (e *UnknownCapabilityError) Error() string {
	return fmt.Sprintf("unknown capability %q (registered: %v)", e.Name, e.Known)
}

// Is implements error matching for errors.Is() checks.
func (e *UnknownCapabilityError) Is(target error) bool {
	return target == ErrUnknownCapability
}

// DuplicateCapabilityError indicates a capability name collision at build time.
type DuplicateCapabilityError struct {
	Name string
}

func (e *DuplicateCapabilityError) Error() string {
	return fmt.Sprintf("capability already registered: %s", e.Name)
}

// Is implements error matching for errors.Is() checks.
func (e *DuplicateCapabilityError) Is(target error) bool {
	return target == ErrDuplicateCapability
}
