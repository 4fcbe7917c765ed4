package entities

import (
	"errors"
	"fmt"

	"github.com/prunekit/prunekit-host-sdk/artifact/values"
)

// Sentinel errors for common error patterns.
// These allow both errors.Is() checks and errors.As() for detail.
var (
	// ErrArtifactNotFound is returned when a model cannot be found in any source.
	ErrArtifactNotFound = errors.New("artifact not found")

	// ErrIntegrityCheckFailed is returned when digest verification fails.
	ErrIntegrityCheckFailed = errors.New("integrity check failed")
)

// IntegrityError reports a digest mismatch between what was pinned or
// advertised and what was downloaded.
type IntegrityError struct {
	Expected values.Digest
	Actual   values.Digest
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("integrity check failed: expected %s, got %s",
		e.Expected.String(), e.Actual.String())
}

// Is implements error matching for errors.Is() checks.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIntegrityCheckFailed
}

// ArtifactNotFoundError names the model that no source could provide.
type ArtifactNotFoundError struct {
	Reference values.StubReference
}

func (e *ArtifactNotFoundError) Error() string {
	return fmt.Sprintf("artifact not found: %s", e.Reference.String())
}

// Is implements error matching for errors.Is() checks.
func (e *ArtifactNotFoundError) Is(target error) bool {
	return target == ErrArtifactNotFound
}
