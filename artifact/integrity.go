package artifact

import (
	"io"

	"github.com/prunekit/prunekit-host-sdk/artifact/entities"
	"github.com/prunekit/prunekit-host-sdk/artifact/values"
)

// IntegrityService compares content digests against expectations.
type IntegrityService struct {
	requireSignature bool
}

// NewIntegrityService creates an integrity service. requireSignature
// controls whether pulls must also pass signature verification.
func NewIntegrityService(requireSignature bool) *IntegrityService {
	return &IntegrityService{requireSignature: requireSignature}
}

// RequireSignature reports whether signature verification is mandatory.
func (s *IntegrityService) RequireSignature() bool {
	return s.requireSignature
}

// VerifyDigest fails unless the artifact's digest matches the expectation.
// A zero expected digest means "nothing pinned" and passes.
func (s *IntegrityService) VerifyDigest(art *entities.Artifact, expected values.Digest) error {
	if expected.IsZero() {
		return nil
	}
	if !art.Digest().Equals(expected) {
		return &entities.IntegrityError{Expected: expected, Actual: art.Digest()}
	}
	return nil
}

// VerifyContent hashes the model content and fails on mismatch with the
// artifact's advertised digest.
func (s *IntegrityService) VerifyContent(art *entities.Artifact, model io.Reader) error {
	advertised := art.Digest()
	if advertised.IsZero() {
		return nil
	}
	actual, err := values.ComputeDigest(advertised.Algorithm(), model)
	if err != nil {
		return err
	}
	if !actual.Equals(advertised) {
		return &entities.IntegrityError{Expected: advertised, Actual: actual}
	}
	return nil
}
