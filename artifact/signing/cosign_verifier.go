// Package signing verifies model artifact signatures.
package signing

import (
	"context"
	"fmt"

	"github.com/google/go-containerregistry/pkg/name"
	"github.com/sigstore/cosign/v2/pkg/cosign"
	ociremote "github.com/sigstore/cosign/v2/pkg/oci/remote"
	"github.com/sigstore/cosign/v2/pkg/signature"

	"github.com/prunekit/prunekit-host-sdk/artifact"
	"github.com/prunekit/prunekit-host-sdk/artifact/values"
)

// CosignVerifier implements artifact.SignatureVerifier using Cosign
// public-key verification. Keyless (OIDC) verification is not supported;
// a verifier without keys refuses rather than pretending to verify.
type CosignVerifier struct {
	publicKeys []string
}

// NewCosignVerifier creates a Cosign-based verifier over the given public
// key references (file paths or KMS URIs).
func NewCosignVerifier(publicKeys []string) *CosignVerifier {
	return &CosignVerifier{
		publicKeys: publicKeys,
	}
}

// VerifySignature checks the signature attached to a model artifact against
// the configured public keys. The first key that validates wins.
func (v *CosignVerifier) VerifySignature(ctx context.Context, ref values.StubReference) (*artifact.SignatureResult, error) {
	if ref.IsBundled() {
		// Bundled models ship inside the toolkit and carry no registry
		// signature.
		return &artifact.SignatureResult{Verified: true, Signer: "bundled"}, nil
	}
	if len(v.publicKeys) == 0 {
		return nil, fmt.Errorf("signature verification for %s: no public keys configured (keyless verification is not supported)", ref)
	}

	imageRef, err := name.ParseReference(ref.Repository() + ":" + ref.Version())
	if err != nil {
		return nil, fmt.Errorf("signature verification for %s: %w", ref, err)
	}

	var lastErr error
	for _, keyRef := range v.publicKeys {
		verifier, err := signature.PublicKeyFromKeyRef(ctx, keyRef)
		if err != nil {
			lastErr = fmt.Errorf("load public key %s: %w", keyRef, err)
			continue
		}

		opts := &cosign.CheckOpts{
			RegistryClientOpts: []ociremote.Option{},
			SigVerifier:        verifier,
			IgnoreTlog:         true,
			IgnoreSCT:          true,
		}
		sigs, bundleVerified, err := cosign.VerifyImageSignatures(ctx, imageRef, opts)
		if err != nil {
			lastErr = err
			continue
		}
		if len(sigs) == 0 {
			lastErr = fmt.Errorf("no signatures found for %s", ref)
			continue
		}

		result := &artifact.SignatureResult{
			Verified: true,
			Signer:   keyRef,
		}
		if bundleVerified {
			result.TransparencyLog = "bundle"
		}
		return result, nil
	}

	return nil, fmt.Errorf("no valid signatures for %s: %w", ref, lastErr)
}
