// Package artifact fetches pinned model artifacts for the toolkit: a stub
// reference is resolved to a concrete version, pulled from an OCI registry,
// digest-verified against the pins file, optionally signature-verified, and
// cached locally.
package artifact

import (
	"context"
	"io"
	"time"

	"github.com/prunekit/prunekit-host-sdk/artifact/entities"
	"github.com/prunekit/prunekit-host-sdk/artifact/values"
)

// Download couples a pulled artifact with its model content stream.
// The caller owns closing Model.
type Download struct {
	Artifact *entities.Artifact
	Model    io.ReadCloser
}

// Registry is a remote source of model artifacts.
type Registry interface {
	// Pull downloads the artifact the reference names.
	Pull(ctx context.Context, ref values.StubReference) (*Download, error)

	// Resolve returns the content digest a concrete reference currently
	// points at, without downloading it.
	Resolve(ctx context.Context, ref values.StubReference) (values.Digest, error)

	// Versions lists the version tags published for the reference's
	// repository.
	Versions(ctx context.Context, ref values.StubReference) ([]string, error)
}

// Store caches downloaded model files locally.
type Store interface {
	// Save persists a model stream and returns the local file path.
	Save(ctx context.Context, art *entities.Artifact, model io.Reader) (string, error)

	// Path returns the cached file path for a concrete reference, if present.
	Path(ref values.StubReference) (string, bool)
}

// SignatureResult describes a verified artifact signature.
type SignatureResult struct {
	SignedAt        time.Time
	Signer          string
	TransparencyLog string
	Verified        bool
}

// SignatureVerifier checks artifact signatures.
type SignatureVerifier interface {
	VerifySignature(ctx context.Context, ref values.StubReference) (*SignatureResult, error)
}
