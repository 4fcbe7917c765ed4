// Package oci pulls model artifacts from OCI registries.
package oci

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	ocispec "github.com/opencontainers/image-spec/specs-go/v1"
	"oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/memory"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"

	"github.com/prunekit/prunekit-host-sdk/artifact"
	"github.com/prunekit/prunekit-host-sdk/artifact/entities"
	"github.com/prunekit/prunekit-host-sdk/artifact/values"
	"github.com/prunekit/prunekit-host-sdk/netutil"
)

// ModelMediaType marks the layer holding the ONNX model content.
const ModelMediaType = "application/vnd.prunekit.model.onnx.v1"

// DefaultMaxModelSize caps model layer downloads at 8 GiB.
const DefaultMaxModelSize = 8 << 30

// RegistryAdapter implements artifact.Registry over oras-go.
type RegistryAdapter struct {
	auth         AuthProvider
	client       *http.Client
	maxModelSize int64
}

// Option configures a RegistryAdapter.
type Option func(*RegistryAdapter)

// WithHTTPClient sets the HTTP client used for registry requests.
func WithHTTPClient(client *http.Client) Option {
	return func(a *RegistryAdapter) {
		a.client = client
	}
}

// WithMaxModelSize caps how large a model layer may be.
func WithMaxModelSize(limit int64) Option {
	return func(a *RegistryAdapter) {
		if limit > 0 {
			a.maxModelSize = limit
		}
	}
}

// NewRegistryAdapter creates an OCI registry adapter.
func NewRegistryAdapter(authProvider AuthProvider, opts ...Option) *RegistryAdapter {
	a := &RegistryAdapter{
		auth:         authProvider,
		client:       http.DefaultClient,
		maxModelSize: DefaultMaxModelSize,
	}
	if a.auth == nil {
		a.auth = AnonymousAuth{}
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *RegistryAdapter) repository(ctx context.Context, ref values.StubReference) (*remote.Repository, error) {
	repo, err := remote.NewRepository(ref.Repository())
	if err != nil {
		return nil, fmt.Errorf("create repository: %w", err)
	}

	username, password, err := a.auth.GetCredentials(ctx, ref.Registry())
	if err == nil && username != "" {
		repo.Client = &auth.Client{
			Client: a.client,
			Credential: func(ctx context.Context, registry string) (auth.Credential, error) {
				return auth.Credential{
					Username: username,
					Password: password,
				}, nil
			},
		}
	}
	return repo, nil
}

// Pull downloads the artifact the reference names.
func (a *RegistryAdapter) Pull(ctx context.Context, ref values.StubReference) (*artifact.Download, error) {
	repo, err := a.repository(ctx, ref)
	if err != nil {
		return nil, err
	}

	memoryStore := memory.New()
	manifestDesc, err := oras.Copy(ctx, repo, ref.Version(), memoryStore, ref.Version(), oras.CopyOptions{})
	if err != nil {
		return nil, fmt.Errorf("pull %s: %w", ref, err)
	}

	manifest, err := a.fetchManifest(ctx, memoryStore, manifestDesc)
	if err != nil {
		return nil, err
	}

	metadata, err := a.fetchMetadata(ctx, memoryStore, manifest.Config)
	if err != nil {
		return nil, err
	}

	modelDesc, err := findModelLayer(manifest)
	if err != nil {
		return nil, err
	}

	modelBytes, err := a.fetchModel(ctx, memoryStore, modelDesc)
	if err != nil {
		return nil, err
	}

	digest, err := values.ParseDigest(string(modelDesc.Digest))
	if err != nil {
		return nil, fmt.Errorf("parse model digest: %w", err)
	}

	return &artifact.Download{
		Artifact: entities.NewArtifact(ref, digest, metadata),
		Model:    io.NopCloser(bytes.NewReader(modelBytes)),
	}, nil
}

// Resolve returns the model layer digest the tag currently points at,
// without downloading the model content.
func (a *RegistryAdapter) Resolve(ctx context.Context, ref values.StubReference) (values.Digest, error) {
	repo, err := a.repository(ctx, ref)
	if err != nil {
		return values.Digest{}, err
	}

	manifestDesc, err := repo.Resolve(ctx, ref.Version())
	if err != nil {
		return values.Digest{}, fmt.Errorf("resolve %s: %w", ref, err)
	}

	manifestRC, err := repo.Fetch(ctx, manifestDesc)
	if err != nil {
		return values.Digest{}, fmt.Errorf("fetch manifest: %w", err)
	}
	defer func() {
		_ = manifestRC.Close()
	}()

	manifestBytes, err := io.ReadAll(manifestRC)
	if err != nil {
		return values.Digest{}, fmt.Errorf("read manifest: %w", err)
	}

	var manifest ocispec.Manifest
	if err := json.Unmarshal(manifestBytes, &manifest); err != nil {
		return values.Digest{}, fmt.Errorf("invalid manifest JSON: %w", err)
	}

	modelDesc, err := findModelLayer(&manifest)
	if err != nil {
		return values.Digest{}, err
	}
	return values.ParseDigest(string(modelDesc.Digest))
}

// Versions lists the version tags published for the reference's repository.
func (a *RegistryAdapter) Versions(ctx context.Context, ref values.StubReference) ([]string, error) {
	repo, err := a.repository(ctx, ref)
	if err != nil {
		return nil, err
	}

	var versions []string
	err = repo.Tags(ctx, "", func(tags []string) error {
		versions = append(versions, tags...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list tags for %s: %w", ref.Repository(), err)
	}
	return versions, nil
}

type fetcher interface {
	Fetch(ctx context.Context, desc ocispec.Descriptor) (io.ReadCloser, error)
}

// fetchModel reads the model layer, capped at the configured size. The
// descriptor's advertised size is untrusted; the limited reader enforces
// the cap on the actual stream.
func (a *RegistryAdapter) fetchModel(ctx context.Context, store fetcher, desc ocispec.Descriptor) ([]byte, error) {
	if desc.Size > a.maxModelSize {
		return nil, &netutil.SizeLimitError{Limit: a.maxModelSize, Read: desc.Size}
	}

	rc, err := store.Fetch(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("fetch model layer: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(netutil.LimitSize(rc, a.maxModelSize))
	if err != nil {
		return nil, fmt.Errorf("read model layer: %w", err)
	}
	return data, nil
}

func (a *RegistryAdapter) fetchManifest(ctx context.Context, store fetcher, desc ocispec.Descriptor) (*ocispec.Manifest, error) {
	rc, err := store.Fetch(ctx, desc)
	if err != nil {
		return nil, fmt.Errorf("fetch manifest: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest ocispec.Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("invalid manifest JSON: %w", err)
	}
	return &manifest, nil
}

func (a *RegistryAdapter) fetchMetadata(ctx context.Context, store fetcher, desc ocispec.Descriptor) (entities.Metadata, error) {
	rc, err := store.Fetch(ctx, desc)
	if err != nil {
		return entities.Metadata{}, fmt.Errorf("fetch config: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	data, err := io.ReadAll(rc)
	if err != nil {
		return entities.Metadata{}, fmt.Errorf("read config: %w", err)
	}

	var meta struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Description string `json:"description"`
		Framework   string `json:"framework"`
		Task        string `json:"task"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return entities.Metadata{}, fmt.Errorf("invalid config JSON: %w", err)
	}
	return entities.NewMetadata(meta.Name, meta.Version, meta.Description, meta.Framework, meta.Task), nil
}

func findModelLayer(manifest *ocispec.Manifest) (ocispec.Descriptor, error) {
	for _, layer := range manifest.Layers {
		if layer.MediaType == ModelMediaType {
			return layer, nil
		}
	}
	return ocispec.Descriptor{}, fmt.Errorf("no model layer found")
}
