package artifact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/prunekit/prunekit-host-sdk/artifact/entities"
	"github.com/prunekit/prunekit-host-sdk/artifact/filesystem"
	"github.com/prunekit/prunekit-host-sdk/artifact/resolvers"
	"github.com/prunekit/prunekit-host-sdk/artifact/values"
	"github.com/prunekit/prunekit-host-sdk/netutil"
)

// Service orchestrates model fetches: resolve the stub to a concrete
// version, pull from the registry, verify integrity against the pins file,
// and cache the model locally.
type Service struct {
	registry  Registry
	store     Store
	resolver  *resolvers.SemverResolver
	integrity *IntegrityService
	verifier  SignatureVerifier
	pins      *filesystem.PinsRepo
	logger    *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// NewService creates an artifact service. Registry and store are required.
func NewService(registry Registry, store Store, opts ...ServiceOption) *Service {
	s := &Service{
		registry:  registry,
		store:     store,
		resolver:  resolvers.NewSemverResolver(),
		integrity: NewIntegrityService(false),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithIntegrityService sets the integrity service.
func WithIntegrityService(is *IntegrityService) ServiceOption {
	return func(s *Service) { s.integrity = is }
}

// WithSignatureVerifier sets the signature verifier.
func WithSignatureVerifier(v SignatureVerifier) ServiceOption {
	return func(s *Service) { s.verifier = v }
}

// WithPinsRepo enables pin recording and enforcement through the given repo.
func WithPinsRepo(repo *filesystem.PinsRepo) ServiceOption {
	return func(s *Service) { s.pins = repo }
}

// WithServiceLogger sets the logger.
func WithServiceLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// Fetch is the main use case: resolve a model stub, pull it, verify it, and
// cache it. Returns the fetched artifact and its local file path. A model
// already cached at the pinned version is returned without a network pull.
func (s *Service) Fetch(ctx context.Context, stub string) (*entities.Artifact, string, error) {
	ref, err := values.ParseStubReference(stub)
	if err != nil {
		return nil, "", fmt.Errorf("invalid model stub: %w", err)
	}
	if ref.IsBundled() {
		return nil, "", fmt.Errorf("model %q is not a remote stub: %w", ref.Name(), entities.ErrArtifactNotFound)
	}

	resolved, pin, err := s.resolve(ctx, ref)
	if err != nil {
		return nil, "", err
	}

	if path, ok := s.store.Path(resolved); ok {
		s.logger.Debug("model cache hit", "model", resolved.String(), "path", path)
		return entities.NewArtifact(resolved, pinnedDigest(pin), entities.Metadata{Name: resolved.Name(), Version: resolved.Version()}), path, nil
	}

	download, err := s.registry.Pull(ctx, resolved)
	if err != nil {
		return nil, "", fmt.Errorf("pull model: %w", err)
	}
	defer func() {
		_ = download.Model.Close()
	}()

	if err := s.integrity.VerifyDigest(download.Artifact, pinnedDigest(pin)); err != nil {
		return nil, "", fmt.Errorf("model integrity: %w", err)
	}

	modelBytes, err := io.ReadAll(download.Model)
	if err != nil {
		return nil, "", fmt.Errorf("read model: %w", err)
	}
	if err := s.integrity.VerifyContent(download.Artifact, bytes.NewReader(modelBytes)); err != nil {
		return nil, "", fmt.Errorf("model integrity: %w", err)
	}

	if s.integrity.RequireSignature() {
		if s.verifier == nil {
			return nil, "", fmt.Errorf("signature verification required but no verifier configured")
		}
		result, err := s.verifier.VerifySignature(ctx, resolved)
		if err != nil {
			return nil, "", fmt.Errorf("signature verification: %w", err)
		}
		s.logger.Info("model signature verified",
			"model", resolved.String(),
			"signer", result.Signer,
			"signed_at", result.SignedAt)
	}

	path, err := s.store.Save(ctx, download.Artifact, bytes.NewReader(modelBytes))
	if err != nil {
		return nil, "", fmt.Errorf("cache model: %w", err)
	}

	if err := s.recordPin(ref, download.Artifact); err != nil {
		return nil, "", err
	}

	s.logger.Info("model fetched",
		"model", resolved.String(),
		"digest", download.Artifact.Digest().String(),
		"path", path)
	return download.Artifact, path, nil
}

// resolve turns a possibly-constrained reference into a concrete one,
// honoring an existing pin for the same requested constraint.
func (s *Service) resolve(ctx context.Context, ref values.StubReference) (values.StubReference, *filesystem.ModelPin, error) {
	pin := s.lookupPin(ref)
	if pin != nil && pin.Requested == ref.Version() {
		return ref.WithVersion(pin.Resolved), pin, nil
	}

	if resolvers.IsConcrete(ref.Version()) {
		return ref, nil, nil
	}

	versions, err := s.registry.Versions(ctx, ref)
	if err != nil {
		return values.StubReference{}, nil, fmt.Errorf("list versions: %w", err)
	}

	resolved, err := s.resolver.Resolve(ref.Version(), versions)
	if err != nil {
		return values.StubReference{}, nil, fmt.Errorf("resolve %s: %w", ref.Repository(), err)
	}
	return ref.WithVersion(resolved), nil, nil
}

func (s *Service) lookupPin(ref values.StubReference) *filesystem.ModelPin {
	if s.pins == nil {
		return nil
	}
	pins, err := s.pins.Load()
	if err != nil {
		s.logger.Warn("pins file unreadable, resolving fresh", "error", err)
		return nil
	}
	pin, ok := pins.Get(ref.Repository())
	if !ok {
		return nil
	}
	return &pin
}

func (s *Service) recordPin(requested values.StubReference, art *entities.Artifact) error {
	if s.pins == nil {
		return nil
	}
	pins, err := s.pins.Load()
	if err != nil {
		return fmt.Errorf("load pins: %w", err)
	}
	pins.Set(requested.Repository(), filesystem.ModelPin{
		Fetched:   time.Now().UTC(),
		Requested: requested.Version(),
		Resolved:  art.Reference().Version(),
		Source:    netutil.NormalizeRegistryURL("https://" + requested.Registry()),
		Digest:    art.Digest().String(),
	})
	if err := s.pins.Save(pins); err != nil {
		return fmt.Errorf("save pins: %w", err)
	}
	return nil
}

func pinnedDigest(pin *filesystem.ModelPin) values.Digest {
	if pin == nil || pin.Digest == "" {
		return values.Digest{}
	}
	d, err := values.ParseDigest(pin.Digest)
	if err != nil {
		return values.Digest{}
	}
	return d
}
