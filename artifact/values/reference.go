// Package values holds the immutable value objects of the artifact layer.
package values

import (
	"fmt"
	"strings"
)

// DefaultRegistry is the registry host used for "zoo:" shorthand stubs.
const DefaultRegistry = "zoo.prunekit.org"

// StubReference identifies one model artifact version.
// Forms:
//   - name                                   (bundled with the toolkit)
//   - zoo:org/repo/name:version              (shorthand for the default registry)
//   - registry.io/org/repo/name:version      (fully qualified)
type StubReference struct {
	registry string
	org      string
	repo     string
	name     string
	version  string
}

// NewStubReference creates a reference from components.
func NewStubReference(registry, org, repo, name, version string) StubReference {
	return StubReference{
		registry: registry,
		org:      org,
		repo:     repo,
		name:     name,
		version:  version,
	}
}

// ParseStubReference parses a stub string into a reference.
func ParseStubReference(stub string) (StubReference, error) {
	if after, ok := strings.CutPrefix(stub, "zoo:"); ok {
		stub = DefaultRegistry + "/" + after
	}

	// Bundled model (bare name).
	if !strings.Contains(stub, "/") && !strings.Contains(stub, ":") {
		return StubReference{name: stub}, nil
	}

	parts := strings.Split(stub, "/")
	if len(parts) != 4 {
		return StubReference{}, fmt.Errorf("invalid model stub %q: want registry/org/repo/name:version", stub)
	}

	name, version, ok := strings.Cut(parts[3], ":")
	if !ok || name == "" || version == "" {
		return StubReference{}, fmt.Errorf("invalid model stub %q: missing version tag", stub)
	}

	return StubReference{
		registry: parts[0],
		org:      parts[1],
		repo:     parts[2],
		name:     name,
		version:  version,
	}, nil
}

// String returns the canonical stub string.
func (r StubReference) String() string {
	if r.IsBundled() {
		return r.name
	}
	return fmt.Sprintf("%s/%s/%s/%s:%s", r.registry, r.org, r.repo, r.name, r.version)
}

// Repository returns the "registry/org/repo/name" part without the version.
func (r StubReference) Repository() string {
	return fmt.Sprintf("%s/%s/%s/%s", r.registry, r.org, r.repo, r.name)
}

// IsBundled reports whether the model ships with the toolkit itself.
func (r StubReference) IsBundled() bool {
	return r.registry == ""
}

// Name returns the model name.
func (r StubReference) Name() string {
	return r.name
}

// Version returns the version tag. It may be a constraint ("^1.2") rather
// than a concrete version until resolution.
func (r StubReference) Version() string {
	return r.version
}

// Registry returns the registry hostname.
func (r StubReference) Registry() string {
	return r.registry
}

// WithVersion returns a copy of the reference pinned to a concrete version.
func (r StubReference) WithVersion(version string) StubReference {
	r.version = version
	return r
}

// Equals checks equality with another reference.
func (r StubReference) Equals(other StubReference) bool {
	return r == other
}
