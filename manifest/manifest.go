// Package manifest builds the declarative package manifest consumed by
// install tooling: package identity, core requirements, extras, entry
// points, and the packaged source file list. The manifest is pure data;
// dependency resolution and installation happen elsewhere.
package manifest

import (
	"errors"
	"fmt"
	"sort"

	prunekit "github.com/prunekit/prunekit-host-sdk"
	"github.com/prunekit/prunekit-host-sdk/dispatch"
	"github.com/prunekit/prunekit-host-sdk/extras"
)

// ErrDuplicateEntryPoint is returned when two commands map to the same
// console script name.
var ErrDuplicateEntryPoint = errors.New("entry point already registered")

// DuplicateEntryPointError names the colliding console script.
type DuplicateEntryPointError struct {
	Name string
}

func (e *DuplicateEntryPointError) Error() string {
	return fmt.Sprintf("entry point already registered: %s", e.Name)
}

// Is implements error matching for errors.Is() checks.
func (e *DuplicateEntryPointError) Is(target error) bool {
	return target == ErrDuplicateEntryPoint
}

// Manifest is the build-time package surface.
type Manifest struct {
	Name        string              `yaml:"name" json:"name"`
	Version     string              `yaml:"version" json:"version"`
	Description string              `yaml:"description,omitempty" json:"description,omitempty"`
	Homepage    string              `yaml:"homepage,omitempty" json:"homepage,omitempty"`
	License     string              `yaml:"license,omitempty" json:"license,omitempty"`
	Requires    []string            `yaml:"requires" json:"requires"`
	Extras      map[string][]string `yaml:"extras" json:"extras"`
	EntryPoints map[string]string   `yaml:"entry_points" json:"entry_points"`
	Packages    []string            `yaml:"packages,omitempty" json:"packages,omitempty"`
}

// Identity carries the non-derived manifest metadata.
type Identity struct {
	IsRelease   bool
	Version     string
	Description string
	Homepage    string
	License     string
}

// Build composes a manifest from the capability registry and the command
// table. Entry point names follow "<package>.<integration>.<action>" and
// point at "<package>.<integration>:<action>" references; a collision is a
// build-time configuration error.
func Build(id Identity, reg *extras.Registry, commands *dispatch.Registry) (*Manifest, error) {
	name := prunekit.PackageIdentity(id.IsRelease)

	m := &Manifest{
		Name:        name,
		Version:     id.Version,
		Description: id.Description,
		Homepage:    id.Homepage,
		License:     id.License,
		Extras:      make(map[string][]string),
		EntryPoints: make(map[string]string),
	}

	core, err := reg.Resolve()
	if err != nil {
		return nil, err
	}
	for _, req := range core {
		m.Requires = append(m.Requires, req.String())
	}

	for _, capName := range reg.List() {
		bundle, err := reg.Bundle(capName)
		if err != nil {
			return nil, err
		}
		specs := make([]string, 0, len(bundle))
		for _, req := range bundle {
			specs = append(specs, req.String())
		}
		m.Extras[capName] = specs
	}

	for _, cmd := range commands.Commands() {
		script := fmt.Sprintf("%s.%s", prunekit.PackageName, cmd.Name())
		ref := fmt.Sprintf("%s.%s:%s", prunekit.PackageName, cmd.Integration, cmd.Action)
		if err := m.AddEntryPoint(script, ref); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// AddEntryPoint registers one console script. Existing names are rejected.
func (m *Manifest) AddEntryPoint(script, ref string) error {
	if _, exists := m.EntryPoints[script]; exists {
		return &DuplicateEntryPointError{Name: script}
	}
	m.EntryPoints[script] = ref
	return nil
}

// AddAlias exposes an existing entry point under a second console name,
// the way train commands are also reachable under a ".train." prefix.
func (m *Manifest) AddAlias(alias, script string) error {
	ref, ok := m.EntryPoints[script]
	if !ok {
		return fmt.Errorf("cannot alias unknown entry point %q", script)
	}
	return m.AddEntryPoint(alias, ref)
}

// Scripts returns all console script names, sorted.
func (m *Manifest) Scripts() []string {
	names := make([]string, 0, len(m.EntryPoints))
	for name := range m.EntryPoints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
