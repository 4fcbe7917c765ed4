// Package extras implements the optional-capability registry: named bundles
// of external package requirements that enable one integration each, plus a
// core requirement list that is always installed. The registry is built once
// and is read-only afterwards; version-conflict detection is delegated to
// the external package resolver.
package extras

import (
	"sort"
)

// Registry maps capability names to their requirement bundles.
type Registry struct {
	core    []Requirement
	bundles map[string][]Requirement
	order   []string // registration order, kept for stable listings
}

// NewRegistry creates a registry with the always-installed core requirements.
func NewRegistry(core ...Requirement) *Registry {
	return &Registry{
		core:    append([]Requirement(nil), core...),
		bundles: make(map[string][]Requirement),
	}
}

// Register adds a named capability bundle. Registering the same name twice
// is a build-time configuration error.
func (r *Registry) Register(name string, reqs ...Requirement) error {
	if _, exists := r.bundles[name]; exists {
		return &DuplicateCapabilityError{Name: name}
	}
	r.bundles[name] = append([]Requirement(nil), reqs...)
	r.order = append(r.order, name)
	return nil
}

// MustRegister is Register that panics on collision.
// Intended for static tables built at package init.
func (r *Registry) MustRegister(name string, reqs ...Requirement) {
	if err := r.Register(name, reqs...); err != nil {
		panic(err)
	}
}

// Core returns a copy of the always-installed requirement list.
func (r *Registry) Core() []Requirement {
	return append([]Requirement(nil), r.core...)
}

// Bundle returns the requirement list for one capability.
func (r *Registry) Bundle(name string) ([]Requirement, error) {
	reqs, ok := r.bundles[name]
	if !ok {
		return nil, &UnknownCapabilityError{Name: name, Known: r.List()}
	}
	return append([]Requirement(nil), reqs...), nil
}

// List returns all registered capability names, sorted.
func (r *Registry) List() []string {
	names := append([]string(nil), r.order...)
	sort.Strings(names)
	return names
}

// Resolve returns the core requirement list followed by the union of the
// selected capabilities' requirements, deduplicated by requirement name with
// first-seen order preserved. Every selected name must be registered; an
// unknown name fails before any requirement is returned.
func (r *Registry) Resolve(selected ...string) ([]Requirement, error) {
	for _, name := range selected {
		if _, ok := r.bundles[name]; !ok {
			return nil, &UnknownCapabilityError{Name: name, Known: r.List()}
		}
	}

	seen := make(map[string]struct{}, len(r.core))
	out := make([]Requirement, 0, len(r.core))
	for _, req := range r.core {
		if _, dup := seen[req.Name()]; dup {
			continue
		}
		seen[req.Name()] = struct{}{}
		out = append(out, req)
	}

	for _, name := range selected {
		for _, req := range r.bundles[name] {
			if _, dup := seen[req.Name()]; dup {
				continue
			}
			seen[req.Name()] = struct{}{}
			out = append(out, req)
		}
	}

	return out, nil
}
