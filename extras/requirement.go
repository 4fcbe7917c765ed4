package extras

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Requirement is a single external package requirement: a distribution name
// plus an optional semver constraint set.
// Format: "name" or "name <constraints>", e.g. "torch >=1.1.0, <=1.9.1".
type Requirement struct {
	name       string
	constraint *semver.Constraints
	raw        string // constraint text as written, preserved for output
}

// NewRequirement creates a requirement from a name and constraint text.
// An empty constraint means any version.
func NewRequirement(name, constraint string) (Requirement, error) {
	if name == "" {
		return Requirement{}, fmt.Errorf("requirement name must not be empty")
	}

	r := Requirement{name: name, raw: constraint}
	if constraint == "" {
		return r, nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return Requirement{}, fmt.Errorf("invalid constraint for %s: %w", name, err)
	}
	r.constraint = c
	return r, nil
}

// ParseRequirement parses a requirement specifier string.
// The name ends at the first whitespace or constraint operator.
func ParseRequirement(spec string) (Requirement, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Requirement{}, fmt.Errorf("empty requirement specifier")
	}

	idx := strings.IndexFunc(spec, func(r rune) bool {
		return r == ' ' || r == '>' || r == '<' || r == '=' || r == '~' || r == '^' || r == '!'
	})
	if idx == -1 {
		return NewRequirement(spec, "")
	}
	return NewRequirement(spec[:idx], strings.TrimSpace(spec[idx:]))
}

// MustRequirement is ParseRequirement that panics on error.
// Intended for static tables built at package init.
func MustRequirement(spec string) Requirement {
	r, err := ParseRequirement(spec)
	if err != nil {
		panic(err)
	}
	return r
}

// Name returns the distribution name.
func (r Requirement) Name() string {
	return r.name
}

// Constraint returns the constraint text as written; empty means any version.
func (r Requirement) Constraint() string {
	return r.raw
}

// Check reports whether a concrete version satisfies the requirement.
// Unconstrained requirements accept every parseable version.
func (r Requirement) Check(version string) (bool, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return false, fmt.Errorf("invalid version %q: %w", version, err)
	}
	if r.constraint == nil {
		return true, nil
	}
	return r.constraint.Check(v), nil
}

// String returns the canonical specifier form.
func (r Requirement) String() string {
	if r.raw == "" {
		return r.name
	}
	return r.name + " " + r.raw
}
