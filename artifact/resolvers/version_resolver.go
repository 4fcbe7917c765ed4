// Package resolvers turns version constraints into concrete versions.
package resolvers

import (
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// SemverResolver picks the highest available version satisfying a constraint.
type SemverResolver struct{}

// NewSemverResolver creates a new SemverResolver.
func NewSemverResolver() *SemverResolver {
	return &SemverResolver{}
}

// IsConcrete reports whether a version string is already an exact version
// rather than a constraint.
func IsConcrete(version string) bool {
	if version == "latest" {
		return false
	}
	_, err := semver.StrictNewVersion(version)
	return err == nil
}

// Resolve returns the highest version in available that satisfies the
// constraint. "latest" means the highest version overall. Entries in
// available that are not valid semver are skipped.
func (r *SemverResolver) Resolve(constraint string, available []string) (string, error) {
	text := constraint
	if text == "latest" {
		text = ">= 0"
	}

	c, err := semver.NewConstraint(text)
	if err != nil {
		return "", fmt.Errorf("invalid version constraint %q: %w", constraint, err)
	}

	var candidates []*semver.Version
	for _, raw := range available {
		v, err := semver.NewVersion(raw)
		if err != nil {
			continue
		}
		if c.Check(v) {
			candidates = append(candidates, v)
		}
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("no available version satisfies %q", constraint)
	}

	sort.Sort(semver.Collection(candidates))
	return candidates[len(candidates)-1].Original(), nil
}
