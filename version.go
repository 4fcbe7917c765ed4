// Package prunekit carries the toolkit's release identity: the current
// version, the release/nightly package naming policy, and the version pins
// used for same-organization companion packages.
package prunekit

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

const (
	// PackageName is the stable distribution name.
	PackageName = "prunekit"

	// NightlySuffix is appended to PackageName for non-release builds.
	NightlySuffix = "-nightly"

	// Version is the full version of the current build.
	Version = "1.4.3"
)

// IsRelease reports whether the current build is a tagged release.
// Overridden to true by the release pipeline via -ldflags.
var IsRelease = false

// PackageIdentity returns the distribution name for the given release state:
// the stable name for releases, the nightly-suffixed name otherwise.
func PackageIdentity(isRelease bool) string {
	if isRelease {
		return PackageName
	}
	return PackageName + NightlySuffix
}

// MajorMinor returns the "<major>.<minor>" prefix of Version.
func MajorMinor() string {
	v := semver.MustParse(Version)
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor())
}

// CompanionPin returns the version companion packages are pinned to:
// "<major>.<minor>.0" of the current package, regardless of the current
// patch level. Patch releases therefore never force companion re-pins.
func CompanionPin() string {
	return MajorMinor() + ".0"
}

// CompanionName returns the distribution name of a same-organization
// companion package, carrying the nightly suffix whenever this package does.
func CompanionName(name string, isRelease bool) string {
	if isRelease {
		return name
	}
	return name + NightlySuffix
}

// CompanionConstraint returns the requirement string pinning a companion
// package to the current major.minor line, e.g. "modelzoo ~1.4.0".
func CompanionConstraint(name string, isRelease bool) string {
	return fmt.Sprintf("%s ~%s", CompanionName(name, isRelease), CompanionPin())
}
