package compiler

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// releasedVersions covers every published solc release.
const releasedVersions = ">= 0.4.11, <= 0.4.26 || >= 0.5.0, <= 0.5.17 || >= 0.6.0, <= 0.6.12 || >= 0.7.0, <= 0.7.6 || >= 0.8.0, <= 0.8.30"

var (
	released = semver.MustParse("0.8.30")
	releases = mustConstraint(releasedVersions)
)

func mustConstraint(raw string) *semver.Constraints {
	c, err := semver.NewConstraint(raw)
	if err != nil {
		panic(fmt.Sprintf("invalid release constraint %q: %v", raw, err))
	}
	return c
}

// ParseVersion parses a strict major.minor.patch string. Prefixes such as "v",
// pre-release suffixes and build metadata are rejected.
func ParseVersion(raw string) (Version, error) {
	v, err := semver.StrictNewVersion(raw)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, raw)
	}
	if v.Prerelease() != "" || v.Metadata() != "" {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, raw)
	}
	return fromSemver(v), nil
}

// Supported reports whether v is a released solc version.
func Supported(v Version) bool {
	return releases.Check(v.semver())
}

// Latest returns the newest release known to Supported.
func Latest() Version {
	return fromSemver(released)
}

// Check parses raw and verifies it names a released compiler.
func Check(raw string) (Version, error) {
	v, err := ParseVersion(raw)
	if err != nil {
		return Version{}, err
	}
	if !Supported(v) {
		return Version{}, &UnsupportedVersionError{Version: raw}
	}
	return v, nil
}
