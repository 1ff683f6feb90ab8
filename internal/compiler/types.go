package compiler

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// Version is a parsed major.minor.patch compiler version.
type Version struct {
	Major int
	Minor int
	Patch int
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compare returns -1, 0 or 1 when v is lower than, equal to or greater than other.
func (v Version) Compare(other Version) int {
	return v.semver().Compare(other.semver())
}

func (v Version) semver() *semver.Version {
	return semver.New(uint64(v.Major), uint64(v.Minor), uint64(v.Patch), "", "")
}

func fromSemver(v *semver.Version) Version {
	return Version{Major: int(v.Major()), Minor: int(v.Minor()), Patch: int(v.Patch())}
}
