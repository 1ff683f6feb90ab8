package compiler

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidVersion is returned when a version string is not major.minor.patch.
	ErrInvalidVersion = errors.New("compiler version must match major.minor.patch")
	// ErrUnsupportedVersion matches every *UnsupportedVersionError.
	ErrUnsupportedVersion = errors.New("unsupported compiler version")
)

// UnsupportedVersionError is returned when a well-formed version names no solc release.
type UnsupportedVersionError struct {
	Version string
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("solc %s is not a released compiler version", e.Version)
}

// Is reports whether target is ErrUnsupportedVersion.
func (e *UnsupportedVersionError) Is(target error) bool {
	return target == ErrUnsupportedVersion
}
