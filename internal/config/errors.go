package config

import (
	"errors"
	"fmt"
)

var (
	// ErrConfigParse classifies every malformed configuration failure.
	// Use errors.Is(err, ErrConfigParse) instead of string matching.
	ErrConfigParse = errors.New("malformed build configuration")
	// ErrUnknownConfigField is returned when a YAML file carries keys the loader does not know.
	ErrUnknownConfigField = errors.New("unknown config field")
	// ErrInvalidCompilerVersion is returned when the compiler version is empty or not major.minor.patch.
	ErrInvalidCompilerVersion = errors.New("compiler version must match major.minor.patch")
	// ErrInvalidNetwork is returned when a network descriptor has a bad name, URL or chain ID.
	ErrInvalidNetwork = errors.New("invalid network descriptor")
	// ErrUnknownPreset is returned when a requested network preset does not exist.
	ErrUnknownPreset = errors.New("unknown network preset")
)

// Source names where an offending value came from.
type Source string

const (
	SourceDefaults Source = "defaults"
	SourceEnv      Source = "env"
	SourceFile     Source = "file"
	SourceFlag     Source = "flag"
	SourceResolved Source = "resolved"
)

// ConfigParseError reports a malformed configuration value. It matches
// ErrConfigParse and unwraps to the underlying cause.
type ConfigParseError struct {
	Source Source
	Field  string
	Err    error
}

func (e *ConfigParseError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field == "" {
		return fmt.Sprintf("config parse (%s): %v", e.Source, e.Err)
	}
	return fmt.Sprintf("config parse (%s): %s: %v", e.Source, e.Field, e.Err)
}

func (e *ConfigParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is reports whether target is ErrConfigParse.
func (e *ConfigParseError) Is(target error) bool {
	return target == ErrConfigParse
}

func parseError(source Source, field string, err error) error {
	return &ConfigParseError{Source: source, Field: field, Err: err}
}
