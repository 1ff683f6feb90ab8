// Package config resolves the build configuration handed to the external
// Solidity toolchain: the compiler version to target and the named networks
// available for deployment and testing. Values are merged from embedded
// defaults, environment variables, an optional YAML file and CLI flags with
// precedence: CLI flags > YAML config > Environment variables > Defaults.
// The resolved BuildConfiguration is a value; callers receive copies and never
// mutate shared state.
package config
