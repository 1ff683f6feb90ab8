package config

import (
	"bytes"
	_ "embed"
	"fmt"
)

// DefaultCompilerVersion is the Solidity release targeted when nothing overrides it.
const DefaultCompilerVersion = "0.8.26"

//go:embed defaults.yaml
var defaultsYAML []byte

// Default returns the built-in configuration: DefaultCompilerVersion and no networks.
func Default() BuildConfiguration {
	cfg, err := decodeDefaults()
	if err != nil {
		panic(fmt.Sprintf("embedded defaults are invalid: %v", err))
	}
	return cfg
}

func decodeDefaults() (BuildConfiguration, error) {
	file, err := decodeFile(bytes.NewReader(defaultsYAML), SourceDefaults)
	if err != nil {
		return BuildConfiguration{}, err
	}
	cfg := BuildConfiguration{Networks: map[string]Network{}}
	if err := applyFileConfig(&cfg, file, SourceDefaults); err != nil {
		return BuildConfiguration{}, err
	}
	if err := Validate(cfg); err != nil {
		return BuildConfiguration{}, err
	}
	return cfg, nil
}
