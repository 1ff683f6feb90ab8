package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"gopkg.in/yaml.v3"

	"github.com/eugenenazirov/buildconf/internal/compiler"
)

const envPrefix = "BUILDCONF_"

var allowedSchemes = map[string]struct{}{
	"http":  {},
	"https": {},
	"ws":    {},
	"wss":   {},
}

// fileConfig represents the YAML configuration file structure.
type fileConfig struct {
	Solidity *string                `yaml:"solidity"`
	Networks map[string]fileNetwork `yaml:"networks"`
}

// fileNetwork represents a single entry of the networks section in YAML.
type fileNetwork struct {
	URL     string `yaml:"url"`
	ChainID int64  `yaml:"chainId"`
	Timeout string `yaml:"timeout"`
}

// envConfig holds the build settings read from BUILDCONF_* variables.
type envConfig struct {
	ConfigFile string `env:"CONFIG"`
	Solidity   string `env:"SOLIDITY"`
}

// CLIOverrides holds command-line flag overrides.
type CLIOverrides struct {
	ConfigFile string
	Solidity   *string
	// Networks holds raw name=url,chainId definitions.
	Networks []string
	Presets  []string
}

// Load resolves the build configuration with precedence:
// CLI flags > YAML config > Environment variables > Defaults
func Load(overrides *CLIOverrides) (BuildConfiguration, error) {
	cfg := Default()

	envCfg, err := loadEnv()
	if err != nil {
		return BuildConfiguration{}, err
	}
	if envCfg.Solidity != "" {
		cfg.CompilerVersion = envCfg.Solidity
	}

	path := envCfg.ConfigFile
	if overrides != nil && overrides.ConfigFile != "" {
		path = overrides.ConfigFile
	}
	if path != "" {
		file, err := loadFromFile(path)
		if err != nil {
			return BuildConfiguration{}, fmt.Errorf("load YAML config: %w", err)
		}
		if err := applyFileConfig(&cfg, file, SourceFile); err != nil {
			return BuildConfiguration{}, err
		}
	}

	if overrides != nil {
		if err := applyCLIOverrides(&cfg, overrides); err != nil {
			return BuildConfiguration{}, err
		}
	}

	if err := Validate(cfg); err != nil {
		return BuildConfiguration{}, err
	}

	return cfg.Clone(), nil
}

// Parse decodes a YAML document on top of the defaults without consulting the
// environment or flags.
func Parse(data []byte) (BuildConfiguration, error) {
	cfg := Default()
	file, err := decodeFile(bytes.NewReader(data), SourceFile)
	if err != nil {
		return BuildConfiguration{}, err
	}
	if err := applyFileConfig(&cfg, file, SourceFile); err != nil {
		return BuildConfiguration{}, err
	}
	if err := Validate(cfg); err != nil {
		return BuildConfiguration{}, err
	}
	return cfg.Clone(), nil
}

func loadEnv() (envConfig, error) {
	var cfg envConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: envPrefix}); err != nil {
		return envConfig{}, parseError(SourceEnv, "", err)
	}
	cfg.ConfigFile = strings.TrimSpace(cfg.ConfigFile)
	cfg.Solidity = strings.TrimSpace(cfg.Solidity)
	return cfg, nil
}

// loadFromFile loads configuration from a YAML file.
func loadFromFile(path string) (*fileConfig, error) {
	path = filepath.Clean(path)

	ext := strings.ToLower(filepath.Ext(path))
	if ext != ".yaml" && ext != ".yml" {
		return nil, parseError(SourceFile, "", fmt.Errorf("unsupported config format %q (only YAML supported)", ext))
	}

	// #nosec G304 -- the path is supplied by the operator via flag or env
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	return decodeFile(bytes.NewReader(data), SourceFile)
}

// decodeFile parses one strict YAML document. An empty document yields an
// empty fileConfig.
func decodeFile(r io.Reader, source Source) (*fileConfig, error) {
	var file fileConfig
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return &fileConfig{}, nil
		}
		if strings.Contains(err.Error(), "not found in type") {
			return nil, parseError(source, "", fmt.Errorf("%w: %v", ErrUnknownConfigField, err))
		}
		return nil, parseError(source, "", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, parseError(source, "", errors.New("config contains multiple documents or trailing content"))
	}

	return &file, nil
}

// applyFileConfig applies a decoded YAML document. A present networks section
// replaces the inherited map entirely.
func applyFileConfig(cfg *BuildConfiguration, file *fileConfig, source Source) error {
	if file.Solidity != nil {
		v := strings.TrimSpace(*file.Solidity)
		if v == "" {
			return parseError(source, "solidity", fmt.Errorf("%w: value is empty", ErrInvalidCompilerVersion))
		}
		cfg.CompilerVersion = v
	}

	if file.Networks == nil {
		return nil
	}

	networks := make(map[string]Network, len(file.Networks))
	for name, raw := range file.Networks {
		network := Network{
			URL:     strings.TrimSpace(raw.URL),
			ChainID: raw.ChainID,
		}
		if raw.Timeout != "" {
			d, err := time.ParseDuration(raw.Timeout)
			if err != nil {
				return parseError(source, "networks."+name+".timeout", err)
			}
			network.Timeout = d
		}
		networks[name] = network
	}
	cfg.Networks = networks

	return nil
}

// applyCLIOverrides applies command-line flag overrides. Presets are applied
// before explicit networks so a --network flag can redefine a preset entry.
func applyCLIOverrides(cfg *BuildConfiguration, overrides *CLIOverrides) error {
	if overrides.Solidity != nil && strings.TrimSpace(*overrides.Solidity) != "" {
		cfg.CompilerVersion = strings.TrimSpace(*overrides.Solidity)
	}

	if len(overrides.Presets) == 0 && len(overrides.Networks) == 0 {
		return nil
	}

	networks := cfg.Clone().Networks
	for _, name := range overrides.Presets {
		preset, ok := LookupPreset(name)
		if !ok {
			return parseError(SourceFlag, "preset", fmt.Errorf("%w: %q", ErrUnknownPreset, name))
		}
		networks[name] = preset
	}

	for _, raw := range overrides.Networks {
		name, network, err := ParseNetworkFlag(raw)
		if err != nil {
			return err
		}
		networks[name] = network
	}
	cfg.Networks = networks

	return nil
}

// ParseNetworkFlag parses a "name=url,chainId" network definition.
func ParseNetworkFlag(raw string) (string, Network, error) {
	name, rest, ok := strings.Cut(strings.TrimSpace(raw), "=")
	if !ok {
		return "", Network{}, parseError(SourceFlag, "network", fmt.Errorf("%w: expected name=url,chainId, got %q", ErrInvalidNetwork, raw))
	}

	idx := strings.LastIndex(rest, ",")
	if idx < 0 {
		return "", Network{}, parseError(SourceFlag, "network", fmt.Errorf("%w: missing chain ID in %q", ErrInvalidNetwork, raw))
	}

	name = strings.TrimSpace(name)
	chainID, err := strconv.ParseInt(strings.TrimSpace(rest[idx+1:]), 10, 64)
	if err != nil {
		return "", Network{}, parseError(SourceFlag, "networks."+name+".chainId", fmt.Errorf("%w: %v", ErrInvalidNetwork, err))
	}

	return name, Network{URL: strings.TrimSpace(rest[:idx]), ChainID: chainID}, nil
}

// Validate checks the resolved configuration. It does not check that the
// compiler version is a published release; that is compiler.Check's job.
func Validate(cfg BuildConfiguration) error {
	if _, err := compiler.ParseVersion(cfg.CompilerVersion); err != nil {
		return parseError(SourceResolved, "solidity", fmt.Errorf("%w: %q", ErrInvalidCompilerVersion, cfg.CompilerVersion))
	}

	for _, name := range cfg.NetworkNames() {
		if err := validateNetwork(name, cfg.Networks[name]); err != nil {
			return err
		}
	}
	return nil
}

func validateNetwork(name string, network Network) error {
	if strings.TrimSpace(name) == "" {
		return parseError(SourceResolved, "networks", fmt.Errorf("%w: network name cannot be empty", ErrInvalidNetwork))
	}

	field := "networks." + name
	if err := validateURL(network.URL); err != nil {
		return parseError(SourceResolved, field+".url", fmt.Errorf("%w: %v", ErrInvalidNetwork, err))
	}
	if network.ChainID <= 0 {
		return parseError(SourceResolved, field+".chainId", fmt.Errorf("%w: chain ID must be positive, got %d", ErrInvalidNetwork, network.ChainID))
	}
	if network.Timeout < 0 {
		return parseError(SourceResolved, field+".timeout", fmt.Errorf("%w: timeout must be >= 0", ErrInvalidNetwork))
	}
	if network.Timeout%time.Millisecond != 0 {
		return parseError(SourceResolved, field+".timeout", fmt.Errorf("%w: timeout %s is not a whole number of milliseconds", ErrInvalidNetwork, network.Timeout))
	}
	return nil
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("url cannot be empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if _, ok := allowedSchemes[strings.ToLower(u.Scheme)]; !ok {
		return fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("url %q has no host", raw)
	}
	if port := u.Port(); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n <= 0 || n > 65535 {
			return fmt.Errorf("url %q has invalid port", raw)
		}
	}
	return nil
}
