package config

import (
	"encoding/json"
	"maps"
	"slices"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// BuildConfiguration is the settings record consumed by the external toolchain.
type BuildConfiguration struct {
	CompilerVersion string             `json:"compilerVersion" yaml:"solidity"`
	Networks        map[string]Network `json:"networks" yaml:"networks"`
}

// Network is a named endpoint for a remote ledger instance.
// A zero Timeout leaves the toolchain default in place.
type Network struct {
	URL     string        `yaml:"url"`
	ChainID int64         `yaml:"chainId"`
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

type networkJSON struct {
	URL       string `json:"url"`
	ChainID   int64  `json:"chainId"`
	TimeoutMs int64  `json:"timeout,omitempty"`
}

// MarshalJSON renders the descriptor the way JavaScript toolchains expect it,
// with the timeout expressed in milliseconds.
func (n Network) MarshalJSON() ([]byte, error) {
	return json.Marshal(networkJSON{
		URL:       n.URL,
		ChainID:   n.ChainID,
		TimeoutMs: n.Timeout.Milliseconds(),
	})
}

// Clone returns a deep copy whose networks map is never nil.
func (c BuildConfiguration) Clone() BuildConfiguration {
	out := BuildConfiguration{
		CompilerVersion: c.CompilerVersion,
		Networks:        make(map[string]Network, len(c.Networks)),
	}
	maps.Copy(out.Networks, c.Networks)
	return out
}

// Equal reports structural equality. A nil networks map equals an empty one.
func (c BuildConfiguration) Equal(other BuildConfiguration) bool {
	if c.CompilerVersion != other.CompilerVersion {
		return false
	}
	return cmp.Equal(c.Networks, other.Networks, cmpopts.EquateEmpty())
}

// NetworkNames returns the configured network names in sorted order.
func (c BuildConfiguration) NetworkNames() []string {
	return slices.Sorted(maps.Keys(c.Networks))
}
