package config

import (
	"maps"
	"slices"
	"time"
)

var presets = map[string]Network{
	"localhost": {
		URL:     "http://127.0.0.1:8545",
		ChainID: 31337,
	},
	"ftganache": {
		URL:     "http://a431184bd3f754da4b95e067b1e81ad4-113731396.eu-west-3.elb.amazonaws.com:8545",
		ChainID: 1337,
		Timeout: 40 * time.Second,
	},
}

// LookupPreset returns a copy of the named network preset.
func LookupPreset(name string) (Network, bool) {
	n, ok := presets[name]
	return n, ok
}

// PresetNames lists the known presets in sorted order.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(presets))
}
