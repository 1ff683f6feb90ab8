package config

import (
	"encoding/json"
	"testing"
	"time"
)

func TestEqualTreatsNilAndEmptyNetworksAlike(t *testing.T) {
	t.Parallel()

	a := BuildConfiguration{CompilerVersion: "0.8.26"}
	b := BuildConfiguration{CompilerVersion: "0.8.26", Networks: map[string]Network{}}
	if !a.Equal(b) {
		t.Fatalf("expected nil and empty networks to be equal")
	}

	b.Networks["example"] = Network{URL: "http://host:8545", ChainID: 1337}
	if a.Equal(b) {
		t.Fatalf("expected configs with different networks to differ")
	}
	if a.Equal(BuildConfiguration{CompilerVersion: "0.8.25"}) {
		t.Fatalf("expected configs with different versions to differ")
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	orig := BuildConfiguration{
		CompilerVersion: "0.8.26",
		Networks:        map[string]Network{"example": {URL: "http://host:8545", ChainID: 1337}},
	}
	clone := orig.Clone()
	clone.Networks["other"] = Network{URL: "http://other", ChainID: 2}

	if len(orig.Networks) != 1 {
		t.Fatalf("expected original to be untouched, got %v", orig.Networks)
	}
	if empty := (BuildConfiguration{}).Clone(); empty.Networks == nil {
		t.Fatalf("expected clone of zero value to have non-nil networks")
	}
}

func TestMarshalJSON(t *testing.T) {
	t.Parallel()

	cfg := BuildConfiguration{
		CompilerVersion: "0.8.26",
		Networks: map[string]Network{
			"example": {URL: "http://host:8545", ChainID: 1337},
			"slow":    {URL: "https://rpc.example", ChainID: 5, Timeout: 2 * time.Second},
		},
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	want := `{"compilerVersion":"0.8.26","networks":{"example":{"url":"http://host:8545","chainId":1337},"slow":{"url":"https://rpc.example","chainId":5,"timeout":2000}}}`
	if string(data) != want {
		t.Fatalf("unexpected JSON:\n got %s\nwant %s", data, want)
	}
}

func TestDefaultMatchesEmbeddedFile(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if cfg.CompilerVersion != DefaultCompilerVersion {
		t.Fatalf("expected %s, got %s", DefaultCompilerVersion, cfg.CompilerVersion)
	}
	if cfg.Networks == nil || len(cfg.Networks) != 0 {
		t.Fatalf("expected empty networks, got %v", cfg.Networks)
	}
}

func TestPresetsAreValid(t *testing.T) {
	t.Parallel()

	for _, name := range PresetNames() {
		preset, ok := LookupPreset(name)
		if !ok {
			t.Fatalf("preset %s listed but not found", name)
		}
		if err := validateNetwork(name, preset); err != nil {
			t.Fatalf("preset %s is invalid: %v", name, err)
		}
	}
	if _, ok := LookupPreset("ftganache"); !ok {
		t.Fatalf("expected ftganache preset")
	}
}
