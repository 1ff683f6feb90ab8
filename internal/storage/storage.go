package storage

import (
	"errors"

	"github.com/eugenenazirov/buildconf/internal/config"
)

// ErrNetworkNotFound indicates the requested network is not configured.
var ErrNetworkNotFound = errors.New("network not found")

// Store provides read access to the resolved build configuration.
type Store interface {
	Configuration() (config.BuildConfiguration, error)
	Network(name string) (config.Network, error)
	NetworkNames() ([]string, error)
}

// MemoryStore keeps one configuration snapshot taken at construction time.
// The snapshot is never written again, so reads need no locking.
type MemoryStore struct {
	snapshot config.BuildConfiguration
}

// NewMemoryStore validates cfg and stores a private copy of it.
func NewMemoryStore(cfg config.BuildConfiguration) (*MemoryStore, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return &MemoryStore{snapshot: cfg.Clone()}, nil
}

// Configuration returns a defensive copy of the snapshot.
func (s *MemoryStore) Configuration() (config.BuildConfiguration, error) {
	return s.snapshot.Clone(), nil
}

// Network returns the named network descriptor.
func (s *MemoryStore) Network(name string) (config.Network, error) {
	network, ok := s.snapshot.Networks[name]
	if !ok {
		return config.Network{}, ErrNetworkNotFound
	}
	return network, nil
}

// NetworkNames returns the configured network names in sorted order.
func (s *MemoryStore) NetworkNames() ([]string, error) {
	return s.snapshot.NetworkNames(), nil
}
