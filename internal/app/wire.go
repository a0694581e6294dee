package app

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"passvault/internal/crypto"
	"passvault/internal/domain"
	registrysvc "passvault/internal/services/registry"
	vaultsvc "passvault/internal/services/vault"
	"passvault/internal/store"
)

// Wire bundles all stores and services for the CLI.
type Wire struct {
	Registry domain.UserRegistry
	Vault    domain.VaultService
	Hasher   *crypto.Hasher
}

// NewWire constructs the dependency graph from cfg and loads the registry.
func NewWire(cfg Config, log *zap.Logger) (*Wire, error) {
	hasher, err := crypto.NewHasher(
		crypto.Scheme(cfg.Hash.Scheme),
		crypto.WithScryptCost(cfg.Hash.ScryptN),
	)
	if err != nil {
		return nil, errors.Wrap(err, "password hasher")
	}

	// File-based stores
	registryStore := store.NewRegistryFileStore(cfg.Home)
	vaultStore := store.NewVaultFileStore(cfg.Home)

	// High-level services
	registry := registrysvc.New(registryStore, vaultStore, hasher, log)
	if err := registry.Load(); err != nil {
		return nil, err
	}
	vault := vaultsvc.New(registry, vaultStore, store.DocumentFileWriter{}, log)

	return &Wire{
		Registry: registry,
		Vault:    vault,
		Hasher:   hasher,
	}, nil
}
