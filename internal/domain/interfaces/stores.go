package interfaces

import domaintypes "passvault/internal/domain/types"

// RegistryStore persists the account registry as a single document.
type RegistryStore interface {
	// LoadRegistry reports found=false when no registry document exists yet.
	LoadRegistry() (registry domaintypes.Registry, found bool, err error)
	SaveRegistry(registry domaintypes.Registry) error
	// QuarantineRegistry moves a malformed registry document aside and
	// returns where it went.
	QuarantineRegistry() (string, error)
}

// VaultStore persists one vault document per user.
type VaultStore interface {
	CreateVault(username domaintypes.Username) (created bool, err error)
	LoadVault(username domaintypes.Username) (domaintypes.VaultDocument, error)
	// UpdateVault runs a locked read-modify-write. If mutate returns an
	// error nothing is written.
	UpdateVault(
		username domaintypes.Username,
		mutate func(doc *domaintypes.VaultDocument) error,
	) error
	DeleteVault(username domaintypes.Username) (existed bool, err error)
}

// DocumentWriter writes a standalone document, such as an export, to path.
type DocumentWriter interface {
	WriteDocument(path string, v any) error
}
