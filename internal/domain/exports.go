package domain

import (
	interfaces "passvault/internal/domain/interfaces"
	types "passvault/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username       = types.Username
	ServiceName    = types.ServiceName
	Account        = types.Account
	Registry       = types.Registry
	EntryRecord    = types.EntryRecord
	Entries        = types.Entries
	VaultDocument  = types.VaultDocument
	Session        = types.Session
	ExportDocument = types.ExportDocument
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	RegistryStore    = interfaces.RegistryStore
	VaultStore       = interfaces.VaultStore
	DocumentWriter   = interfaces.DocumentWriter
	PasswordHasher   = interfaces.PasswordHasher
	AccountDirectory = interfaces.AccountDirectory
	UserRegistry     = interfaces.UserRegistry
	VaultService     = interfaces.VaultService
)

// NewVaultDocument returns an empty vault document.
func NewVaultDocument() VaultDocument { return types.NewVaultDocument() }
