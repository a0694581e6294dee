package types

import "slices"

// EntryRecord is a single service credential. The password is kept verbatim.
type EntryRecord struct {
	Username string `json:"username" yaml:"username"`
	Password string `json:"password" yaml:"password"`
}

// Entries maps service names to their credential records.
type Entries map[ServiceName]EntryRecord

// Clone returns a snapshot of e.
func (e Entries) Clone() Entries {
	out := make(Entries, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}

// Names returns the service names in e in sorted order.
func (e Entries) Names() []ServiceName {
	out := make([]ServiceName, 0, len(e))
	for name := range e {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// VaultDocument is the on-disk shape of one user's vault.
type VaultDocument struct {
	Accounts Entries `json:"accounts" validate:"required,dive,keys,required,endkeys"`
}

// NewVaultDocument returns an empty vault.
func NewVaultDocument() VaultDocument {
	return VaultDocument{Accounts: Entries{}}
}
