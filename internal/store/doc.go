// Package store provides file-based persistence for passvault's core data.
//
// It contains concrete implementations of the domain storage interfaces,
// serialising data as JSON on disk. Every write goes to a temp file that is
// renamed over the target, under an exclusive advisory lock on a companion
// ".lock" file, so readers never observe a partial document. Stored files
// live under the configured home directory:
//
//	users.json          account registry (RegistryFileStore)
//	data/<user>.json    one vault per account (VaultFileStore)
//
// Documents are validated on load; a document that does not have the
// expected shape is reported with domain.ErrPersistenceCorrupt, and read or
// write failures with domain.ErrPersistenceIO.
package store
