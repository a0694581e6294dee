// Package registry manages registered accounts: registration, removal,
// authentication and profile changes.
//
// Passwords are stored as one-way digests produced by a domain.PasswordHasher.
// Successful authentication returns a domain.Session that callers pass to
// the vault service for entry operations.
package registry
