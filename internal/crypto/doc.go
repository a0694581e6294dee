// Package crypto implements the one-way password digests used by the
// account registry.
//
// Contents
//
//   - Hasher: produces digests with the configured Scheme and verifies any
//     digest it understands, so registries holding a mix of schemes keep
//     working after the default changes.
//   - SchemeSHA256: unsalted hex SHA-256, 64 characters. The default, and
//     the format every existing registry uses.
//   - SchemeScrypt: salted scrypt, encoded as
//     "scrypt$<N>$<r>$<p>$<salt hex>$<key hex>".
//   - Wipe: best-effort zeroing of password buffers.
//
// # Notes
//
// Comparisons run in constant time.
package crypto
