package interfaces

// PasswordHasher turns account passwords into one-way digests.
type PasswordHasher interface {
	Digest(password string) (string, error)
	Verify(password, digest string) (bool, error)
}
