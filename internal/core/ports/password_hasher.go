package ports

// PasswordHasher derives and checks salted one-way password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify never fails loudly: malformed or foreign hashes report false.
	Verify(plaintext, hash string) bool
}
