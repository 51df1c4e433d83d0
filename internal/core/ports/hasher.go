package ports

// CredentialHasher performs one-way hashing and verification of passwords.
type CredentialHasher interface {
	// Hash returns an opaque, salted hash of plaintext. Two calls with the
	// same plaintext yield different outputs.
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches hash. A structurally invalid
	// hash verifies as false, never as an error.
	Verify(plaintext, hash string) bool
}
