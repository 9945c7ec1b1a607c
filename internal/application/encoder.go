package application

// CredentialEncoder hashes plaintext passwords for storage and verifies a
// plaintext candidate against a stored value.
type CredentialEncoder interface {
	Encode(plain string) (string, error)
	Verify(encoded, plain string) bool
}
