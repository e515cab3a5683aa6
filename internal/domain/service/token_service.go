package service

// TokenService defines the interface for minting opaque bearer values.
// Tokens are unguessable random strings; the store keeps only a digest of the
// value, so the raw value must be handed to the caller at generation time.
type TokenService interface {
	// Generate returns a fresh opaque bearer value and its storage digest.
	Generate() (value string, valueHash string, err error)

	// HashValue computes the storage digest for a presented bearer value.
	HashValue(value string) string
}
