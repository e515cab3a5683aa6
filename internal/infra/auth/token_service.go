package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"catalog/internal/domain/service"

	"github.com/pkg/errors"
)

// tokenValueBytes is the entropy of a bearer value before encoding.
const tokenValueBytes = 32

// opaqueTokenService mints random bearer values. The raw value is handed to
// the client once; the repository stores only the SHA-256 digest, so a leaked
// database dump does not leak usable credentials.
type opaqueTokenService struct{}

// NewOpaqueTokenService is the constructor for opaqueTokenService.
func NewOpaqueTokenService() service.TokenService {
	return &opaqueTokenService{}
}

// Generate returns a fresh unguessable bearer value and its storage digest.
func (s *opaqueTokenService) Generate() (string, string, error) {
	buf := make([]byte, tokenValueBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", "", errors.Wrap(err, "failed to read random bytes for token")
	}

	value := base64.RawURLEncoding.EncodeToString(buf)

	return value, s.HashValue(value), nil
}

// HashValue computes the hex-encoded SHA-256 digest of a bearer value.
func (s *opaqueTokenService) HashValue(value string) string {
	sum := sha256.Sum256([]byte(value))

	return hex.EncodeToString(sum[:])
}
