package entity

import (
	"time"

	"github.com/google/uuid"
)

// Token is an opaque bearer credential bound to a user. The raw value is
// returned to the client exactly once at issuance; only its SHA-256 hash is
// persisted. Tokens carry no expiry and die with their owning user.
type Token struct {
	ID        uuid.UUID // The unique ID of this token record.
	Value     string    // The raw bearer value. Populated only on the freshly issued token.
	ValueHash string    // SHA-256 hash of the value, used for lookup and storage.
	UserID    uuid.UUID // The user this token authenticates.
	CreatedAt time.Time // When the token was issued.
}

// ProviderType names a way of establishing a user's identity.
type ProviderType = string

const (
	// ProviderTypePassword is the local username/password credential.
	ProviderTypePassword ProviderType = "password"
	// ProviderTypeGoogle is the Google OAuth code flow.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeGitHub is the GitHub OAuth code flow.
	ProviderTypeGitHub ProviderType = "github"
	// ProviderTypeApple is Sign-in-with-Apple identity-token verification.
	ProviderTypeApple ProviderType = "apple"
)
