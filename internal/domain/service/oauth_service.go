package service

import (
	"context"

	"catalog/internal/domain/entity"
)

// OAuthUser represents user information obtained from an OAuth provider.
type OAuthUser struct {
	Identity string              // The stable identifier used for local lookup: email for Google, login handle for GitHub.
	Name     string              // The user's display name.
	Provider entity.ProviderType // The OAuth provider (google, github).
}

// OAuthProvider defines the authorization-code flow against one external
// provider: building the authorization URL and exchanging the returned code
// for a verified profile.
type OAuthProvider interface {
	// AuthorizationURL returns the provider URL to redirect the user to.
	// The state parameter is round-tripped through the provider verbatim.
	AuthorizationURL(state string) string

	// Exchange trades the authorization code for the provider profile.
	Exchange(ctx context.Context, code string) (*OAuthUser, error)

	// Provider returns the provider type this instance talks to.
	Provider() entity.ProviderType
}

// ClientType marks which kind of client started an OAuth handshake. It is
// carried inside the signed state parameter and selects the completion
// redirect: a mobile deep link carrying the token, or a same-origin path.
type ClientType string

const (
	// ClientTypeWeb completes the flow with a redirect to "/".
	ClientTypeWeb ClientType = "web"
	// ClientTypeIOS completes the flow with a tilapp:// deep link.
	ClientTypeIOS ClientType = "iOS"
)

// StateSigner mints and verifies the signed, short-lived state parameter
// that replaces server-side session state during the OAuth handshake.
type StateSigner interface {
	// Sign produces a state parameter binding the client type.
	Sign(client ClientType) (string, error)

	// Verify checks the signature and expiry of a state parameter and
	// returns the client type it carries.
	Verify(state string) (ClientType, error)
}

// SIWAUser is the verified content of a Sign-in-with-Apple identity token.
type SIWAUser struct {
	Identifier string // Apple's stable subject identifier.
	Email      string // Email claim. May be empty after the first authorization.
}

// IdentityTokenVerifier verifies a signed Sign-in-with-Apple identity token
// against the configured app bundle identifier.
type IdentityTokenVerifier interface {
	Verify(ctx context.Context, identityToken string) (*SIWAUser, error)
}
