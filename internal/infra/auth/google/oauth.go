// Package google implements the OAuth authorization-code flow against Google.
package google

import (
	"context"
	"encoding/json"
	"net/http"

	"catalog/config"
	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/service"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	oauthgoogle "golang.org/x/oauth2/google"
)

// userInfoURL returns the profile of the token's owner.
const userInfoURL = "https://www.googleapis.com/oauth2/v1/userinfo?alt=json"

// userInfo is the slice of Google's userinfo response the upsert flow needs.
type userInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type oauthProvider struct {
	conf *oauth2.Config
}

// NewOAuthProvider is the constructor for the Google OAuth provider.
// It fails when the provider section is only partially configured, so a
// missing callback URL is a startup error rather than a request-time panic.
func NewOAuthProvider(cfg *config.Config) (service.OAuthProvider, error) {
	pc := cfg.GoogleOAuth
	if pc == nil {
		return nil, nil // Google login is optional.
	}
	if pc.ClientID == "" || pc.ClientSecret == "" || pc.CallbackURL == "" {
		return nil, errors.New("google oauth requires clientId, clientSecret and callbackUrl")
	}

	return &oauthProvider{
		conf: &oauth2.Config{
			ClientID:     pc.ClientID,
			ClientSecret: pc.ClientSecret,
			RedirectURL:  pc.CallbackURL,
			Scopes:       []string{"profile", "email"},
			Endpoint:     oauthgoogle.Endpoint,
		},
	}, nil
}

// AuthorizationURL returns the Google consent page URL for the given state.
func (p *oauthProvider) AuthorizationURL(state string) string {
	return p.conf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for the Google profile. The stable
// identity used for local lookup is the account email.
func (p *oauthProvider) Exchange(ctx context.Context, code string) (*service.OAuthUser, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, domainerrors.ErrOAuthFailed.WrapMessage("google code exchange failed")
	}

	resp, err := p.conf.Client(ctx, token).Get(userInfoURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch google userinfo")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.ErrOAuthFailed.WrapMessage("google userinfo request rejected")
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, errors.Wrap(err, "failed to decode google userinfo")
	}
	if info.Email == "" {
		return nil, domainerrors.ErrOAuthFailed.WrapMessage("google userinfo is missing email")
	}

	return &service.OAuthUser{
		Identity: info.Email,
		Name:     info.Name,
		Provider: entity.ProviderTypeGoogle,
	}, nil
}

// Provider returns the provider type.
func (p *oauthProvider) Provider() entity.ProviderType {
	return entity.ProviderTypeGoogle
}
