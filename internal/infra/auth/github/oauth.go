// Package github implements the OAuth authorization-code flow against GitHub.
package github

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
	oauthgithub "golang.org/x/oauth2/github"
)

// userAPIURL returns the authenticated user's profile.
const userAPIURL = "https://api.github.com/user"

// userInfo is the slice of GitHub's /user response the upsert flow needs.
// GitHub returns a much larger object; only these fields are unmarshalled.
type userInfo struct {
	Login string `json:"login"`
	Name  string `json:"name"`
}

type oauthProvider struct {
	conf *oauth2.Config
}

// NewOAuthProvider is the constructor for the GitHub OAuth provider.
func NewOAuthProvider(cfg *config.Config) (service.OAuthProvider, error) {
	pc := cfg.GitHubOAuth
	if pc == nil {
		return nil, nil // GitHub login is optional.
	}
	if pc.ClientID == "" || pc.ClientSecret == "" || pc.CallbackURL == "" {
		return nil, errors.New("github oauth requires clientId, clientSecret and callbackUrl")
	}

	return &oauthProvider{
		conf: &oauth2.Config{
			ClientID:     pc.ClientID,
			ClientSecret: pc.ClientSecret,
			RedirectURL:  pc.CallbackURL,
			Scopes:       []string{"read:user"},
			Endpoint:     oauthgithub.Endpoint,
		},
	}, nil
}

// AuthorizationURL returns the GitHub authorization page URL for the given state.
func (p *oauthProvider) AuthorizationURL(state string) string {
	return p.conf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades the authorization code for the GitHub profile. The stable
// identity used for local lookup is the login handle.
func (p *oauthProvider) Exchange(ctx context.Context, code string) (*service.OAuthUser, error) {
	token, err := p.conf.Exchange(ctx, code)
	if err != nil {
		return nil, domainerrors.ErrOAuthFailed.WrapMessage("github code exchange failed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, userAPIURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build github user request")
	}
	req.Header.Set("User-Agent", "catalog")

	resp, err := p.conf.Client(ctx, token).Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch github user")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domainerrors.ErrOAuthFailed.WrapMessage("github user request rejected")
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, errors.Wrap(err, "failed to decode github user")
	}
	if info.Login == "" {
		return nil, domainerrors.ErrOAuthFailed.WrapMessage("github user is missing login")
	}
	if info.Name == "" {
		info.Name = info.Login
	}

	return &service.OAuthUser{
		Identity: info.Login,
		Name:     info.Name,
		Provider: entity.ProviderTypeGitHub,
	}, nil
}

// Provider returns the provider type.
func (p *oauthProvider) Provider() entity.ProviderType {
	return entity.ProviderTypeGitHub
}
