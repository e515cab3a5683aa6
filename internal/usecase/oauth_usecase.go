package usecase

import (
	"context"

	"catalog/internal/domain/entity"
	"catalog/internal/domain/service"
)

// CompleteLoginOutput is the result of a finished OAuth handshake: the issued
// API token and the client type recovered from the signed state parameter,
// which decides where the callback redirects.
type CompleteLoginOutput struct {
	Token  *entity.Token
	Client service.ClientType
}

// OAuthUsecase drives the authorization-code flow against the configured
// external providers.
type OAuthUsecase interface {
	// BeginLogin returns the provider authorization URL carrying a signed
	// state parameter that binds the client type.
	BeginLogin(ctx context.Context, provider entity.ProviderType, client service.ClientType) (string, error)

	// CompleteLogin verifies the state, exchanges the code for a provider
	// profile, upserts the matching local user and issues an API token.
	CompleteLogin(ctx context.Context, provider entity.ProviderType, code, state string) (*CompleteLoginOutput, error)
}
