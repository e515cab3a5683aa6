package impl

import (
	"context"
	"fmt"
	"log/slog"

	deliverycontext "catalog/internal/delivery/context"
	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/repository"
	"catalog/internal/domain/service"
	"catalog/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// oauthService implements the OAuthUsecase interface. It is provider-agnostic;
// the concrete Google and GitHub providers are injected by name.
type oauthService struct {
	txManager    repository.TransactionManager
	hasher       service.PasswordHasher
	tokenService service.TokenService
	stateSigner  service.StateSigner
	providers    map[entity.ProviderType]service.OAuthProvider
	logger       *slog.Logger
}

// OAuthServiceParams holds dependencies for OAuthService, injected by Fx.
// The provider fields may be nil when the matching config section is absent.
type OAuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	StateSigner  service.StateSigner
	Google       service.OAuthProvider `name:"googleOAuth" optional:"true"`
	GitHub       service.OAuthProvider `name:"githubOAuth" optional:"true"`
	Logger       *slog.Logger
}

// NewOAuthService is the constructor for oauthService.
func NewOAuthService(params OAuthServiceParams) usecase.OAuthUsecase {
	providers := make(map[entity.ProviderType]service.OAuthProvider)
	if params.Google != nil {
		providers[entity.ProviderTypeGoogle] = params.Google
	}
	if params.GitHub != nil {
		providers[entity.ProviderTypeGitHub] = params.GitHub
	}

	return &oauthService{
		txManager:    params.TxManager,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		stateSigner:  params.StateSigner,
		providers:    providers,
		logger:       params.Logger,
	}
}

func (srv *oauthService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// provider resolves a configured provider by type.
func (srv *oauthService) provider(providerType entity.ProviderType) (service.OAuthProvider, error) {
	provider, ok := srv.providers[providerType]
	if !ok {
		return nil, domainerrors.ErrNotFound.WrapMessage(fmt.Sprintf("oauth provider %q is not configured", providerType))
	}

	return provider, nil
}

// BeginLogin returns the provider authorization URL with a signed state
// parameter binding the client type.
func (srv *oauthService) BeginLogin(ctx context.Context, providerType entity.ProviderType, client service.ClientType) (string, error) {
	provider, err := srv.provider(providerType)
	if err != nil {
		return "", err
	}

	state, err := srv.stateSigner.Sign(client)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign oauth state")
	}

	srv.log(ctx).Info("Starting OAuth login", slog.String("provider", providerType), slog.String("client", string(client)))

	return provider.AuthorizationURL(state), nil
}

// CompleteLogin verifies the state, exchanges the code for a provider profile,
// upserts the matching local user and issues an API token.
func (srv *oauthService) CompleteLogin(ctx context.Context, providerType entity.ProviderType, code, state string) (*usecase.CompleteLoginOutput, error) {
	provider, err := srv.provider(providerType)
	if err != nil {
		return nil, err
	}

	client, err := srv.stateSigner.Verify(state)
	if err != nil {
		srv.log(ctx).Warn("OAuth state rejected", slog.String("provider", providerType), slog.Any("error", err))

		return nil, err
	}

	oauthUser, err := provider.Exchange(ctx, code)
	if err != nil {
		srv.log(ctx).Warn("OAuth code exchange failed", slog.String("provider", providerType), slog.Any("error", err))

		return nil, domainerrors.ErrOAuthFailed.WrapMessage("code exchange or profile fetch failed")
	}

	var token *entity.Token
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		// The provider identity doubles as the local username: email for
		// Google, login handle for GitHub.
		user, err := userRepo.FindByUsername(ctx, oauthUser.Identity)
		if errors.Is(err, repository.ErrUserNotFound) {
			user, err = srv.createOAuthUser(ctx, userRepo, oauthUser)
		}
		if err != nil {
			return err
		}

		value, valueHash, err := srv.tokenService.Generate()
		if err != nil {
			return errors.Wrap(err, "failed to generate token")
		}

		token = &entity.Token{
			ID:        uuid.New(),
			Value:     value,
			ValueHash: valueHash,
			UserID:    user.ID,
		}

		return repoFactory.TokenRepo().Create(ctx, token)
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("OAuth login completed", slog.String("provider", providerType), slog.Any("userID", token.UserID))

	return &usecase.CompleteLoginOutput{Token: token, Client: client}, nil
}

// createOAuthUser provisions the local account for a first social login. The
// password is an unguessable throwaway; the account is only usable via OAuth.
func (srv *oauthService) createOAuthUser(ctx context.Context, userRepo repository.UserRepository, oauthUser *service.OAuthUser) (*entity.User, error) {
	hash, err := srv.hasher.Hash(uuid.New().String())
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash placeholder password")
	}

	email := oauthUser.Identity
	if oauthUser.Provider == entity.ProviderTypeGitHub {
		// GitHub identities are login handles, not addresses. Record the
		// noreply address GitHub publishes for every account.
		email = fmt.Sprintf("%s@users.noreply.github.com", oauthUser.Identity)
	}

	user := &entity.User{
		ID:           uuid.New(),
		Name:         oauthUser.Name,
		Username:     oauthUser.Identity,
		PasswordHash: hash,
		Email:        email,
	}

	if err := userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create oauth user")
	}

	srv.log(ctx).Info("Created user from OAuth login", slog.String("provider", oauthUser.Provider), slog.Any("userID", user.ID))

	return user, nil
}
