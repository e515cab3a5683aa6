package impl

import (
	"context"
	"testing"

	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/repository"
	"catalog/internal/domain/service"
	"catalog/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// oauthServiceFixtures holds all test dependencies for oauth service tests.
type oauthServiceFixtures struct {
	service      usecase.OAuthUsecase
	users        *MockUserRepository
	tokens       *MockTokenRepository
	hasher       *MockPasswordHasher
	tokenService *MockTokenService
	stateSigner  *MockStateSigner
	google       *MockOAuthProvider
	github       *MockOAuthProvider
}

func createTestOAuthService(t *testing.T) oauthServiceFixtures {
	t.Helper()

	users := new(MockUserRepository)
	tokens := new(MockTokenRepository)
	hasher := new(MockPasswordHasher)
	tokenService := new(MockTokenService)
	stateSigner := new(MockStateSigner)
	google := &MockOAuthProvider{providerType: entity.ProviderTypeGoogle}
	github := &MockOAuthProvider{providerType: entity.ProviderTypeGitHub}

	factory := &stubRepoFactory{users: users, tokens: tokens}
	svc := NewOAuthService(OAuthServiceParams{
		TxManager:    &stubTxManager{factory: factory},
		Hasher:       hasher,
		TokenService: tokenService,
		StateSigner:  stateSigner,
		Google:       google,
		GitHub:       github,
		Logger:       newDiscardLogger(),
	})

	return oauthServiceFixtures{
		service:      svc,
		users:        users,
		tokens:       tokens,
		hasher:       hasher,
		tokenService: tokenService,
		stateSigner:  stateSigner,
		google:       google,
		github:       github,
	}
}

func TestOAuthService_BeginLogin_SignsClientType(t *testing.T) {
	fx := createTestOAuthService(t)
	ctx := context.Background()

	fx.stateSigner.On("Sign", service.ClientTypeIOS).Return("signed-state", nil)
	fx.google.On("AuthorizationURL", "signed-state").
		Return("https://accounts.google.com/o/oauth2/auth?state=signed-state")

	url, err := fx.service.BeginLogin(ctx, entity.ProviderTypeGoogle, service.ClientTypeIOS)

	require.NoError(t, err)
	assert.Contains(t, url, "state=signed-state")
}

func TestOAuthService_BeginLogin_UnconfiguredProvider(t *testing.T) {
	fx := createTestOAuthService(t)
	svc := fx.service.(*oauthService)
	delete(svc.providers, entity.ProviderTypeGitHub)

	_, err := svc.BeginLogin(context.Background(), entity.ProviderTypeGitHub, service.ClientTypeWeb)

	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestOAuthService_CompleteLogin_ExistingUser(t *testing.T) {
	fx := createTestOAuthService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.stateSigner.On("Verify", "signed-state").Return(service.ClientTypeWeb, nil)
	fx.google.On("Exchange", ctx, "auth-code").Return(&service.OAuthUser{
		Identity: "alice@example.com",
		Name:     "Alice Appleseed",
		Provider: entity.ProviderTypeGoogle,
	}, nil)
	fx.users.On("FindByUsername", ctx, "alice@example.com").
		Return(&entity.User{ID: userID, Username: "alice@example.com"}, nil)
	fx.tokenService.On("Generate").Return("raw-token", "deadbeef", nil)
	fx.tokens.On("Create", ctx, mock.AnythingOfType("*entity.Token")).Return(nil)

	out, err := fx.service.CompleteLogin(ctx, entity.ProviderTypeGoogle, "auth-code", "signed-state")

	require.NoError(t, err)
	assert.Equal(t, service.ClientTypeWeb, out.Client)
	assert.Equal(t, userID, out.Token.UserID)
	assert.Equal(t, "raw-token", out.Token.Value)
}

func TestOAuthService_CompleteLogin_FirstGitHubLoginCreatesUser(t *testing.T) {
	fx := createTestOAuthService(t)
	ctx := context.Background()

	fx.stateSigner.On("Verify", "signed-state").Return(service.ClientTypeIOS, nil)
	fx.github.On("Exchange", ctx, "auth-code").Return(&service.OAuthUser{
		Identity: "octocat",
		Name:     "The Octocat",
		Provider: entity.ProviderTypeGitHub,
	}, nil)
	fx.users.On("FindByUsername", ctx, "octocat").Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", mock.AnythingOfType("string")).Return("$2a$12$random", nil)
	fx.users.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "octocat" && u.Email == "octocat@users.noreply.github.com"
	})).Return(nil)
	fx.tokenService.On("Generate").Return("raw-token", "deadbeef", nil)
	fx.tokens.On("Create", ctx, mock.AnythingOfType("*entity.Token")).Return(nil)

	out, err := fx.service.CompleteLogin(ctx, entity.ProviderTypeGitHub, "auth-code", "signed-state")

	require.NoError(t, err)
	assert.Equal(t, service.ClientTypeIOS, out.Client)
	fx.users.AssertExpectations(t)
}

func TestOAuthService_CompleteLogin_BadState(t *testing.T) {
	fx := createTestOAuthService(t)
	ctx := context.Background()

	fx.stateSigner.On("Verify", "tampered").
		Return(service.ClientType(""), domainerrors.ErrOAuthStateInvalid)

	_, err := fx.service.CompleteLogin(ctx, entity.ProviderTypeGoogle, "auth-code", "tampered")

	assert.ErrorIs(t, err, domainerrors.ErrOAuthStateInvalid)
	fx.google.AssertNotCalled(t, "Exchange", ctx, "auth-code")
}

func TestOAuthService_CompleteLogin_ExchangeFailure(t *testing.T) {
	fx := createTestOAuthService(t)
	ctx := context.Background()

	fx.stateSigner.On("Verify", "signed-state").Return(service.ClientTypeWeb, nil)
	fx.google.On("Exchange", ctx, "bad-code").Return(nil, errors.New("provider said no"))

	_, err := fx.service.CompleteLogin(ctx, entity.ProviderTypeGoogle, "bad-code", "signed-state")

	assert.ErrorIs(t, err, domainerrors.ErrOAuthFailed)
}
