package impl

import (
	"context"
	"testing"

	"catalog/config"
	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/repository"
	"catalog/internal/domain/service"
	"catalog/internal/usecase"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// userServiceFixtures holds all test dependencies for user service tests.
type userServiceFixtures struct {
	service       usecase.UserUsecase
	users         *MockUserRepository
	acronyms      *MockAcronymRepository
	tokens        *MockTokenRepository
	hasher        *MockPasswordHasher
	tokenService  *MockTokenService
	appleVerifier *MockIdentityTokenVerifier
	pictures      *MockPictureStore
}

func createTestUserService(t *testing.T) userServiceFixtures {
	t.Helper()

	users := new(MockUserRepository)
	acronyms := new(MockAcronymRepository)
	tokens := new(MockTokenRepository)
	hasher := new(MockPasswordHasher)
	tokenService := new(MockTokenService)
	appleVerifier := new(MockIdentityTokenVerifier)
	pictures := new(MockPictureStore)

	factory := &stubRepoFactory{users: users, acronyms: acronyms, tokens: tokens}
	cfg := &config.Config{}
	cfg.Upload.MaxPictureBytes = 1 << 20

	svc := NewUserService(UserServiceParams{
		TxManager:     &stubTxManager{factory: factory},
		UserRepo:      users,
		AcronymRepo:   acronyms,
		Hasher:        hasher,
		TokenService:  tokenService,
		AppleVerifier: appleVerifier,
		Pictures:      pictures,
		Config:        cfg,
		Logger:        newDiscardLogger(),
	})

	return userServiceFixtures{
		service:       svc,
		users:         users,
		acronyms:      acronyms,
		tokens:        tokens,
		hasher:        hasher,
		tokenService:  tokenService,
		appleVerifier: appleVerifier,
		pictures:      pictures,
	}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", "secret123").Return("$2a$12$hash", nil)
	fx.users.On("Create", ctx, mock.AnythingOfType("*entity.User")).Return(nil)

	user, err := fx.service.Register(ctx, &usecase.RegisterUserInput{
		Name:     "Alice Appleseed",
		Username: "alice",
		Password: "secret123",
		Email:    "alice@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "$2a$12$hash", user.PasswordHash)
	assert.NotEqual(t, uuid.Nil, user.ID)
	fx.users.AssertExpectations(t)
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.hasher.On("Hash", "secret123").Return("$2a$12$hash", nil)
	fx.users.On("Create", ctx, mock.AnythingOfType("*entity.User")).
		Return(domainerrors.ErrUserAlreadyExists)

	_, err := fx.service.Register(ctx, &usecase.RegisterUserInput{
		Name:     "Alice Appleseed",
		Username: "alice",
		Password: "secret123",
		Email:    "alice@example.com",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.users.On("FindByUsername", ctx, "alice").Return(&entity.User{
		ID:           userID,
		Username:     "alice",
		PasswordHash: "$2a$12$hash",
	}, nil)
	fx.hasher.On("Check", "secret123", "$2a$12$hash").Return(true)
	fx.tokenService.On("Generate").Return("raw-token", "deadbeef", nil)
	fx.tokens.On("Create", ctx, mock.AnythingOfType("*entity.Token")).Return(nil)

	out, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "secret123"})

	require.NoError(t, err)
	assert.Equal(t, "raw-token", out.Token.Value)
	assert.Equal(t, "deadbeef", out.Token.ValueHash)
	assert.Equal(t, userID, out.Token.UserID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.users.On("FindByUsername", ctx, "alice").Return(&entity.User{
		Username:     "alice",
		PasswordHash: "$2a$12$hash",
	}, nil)
	fx.hasher.On("Check", "wrong", "$2a$12$hash").Return(false)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "wrong"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownUserLooksLikeWrongPassword(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	fx.users.On("FindByUsername", ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "whatever"})

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_SignInWithApple_ExistingUser(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	identifier := "001234.abcd.5678"

	fx.appleVerifier.On("Verify", ctx, "identity-token").
		Return(&service.SIWAUser{Identifier: identifier, Email: ""}, nil)
	fx.users.On("FindBySIWAIdentifier", ctx, identifier).Return(&entity.User{
		ID:             userID,
		SIWAIdentifier: &identifier,
	}, nil)
	fx.tokenService.On("Generate").Return("raw-token", "deadbeef", nil)
	fx.tokens.On("Create", ctx, mock.AnythingOfType("*entity.Token")).Return(nil)

	out, err := fx.service.SignInWithApple(ctx, &usecase.SignInWithAppleInput{IdentityToken: "identity-token"})

	require.NoError(t, err)
	assert.Equal(t, userID, out.Token.UserID)
}

func TestUserService_SignInWithApple_FirstSignInCreatesUser(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	identifier := "001234.abcd.5678"
	name := "Alice Appleseed"

	fx.appleVerifier.On("Verify", ctx, "identity-token").
		Return(&service.SIWAUser{Identifier: identifier, Email: "alice@example.com"}, nil)
	fx.users.On("FindBySIWAIdentifier", ctx, identifier).Return(nil, repository.ErrUserNotFound)
	fx.hasher.On("Hash", mock.AnythingOfType("string")).Return("$2a$12$random", nil)
	fx.users.On("Create", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.Username == "alice@example.com" && u.SIWAIdentifier != nil && *u.SIWAIdentifier == identifier
	})).Return(nil)
	fx.tokenService.On("Generate").Return("raw-token", "deadbeef", nil)
	fx.tokens.On("Create", ctx, mock.AnythingOfType("*entity.Token")).Return(nil)

	out, err := fx.service.SignInWithApple(ctx, &usecase.SignInWithAppleInput{
		IdentityToken: "identity-token",
		Name:          &name,
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out.Token.Value)
	fx.users.AssertExpectations(t)
}

func TestUserService_SignInWithApple_FirstSignInWithoutClaims(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	identifier := "001234.abcd.5678"

	fx.appleVerifier.On("Verify", ctx, "identity-token").
		Return(&service.SIWAUser{Identifier: identifier, Email: ""}, nil)
	fx.users.On("FindBySIWAIdentifier", ctx, identifier).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.SignInWithApple(ctx, &usecase.SignInWithAppleInput{IdentityToken: "identity-token"})

	assert.ErrorIs(t, err, domainerrors.ErrSIWAClaimsMissing)
}

func TestUserService_SignInWithApple_LookupFailureWrapped(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	identifier := "001234.abcd.5678"

	fx.appleVerifier.On("Verify", ctx, "identity-token").
		Return(&service.SIWAUser{Identifier: identifier, Email: "alice@example.com"}, nil)
	fx.users.On("FindBySIWAIdentifier", ctx, identifier).Return(nil, pkgerrors.New("connection reset"))

	_, err := fx.service.SignInWithApple(ctx, &usecase.SignInWithAppleInput{IdentityToken: "identity-token"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to find user by siwa identifier")
}

func TestUserService_SignInWithApple_Unconfigured(t *testing.T) {
	fx := createTestUserService(t)
	svc := fx.service.(*userService)
	svc.appleVerifier = nil

	_, err := svc.SignInWithApple(context.Background(), &usecase.SignInWithAppleInput{IdentityToken: "x"})

	assert.ErrorIs(t, err, domainerrors.ErrInternalError)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.users.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.GetUser(ctx, userID)

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_DeleteUser_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.users.On("Delete", ctx, userID).Return(nil)

	require.NoError(t, fx.service.DeleteUser(ctx, userID))
	fx.users.AssertExpectations(t)
}

func TestUserService_ListAcronyms_UnknownUser(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.users.On("FindByID", ctx, userID).Return(nil, repository.ErrUserNotFound)

	_, err := fx.service.ListAcronyms(ctx, userID)

	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_UploadProfilePicture_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	data := []byte{0xFF, 0xD8, 0xFF}

	fx.users.On("FindByID", ctx, userID).Return(&entity.User{ID: userID, Username: "alice"}, nil)
	fx.pictures.On("Save", ctx, mock.AnythingOfType("string"), data).Return(nil)
	fx.users.On("Update", ctx, mock.MatchedBy(func(u *entity.User) bool {
		return u.ProfilePicture != nil && *u.ProfilePicture != ""
	})).Return(nil)

	user, err := fx.service.UploadProfilePicture(ctx, userID, data)

	require.NoError(t, err)
	require.NotNil(t, user.ProfilePicture)
	assert.Contains(t, *user.ProfilePicture, userID.String())
	assert.Contains(t, *user.ProfilePicture, ".jpg")
}

func TestUserService_UploadProfilePicture_TooLarge(t *testing.T) {
	fx := createTestUserService(t)

	data := make([]byte, (1<<20)+1)
	_, err := fx.service.UploadProfilePicture(context.Background(), uuid.New(), data)

	assert.ErrorIs(t, err, domainerrors.ErrPictureTooLarge)
}

func TestUserService_GetProfilePicture_NoPicture(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.users.On("FindByID", ctx, userID).Return(&entity.User{ID: userID}, nil)

	_, err := fx.service.GetProfilePicture(ctx, userID)

	assert.ErrorIs(t, err, domainerrors.ErrPictureNotFound)
}

func TestUserService_GetProfilePicture_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	userID := uuid.New()
	filename := "pic.jpg"
	data := []byte{0xFF, 0xD8}

	fx.users.On("FindByID", ctx, userID).Return(&entity.User{ID: userID, ProfilePicture: &filename}, nil)
	fx.pictures.On("Load", ctx, filename).Return(data, nil)

	got, err := fx.service.GetProfilePicture(ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, data, got)
}
