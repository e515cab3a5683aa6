package impl

import (
	"context"
	"io"
	"log/slog"

	"catalog/internal/domain/entity"
	"catalog/internal/domain/repository"
	"catalog/internal/domain/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// Hand-written testify doubles for the repository and service interfaces the
// application services depend on.

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubTxManager runs the transactional callback directly against a fixed
// repository factory. Commit/rollback behavior is the repositories' errors
// bubbling up, which is all the services observe.
type stubTxManager struct {
	factory repository.RepositoryFactory
}

func (m *stubTxManager) Execute(_ context.Context, fn func(repository.RepositoryFactory) error) error {
	return fn(m.factory)
}

// stubRepoFactory hands out the fixture mocks as transaction-bound repos.
type stubRepoFactory struct {
	users      *MockUserRepository
	acronyms   *MockAcronymRepository
	categories *MockCategoryRepository
	tokens     *MockTokenRepository
}

func (f *stubRepoFactory) UserRepo() repository.UserRepository         { return f.users }
func (f *stubRepoFactory) AcronymRepo() repository.AcronymRepository   { return f.acronyms }
func (f *stubRepoFactory) CategoryRepo() repository.CategoryRepository { return f.categories }
func (f *stubRepoFactory) TokenRepo() repository.TokenRepository       { return f.tokens }

// MockUserRepository mocks repository.UserRepository.
type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindBySIWAIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	args := m.Called(ctx, identifier)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]*entity.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

// MockAcronymRepository mocks repository.AcronymRepository.
type MockAcronymRepository struct{ mock.Mock }

func (m *MockAcronymRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Acronym, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Acronym), args.Error(1)
}

func (m *MockAcronymRepository) FindAll(ctx context.Context) ([]*entity.Acronym, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Acronym), args.Error(1)
}

func (m *MockAcronymRepository) Search(ctx context.Context, term string) ([]*entity.Acronym, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Acronym), args.Error(1)
}

func (m *MockAcronymRepository) FindAllSorted(ctx context.Context) ([]*entity.Acronym, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Acronym), args.Error(1)
}

func (m *MockAcronymRepository) FindFirst(ctx context.Context) (*entity.Acronym, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Acronym), args.Error(1)
}

func (m *MockAcronymRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Acronym, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Acronym), args.Error(1)
}

func (m *MockAcronymRepository) Create(ctx context.Context, acronym *entity.Acronym) error {
	return m.Called(ctx, acronym).Error(0)
}

func (m *MockAcronymRepository) Update(ctx context.Context, acronym *entity.Acronym) error {
	return m.Called(ctx, acronym).Error(0)
}

func (m *MockAcronymRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockAcronymRepository) FindCategories(ctx context.Context, acronymID uuid.UUID) ([]*entity.Category, error) {
	args := m.Called(ctx, acronymID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Category), args.Error(1)
}

func (m *MockAcronymRepository) AttachCategory(ctx context.Context, acronymID, categoryID uuid.UUID) error {
	return m.Called(ctx, acronymID, categoryID).Error(0)
}

func (m *MockAcronymRepository) DetachCategory(ctx context.Context, acronymID, categoryID uuid.UUID) error {
	return m.Called(ctx, acronymID, categoryID).Error(0)
}

// MockCategoryRepository mocks repository.CategoryRepository.
type MockCategoryRepository struct{ mock.Mock }

func (m *MockCategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) FindAll(ctx context.Context) ([]*entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *entity.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCategoryRepository) FindAcronyms(ctx context.Context, categoryID uuid.UUID) ([]*entity.Acronym, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Acronym), args.Error(1)
}

// MockTokenRepository mocks repository.TokenRepository.
type MockTokenRepository struct{ mock.Mock }

func (m *MockTokenRepository) Create(ctx context.Context, token *entity.Token) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockTokenRepository) FindByValueHash(ctx context.Context, valueHash string) (*entity.Token, error) {
	args := m.Called(ctx, valueHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Token), args.Error(1)
}

func (m *MockTokenRepository) FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Token, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Token), args.Error(1)
}

// MockPasswordHasher mocks service.PasswordHasher.
type MockPasswordHasher struct{ mock.Mock }

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	args := m.Called(password)

	return args.String(0), args.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

// MockTokenService mocks service.TokenService.
type MockTokenService struct{ mock.Mock }

func (m *MockTokenService) Generate() (string, string, error) {
	args := m.Called()

	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockTokenService) HashValue(value string) string {
	return m.Called(value).String(0)
}

// MockPictureStore mocks service.PictureStore.
type MockPictureStore struct{ mock.Mock }

func (m *MockPictureStore) Save(ctx context.Context, key string, data []byte) error {
	return m.Called(ctx, key, data).Error(0)
}

func (m *MockPictureStore) Load(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}

// MockIdentityTokenVerifier mocks service.IdentityTokenVerifier.
type MockIdentityTokenVerifier struct{ mock.Mock }

func (m *MockIdentityTokenVerifier) Verify(ctx context.Context, identityToken string) (*service.SIWAUser, error) {
	args := m.Called(ctx, identityToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.SIWAUser), args.Error(1)
}

// MockOAuthProvider mocks service.OAuthProvider.
type MockOAuthProvider struct {
	mock.Mock
	providerType entity.ProviderType
}

func (m *MockOAuthProvider) AuthorizationURL(state string) string {
	return m.Called(state).String(0)
}

func (m *MockOAuthProvider) Exchange(ctx context.Context, code string) (*service.OAuthUser, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*service.OAuthUser), args.Error(1)
}

func (m *MockOAuthProvider) Provider() entity.ProviderType {
	return m.providerType
}

// MockStateSigner mocks service.StateSigner.
type MockStateSigner struct{ mock.Mock }

func (m *MockStateSigner) Sign(client service.ClientType) (string, error) {
	args := m.Called(client)

	return args.String(0), args.Error(1)
}

func (m *MockStateSigner) Verify(state string) (service.ClientType, error) {
	args := m.Called(state)

	return args.Get(0).(service.ClientType), args.Error(1)
}
