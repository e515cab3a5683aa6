package impl

import (
	"context"
	"testing"

	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/repository"
	"catalog/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// acronymServiceFixtures holds all test dependencies for acronym service tests.
type acronymServiceFixtures struct {
	service    usecase.AcronymUsecase
	acronyms   *MockAcronymRepository
	categories *MockCategoryRepository
	users      *MockUserRepository
}

func createTestAcronymService(t *testing.T) acronymServiceFixtures {
	t.Helper()

	acronyms := new(MockAcronymRepository)
	categories := new(MockCategoryRepository)
	users := new(MockUserRepository)

	factory := &stubRepoFactory{users: users, acronyms: acronyms, categories: categories}
	svc := NewAcronymService(AcronymServiceParams{
		TxManager:   &stubTxManager{factory: factory},
		AcronymRepo: acronyms,
		UserRepo:    users,
		Logger:      newDiscardLogger(),
	})

	return acronymServiceFixtures{
		service:    svc,
		acronyms:   acronyms,
		categories: categories,
		users:      users,
	}
}

func TestAcronymService_CreateAcronym_OwnedByActor(t *testing.T) {
	fx := createTestAcronymService(t)
	ctx := context.Background()
	userID := uuid.New()

	fx.acronyms.On("Create", ctx, mock.MatchedBy(func(a *entity.Acronym) bool {
		return a.Short == "OMG" && a.Long == "Oh My God" && a.UserID == userID
	})).Return(nil)

	acronym, err := fx.service.CreateAcronym(ctx, userID, &usecase.AcronymInput{Short: "OMG", Long: "Oh My God"})

	require.NoError(t, err)
	assert.Equal(t, userID, acronym.UserID)
	fx.acronyms.AssertExpectations(t)
}

func TestAcronymService_UpdateAcronym_ReassignsOwner(t *testing.T) {
	fx := createTestAcronymService(t)
	ctx := context.Background()
	acronymID := uuid.New()
	originalOwner := uuid.New()
	actor := uuid.New()

	fx.acronyms.On("FindByID", ctx, acronymID).Return(&entity.Acronym{
		ID:     acronymID,
		Short:  "OMG",
		Long:   "Oh My God",
		UserID: originalOwner,
	}, nil)
	fx.acronyms.On("Update", ctx, mock.MatchedBy(func(a *entity.Acronym) bool {
		return a.UserID == actor && a.Long == "Oh My Goodness"
	})).Return(nil)

	updated, err := fx.service.UpdateAcronym(ctx, acronymID, actor, &usecase.AcronymInput{Short: "OMG", Long: "Oh My Goodness"})

	require.NoError(t, err)
	assert.Equal(t, actor, updated.UserID)
}

func TestAcronymService_UpdateAcronym_NotFound(t *testing.T) {
	fx := createTestAcronymService(t)
	ctx := context.Background()
	acronymID := uuid.New()

	fx.acronyms.On("FindByID", ctx, acronymID).Return(nil, repository.ErrAcronymNotFound)

	_, err := fx.service.UpdateAcronym(ctx, acronymID, uuid.New(), &usecase.AcronymInput{Short: "X", Long: "Y"})

	assert.ErrorIs(t, err, domainerrors.ErrAcronymNotFound)
}

func TestAcronymService_FirstAcronym_EmptyCatalog(t *testing.T) {
	fx := createTestAcronymService(t)
	ctx := context.Background()

	fx.acronyms.On("FindFirst", ctx).Return(nil, repository.ErrAcronymNotFound)

	_, err := fx.service.FirstAcronym(ctx)

	assert.ErrorIs(t, err, domainerrors.ErrAcronymNotFound)
}

func TestAcronymService_SearchAcronyms(t *testing.T) {
	fx := createTestAcronymService(t)
	ctx := context.Background()
	expected := []*entity.Acronym{{ID: uuid.New(), Short: "OMG", Long: "Oh My God"}}

	fx.acronyms.On("Search", ctx, "OMG").Return(expected, nil)

	got, err := fx.service.SearchAcronyms(ctx, "OMG")

	require.NoError(t, err)
	assert.Equal(t, expected, got)
}

func TestAcronymService_GetAcronymUser(t *testing.T) {
	fx := createTestAcronymService(t)
	ctx := context.Background()
	acronymID := uuid.New()
	ownerID := uuid.New()

	fx.acronyms.On("FindByID", ctx, acronymID).Return(&entity.Acronym{ID: acronymID, UserID: ownerID}, nil)
	fx.users.On("FindByID", ctx, ownerID).Return(&entity.User{ID: ownerID, Username: "alice"}, nil)

	user, err := fx.service.GetAcronymUser(ctx, acronymID)

	require.NoError(t, err)
	assert.Equal(t, ownerID, user.ID)
}

func TestAcronymService_AttachCategory_Success(t *testing.T) {
	fx := createTestAcronymService(t)
	ctx := context.Background()
	acronymID := uuid.New()
	categoryID := uuid.New()

	fx.acronyms.On("FindByID", ctx, acronymID).Return(&entity.Acronym{ID: acronymID}, nil)
	fx.categories.On("FindByID", ctx, categoryID).Return(&entity.Category{ID: categoryID}, nil)
	fx.acronyms.On("FindCategories", ctx, acronymID).Return([]*entity.Category{}, nil)
	fx.acronyms.On("AttachCategory", ctx, acronymID, categoryID).Return(nil)

	require.NoError(t, fx.service.AttachCategory(ctx, acronymID, categoryID))
	fx.acronyms.AssertExpectations(t)
}

func TestAcronymService_AttachCategory_AlreadyAttached(t *testing.T) {
	fx := createTestAcronymService(t)
	ctx := context.Background()
	acronymID := uuid.New()
	categoryID := uuid.New()

	fx.acronyms.On("FindByID", ctx, acronymID).Return(&entity.Acronym{ID: acronymID}, nil)
	fx.categories.On("FindByID", ctx, categoryID).Return(&entity.Category{ID: categoryID}, nil)
	fx.acronyms.On("FindCategories", ctx, acronymID).
		Return([]*entity.Category{{ID: categoryID, Name: "Slang"}}, nil)

	err := fx.service.AttachCategory(ctx, acronymID, categoryID)

	assert.ErrorIs(t, err, domainerrors.ErrCategoryAlreadyAttached)
	fx.acronyms.AssertNotCalled(t, "AttachCategory", ctx, acronymID, categoryID)
}

func TestAcronymService_AttachCategory_RacedDuplicate(t *testing.T) {
	fx := createTestAcronymService(t)
	ctx := context.Background()
	acronymID := uuid.New()
	categoryID := uuid.New()

	fx.acronyms.On("FindByID", ctx, acronymID).Return(&entity.Acronym{ID: acronymID}, nil)
	fx.categories.On("FindByID", ctx, categoryID).Return(&entity.Category{ID: categoryID}, nil)
	fx.acronyms.On("FindCategories", ctx, acronymID).Return([]*entity.Category{}, nil)
	fx.acronyms.On("AttachCategory", ctx, acronymID, categoryID).
		Return(repository.ErrPivotAlreadyExists)

	err := fx.service.AttachCategory(ctx, acronymID, categoryID)

	assert.ErrorIs(t, err, domainerrors.ErrCategoryAlreadyAttached)
}

func TestAcronymService_AttachCategory_MissingCategory(t *testing.T) {
	fx := createTestAcronymService(t)
	ctx := context.Background()
	acronymID := uuid.New()
	categoryID := uuid.New()

	fx.acronyms.On("FindByID", ctx, acronymID).Return(&entity.Acronym{ID: acronymID}, nil)
	fx.categories.On("FindByID", ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	err := fx.service.AttachCategory(ctx, acronymID, categoryID)

	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestAcronymService_DetachCategory_NotAttached(t *testing.T) {
	fx := createTestAcronymService(t)
	ctx := context.Background()
	acronymID := uuid.New()
	categoryID := uuid.New()

	fx.acronyms.On("FindByID", ctx, acronymID).Return(&entity.Acronym{ID: acronymID}, nil)
	fx.categories.On("FindByID", ctx, categoryID).Return(&entity.Category{ID: categoryID}, nil)
	fx.acronyms.On("DetachCategory", ctx, acronymID, categoryID).
		Return(repository.ErrPivotNotFound)

	err := fx.service.DetachCategory(ctx, acronymID, categoryID)

	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotAttached)
}

func TestAcronymService_DetachCategory_Success(t *testing.T) {
	fx := createTestAcronymService(t)
	ctx := context.Background()
	acronymID := uuid.New()
	categoryID := uuid.New()

	fx.acronyms.On("FindByID", ctx, acronymID).Return(&entity.Acronym{ID: acronymID}, nil)
	fx.categories.On("FindByID", ctx, categoryID).Return(&entity.Category{ID: categoryID}, nil)
	fx.acronyms.On("DetachCategory", ctx, acronymID, categoryID).Return(nil)

	require.NoError(t, fx.service.DetachCategory(ctx, acronymID, categoryID))
}
