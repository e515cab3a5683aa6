package impl

import (
	"context"
	"log/slog"

	deliverycontext "catalog/internal/delivery/context"
	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/repository"
	"catalog/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// categoryService implements the CategoryUsecase interface.
type categoryService struct {
	txManager    repository.TransactionManager
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

// CategoryServiceParams holds dependencies for CategoryService, injected by Fx.
type CategoryServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	CategoryRepo repository.CategoryRepository
	Logger       *slog.Logger
}

// NewCategoryService is the constructor for categoryService.
func NewCategoryService(params CategoryServiceParams) usecase.CategoryUsecase {
	return &categoryService{
		txManager:    params.TxManager,
		categoryRepo: params.CategoryRepo,
		logger:       params.Logger,
	}
}

func (srv *categoryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateCategory persists a new category with a unique name.
func (srv *categoryService) CreateCategory(ctx context.Context, input *usecase.CategoryInput) (*entity.Category, error) {
	srv.log(ctx).Info("Creating category", slog.String("name", input.Name))

	category := &entity.Category{
		ID:   uuid.New(),
		Name: input.Name,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.CategoryRepo().Create(ctx, category)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to create category", slog.String("name", input.Name), slog.Any("error", err))

		return nil, err
	}

	return category, nil
}

// ListCategories returns every category.
func (srv *categoryService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

// GetCategory returns a single category by ID.
func (srv *categoryService) GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category")
	}

	return category, nil
}

// DeleteCategory removes a category. Pivot rows follow via cascade.
func (srv *categoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	srv.log(ctx).Info("Deleting category", slog.Any("categoryID", id))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.CategoryRepo().Delete(ctx, id)
	})
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return domainerrors.ErrCategoryNotFound
		}

		return errors.Wrap(err, "failed to delete category")
	}

	return nil
}

// ListAcronyms returns the acronyms tagged with a category.
func (srv *categoryService) ListAcronyms(ctx context.Context, categoryID uuid.UUID) ([]*entity.Acronym, error) {
	if _, err := srv.GetCategory(ctx, categoryID); err != nil {
		return nil, err
	}

	acronyms, err := srv.categoryRepo.FindAcronyms(ctx, categoryID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list acronyms for category")
	}

	return acronyms, nil
}
