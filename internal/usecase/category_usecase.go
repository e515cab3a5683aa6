package usecase

import (
	"context"

	"catalog/internal/domain/entity"

	"github.com/google/uuid"
)

// CategoryInput defines the data required to create a category.
type CategoryInput struct {
	Name string
}

// CategoryUsecase defines the interface for category-related business operations.
type CategoryUsecase interface {
	CreateCategory(ctx context.Context, input *CategoryInput) (*entity.Category, error)
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	GetCategory(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id uuid.UUID) error

	// ListAcronyms returns the acronyms tagged with a category.
	ListAcronyms(ctx context.Context, categoryID uuid.UUID) ([]*entity.Acronym, error)
}
