package repository

import (
	"context"
	"errors"

	"catalog/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines the standard operations for category persistence.
type CategoryRepository interface {
	// FindByID retrieves a single category by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)

	// FindAll retrieves every category, in default result order.
	FindAll(ctx context.Context) ([]*entity.Category, error)

	// Create persists a new category. Category names are unique.
	Create(ctx context.Context, category *entity.Category) error

	// Delete removes a category. Its pivot rows are removed by cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindAcronyms returns the acronyms tagged with a category, the reverse
	// side of the pivot association.
	FindAcronyms(ctx context.Context, categoryID uuid.UUID) ([]*entity.Acronym, error)
}
