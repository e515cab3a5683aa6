package repository

import (
	"context"
	"errors"

	"catalog/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for acronym and relationship persistence.
var (
	// ErrAcronymNotFound is returned when an acronym is not found.
	ErrAcronymNotFound = errors.New("acronym not found")
	// ErrPivotNotFound is returned when no pivot row exists for a pair.
	ErrPivotNotFound = errors.New("acronym-category pivot not found")
	// ErrPivotAlreadyExists is returned when the store rejects a duplicate
	// pivot row through its unique index. The service layer pre-checks the
	// pair, so this only fires when two attaches race.
	ErrPivotAlreadyExists = errors.New("acronym-category pivot already exists")
)

// AcronymRepository defines the standard operations for acronym persistence,
// including the pivot-table queries of the relationship manager.
type AcronymRepository interface {
	// FindByID retrieves a single acronym by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Acronym, error)

	// FindAll retrieves every acronym, in default result order.
	FindAll(ctx context.Context) ([]*entity.Acronym, error)

	// Search retrieves acronyms whose short or long form exactly matches term.
	Search(ctx context.Context, term string) ([]*entity.Acronym, error)

	// FindAllSorted retrieves every acronym ordered ascending by short form.
	FindAllSorted(ctx context.Context) ([]*entity.Acronym, error)

	// FindFirst returns the first acronym in default result order, or
	// ErrAcronymNotFound when the collection is empty.
	FindFirst(ctx context.Context) (*entity.Acronym, error)

	// FindByUserID retrieves all acronyms owned by a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Acronym, error)

	// Create persists a new acronym.
	Create(ctx context.Context, acronym *entity.Acronym) error

	// Update modifies an existing acronym, replacing its mutable fields.
	Update(ctx context.Context, acronym *entity.Acronym) error

	// Delete removes an acronym. Its pivot rows are removed by cascade.
	Delete(ctx context.Context, id uuid.UUID) error

	// FindCategories returns the categories attached to an acronym.
	// Order is unspecified.
	FindCategories(ctx context.Context, acronymID uuid.UUID) ([]*entity.Category, error)

	// AttachCategory inserts one pivot row for the pair.
	AttachCategory(ctx context.Context, acronymID, categoryID uuid.UUID) error

	// DetachCategory deletes the pivot row for the pair, returning
	// ErrPivotNotFound when no such row exists.
	DetachCategory(ctx context.Context, acronymID, categoryID uuid.UUID) error
}
