package usecase

import (
	"context"

	"catalog/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// AcronymInput defines the data required to create or replace an acronym.
// The owning user is taken from the authenticated request, never the body.
type AcronymInput struct {
	Short string
	Long  string
}

// AcronymUsecase defines the interface for acronym-related business
// operations, including the category relationship.
type AcronymUsecase interface {
	ListAcronyms(ctx context.Context) ([]*entity.Acronym, error)
	GetAcronym(ctx context.Context, id uuid.UUID) (*entity.Acronym, error)
	// SearchAcronyms matches the term exactly against the short or long form.
	SearchAcronyms(ctx context.Context, term string) ([]*entity.Acronym, error)
	// ListAcronymsSorted returns all acronyms ordered ascending by short form.
	ListAcronymsSorted(ctx context.Context) ([]*entity.Acronym, error)
	// FirstAcronym returns the first acronym in default order.
	FirstAcronym(ctx context.Context) (*entity.Acronym, error)
	// GetAcronymUser returns the owner of an acronym.
	GetAcronymUser(ctx context.Context, id uuid.UUID) (*entity.User, error)

	CreateAcronym(ctx context.Context, userID uuid.UUID, input *AcronymInput) (*entity.Acronym, error)
	// UpdateAcronym replaces the short and long forms and reassigns ownership
	// to the authenticated actor.
	UpdateAcronym(ctx context.Context, id uuid.UUID, userID uuid.UUID, input *AcronymInput) (*entity.Acronym, error)
	DeleteAcronym(ctx context.Context, id uuid.UUID) error

	// ListCategories returns the categories attached to an acronym.
	ListCategories(ctx context.Context, acronymID uuid.UUID) ([]*entity.Category, error)
	// AttachCategory links an acronym and a category. Attaching an already
	// attached pair is not acceptable.
	AttachCategory(ctx context.Context, acronymID, categoryID uuid.UUID) error
	// DetachCategory removes the link between an acronym and a category.
	// Detaching a pair that is not attached is not acceptable.
	DetachCategory(ctx context.Context, acronymID, categoryID uuid.UUID) error
}
