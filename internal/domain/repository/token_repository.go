package repository

import (
	"context"
	"errors"

	"catalog/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrTokenNotFound is returned when a bearer token is not found.
var ErrTokenNotFound = errors.New("token not found")

// TokenRepository defines the interface for bearer-token persistence.
// A user may hold any number of live tokens; tokens never expire and are
// only removed by cascading user deletion.
type TokenRepository interface {
	// Create persists a newly issued token.
	Create(ctx context.Context, token *entity.Token) error

	// FindByValueHash retrieves a token record by the SHA-256 hash of its
	// presented bearer value.
	FindByValueHash(ctx context.Context, valueHash string) (*entity.Token, error)

	// FindByUserID retrieves all tokens held by a user.
	FindByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Token, error)
}
