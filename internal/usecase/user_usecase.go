// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"catalog/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// RegisterUserInput defines the data required to register a new user.
type RegisterUserInput struct {
	Name     string
	Username string
	Password string
	Email    string
}

// LoginInput defines the data required for a user to log in.
// Credentials arrive via HTTP basic auth; the delivery layer decodes them.
type LoginInput struct {
	Username string
	Password string
}

// SignInWithAppleInput carries the Apple identity token presented by the
// client, plus the optional display name Apple only provides on first sign-in.
type SignInWithAppleInput struct {
	IdentityToken string
	Name          *string
}

// --- Output DTOs ---

// LoginOutput returns the freshly issued API token. Token.Value carries the
// raw bearer value; this is the only moment it exists outside the client.
type LoginOutput struct {
	Token *entity.Token
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input *RegisterUserInput) (*entity.User, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	SignInWithApple(ctx context.Context, input *SignInWithAppleInput) (*LoginOutput, error)

	ListUsers(ctx context.Context) ([]*entity.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*entity.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	ListAcronyms(ctx context.Context, userID uuid.UUID) ([]*entity.Acronym, error)

	// UploadProfilePicture stores the raw picture bytes and records the
	// generated filename on the user row.
	UploadProfilePicture(ctx context.Context, userID uuid.UUID, data []byte) (*entity.User, error)
	// GetProfilePicture returns the stored picture bytes for a user.
	GetProfilePicture(ctx context.Context, userID uuid.UUID) ([]byte, error)
}
