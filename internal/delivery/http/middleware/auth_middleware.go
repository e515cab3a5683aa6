package middleware

import (
	"strings"

	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/domain/repository"
	"catalog/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Context keys set by the authentication middleware.
const (
	// KeyUserID holds the authenticated user's uuid.UUID.
	KeyUserID = "userID"
	// KeyUser holds the authenticated *entity.User.
	KeyUser = "user"
)

// AuthMiddleware authenticates requests by their opaque bearer token.
type AuthMiddleware struct {
	tokenSvc  service.TokenService
	tokenRepo repository.TokenRepository
	userRepo  repository.UserRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(
	tokenSvc service.TokenService,
	tokenRepo repository.TokenRepository,
	userRepo repository.UserRepository,
) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, tokenRepo: tokenRepo, userRepo: userRepo}
}

// Authenticate validates the bearer token and resolves its owning user. The
// presented value is hashed and looked up; invalid and missing tokens fail
// identically.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrTokenInvalid
		}

		tokenValue := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenValue == authHeader || tokenValue == "" {
			return domainerrors.ErrTokenInvalid
		}

		ctx := c.Request().Context()

		token, err := m.tokenRepo.FindByValueHash(ctx, m.tokenSvc.HashValue(tokenValue))
		if err != nil {
			if errors.Is(err, repository.ErrTokenNotFound) {
				return domainerrors.ErrTokenInvalid
			}

			return errors.Wrap(err, "failed to look up token")
		}

		user, err := m.userRepo.FindByID(ctx, token.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrTokenInvalid
			}

			return errors.Wrap(err, "failed to look up token owner")
		}

		c.Set(KeyUserID, user.ID)
		c.Set(KeyUser, user)

		return next(c)
	}
}
