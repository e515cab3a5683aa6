// Package handler contains the HTTP handlers for the application.
package handler

import (
	"io"
	"log/slog"
	"net/http"

	"catalog/config"
	"catalog/internal/delivery/http/middleware"
	"catalog/internal/delivery/http/response"
	"catalog/internal/domain/entity"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc              usecase.UserUsecase
	maxPictureBytes int64
	logger          *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, cfg *config.Config, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:              uc,
		maxPictureBytes: cfg.Upload.MaxPictureBytes,
		logger:          logger,
	}
}

type registerUserRequest struct {
	Name     string `json:"name" validate:"required"`
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
	Email    string `json:"email" validate:"required,email"`
}

type signInWithAppleRequest struct {
	Token string  `json:"token" validate:"required"`
	Name  *string `json:"name"`
}

// tokenResponse is the wire shape of a freshly issued API token. The raw
// value appears here and nowhere else.
type tokenResponse struct {
	ID     uuid.UUID `json:"id"`
	Value  string    `json:"value"`
	UserID uuid.UUID `json:"userID"`
}

func newTokenResponse(token *entity.Token) tokenResponse {
	return tokenResponse{ID: token.ID, Value: token.Value, UserID: token.UserID}
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	user, err := h.uc.Register(c.Request().Context(), &usecase.RegisterUserInput{
		Name:     req.Name,
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, user.Public(), "User registered successfully")
}

// Login handles the login request. Credentials arrive via HTTP basic auth.
func (h *UserHandler) Login(c echo.Context) error {
	username, password, ok := c.Request().BasicAuth()
	if !ok {
		return domainerrors.ErrInvalidCredentials.WrapMessage("basic auth credentials missing")
	}

	out, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: username,
		Password: password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTokenResponse(out.Token), "Login successful")
}

// SignInWithApple handles the Sign-in-with-Apple request.
func (h *UserHandler) SignInWithApple(c echo.Context) error {
	var req signInWithAppleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-in input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	out, err := h.uc.SignInWithApple(c.Request().Context(), &usecase.SignInWithAppleInput{
		IdentityToken: req.Token,
		Name:          req.Name,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTokenResponse(out.Token), "Login successful")
}

// ListUsers returns every registered user in the V1 response shape.
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.uc.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	publicUsers := make([]*entity.PublicUser, 0, len(users))
	for _, user := range users {
		publicUsers = append(publicUsers, user.Public())
	}

	return response.Success(c, http.StatusOK, publicUsers, "")
}

// GetUser returns a single user in the V1 response shape.
func (h *UserHandler) GetUser(c echo.Context) error {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.uc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user.Public(), "")
}

// GetUserV2 returns a single user in the V2 response shape, which adds the
// optional twitter link.
func (h *UserHandler) GetUserV2(c echo.Context) error {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.uc.GetUser(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user.PublicV2(), "")
}

// DeleteUser removes a user and everything the user owns.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteUser(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// ListAcronyms returns the acronyms owned by a user.
func (h *UserHandler) ListAcronyms(c echo.Context) error {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	acronyms, err := h.uc.ListAcronyms(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, acronyms, "")
}

// UploadProfilePicture stores the raw request body as the authenticated
// user's profile picture. The read is bounded to one byte past the size cap,
// so an oversized upload is rejected downstream with the usual error envelope
// without buffering the whole body.
func (h *UserHandler) UploadProfilePicture(c echo.Context) error {
	userID, ok := c.Get(middleware.KeyUserID).(uuid.UUID)
	if !ok {
		return domainerrors.ErrTokenInvalid
	}

	var body io.Reader = c.Request().Body
	if h.maxPictureBytes > 0 {
		body = io.LimitReader(body, h.maxPictureBytes+1)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Failed to read picture body")
	}

	user, err := h.uc.UploadProfilePicture(c.Request().Context(), userID, data)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user.Public(), "Profile picture stored")
}

// GetProfilePicture streams the stored picture bytes.
func (h *UserHandler) GetProfilePicture(c echo.Context) error {
	userID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	data, err := h.uc.GetProfilePicture(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/jpeg", data)
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// parseUUIDParam parses a uuid path parameter, rejecting malformed values.
func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, domainerrors.ErrBadRequest.WrapMessage("malformed " + name + " parameter")
	}

	return id, nil
}
