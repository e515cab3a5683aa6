package handler

import (
	"log/slog"
	"net/http"

	"catalog/internal/delivery/http/middleware"
	"catalog/internal/delivery/http/response"
	domainerrors "catalog/internal/domain/errors"
	"catalog/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AcronymHandler holds dependencies for acronym-related handlers.
type AcronymHandler struct {
	uc     usecase.AcronymUsecase
	logger *slog.Logger
}

// NewAcronymHandler is the constructor for AcronymHandler, injected by Fx.
func NewAcronymHandler(uc usecase.AcronymUsecase, logger *slog.Logger) *AcronymHandler {
	return &AcronymHandler{uc: uc, logger: logger}
}

type acronymRequest struct {
	Short string `json:"short" validate:"required"`
	Long  string `json:"long" validate:"required"`
}

// List returns every acronym.
func (h *AcronymHandler) List(c echo.Context) error {
	acronyms, err := h.uc.ListAcronyms(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, acronyms, "")
}

// Get returns a single acronym by ID.
func (h *AcronymHandler) Get(c echo.Context) error {
	acronymID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	acronym, err := h.uc.GetAcronym(c.Request().Context(), acronymID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, acronym, "")
}

// Search returns acronyms whose short or long form exactly matches the term.
// A missing term is a bad request.
func (h *AcronymHandler) Search(c echo.Context) error {
	term := c.QueryParam("term")
	if term == "" {
		return domainerrors.ErrBadRequest.WrapMessage("missing search term")
	}

	acronyms, err := h.uc.SearchAcronyms(c.Request().Context(), term)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, acronyms, "")
}

// Sorted returns all acronyms ordered ascending by short form.
func (h *AcronymHandler) Sorted(c echo.Context) error {
	acronyms, err := h.uc.ListAcronymsSorted(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, acronyms, "")
}

// First returns the first acronym, 404 when the catalog is empty.
func (h *AcronymHandler) First(c echo.Context) error {
	acronym, err := h.uc.FirstAcronym(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, acronym, "")
}

// GetUser returns the owner of an acronym in the V1 user shape.
func (h *AcronymHandler) GetUser(c echo.Context) error {
	acronymID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	user, err := h.uc.GetAcronymUser(c.Request().Context(), acronymID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user.Public(), "")
}

// Create persists a new acronym owned by the authenticated user.
func (h *AcronymHandler) Create(c echo.Context) error {
	userID, ok := c.Get(middleware.KeyUserID).(uuid.UUID)
	if !ok {
		return domainerrors.ErrTokenInvalid
	}

	var req acronymRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid acronym input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	acronym, err := h.uc.CreateAcronym(c.Request().Context(), userID, &usecase.AcronymInput{
		Short: req.Short,
		Long:  req.Long,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, acronym, "Acronym created")
}

// Update replaces an acronym's forms and reassigns it to the authenticated user.
func (h *AcronymHandler) Update(c echo.Context) error {
	userID, ok := c.Get(middleware.KeyUserID).(uuid.UUID)
	if !ok {
		return domainerrors.ErrTokenInvalid
	}

	acronymID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	var req acronymRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid acronym input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	acronym, err := h.uc.UpdateAcronym(c.Request().Context(), acronymID, userID, &usecase.AcronymInput{
		Short: req.Short,
		Long:  req.Long,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, acronym, "Acronym updated")
}

// Delete removes an acronym.
func (h *AcronymHandler) Delete(c echo.Context) error {
	acronymID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteAcronym(c.Request().Context(), acronymID); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// ListCategories returns the categories attached to an acronym.
func (h *AcronymHandler) ListCategories(c echo.Context) error {
	acronymID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	categories, err := h.uc.ListCategories(c.Request().Context(), acronymID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "")
}

// AttachCategory links an acronym and a category.
func (h *AcronymHandler) AttachCategory(c echo.Context) error {
	acronymID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	categoryID, err := parseUUIDParam(c, "categoryID")
	if err != nil {
		return err
	}

	if err := h.uc.AttachCategory(c.Request().Context(), acronymID, categoryID); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, nil, "Category attached")
}

// DetachCategory removes the link between an acronym and a category.
func (h *AcronymHandler) DetachCategory(c echo.Context) error {
	acronymID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}
	categoryID, err := parseUUIDParam(c, "categoryID")
	if err != nil {
		return err
	}

	if err := h.uc.DetachCategory(c.Request().Context(), acronymID, categoryID); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
