package handler

import (
	"log/slog"
	"net/http"

	"catalog/internal/delivery/http/response"
	"catalog/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// CategoryHandler holds dependencies for category-related handlers.
type CategoryHandler struct {
	uc     usecase.CategoryUsecase
	logger *slog.Logger
}

// NewCategoryHandler is the constructor for CategoryHandler, injected by Fx.
func NewCategoryHandler(uc usecase.CategoryUsecase, logger *slog.Logger) *CategoryHandler {
	return &CategoryHandler{uc: uc, logger: logger}
}

type categoryRequest struct {
	Name string `json:"name" validate:"required"`
}

// Create persists a new category. Duplicate names conflict.
func (h *CategoryHandler) Create(c echo.Context) error {
	var req categoryRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid category input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	category, err := h.uc.CreateCategory(c.Request().Context(), &usecase.CategoryInput{Name: req.Name})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, category, "Category created")
}

// List returns every category.
func (h *CategoryHandler) List(c echo.Context) error {
	categories, err := h.uc.ListCategories(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, categories, "")
}

// Get returns a single category by ID.
func (h *CategoryHandler) Get(c echo.Context) error {
	categoryID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	category, err := h.uc.GetCategory(c.Request().Context(), categoryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, category, "")
}

// Delete removes a category.
func (h *CategoryHandler) Delete(c echo.Context) error {
	categoryID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteCategory(c.Request().Context(), categoryID); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// ListAcronyms returns the acronyms tagged with a category.
func (h *CategoryHandler) ListAcronyms(c echo.Context) error {
	categoryID, err := parseUUIDParam(c, "id")
	if err != nil {
		return err
	}

	acronyms, err := h.uc.ListAcronyms(c.Request().Context(), categoryID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, acronyms, "")
}
