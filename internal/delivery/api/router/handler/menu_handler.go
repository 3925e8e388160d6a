package handler

import (
	"net/http"

	"campuseats/internal/delivery/api/response"
	"campuseats/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// MenuHandler serves the read-only catalog.
type MenuHandler struct {
	catalog usecase.CatalogUsecase
}

// NewMenuHandler is the constructor for MenuHandler, injected by Fx.
func NewMenuHandler(catalog usecase.CatalogUsecase) *MenuHandler {
	return &MenuHandler{catalog: catalog}
}

func (h *MenuHandler) ListMenuItems(c echo.Context) error {
	items, err := h.catalog.ListAll(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, items)
}

// ListByCategory answers unknown categories with an empty list.
func (h *MenuHandler) ListByCategory(c echo.Context) error {
	items, err := h.catalog.ListByCategory(c.Request().Context(), c.Param("category"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, items)
}

func (h *MenuHandler) GetMenuItem(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	item, err := h.catalog.GetByID(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, item)
}

func (h *MenuHandler) ListCategories(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.catalog.Categories())
}
