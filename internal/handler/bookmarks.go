package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arkapradana/flightdeck/internal/bookmarks"
	"github.com/arkapradana/flightdeck/internal/models"
)

type BookmarksHandler struct {
	store bookmarks.Store
}

func NewBookmarksHandler(store bookmarks.Store) *BookmarksHandler {
	return &BookmarksHandler{store: store}
}

func (h *BookmarksHandler) List(c echo.Context) error {
	offers, err := h.store.List(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}
	if offers == nil {
		offers = []models.FlightOffer{}
	}

	return c.JSON(http.StatusOK, models.BookmarksResponse{
		Count: len(offers),
		Data:  offers,
	})
}

func (h *BookmarksHandler) Add(c echo.Context) error {
	var offer models.FlightOffer
	if err := c.Bind(&offer); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	if offer.ID == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "validation_error",
			Message: "offer id is required",
			Code:    http.StatusBadRequest,
		})
	}

	if err := h.store.Add(c.Request().Context(), offer); err != nil {
		return storeError(c, err)
	}

	return c.JSON(http.StatusCreated, map[string]string{"id": offer.ID})
}

func (h *BookmarksHandler) Remove(c echo.Context) error {
	id := c.Param("id")
	if err := h.store.Remove(c.Request().Context(), id); err != nil {
		return storeError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

func storeError(c echo.Context, err error) error {
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "bookmark_error",
		Message: "Bookmark store operation failed: " + err.Error(),
		Code:    http.StatusInternalServerError,
	})
}
