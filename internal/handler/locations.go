package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/arkapradana/flightdeck/internal/citysearch"
	"github.com/arkapradana/flightdeck/internal/models"
)

type LocationsHandler struct {
	searcher *citysearch.Searcher
}

func NewLocationsHandler(searcher *citysearch.Searcher) *LocationsHandler {
	return &LocationsHandler{searcher: searcher}
}

// Search answers keyword lookups for the origin/destination pickers.
// Lookup failures degrade to an empty result set.
func (h *LocationsHandler) Search(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	cities := h.searcher.Search(c.Request().Context(), keyword)
	if cities == nil {
		cities = []models.City{}
	}

	return c.JSON(http.StatusOK, models.LocationsResponse{Data: cities})
}
