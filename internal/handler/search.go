package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/arkapradana/flightdeck/internal/amadeus"
	"github.com/arkapradana/flightdeck/internal/engine"
	"github.com/arkapradana/flightdeck/internal/models"
	"github.com/arkapradana/flightdeck/internal/ranking"
	"github.com/arkapradana/flightdeck/internal/trends"
	"github.com/arkapradana/flightdeck/pkg/currency"
)

type SearchHandler struct {
	engine *engine.Engine
}

func NewSearchHandler(eng *engine.Engine) *SearchHandler {
	return &SearchHandler{engine: eng}
}

type SearchRequest struct {
	Query   models.SearchQuery `json:"query"`
	Filters models.FilterState `json:"filters"`
}

func (h *SearchHandler) Search(c echo.Context) error {
	startTime := time.Now()
	ctx := c.Request().Context()

	var req SearchRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	result, err := h.engine.Search(ctx, req.Query)
	if err != nil {
		return searchError(c, err)
	}

	filtered, stats := engine.Resolve(result.Offers, req.Filters)
	trend := trends.Compute(filtered)

	meta := models.SearchMetadata{
		TotalResults: len(filtered),
		CacheHit:     result.CacheHit,
		SearchTimeMs: time.Since(startTime).Milliseconds(),
	}
	if stats != nil {
		meta.LowestPrice = lowestPriceLabel(filtered, stats.CheapestID)
	}

	return c.JSON(http.StatusOK, models.SearchResponse{
		Query:    result.Query,
		Filters:  req.Filters,
		Metadata: meta,
		Offers:   filtered,
		Stats:    stats,
		Trend:    trend,
	})
}

func lowestPriceLabel(offers []models.FlightOffer, cheapestID string) string {
	for _, o := range offers {
		if o.ID == cheapestID {
			return currency.Format(ranking.PriceValue(o), o.Price.Currency)
		}
	}
	return ""
}

func searchError(c echo.Context, err error) error {
	var authErr *amadeus.AuthError
	if errors.As(err, &authErr) || errors.Is(err, amadeus.ErrRetryExhausted) {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "auth_error",
			Message: "Could not authenticate with the flight data service",
			Code:    http.StatusBadGateway,
		})
	}

	var apiErr *amadeus.APIError
	if errors.As(err, &apiErr) {
		// Upstream failure statuses pass through unmodified.
		return c.JSON(apiErr.StatusCode, models.ErrorResponse{
			Error:   "upstream_error",
			Message: "Flight data service returned an error",
			Code:    apiErr.StatusCode,
		})
	}

	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "search_error",
		Message: "Failed to search flights: " + err.Error(),
		Code:    http.StatusInternalServerError,
	})
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
