package amadeus

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/arkapradana/flightdeck/internal/models"
	"github.com/arkapradana/flightdeck/internal/ratelimit"
)

const (
	FlightOffersEndpoint = "/v2/shopping/flight-offers"
	LocationsEndpoint    = "/v1/reference-data/locations"

	// MaxOffers caps the page size requested from the offers endpoint.
	MaxOffers = 50

	// MaxLocations caps the page size of city/airport lookups.
	MaxLocations = 10
)

// TokenSource supplies bearer tokens for outbound requests.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
	Invalidate()
}

// Client is the authenticated request gateway. Every call acquires a
// token, waits for rate-limit budget, and dispatches with a bearer
// header. A 401 triggers exactly one invalidate-refresh-resend cycle
// per logical request; a second 401 is terminal.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	limiter    *ratelimit.EndpointLimiter
}

func NewClient(baseURL string, tokens TokenSource, httpClient *http.Client, limiter *ratelimit.EndpointLimiter) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
		limiter:    limiter,
	}
}

func (c *Client) get(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	// Attempt 0 is the original dispatch, attempt 1 the single retry
	// after a 401-triggered refresh.
	for attempt := 0; attempt < 2; attempt++ {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, err
		}

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx, endpoint); err != nil {
				return nil, err
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+params.Encode(), nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		if resp.StatusCode == http.StatusUnauthorized {
			if attempt == 0 {
				log.WithField("endpoint", endpoint).Warn("got 401, refreshing token and retrying once")
				c.tokens.Invalidate()
				continue
			}
			return nil, ErrRetryExhausted
		}

		if resp.StatusCode != http.StatusOK {
			return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
		}

		return body, nil
	}

	return nil, ErrRetryExhausted
}

// SearchFlightOffers fetches up to MaxOffers offers for the query.
func (c *Client) SearchFlightOffers(ctx context.Context, q models.SearchQuery) ([]models.FlightOffer, error) {
	params := url.Values{}
	params.Set("originLocationCode", q.Origin)
	params.Set("destinationLocationCode", q.Destination)
	params.Set("departureDate", q.DepartureDate)
	params.Set("adults", strconv.Itoa(q.Adults))
	params.Set("max", strconv.Itoa(MaxOffers))

	body, err := c.get(ctx, FlightOffersEndpoint, params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []models.FlightOffer `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}

// SearchLocations looks up cities and airports matching the keyword.
func (c *Client) SearchLocations(ctx context.Context, keyword string) ([]models.City, error) {
	params := url.Values{}
	params.Set("subType", "CITY,AIRPORT")
	params.Set("keyword", keyword)
	params.Set("page[limit]", strconv.Itoa(MaxLocations))

	body, err := c.get(ctx, LocationsEndpoint, params)
	if err != nil {
		return nil, err
	}

	var payload struct {
		Data []models.City `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	return payload.Data, nil
}
