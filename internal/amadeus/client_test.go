package amadeus

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkapradana/flightdeck/internal/models"
)

// fakeTokens hands out a fresh token per refresh so the retried request
// is observably re-authenticated.
type fakeTokens struct {
	issued      int
	invalidated int
	err         error
}

func (f *fakeTokens) Token(ctx context.Context) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.issued++
	return fmt.Sprintf("tok-%d", f.issued), nil
}

func (f *fakeTokens) Invalidate() {
	f.invalidated++
}

func TestClient_RetriesOnceAfter401(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		require.Equal(t, "Bearer tok-2", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data":[{"id":"offer-1","price":{"total":"120.00","currency":"EUR"}}]}`))
	}))
	defer srv.Close()

	tokens := &fakeTokens{}
	client := NewClient(srv.URL, tokens, nil, nil)

	offers, err := client.SearchFlightOffers(context.Background(), models.SearchQuery{
		Origin: "MAD", Destination: "LIS", DepartureDate: "2024-06-01", Adults: 1,
	})
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.Equal(t, "offer-1", offers[0].ID)

	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, tokens.invalidated)
	assert.Equal(t, 2, tokens.issued)
}

func TestClient_SecondConsecutive401IsTerminal(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	tokens := &fakeTokens{}
	client := NewClient(srv.URL, tokens, nil, nil)

	_, err := client.SearchFlightOffers(context.Background(), models.SearchQuery{
		Origin: "MAD", Destination: "LIS", DepartureDate: "2024-06-01", Adults: 1,
	})
	assert.ErrorIs(t, err, ErrRetryExhausted)

	// No third attempt.
	assert.Equal(t, 2, calls)
	assert.Equal(t, 1, tokens.invalidated)
}

func TestClient_Non401StatusPassesThrough(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tokens := &fakeTokens{}
	client := NewClient(srv.URL, tokens, nil, nil)

	_, err := client.SearchFlightOffers(context.Background(), models.SearchQuery{
		Origin: "MAD", Destination: "LIS", DepartureDate: "2024-06-01", Adults: 1,
	})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, tokens.invalidated)
}

func TestClient_TokenFailureAbortsRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be dispatched without a token")
	}))
	defer srv.Close()

	wantErr := &AuthError{Err: errors.New("boom")}
	client := NewClient(srv.URL, &fakeTokens{err: wantErr}, nil, nil)

	_, err := client.SearchFlightOffers(context.Background(), models.SearchQuery{
		Origin: "MAD", Destination: "LIS", DepartureDate: "2024-06-01", Adults: 1,
	})

	var authErr *AuthError
	assert.ErrorAs(t, err, &authErr)
}

func TestClient_SearchLocationsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, LocationsEndpoint, r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "CITY,AIRPORT", q.Get("subType"))
		require.Equal(t, "par", q.Get("keyword"))
		require.Equal(t, "10", q.Get("page[limit]"))
		w.Write([]byte(`{"data":[{"id":"CPAR","name":"Paris","iataCode":"PAR","address":{"cityName":"Paris","countryName":"France"}}]}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, &fakeTokens{}, nil, nil)

	cities, err := client.SearchLocations(context.Background(), "par")
	require.NoError(t, err)
	require.Len(t, cities, 1)
	assert.Equal(t, "PAR", cities[0].IATACode)
	assert.Equal(t, "France", cities[0].Address.CountryName)
}
