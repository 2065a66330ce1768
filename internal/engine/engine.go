package engine

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/arkapradana/flightdeck/internal/cache"
	"github.com/arkapradana/flightdeck/internal/filter"
	"github.com/arkapradana/flightdeck/internal/models"
	"github.com/arkapradana/flightdeck/internal/ranking"
)

// OffersClient is the slice of the gateway the engine needs.
type OffersClient interface {
	SearchFlightOffers(ctx context.Context, q models.SearchQuery) ([]models.FlightOffer, error)
}

// Engine fetches raw offer sets through the gateway, consulting the
// per-query cache first, and resolves filter state into an ordered,
// annotated view of a result set.
type Engine struct {
	client OffersClient
	cache  cache.Cache
}

type Result struct {
	Query    models.SearchQuery
	Offers   []models.FlightOffer
	CacheHit bool
}

func New(client OffersClient, c cache.Cache) *Engine {
	return &Engine{
		client: client,
		cache:  c,
	}
}

// Search fetches the raw offer set for a query. An incomplete or
// malformed query yields an empty result without touching the network;
// that is a non-dispatch, not an error.
func (e *Engine) Search(ctx context.Context, q models.SearchQuery) (*Result, error) {
	if err := q.Validate(); err != nil {
		log.WithField("reason", err.Error()).Debug("search not dispatched")
		return &Result{Query: q}, nil
	}

	if offers, found := e.cache.Get(ctx, q); found {
		return &Result{Query: q, Offers: offers, CacheHit: true}, nil
	}

	offers, err := e.client.SearchFlightOffers(ctx, q)
	if err != nil {
		return nil, err
	}

	_ = e.cache.Set(ctx, q, offers)

	return &Result{Query: q, Offers: offers}, nil
}

// Resolve applies the filter pipeline and sort to a raw offer set and
// computes the derived stats over the filtered set. Pure function over
// immutable snapshots; stats are nil when the filtered set is empty.
func Resolve(offers []models.FlightOffer, state models.FilterState) ([]models.FlightOffer, *models.FlightStats) {
	filtered := filter.Apply(offers, state)
	return filtered, ranking.Stats(filtered)
}
