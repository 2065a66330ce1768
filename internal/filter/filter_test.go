package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arkapradana/flightdeck/internal/models"
	"github.com/arkapradana/flightdeck/internal/ranking"
)

func offer(id, total, airline, duration string, segments int) models.FlightOffer {
	segs := make([]models.Segment, segments)
	return models.FlightOffer{
		ID:                     id,
		Price:                  models.Price{Total: total, Currency: "EUR"},
		Itineraries:            []models.Itinerary{{Duration: duration, Segments: segs}},
		ValidatingAirlineCodes: []string{airline},
	}
}

func TestApply_StopsBuckets(t *testing.T) {
	offers := []models.FlightOffer{
		offer("direct", "100", "AF", "PT2H", 1),
		offer("one-stop", "90", "AF", "PT4H", 2),
		offer("two-stops", "80", "AF", "PT8H", 3),
		offer("three-stops", "70", "AF", "PT11H", 4),
	}

	tests := []struct {
		stops   string
		wantIDs []string
	}{
		{models.StopsAny, []string{"three-stops", "two-stops", "one-stop", "direct"}},
		{models.StopsNonStop, []string{"direct"}},
		{models.StopsOne, []string{"one-stop"}},
		{models.StopsTwoPlus, []string{"three-stops", "two-stops"}},
	}

	for _, tt := range tests {
		t.Run(tt.stops, func(t *testing.T) {
			got := Apply(offers, models.FilterState{Stops: tt.stops, SortBy: models.SortCheapest})
			ids := make([]string, 0, len(got))
			for _, o := range got {
				ids = append(ids, o.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestApply_PriceCeilingSoundAndComplete(t *testing.T) {
	offers := []models.FlightOffer{
		offer("a", "99.99", "AF", "PT2H", 1),
		offer("b", "100.00", "AF", "PT2H", 1),
		offer("c", "100.01", "AF", "PT2H", 1),
		offer("d", "250.00", "AF", "PT2H", 1),
	}

	got := Apply(offers, models.FilterState{MaxPrice: 100})

	require.Len(t, got, 2)
	for _, o := range got {
		assert.LessOrEqual(t, ranking.PriceValue(o), 100.0)
	}
	// Every offer at or under the ceiling survives.
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}

func TestApply_AirlineMembershipOnFirstValidatingCode(t *testing.T) {
	mixed := offer("mixed", "100", "AF", "PT2H", 1)
	mixed.ValidatingAirlineCodes = []string{"AF", "KL"}

	offers := []models.FlightOffer{
		mixed,
		offer("klm", "90", "KL", "PT2H", 1),
		offer("iberia", "80", "IB", "PT2H", 1),
	}

	got := Apply(offers, models.FilterState{Airlines: []string{"AF", "IB"}})

	require.Len(t, got, 2)
	assert.Equal(t, "iberia", got[0].ID)
	assert.Equal(t, "mixed", got[1].ID)
}

func TestApply_EmptyAirlineSetKeepsAll(t *testing.T) {
	offers := []models.FlightOffer{
		offer("a", "100", "AF", "PT2H", 1),
		offer("b", "90", "KL", "PT2H", 1),
	}

	got := Apply(offers, models.FilterState{})
	assert.Len(t, got, 2)
}

func TestApply_SortCheapest(t *testing.T) {
	offers := []models.FlightOffer{
		offer("expensive", "300", "AF", "PT1H", 1),
		offer("cheap", "50", "AF", "PT9H", 1),
		offer("middle", "120", "AF", "PT3H", 1),
	}

	got := Apply(offers, models.FilterState{SortBy: models.SortCheapest})

	require.Len(t, got, 3)
	assert.Equal(t, "cheap", got[0].ID)
	assert.Equal(t, "middle", got[1].ID)
	assert.Equal(t, "expensive", got[2].ID)
}

func TestApply_SortFastestIsStable(t *testing.T) {
	offers := []models.FlightOffer{
		offer("slow", "50", "AF", "PT10H", 1),
		offer("fast-a", "300", "AF", "PT2H", 1),
		offer("fast-b", "100", "AF", "PT2H", 1),
	}

	got := Apply(offers, models.FilterState{SortBy: models.SortFastest})

	require.Len(t, got, 3)
	assert.Equal(t, "fast-a", got[0].ID)
	assert.Equal(t, "fast-b", got[1].ID)
	assert.Equal(t, "slow", got[2].ID)
}

func TestApply_AllFiltersBeforeSort(t *testing.T) {
	offers := []models.FlightOffer{
		offer("keep-2", "200", "AF", "PT2H", 1),
		offer("drop-price", "900", "AF", "PT1H", 1),
		offer("keep-1", "100", "AF", "PT5H", 1),
		offer("drop-airline", "50", "KL", "PT1H", 1),
	}

	got := Apply(offers, models.FilterState{
		MaxPrice: 500,
		Airlines: []string{"AF"},
		Stops:    models.StopsNonStop,
		SortBy:   models.SortCheapest,
	})

	require.Len(t, got, 2)
	assert.Equal(t, "keep-1", got[0].ID)
	assert.Equal(t, "keep-2", got[1].ID)
}
