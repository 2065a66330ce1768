package filter

import (
	"sort"

	"github.com/arkapradana/flightdeck/internal/models"
	"github.com/arkapradana/flightdeck/internal/ranking"
)

// Apply runs the filter pipeline (stops, price ceiling, airline
// membership) and then stable-sorts by the selected criterion. All
// filters apply before the sort.
func Apply(offers []models.FlightOffer, state models.FilterState) []models.FlightOffer {
	state.Normalize()

	result := make([]models.FlightOffer, 0, len(offers))
	airlines := airlineSet(state.Airlines)

	for _, o := range offers {
		if !matchesStops(o, state.Stops) {
			continue
		}
		if state.MaxPrice > 0 && ranking.PriceValue(o) > state.MaxPrice {
			continue
		}
		if len(airlines) > 0 && !airlines[o.ValidatingAirline()] {
			continue
		}
		result = append(result, o)
	}

	applySort(result, state.SortBy)

	return result
}

func matchesStops(o models.FlightOffer, bucket string) bool {
	stops := o.Stops()
	switch bucket {
	case models.StopsNonStop:
		return stops == 0
	case models.StopsOne:
		return stops == 1
	case models.StopsTwoPlus:
		return stops >= 2
	default:
		return true
	}
}

func airlineSet(codes []string) map[string]bool {
	if len(codes) == 0 {
		return nil
	}
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}

func applySort(offers []models.FlightOffer, sortBy string) {
	switch sortBy {
	case models.SortFastest:
		sort.SliceStable(offers, func(i, j int) bool {
			return ranking.DurationMinutes(offers[i]) < ranking.DurationMinutes(offers[j])
		})
	default:
		sort.SliceStable(offers, func(i, j int) bool {
			return ranking.PriceValue(offers[i]) < ranking.PriceValue(offers[j])
		})
	}
}
