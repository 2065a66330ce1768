package ranking

import (
	"regexp"
	"strconv"

	"github.com/arkapradana/flightdeck/internal/models"
)

// Best-value heuristic weights. Price and minutes are summed raw at
// fixed weights; the score is a ranking device, not a normalized unit.
const (
	PriceWeight    = 0.7
	DurationWeight = 0.3
)

var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?`)

// PriceValue parses the decimal price string of an offer. Unparseable
// totals count as zero.
func PriceValue(o models.FlightOffer) float64 {
	v, err := strconv.ParseFloat(o.Price.Total, 64)
	if err != nil {
		return 0
	}
	return v
}

// DurationMinutes parses the first itinerary's ISO-8601 duration of the
// restricted form PT(nH)?(nM)?. Anything not matching the pattern is
// zero minutes, a deliberate fallback rather than an error.
func DurationMinutes(o models.FlightOffer) int {
	if len(o.Itineraries) == 0 {
		return 0
	}
	return ParseDurationMinutes(o.Itineraries[0].Duration)
}

func ParseDurationMinutes(s string) int {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0
	}
	hours, _ := strconv.Atoi(m[1])
	minutes, _ := strconv.Atoi(m[2])
	return hours*60 + minutes
}

// BestValueScore combines price and duration into one rankable number.
// Lower is better.
func BestValueScore(o models.FlightOffer) float64 {
	return PriceWeight*PriceValue(o) + DurationWeight*float64(DurationMinutes(o))
}

// Stats identifies the cheapest, fastest and best-value offers of a
// filtered set. Ties resolve to the first occurrence. Returns nil for
// an empty set.
func Stats(offers []models.FlightOffer) *models.FlightStats {
	if len(offers) == 0 {
		return nil
	}

	cheapest := findMin(offers, PriceValue)
	fastest := findMin(offers, func(o models.FlightOffer) float64 {
		return float64(DurationMinutes(o))
	})
	bestValue := findMin(offers, BestValueScore)

	return &models.FlightStats{
		CheapestID:  cheapest.ID,
		FastestID:   fastest.ID,
		BestValueID: bestValue.ID,
	}
}

func findMin(offers []models.FlightOffer, score func(models.FlightOffer) float64) models.FlightOffer {
	best := offers[0]
	bestScore := score(best)
	for _, o := range offers[1:] {
		if s := score(o); s < bestScore {
			best = o
			bestScore = s
		}
	}
	return best
}
