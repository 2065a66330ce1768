package trends

import (
	"sort"
	"time"

	"github.com/arkapradana/flightdeck/internal/models"
	"github.com/arkapradana/flightdeck/internal/ranking"
)

// Compute buckets offers by first-segment departure time and reduces
// each bucket to its minimum price. When every departure falls on one
// calendar day the bucket is the hour, otherwise the day. Points come
// out ascending by bucket time. Fewer than two points is "not
// chartable", a decision left to the consumer.
func Compute(offers []models.FlightOffer) []models.PriceTrendPoint {
	if len(offers) == 0 {
		return nil
	}

	singleDay := allSameDay(offers)

	points := make(map[string]models.PriceTrendPoint)
	for _, o := range offers {
		at := o.DepartureAt()
		ts, err := parseDepartureTime(at)
		if err != nil {
			continue
		}

		var key string
		if singleDay {
			key = truncate(at, 13) // YYYY-MM-DDTHH
		} else {
			key = truncate(at, 10) // YYYY-MM-DD
		}

		price := ranking.PriceValue(o)
		existing, ok := points[key]
		if ok && existing.Price <= price {
			continue
		}

		points[key] = models.PriceTrendPoint{
			BucketKey:    key,
			Price:        price,
			DisplayLabel: label(ts, singleDay),
			SortKey:      ts.UnixMilli(),
		}
	}

	series := make([]models.PriceTrendPoint, 0, len(points))
	for _, p := range points {
		series = append(series, p)
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].SortKey < series[j].SortKey
	})

	return series
}

func allSameDay(offers []models.FlightOffer) bool {
	days := make(map[string]struct{})
	for _, o := range offers {
		if at := o.DepartureAt(); at != "" {
			days[truncate(at, 10)] = struct{}{}
		}
	}
	return len(days) <= 1
}

func label(ts time.Time, singleDay bool) string {
	if singleDay {
		return ts.Format("15:04")
	}
	return ts.Format("Jan 2")
}

func truncate(s string, n int) string {
	if len(s) < n {
		return s
	}
	return s[:n]
}

var departureFormats = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseDepartureTime accepts the handful of timestamp shapes the offers
// feed produces, with and without zone offsets.
func parseDepartureTime(s string) (time.Time, error) {
	var lastErr error
	for _, format := range departureFormats {
		t, err := time.Parse(format, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
