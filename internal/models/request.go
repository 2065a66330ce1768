package models

import "time"

// Stop buckets accepted by FilterState.Stops.
const (
	StopsAny      = "any"
	StopsNonStop  = "0"
	StopsOne      = "1"
	StopsTwoPlus  = "2+"
	SortCheapest  = "cheapest"
	SortFastest   = "fastest"
	DateLayout    = "2006-01-02"
	DefaultAdults = 1
)

// SearchQuery identifies one flight-offers query. It is immutable once
// submitted and doubles as the cache key for its result set.
type SearchQuery struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	DepartureDate string `json:"departureDate"`
	Adults        int    `json:"adults"`
}

// Validate reports why a query cannot be dispatched. An invalid query
// is not an error path for the caller: the search simply never reaches
// the network.
func (q *SearchQuery) Validate() error {
	if q.Origin == "" {
		return ErrMissingOrigin
	}
	if q.Destination == "" {
		return ErrMissingDestination
	}
	if q.DepartureDate == "" {
		return ErrMissingDepartureDate
	}
	if _, err := time.Parse(DateLayout, q.DepartureDate); err != nil {
		return ErrInvalidDepartureDate
	}
	if q.Adults <= 0 {
		q.Adults = DefaultAdults
	}
	return nil
}

// FilterState is the user-driven filter/sort selection applied on top of
// a raw offer set. MaxPrice <= 0 means no price ceiling.
type FilterState struct {
	MaxPrice float64  `json:"maxPrice"`
	Airlines []string `json:"airlines"`
	Stops    string   `json:"stops"`
	SortBy   string   `json:"sortBy"`
}

func (f *FilterState) Normalize() {
	if f.Stops == "" {
		f.Stops = StopsAny
	}
	if f.SortBy == "" {
		f.SortBy = SortCheapest
	}
}

type ValidationError string

func (e ValidationError) Error() string {
	return string(e)
}

const (
	ErrMissingOrigin        ValidationError = "origin is required"
	ErrMissingDestination   ValidationError = "destination is required"
	ErrMissingDepartureDate ValidationError = "departure date is required"
	ErrInvalidDepartureDate ValidationError = "departure date must be formatted as YYYY-MM-DD"
)
