package models

// FlightStats references offers in the current filtered set. It is
// derived state: recomputed whenever the filtered set changes, never
// patched in place.
type FlightStats struct {
	CheapestID  string `json:"cheapest_id"`
	FastestID   string `json:"fastest_id"`
	BestValueID string `json:"best_value_id"`
}

// PriceTrendPoint is one bucket of the minimum-price series. SortKey is
// the bucket timestamp in Unix milliseconds.
type PriceTrendPoint struct {
	BucketKey    string  `json:"bucket_key"`
	Price        float64 `json:"price"`
	DisplayLabel string  `json:"display_label"`
	SortKey      int64   `json:"sort_key"`
}

type SearchMetadata struct {
	TotalResults int    `json:"total_results"`
	CacheHit     bool   `json:"cache_hit"`
	SearchTimeMs int64  `json:"search_time_ms"`
	LowestPrice  string `json:"lowest_price,omitempty"`
}

type SearchResponse struct {
	Query    SearchQuery       `json:"query"`
	Filters  FilterState       `json:"filters"`
	Metadata SearchMetadata    `json:"metadata"`
	Offers   []FlightOffer     `json:"offers"`
	Stats    *FlightStats      `json:"stats,omitempty"`
	Trend    []PriceTrendPoint `json:"trend,omitempty"`
}

type LocationsResponse struct {
	Data []City `json:"data"`
}

type BookmarksResponse struct {
	Count int           `json:"count"`
	Data  []FlightOffer `json:"data"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
