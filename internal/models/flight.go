package models

// Wire types for the Amadeus flight-offers API. Offers are immutable
// values received from the remote service and are never mutated locally.

type Price struct {
	Total    string `json:"total"`
	Currency string `json:"currency"`
}

type SegmentPoint struct {
	IATACode string `json:"iataCode"`
	At       string `json:"at"`
}

type Segment struct {
	ID          string       `json:"id"`
	Departure   SegmentPoint `json:"departure"`
	Arrival     SegmentPoint `json:"arrival"`
	CarrierCode string       `json:"carrierCode"`
	Number      string       `json:"number"`
	Duration    string       `json:"duration"`
}

type Itinerary struct {
	Duration string    `json:"duration"`
	Segments []Segment `json:"segments"`
}

type FlightOffer struct {
	ID                     string      `json:"id"`
	Price                  Price       `json:"price"`
	Itineraries            []Itinerary `json:"itineraries"`
	ValidatingAirlineCodes []string    `json:"validatingAirlineCodes"`
}

// Stops returns the stop count of the first itinerary (segments minus one).
func (o FlightOffer) Stops() int {
	if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
		return 0
	}
	return len(o.Itineraries[0].Segments) - 1
}

// ValidatingAirline returns the first validating airline code, or an
// empty string when the offer carries none.
func (o FlightOffer) ValidatingAirline() string {
	if len(o.ValidatingAirlineCodes) == 0 {
		return ""
	}
	return o.ValidatingAirlineCodes[0]
}

// DepartureAt returns the departure timestamp of the first segment of
// the first itinerary, or an empty string when the offer has none.
func (o FlightOffer) DepartureAt() string {
	if len(o.Itineraries) == 0 || len(o.Itineraries[0].Segments) == 0 {
		return ""
	}
	return o.Itineraries[0].Segments[0].Departure.At
}

type CityAddress struct {
	CityName    string `json:"cityName"`
	CountryName string `json:"countryName"`
}

type City struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	IATACode string      `json:"iataCode"`
	Address  CityAddress `json:"address"`
}
