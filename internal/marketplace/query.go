package marketplace

import (
	"net/url"
	"strconv"

	"carsearch/internal/config"
	"carsearch/internal/model"
)

// The marketplace expresses mileage bounds in thousands of kilometers while
// callers supply plain kilometers. Encode and Decode are exact inverses for
// every bound the marketplace accepts (whole thousands).

// EncodeMileage converts kilometers to the wire unit.
func EncodeMileage(km int) int {
	return km / 1000
}

// DecodeMileage converts the wire unit back to kilometers.
func DecodeMileage(thousands int) int {
	return thousands * 1000
}

// BuildParams translates a ListingQuery into the marketplace's query string.
// Keyword search and filtered search are mutually exclusive: a non-empty
// keyword drops every range/make/model filter. The fixed routing parameters
// are always present.
func BuildParams(q model.ListingQuery, routing config.RoutingRules) url.Values {
	params := url.Values{}
	params.Set("search_box", routing.SearchBox)
	params.Set("sort", routing.Sort)
	params.Set("currency", routing.Currency)
	params.Set("destination", routing.Destination)
	params.Set("shipping", routing.Shipping)

	if q.Keyword != "" {
		params.Set("keyword", q.Keyword)
		return params
	}

	if q.Make != "" {
		params.Set("make", q.Make)
	}
	if q.Model != "" {
		params.Set("model", q.Model)
	}
	setIfPositive(params, "year_f", q.YearFrom)
	setIfPositive(params, "year_t", q.YearTo)
	setIfPositive(params, "price_f", q.PriceFrom)
	setIfPositive(params, "price_t", q.PriceTo)
	setIfPositive(params, "mile_f", EncodeMileage(q.MileageFrom))
	setIfPositive(params, "mile_t", EncodeMileage(q.MileageTo))

	return params
}

func setIfPositive(params url.Values, key string, value int) {
	if value > 0 {
		params.Set(key, strconv.Itoa(value))
	}
}
