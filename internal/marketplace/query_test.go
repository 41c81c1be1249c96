package marketplace

import (
	"testing"

	"carsearch/internal/config"
	"carsearch/internal/model"
)

func testRouting() config.RoutingRules {
	return config.DefaultRules().Routing
}

func TestMileageRoundTrip(t *testing.T) {
	tests := []struct {
		km   int
		wire int
	}{
		{50000, 50},
		{1000, 1},
		{120000, 120},
	}

	for _, tt := range tests {
		if got := EncodeMileage(tt.km); got != tt.wire {
			t.Errorf("EncodeMileage(%d) = %d, want %d", tt.km, got, tt.wire)
		}
		if got := DecodeMileage(tt.wire); got != tt.km {
			t.Errorf("DecodeMileage(%d) = %d, want %d", tt.wire, got, tt.km)
		}
	}
}

func TestBuildParams_Filtered(t *testing.T) {
	params := BuildParams(model.ListingQuery{
		Make:        "toyota",
		Model:       "corolla",
		YearFrom:    2012,
		YearTo:      2018,
		PriceFrom:   3000,
		PriceTo:     9000,
		MileageFrom: 10000,
		MileageTo:   50000,
	}, testRouting())

	wants := map[string]string{
		"make":    "toyota",
		"model":   "corolla",
		"year_f":  "2012",
		"year_t":  "2018",
		"price_f": "3000",
		"price_t": "9000",
		"mile_f":  "10", // thousands on the wire
		"mile_t":  "50",
	}
	for key, want := range wants {
		if got := params.Get(key); got != want {
			t.Errorf("params[%s] = %q, want %q", key, got, want)
		}
	}
}

func TestBuildParams_KeywordExcludesFilters(t *testing.T) {
	params := BuildParams(model.ListingQuery{
		Make:      "toyota",
		YearFrom:  2015,
		MileageTo: 50000,
		Keyword:   "land cruiser",
	}, testRouting())

	if got := params.Get("keyword"); got != "land cruiser" {
		t.Errorf("keyword = %q", got)
	}
	for _, key := range []string{"make", "model", "year_f", "year_t", "price_f", "price_t", "mile_f", "mile_t"} {
		if params.Has(key) {
			t.Errorf("params contains %s, keyword search must drop all filters", key)
		}
	}
}

func TestBuildParams_RoutingAlwaysPresent(t *testing.T) {
	for _, query := range []model.ListingQuery{
		{},
		{Keyword: "hiace"},
		{Make: "toyota"},
	} {
		params := BuildParams(query, testRouting())
		for _, key := range []string{"search_box", "sort", "currency", "destination", "shipping"} {
			if !params.Has(key) {
				t.Errorf("params for %+v missing routing constant %s", query, key)
			}
		}
	}
}

func TestBuildParams_ZeroValuesOmitted(t *testing.T) {
	params := BuildParams(model.ListingQuery{Make: "toyota"}, testRouting())

	for _, key := range []string{"year_f", "year_t", "price_f", "price_t", "mile_f", "mile_t", "model", "keyword"} {
		if params.Has(key) {
			t.Errorf("params contains %s for zero-value field", key)
		}
	}
}
