package model

import "time"

// ListingQuery represents the search criteria a user submits. Keyword search
// and filtered search are mutually exclusive: when Keyword is non-empty the
// query builder drops every range/make/model filter.
type ListingQuery struct {
	Make        string `json:"make,omitempty"`
	Model       string `json:"model,omitempty"`
	YearFrom    int    `json:"year_from,omitempty"`
	YearTo      int    `json:"year_to,omitempty"`
	PriceFrom   int    `json:"price_from,omitempty"`
	PriceTo     int    `json:"price_to,omitempty"`
	MileageFrom int    `json:"mileage_from,omitempty"` // kilometers, per vehicle
	MileageTo   int    `json:"mileage_to,omitempty"`   // kilometers, per vehicle
	Keyword     string `json:"keyword,omitempty"`
}

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query ListingQuery `json:"query"`
}

// SearchResponse is the result of a search: either a non-empty Results slice,
// or an empty slice with Reason explaining why.
type SearchResponse struct {
	Results []ListingRecord `json:"results"`
	Count   int             `json:"count"`
	Reason  string          `json:"reason,omitempty"`
	Took    int64           `json:"took_ms"`
}

// SearchLog is one row of the search_logs table.
type SearchLog struct {
	ID             int64     `json:"id" db:"id"`
	Criteria       string    `json:"criteria" db:"criteria"`
	ResultCount    int       `json:"result_count" db:"result_count"`
	Reason         string    `json:"reason" db:"reason"`
	ResponseTimeMs int       `json:"response_time_ms" db:"response_time_ms"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
