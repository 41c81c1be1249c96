package model

// NotAvailable is the sentinel used wherever the marketplace document lacks a
// field. Every field of a ListingRecord carries either a real value or this
// sentinel; consumers never see a null field.
const NotAvailable = "N/A"

// ListingRecord represents one normalized vehicle listing extracted from a
// marketplace results document.
type ListingRecord struct {
	Image      string            `json:"image"`
	Title      string            `json:"title"`
	Price      string            `json:"price"`
	Mileage    string            `json:"mileage"`
	Features   string            `json:"features"`
	StockID    string            `json:"stock_id"`
	Details    map[string]string `json:"details"`
	Mechanical MechanicalAttrs   `json:"mechanical"`
}

// MechanicalAttrs holds per-listing mechanical data merged from the page's
// inline application-state blob. Fields stay at the sentinel when the blob is
// absent or does not cover the listing.
type MechanicalAttrs struct {
	Engine       string `json:"engine"`
	Transmission string `json:"transmission"`
	Fuel         string `json:"fuel"`
	Color        string `json:"color"`
}

// NewMechanicalAttrs returns attributes with every field set to the sentinel.
func NewMechanicalAttrs() MechanicalAttrs {
	return MechanicalAttrs{
		Engine:       NotAvailable,
		Transmission: NotAvailable,
		Fuel:         NotAvailable,
		Color:        NotAvailable,
	}
}
