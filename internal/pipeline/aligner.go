package pipeline

import "carsearch/internal/model"

// Align reconciles the independently ordered signal sequences into records by
// pairing values at the same index. The record count is the minimum length
// over the image/price/title/mileage/stockID sequences; the features and
// details sequences are padded instead, because their natural lengths fall
// short whenever a card has no matching feature or no parseable detail pair.
//
// Known limitation: the Nth occurrence of each signal is assumed to belong to
// the Nth listing card. If any single extraction misses or double-counts one
// card, every later index is misaligned for the rest of the page. The
// card-scoped mode in ExtractCards avoids this and is the default; Align is
// kept for parity with the original scraper behavior.
func Align(s SignalSet) []model.ListingRecord {
	n := minLen(len(s.Images), len(s.Prices), len(s.Titles), len(s.Mileages), len(s.StockIDs))
	if n == 0 {
		return nil
	}

	records := make([]model.ListingRecord, 0, n)
	for i := 0; i < n; i++ {
		features := model.NotAvailable
		if i < len(s.Features) {
			features = s.Features[i]
		}

		details := map[string]string{}
		if i < len(s.Details) {
			details = s.Details[i]
		}

		records = append(records, model.ListingRecord{
			Image:      s.Images[i],
			Price:      s.Prices[i],
			Title:      s.Titles[i],
			Mileage:    s.Mileages[i],
			Features:   features,
			StockID:    s.StockIDs[i],
			Details:    details,
			Mechanical: model.NewMechanicalAttrs(),
		})
	}
	return records
}

func minLen(lengths ...int) int {
	min := lengths[0]
	for _, l := range lengths[1:] {
		if l < min {
			min = l
		}
	}
	return min
}
