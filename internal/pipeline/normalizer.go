package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"carsearch/internal/model"
)

// Normalize applies currency conversion, feature deduplication and detail
// trimming to one record. It runs uniformly over DOM-derived and
// fallback-derived records.
func (p *Pipeline) Normalize(rec model.ListingRecord) model.ListingRecord {
	rec.Price = p.normalizePrice(rec.Price)
	// Mileage is deliberately passed through verbatim: the source unit is
	// ambiguous and is not resolved here.
	rec.Features = dedupeFeatures(rec.Features)
	rec.Details = trimDetails(rec.Details)

	if strings.TrimSpace(rec.Image) == "" {
		rec.Image = model.NotAvailable
	}
	if strings.TrimSpace(rec.Title) == "" {
		rec.Title = model.NotAvailable
	}
	if strings.TrimSpace(rec.Mileage) == "" {
		rec.Mileage = model.NotAvailable
	}
	if strings.TrimSpace(rec.StockID) == "" {
		rec.StockID = model.NotAvailable
	}
	if rec.Details == nil {
		rec.Details = map[string]string{}
	}
	return rec
}

// normalizePrice converts a source-currency price string to the target
// currency. Already-tagged prices (the fallback path converts during parsing)
// pass through untouched, which also makes re-application a no-op. Strings
// that carry no parseable source-currency amount are left verbatim.
func (p *Pipeline) normalizePrice(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return model.NotAvailable
	}
	if strings.HasSuffix(trimmed, p.rules.Currency.Target) {
		return trimmed
	}
	if !strings.Contains(trimmed, p.rules.Currency.Source) {
		return trimmed
	}

	cleaned := strings.NewReplacer(
		"US$", "",
		p.rules.Currency.Source, "",
		"$", "",
		",", "",
	).Replace(trimmed)
	amount, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64)
	if err != nil {
		return trimmed
	}

	return fmt.Sprintf("%.2f %s", amount*p.rules.Currency.PrimaryRate, p.rules.Currency.Target)
}

// dedupeFeatures removes repeated feature names while preserving first-seen
// order. An empty list becomes the sentinel.
func dedupeFeatures(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || trimmed == model.NotAvailable {
		return model.NotAvailable
	}

	seen := make(map[string]bool)
	var unique []string
	for _, part := range strings.Split(trimmed, ",") {
		feature := strings.TrimSpace(part)
		if feature == "" || seen[feature] {
			continue
		}
		seen[feature] = true
		unique = append(unique, feature)
	}
	if len(unique) == 0 {
		return model.NotAvailable
	}
	return strings.Join(unique, ", ")
}

func trimDetails(details map[string]string) map[string]string {
	if details == nil {
		return map[string]string{}
	}
	trimmed := make(map[string]string, len(details))
	for k, v := range details {
		trimmed[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return trimmed
}
