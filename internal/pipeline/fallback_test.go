package pipeline

import (
	"testing"
)

func TestParseFallback(t *testing.T) {
	p := New(testRules()) // fallback rate 3.0
	doc := parseDoc(t, fallbackDoc)

	records := p.ParseFallback(doc)
	if len(records) != 3 {
		t.Fatalf("ParseFallback() = %d records, want 3", len(records))
	}

	first := records[0]
	if first.Title != "2018 Toyota Vitz" {
		t.Errorf("Title = %q", first.Title)
	}
	// The USD offer is chosen, not the JPY one, and converted at the
	// fallback rate.
	if first.Price != "19200.00 KES" {
		t.Errorf("Price = %q, want 19200.00 KES", first.Price)
	}
	if first.Features != "Back Camera, Alloy Wheels" {
		t.Errorf("Features = %q, want description verbatim", first.Features)
	}
	if first.Mileage != "N/A" {
		t.Errorf("Mileage = %q, want N/A", first.Mileage)
	}
	if first.StockID != "SBT-11111" {
		t.Errorf("StockID = %q", first.StockID)
	}
	if len(first.Details) != 0 {
		t.Errorf("Details = %v, want empty map", first.Details)
	}
}

func TestParseFallback_NoBlock(t *testing.T) {
	p := New(testRules())
	doc := parseDoc(t, `<html><body><p>nothing here</p></body></html>`)

	records := p.ParseFallback(doc)
	if len(records) != 0 {
		t.Errorf("ParseFallback() = %d records, want 0", len(records))
	}
}

func TestParseFallback_MalformedBlock(t *testing.T) {
	p := New(testRules())
	doc := parseDoc(t, `<html><body>
		<script type="application/ld+json">{"itemListElement": [broken</script>
	</body></html>`)

	records := p.ParseFallback(doc)
	if len(records) != 0 {
		t.Errorf("ParseFallback() = %d records, want 0 for unparseable block", len(records))
	}
}

func TestParseFallback_NoMatchingOffer(t *testing.T) {
	p := New(testRules())
	doc := parseDoc(t, `<html><body>
		<script type="application/ld+json">
		{"itemListElement": [{"item": {"name": "2012 Toyota Belta", "sku": "SBT-9", "offers": {"priceCurrency": "JPY", "price": 500000}}}]}
		</script>
	</body></html>`)

	records := p.ParseFallback(doc)
	if len(records) != 1 {
		t.Fatalf("ParseFallback() = %d records, want 1", len(records))
	}
	if records[0].Price != "N/A" {
		t.Errorf("Price = %q, want N/A when no offer matches the source currency", records[0].Price)
	}
}
