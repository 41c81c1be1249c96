package pipeline

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"carsearch/internal/model"

	"github.com/PuerkitoBio/goquery"
)

// ParseFallback recovers listings from the page's structured-data block. It
// only runs when the primary extraction produced zero records; its output
// fully replaces the primary source, the two are never merged. A missing or
// unparseable block yields an empty slice, which the caller reports as a
// "no results" outcome.
func (p *Pipeline) ParseFallback(doc *goquery.Document) []model.ListingRecord {
	var records []model.ListingRecord

	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, script *goquery.Selection) bool {
		var data map[string]interface{}
		if err := json.Unmarshal([]byte(script.Text()), &data); err != nil {
			return true
		}

		items := itemList(data)
		if len(items) == 0 {
			return true
		}

		for _, item := range items {
			records = append(records, p.fallbackRecord(item))
		}
		return false
	})

	return records
}

// itemList pulls the listing entries out of a JSON-LD document. The
// marketplace publishes an ItemList whose elements wrap each vehicle in an
// "item" key.
func itemList(data map[string]interface{}) []map[string]interface{} {
	elements, ok := data["itemListElement"].([]interface{})
	if !ok {
		return nil
	}

	var items []map[string]interface{}
	for _, el := range elements {
		entry, ok := el.(map[string]interface{})
		if !ok {
			continue
		}
		if item, ok := entry["item"].(map[string]interface{}); ok {
			items = append(items, item)
			continue
		}
		items = append(items, entry)
	}
	return items
}

func (p *Pipeline) fallbackRecord(item map[string]interface{}) model.ListingRecord {
	rec := model.ListingRecord{
		Image:      orSentinel(imageFromAny(item["image"])),
		Title:      orSentinel(stringFromAny(item["name"])),
		Price:      p.fallbackPrice(item["offers"]),
		Mileage:    model.NotAvailable, // structured data does not carry mileage
		Features:   orSentinel(stringFromAny(item["description"])),
		StockID:    orSentinel(stringFromAny(item["sku"])),
		Details:    map[string]string{},
		Mechanical: model.NewMechanicalAttrs(),
	}
	return rec
}

// fallbackPrice selects the offer priced in the configured source currency and
// applies the fallback conversion rate. The result is already tagged with the
// target currency, so the normalizer passes it through untouched.
func (p *Pipeline) fallbackPrice(offers interface{}) string {
	for _, offer := range offerEntries(offers) {
		if stringFromAny(offer["priceCurrency"]) != p.rules.Currency.Source {
			continue
		}
		amount, ok := floatFromAny(offer["price"])
		if !ok {
			continue
		}
		return fmt.Sprintf("%.2f %s", amount*p.rules.Currency.FallbackRate, p.rules.Currency.Target)
	}
	return model.NotAvailable
}

func offerEntries(offers interface{}) []map[string]interface{} {
	switch v := offers.(type) {
	case map[string]interface{}:
		return []map[string]interface{}{v}
	case []interface{}:
		var entries []map[string]interface{}
		for _, el := range v {
			if entry, ok := el.(map[string]interface{}); ok {
				entries = append(entries, entry)
			}
		}
		return entries
	}
	return nil
}

func stringFromAny(value interface{}) string {
	if v, ok := value.(string); ok {
		return v
	}
	return ""
}

// imageFromAny accepts both a plain URL and the array form JSON-LD allows.
func imageFromAny(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case []interface{}:
		if len(v) > 0 {
			return stringFromAny(v[0])
		}
	}
	return ""
}

func floatFromAny(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case string:
		parsed, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	}
	return 0, false
}
