package pipeline

import (
	"strings"

	"carsearch/internal/model"
	"carsearch/internal/utils"

	"github.com/PuerkitoBio/goquery"
)

type embeddedState struct {
	Cars []embeddedCar `json:"cars"`
}

type embeddedCar struct {
	Engine       string `json:"engine"`
	Transmission string `json:"transmission"`
	Fuel         string `json:"fuel"`
	Color        string `json:"color"`
}

// MergeEmbeddedState looks for the inline application-state script and merges
// per-listing mechanical attributes into the records by index. A missing
// marker or an unparseable blob is not an error: records keep their sentinel
// defaults and the pipeline proceeds.
func (p *Pipeline) MergeEmbeddedState(doc *goquery.Document, records []model.ListingRecord) []model.ListingRecord {
	if len(records) == 0 {
		return records
	}

	var payload string
	doc.Find("script").EachWithBreak(func(_ int, script *goquery.Selection) bool {
		text := script.Text()
		if strings.Contains(text, p.rules.StateMarker) {
			payload = text
			return false
		}
		return true
	})
	if payload == "" {
		return records
	}

	var state embeddedState
	if err := utils.ParseEmbeddedJSON(payload, &state); err != nil {
		return records
	}

	for i := range records {
		if i >= len(state.Cars) {
			break
		}
		car := state.Cars[i]
		records[i].Mechanical.Engine = orSentinel(car.Engine)
		records[i].Mechanical.Transmission = orSentinel(car.Transmission)
		records[i].Mechanical.Fuel = orSentinel(car.Fuel)
		records[i].Mechanical.Color = orSentinel(car.Color)
	}
	return records
}

func orSentinel(s string) string {
	if strings.TrimSpace(s) == "" {
		return model.NotAvailable
	}
	return strings.TrimSpace(s)
}
