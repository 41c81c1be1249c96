// Package exporter renders listing records as a downloadable report.
package exporter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"

	"carsearch/internal/model"
)

// ErrNotExportable is returned when there are no records to render.
var ErrNotExportable = errors.New("no records to export")

// RenderCSV renders the records as a CSV document. Details are serialized as
// a JSON object so the column stays machine-readable.
func RenderCSV(records []model.ListingRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, ErrNotExportable
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write([]string{
		"image", "title", "price", "mileage", "features", "stock_id",
		"engine", "transmission", "fuel", "color", "details",
	})

	for _, rec := range records {
		details, err := json.Marshal(rec.Details)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize details: %w", err)
		}
		writer.Write([]string{
			rec.Image,
			rec.Title,
			rec.Price,
			rec.Mileage,
			rec.Features,
			rec.StockID,
			rec.Mechanical.Engine,
			rec.Mechanical.Transmission,
			rec.Mechanical.Fuel,
			rec.Mechanical.Color,
			string(details),
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("csv write error: %w", err)
	}
	return buf.Bytes(), nil
}
