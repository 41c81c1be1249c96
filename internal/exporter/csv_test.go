package exporter

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"carsearch/internal/model"
)

func TestRenderCSV(t *testing.T) {
	records := []model.ListingRecord{
		{
			Image:    "https://img1.sbtjapan.com/photo/A1/1.jpg",
			Title:    "2015 Toyota Corolla Axio",
			Price:    "24690.00 KES",
			Mileage:  "45,000 km",
			Features: "ABS, Back Camera",
			StockID:  "SBT-45678",
			Details:  map[string]string{"Grade": "G"},
			Mechanical: model.MechanicalAttrs{
				Engine:       "1NZ-FE",
				Transmission: "AT",
				Fuel:         "Petrol",
				Color:        "White",
			},
		},
	}

	data, err := RenderCSV(records)
	if err != nil {
		t.Fatalf("RenderCSV() error = %v", err)
	}

	rows, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1 record", len(rows))
	}

	header := rows[0]
	if header[0] != "image" || header[len(header)-1] != "details" {
		t.Errorf("unexpected header: %v", header)
	}

	row := rows[1]
	if row[1] != "2015 Toyota Corolla Axio" || row[2] != "24690.00 KES" {
		t.Errorf("unexpected record row: %v", row)
	}
	if !strings.Contains(row[len(row)-1], `"Grade":"G"`) {
		t.Errorf("details column = %q, want JSON object", row[len(row)-1])
	}
}

func TestRenderCSV_Empty(t *testing.T) {
	_, err := RenderCSV(nil)
	if !errors.Is(err, ErrNotExportable) {
		t.Errorf("RenderCSV(nil) error = %v, want ErrNotExportable", err)
	}

	_, err = RenderCSV([]model.ListingRecord{})
	if !errors.Is(err, ErrNotExportable) {
		t.Errorf("RenderCSV(empty) error = %v, want ErrNotExportable", err)
	}
}
