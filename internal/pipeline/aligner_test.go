package pipeline

import (
	"testing"
)

func repeatValues(prefix string, n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = prefix
	}
	return values
}

func TestAlign_RecordCountIsMinimum(t *testing.T) {
	tests := []struct {
		name                                 string
		images, prices, titles, miles, stock int
		want                                 int
	}{
		{"All equal", 3, 3, 3, 3, 3, 3},
		{"Prices shortest", 5, 2, 5, 5, 5, 2},
		{"Stock shortest", 4, 4, 4, 4, 1, 1},
		{"One empty sequence", 3, 3, 0, 3, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := SignalSet{
				Images:   repeatValues("img", tt.images),
				Prices:   repeatValues("price", tt.prices),
				Titles:   repeatValues("title", tt.titles),
				Mileages: repeatValues("mile", tt.miles),
				StockIDs: repeatValues("stock", tt.stock),
			}
			got := Align(s)
			if len(got) != tt.want {
				t.Errorf("Align() produced %d records, want %d", len(got), tt.want)
			}
		})
	}
}

func TestAlign_PadsFeaturesAndDetails(t *testing.T) {
	s := SignalSet{
		Images:   []string{"i1", "i2", "i3"},
		Prices:   []string{"p1", "p2", "p3"},
		Titles:   []string{"t1", "t2", "t3"},
		Mileages: []string{"m1", "m2", "m3"},
		StockIDs: []string{"s1", "s2", "s3"},
		Features: []string{"ABS"},
		Details:  []map[string]string{{"Grade": "X"}, {"Grade": "S"}},
	}

	records := Align(s)
	if len(records) != 3 {
		t.Fatalf("Align() produced %d records, want 3: short features/details must pad, not truncate", len(records))
	}

	if records[0].Features != "ABS" {
		t.Errorf("records[0].Features = %q", records[0].Features)
	}
	if records[1].Features != "N/A" || records[2].Features != "N/A" {
		t.Errorf("missing features not padded: %q, %q", records[1].Features, records[2].Features)
	}

	if records[1].Details["Grade"] != "S" {
		t.Errorf("records[1].Details = %v", records[1].Details)
	}
	if records[2].Details == nil || len(records[2].Details) != 0 {
		t.Errorf("records[2].Details = %v, want empty map", records[2].Details)
	}
}

func TestAlign_PairsByIndex(t *testing.T) {
	s := SignalSet{
		Images:   []string{"i1", "i2"},
		Prices:   []string{"p1", "p2"},
		Titles:   []string{"t1", "t2"},
		Mileages: []string{"m1", "m2"},
		StockIDs: []string{"s1", "s2"},
	}

	records := Align(s)
	if records[1].Image != "i2" || records[1].Price != "p2" || records[1].Title != "t2" {
		t.Errorf("records[1] = %+v, want index-1 values across all sequences", records[1])
	}
	if records[1].Mechanical.Engine != "N/A" {
		t.Errorf("Mechanical defaults missing: %+v", records[1].Mechanical)
	}
}
