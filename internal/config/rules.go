package config

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// Rules is the immutable extraction configuration passed into the listing
// pipeline. It carries every marketplace-specific constant (markers, currency
// rates, feature vocabulary, routing parameters) so nothing in the pipeline
// depends on process-wide state.
type Rules struct {
	// BrandToken filters listing titles: only h2/h3 headings containing this
	// token are extracted.
	BrandToken string `yaml:"brand_token"`

	// PhotoMarker identifies vendor-hosted listing photos by URL substring.
	PhotoMarker string `yaml:"photo_marker"`

	// StateMarker identifies the inline application-state script blob.
	StateMarker string `yaml:"state_marker"`

	// StockPrefix is stripped from the text of stock-number elements.
	StockPrefix string `yaml:"stock_prefix"`

	// LegacyPositional switches extraction to the index-alignment mode kept
	// for parity with the original scraper. The default card-scoped mode
	// queries every field relative to one root element per listing and is
	// immune to index drift.
	LegacyPositional bool `yaml:"legacy_positional"`

	Currency CurrencyRules `yaml:"currency"`

	// FeatureVocabulary is the closed set of feature names scanned for in
	// listing text. Aliases map a canonical name to spellings that also count
	// as a match.
	FeatureVocabulary []string            `yaml:"feature_vocabulary"`
	FeatureAliases    map[string][]string `yaml:"feature_aliases"`

	// Routing holds the fixed query parameters every marketplace request
	// carries regardless of search criteria.
	Routing RoutingRules `yaml:"routing"`
}

// CurrencyRules holds the price normalization constants. PrimaryRate converts
// DOM-extracted prices; FallbackRate applies to prices recovered from the
// structured-data block. The two are deliberately independent constants.
type CurrencyRules struct {
	Source       string  `yaml:"source"`
	Target       string  `yaml:"target"`
	PrimaryRate  float64 `yaml:"primary_rate"`
	FallbackRate float64 `yaml:"fallback_rate"`
}

// RoutingRules holds the fixed marketplace routing parameters.
type RoutingRules struct {
	SearchBox   string `yaml:"search_box"`
	Sort        string `yaml:"sort"`
	Currency    string `yaml:"currency"`
	Destination string `yaml:"destination"`
	Shipping    string `yaml:"shipping"`
}

// DefaultRules returns the extraction rules used when no rules file exists.
func DefaultRules() Rules {
	return Rules{
		BrandToken:  "Toyota",
		PhotoMarker: "img1.sbtjapan.com/photo",
		StateMarker: "window.__CAR_STATE__",
		StockPrefix: "Stock ID:",
		Currency: CurrencyRules{
			Source:       "USD",
			Target:       "KES",
			PrimaryRate:  132.5,
			FallbackRate: 129.0,
		},
		FeatureVocabulary: []string{
			"Air Conditioner",
			"Cruise Control",
			"Navigation System",
			"ABS",
			"Alloy Wheels",
			"Back Camera",
			"Leather Seat",
			"Sun Roof",
		},
		FeatureAliases: map[string][]string{
			"Air Conditioner":   {"A/C", "Aircon"},
			"Navigation System": {"Navi"},
			"Back Camera":       {"Rear Camera"},
		},
		Routing: RoutingRules{
			SearchBox:   "1",
			Sort:        "46",
			Currency:    "USD",
			Destination: "kenya",
			Shipping:    "cif",
		},
	}
}

// LoadRules reads extraction rules from a YAML file. A missing file is not an
// error: a commented default file is written for the operator to edit, and the
// defaults are used for this run.
func LoadRules(path string) (Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Rules file %s not found, generating defaults", path)
			if werr := writeDefaultRules(path); werr != nil {
				log.Printf("Warning: could not write default rules file: %v", werr)
			}
			return DefaultRules(), nil
		}
		return Rules{}, fmt.Errorf("failed to read rules file: %w", err)
	}

	rules := DefaultRules()
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return Rules{}, fmt.Errorf("failed to parse rules file: %w", err)
	}
	return rules, nil
}

func writeDefaultRules(path string) error {
	data, err := yaml.Marshal(DefaultRules())
	if err != nil {
		return err
	}
	header := []byte("# Extraction rules for the marketplace listing pipeline.\n# Edit and restart to apply.\n")
	return os.WriteFile(path, append(header, data...), 0644)
}
