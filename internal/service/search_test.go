package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"carsearch/internal/config"
	"carsearch/internal/marketplace"
	"carsearch/internal/model"
	"carsearch/internal/pipeline"
)

const resultsPage = `<html><body>
<div class="car_listitem">
	<img src="https://img1.sbtjapan.com/photo/X1/1.jpg">
	<h2>2016 Toyota Premio</h2>
	<span>10,000 USD</span>
	<span class="stock_no">Stock ID: SBT-777</span>
</div>
</body></html>`

func newTestService(t *testing.T, handler http.HandlerFunc) (*SearchService, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	rules := config.DefaultRules()
	rules.Currency.PrimaryRate = 2.0

	fetcher := marketplace.NewFetcher(config.MarketplaceConfig{
		BaseURL:        server.URL,
		UserAgent:      "carsearch-test",
		TimeoutSeconds: 5,
		MaxRetries:     1,
	})
	// nil repository: search logging is skipped in tests
	return NewSearchService(fetcher, pipeline.New(rules), nil, rules), server
}

func TestSearch(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("make") != "toyota" {
			t.Errorf("marketplace query = %v, want make=toyota", r.URL.Query())
		}
		w.Write([]byte(resultsPage))
	})

	resp := svc.Search(context.Background(), model.ListingQuery{Make: "toyota"})

	if resp.Count != 1 {
		t.Fatalf("Count = %d, want 1", resp.Count)
	}
	if resp.Reason != "" {
		t.Errorf("Reason = %q, want empty on success", resp.Reason)
	}
	if resp.Results[0].Price != "20000.00 KES" {
		t.Errorf("Price = %q", resp.Results[0].Price)
	}
}

func TestSearch_FetchFailure(t *testing.T) {
	svc, server := newTestService(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // connection refused from here on

	resp := svc.Search(context.Background(), model.ListingQuery{Make: "toyota"})

	if resp.Count != 0 {
		t.Errorf("Count = %d, want 0", resp.Count)
	}
	if resp.Reason != string(pipeline.ReasonFetch) {
		t.Errorf("Reason = %q, want fetch", resp.Reason)
	}
	if resp.Results == nil {
		t.Error("Results is nil, want empty slice")
	}
}

func TestExport_EmptyNotExportable(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>no results</p></body></html>`))
	})

	if _, err := svc.Export(context.Background(), model.ListingQuery{Make: "toyota"}); err == nil {
		t.Error("Export() = nil error for empty search result")
	}
}

func TestExport(t *testing.T) {
	svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(resultsPage))
	})

	report, err := svc.Export(context.Background(), model.ListingQuery{Make: "toyota"})
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if len(report) == 0 {
		t.Error("Export() returned empty report")
	}
}
