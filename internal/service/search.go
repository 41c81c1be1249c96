package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"carsearch/internal/config"
	"carsearch/internal/exporter"
	"carsearch/internal/marketplace"
	"carsearch/internal/model"
	"carsearch/internal/pipeline"
	"carsearch/internal/repository"
)

// SearchService orchestrates one search: build the marketplace query, fetch
// the results document, run the extraction pipeline, log the outcome.
type SearchService struct {
	fetcher *marketplace.Fetcher
	pipe    *pipeline.Pipeline
	repo    *repository.PostgresRepository
	rules   config.Rules
}

// NewSearchService creates a new search service
func NewSearchService(
	fetcher *marketplace.Fetcher,
	pipe *pipeline.Pipeline,
	repo *repository.PostgresRepository,
	rules config.Rules,
) *SearchService {
	return &SearchService{
		fetcher: fetcher,
		pipe:    pipe,
		repo:    repo,
		rules:   rules,
	}
}

// Search runs a full marketplace search for the given criteria. The response
// always carries either records or a reason code; fetch and parse failures
// surface as reasons, never as errors.
func (s *SearchService) Search(ctx context.Context, query model.ListingQuery) *model.SearchResponse {
	startTime := time.Now()

	params := marketplace.BuildParams(query, s.rules.Routing)

	var result pipeline.Result
	rawDocument, err := s.fetcher.Fetch(ctx, params)
	if err != nil {
		log.Printf("Fetch failed: %v", err)
		result = pipeline.FetchFailed()
	} else {
		result = s.pipe.Run(rawDocument)
	}

	took := time.Since(startTime).Milliseconds()
	s.logSearch(query, result, took)

	records := result.Records
	if records == nil {
		records = []model.ListingRecord{}
	}
	return &model.SearchResponse{
		Results: records,
		Count:   len(records),
		Reason:  string(result.Reason),
		Took:    took,
	}
}

// Export runs a search and renders the results as a CSV report. An empty
// result is not exportable.
func (s *SearchService) Export(ctx context.Context, query model.ListingQuery) ([]byte, error) {
	response := s.Search(ctx, query)
	return exporter.RenderCSV(response.Results)
}

// RecentSearches returns the latest logged searches.
func (s *SearchService) RecentSearches(ctx context.Context, limit int) ([]model.SearchLog, error) {
	return s.repo.RecentSearches(ctx, limit)
}

// logSearch records the search outcome without blocking the response path.
func (s *SearchService) logSearch(query model.ListingQuery, result pipeline.Result, tookMs int64) {
	if s.repo == nil {
		return
	}
	go func() {
		criteria, err := json.Marshal(query)
		if err != nil {
			return
		}
		logCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.LogSearch(logCtx, string(criteria), len(result.Records), string(result.Reason), int(tookMs)); err != nil {
			log.Printf("Failed to log search: %v", err)
		}
	}()
}
