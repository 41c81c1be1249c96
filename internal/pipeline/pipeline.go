// Package pipeline turns one fetched marketplace results document into an
// ordered sequence of fully populated, normalized listing records.
//
// The marketplace document has no stable schema: listing fields are scattered
// across independently selectable elements, sometimes duplicated in an inline
// application-state blob or a structured-data block, and "no results" pages
// use different shapes than result pages. The pipeline reconciles these
// sources and guarantees that every record field is populated, falling back
// to the structured-data block when DOM extraction yields nothing.
package pipeline

import (
	"strings"

	"carsearch/internal/config"
	"carsearch/internal/model"

	"github.com/PuerkitoBio/goquery"
)

// Reason classifies why a run produced no records.
type Reason string

const (
	ReasonNone      Reason = ""
	ReasonFetch     Reason = "fetch"
	ReasonParse     Reason = "parse"
	ReasonNoResults Reason = "no_results"
)

// Result is the tagged outcome of one pipeline run: either Records is
// non-empty, or Reason says why it is empty. No error ever crosses the
// pipeline boundary.
type Result struct {
	Records []model.ListingRecord
	Reason  Reason
}

// Empty reports whether the run produced no records.
func (r Result) Empty() bool {
	return len(r.Records) == 0
}

// Pipeline extracts listings from marketplace documents. It holds only the
// immutable rules, keeps no per-run state, and is safe for concurrent use.
type Pipeline struct {
	rules config.Rules
}

// New creates a pipeline with the given extraction rules.
func New(rules config.Rules) *Pipeline {
	return &Pipeline{rules: rules}
}

// FetchFailed is the result for a document that could not be fetched at all.
// The fetch itself happens outside the pipeline; this keeps the reason code
// in one vocabulary.
func FetchFailed() Result {
	return Result{Reason: ReasonFetch}
}

// Run processes one raw document. Stages: extract, align (legacy mode only),
// merge embedded state, fall back to structured data when primary extraction
// found nothing, then normalize every record.
func (p *Pipeline) Run(rawDocument string) Result {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawDocument))
	if err != nil {
		return Result{Reason: ReasonParse}
	}

	var records []model.ListingRecord
	if p.rules.LegacyPositional {
		records = Align(p.ExtractSignals(doc))
	} else {
		records = p.ExtractCards(doc)
	}

	records = p.MergeEmbeddedState(doc, records)

	if len(records) == 0 {
		records = p.ParseFallback(doc)
	}
	if len(records) == 0 {
		return Result{Reason: ReasonNoResults}
	}

	for i := range records {
		records[i] = p.Normalize(records[i])
	}
	return Result{Records: records}
}
