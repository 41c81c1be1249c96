package marketplace

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"carsearch/internal/config"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// Fetcher performs the single GET request against the marketplace for one
// search. Retrying lives here and only here; the extraction pipeline never
// retries.
type Fetcher struct {
	cfg    config.MarketplaceConfig
	client *http.Client
}

// NewFetcher creates a fetcher for the configured marketplace.
func NewFetcher(cfg config.MarketplaceConfig) *Fetcher {
	return &Fetcher{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Fetch retrieves the results document for the given query parameters. It
// retries transient failures with exponential backoff and returns the
// document body as UTF-8 text.
func (f *Fetcher) Fetch(ctx context.Context, params url.Values) (string, error) {
	requestURL := f.cfg.BaseURL + "?" + params.Encode()

	var body string
	err := retry(ctx, f.cfg.MaxRetries, func() error {
		var attemptErr error
		body, attemptErr = f.fetchOnce(ctx, requestURL)
		return attemptErr
	})
	if err != nil {
		return "", fmt.Errorf("marketplace fetch failed: %w", err)
	}
	return body, nil
}

func (f *Fetcher) fetchOnce(ctx context.Context, requestURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	reader := decodeCharset(resp.Body, resp.Header.Get("Content-Type"))
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}
	return string(data), nil
}

// decodeCharset transcodes legacy-encoded responses to UTF-8. The marketplace
// serves Shift_JIS on some routes.
func decodeCharset(body io.Reader, contentType string) io.Reader {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "shift_jis") || strings.Contains(ct, "shift-jis") || strings.Contains(ct, "sjis") {
		return transform.NewReader(body, japanese.ShiftJIS.NewDecoder())
	}
	return body
}

// retry runs fn up to maxAttempts times, doubling the wait after each
// failure. It stops early when the context is cancelled.
func retry(ctx context.Context, maxAttempts int, fn func() error) error {
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if attempt < maxAttempts {
			wait := time.Duration(1<<uint(attempt)) * time.Second
			log.Printf("Fetch attempt %d/%d failed: %v, retrying in %v", attempt, maxAttempts, lastErr, wait)
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
	return fmt.Errorf("all %d attempts failed: %w", maxAttempts, lastErr)
}
