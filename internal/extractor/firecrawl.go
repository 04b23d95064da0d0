package extractor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

var _ Extractor = (*FirecrawlExtractor)(nil)

const maxErrorBody = 500

// FirecrawlExtractor runs schema-guided extraction through the Firecrawl scrape API.
type FirecrawlExtractor struct {
	apiKey string
	client *resty.Client
}

// NewFirecrawlExtractor creates a new FirecrawlExtractor with the given configuration.
func NewFirecrawlExtractor(baseURL, apiKey string, timeoutSec int) *FirecrawlExtractor {
	if baseURL == "" {
		baseURL = "https://api.firecrawl.dev"
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(time.Duration(timeoutSec) * time.Second)

	return &FirecrawlExtractor{
		apiKey: apiKey,
		client: client,
	}
}

type scrapeRequest struct {
	URL         string      `json:"url"`
	Formats     []string    `json:"formats"`
	JSONOptions jsonOptions `json:"jsonOptions"`
	WaitFor     int64       `json:"waitFor,omitempty"`
}

type jsonOptions struct {
	Schema map[string]any `json:"schema"`
	Prompt string         `json:"prompt"`
}

// Firecrawl v1 scrape response structure
type scrapeResponse struct {
	Success bool     `json:"success"`
	Error   string   `json:"error"`
	JSON    *Payload `json:"json"`
	Data    struct {
		JSON *Payload `json:"json"`
	} `json:"data"`
}

// Extract scrapes req.URL and returns the object extracted against req.Schema.
func (e *FirecrawlExtractor) Extract(ctx context.Context, req Request) (*Payload, error) {
	if e.apiKey == "" {
		return nil, fmt.Errorf("%w: firecrawl api key is not configured", ErrConfiguration)
	}
	if req.URL == "" {
		return nil, fmt.Errorf("%w: source url is empty", ErrConfiguration)
	}

	resp, err := e.client.R().
		SetContext(ctx).
		SetAuthToken(e.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(scrapeRequest{
			URL:         req.URL,
			Formats:     []string{"json"},
			JSONOptions: jsonOptions{Schema: req.Schema, Prompt: req.Prompt},
			WaitFor:     req.WaitFor.Milliseconds(),
		}).
		Post("/v1/scrape")
	if err != nil {
		return nil, fmt.Errorf("%w: scrape request failed: %w", ErrUpstream, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: firecrawl returned status %d: %s",
			ErrUpstream, resp.StatusCode(), truncate(resp.String(), maxErrorBody))
	}

	var result scrapeResponse
	if err := json.Unmarshal(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("%w: failed to decode firecrawl response: %w", ErrUpstream, err)
	}
	if !result.Success {
		return nil, fmt.Errorf("%w: firecrawl returned success=false: %s", ErrUpstream, result.Error)
	}

	payload := result.Data.JSON
	if payload == nil {
		payload = result.JSON
	}
	if payload == nil || payload.LatestDate == "" {
		return nil, fmt.Errorf("%w: no EIBOR data extracted from %s: %s",
			ErrUpstream, req.URL, truncate(resp.String(), maxErrorBody))
	}
	return payload, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
