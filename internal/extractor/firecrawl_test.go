package extractor

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const scrapeOK = `{
  "success": true,
  "data": {
    "json": {
      "latest_date": "12 March 2025",
      "overnight": 5.24,
      "one_week": null,
      "one_month": 5.125,
      "three_months": 4.931,
      "six_months": 4.768,
      "one_year": 4.615,
      "previous_date": "11 March 2025",
      "prev_overnight": 5.24,
      "prev_one_month": 5.13,
      "prev_three_months": 4.943,
      "prev_six_months": 4.765,
      "prev_one_year": 4.623
    }
  }
}`

func TestFirecrawlExtractor_Extract(t *testing.T) {
	t.Run("success decodes data.json", func(t *testing.T) {
		var body map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/v1/scrape", r.URL.Path)
			assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(scrapeOK))
		}))
		defer srv.Close()

		ext := NewFirecrawlExtractor(srv.URL, "secret", 5)
		p, err := ext.Extract(context.Background(), DefaultRequest(CBUAEEIBORURL, 3*time.Second))
		require.NoError(t, err)

		assert.Equal(t, "12 March 2025", p.LatestDate)
		assert.Nil(t, p.OneWeek)
		require.NotNil(t, p.ThreeMonths)
		assert.True(t, p.ThreeMonths.Equal(decimal.RequireFromString("4.931")))
		require.NotNil(t, p.PrevThreeMonths)
		assert.True(t, p.PrevThreeMonths.Equal(decimal.RequireFromString("4.943")))

		assert.Equal(t, CBUAEEIBORURL, body["url"])
		assert.Equal(t, []any{"json"}, body["formats"])
		assert.EqualValues(t, 3000, body["waitFor"])
		opts, ok := body["jsonOptions"].(map[string]any)
		require.True(t, ok)
		assert.Contains(t, opts["prompt"], "Current month")
		schema, ok := opts["schema"].(map[string]any)
		require.True(t, ok)
		props, ok := schema["properties"].(map[string]any)
		require.True(t, ok)
		assert.Len(t, props, 14)
	})

	t.Run("top-level json fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"json":{"latest_date":"2025-03-12","overnight":"5.24"}}`))
		}))
		defer srv.Close()

		p, err := NewFirecrawlExtractor(srv.URL, "k", 5).Extract(context.Background(), DefaultRequest(CBUAEEIBORURL, 0))
		require.NoError(t, err)
		assert.Equal(t, "2025-03-12", p.LatestDate)
		require.NotNil(t, p.Overnight)
		assert.Equal(t, "5.24", p.Overnight.String())
	})

	t.Run("unusable rate values drop only that tenor", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success":true,"data":{"json":{
				"latest_date":"12 March 2025",
				"overnight":"5.24",
				"one_week":"",
				"one_month":"-",
				"three_months":" 4.931 % ",
				"six_months":"N/A",
				"one_year":4.615,
				"prev_overnight":{"value":5.1}
			}}}`))
		}))
		defer srv.Close()

		p, err := NewFirecrawlExtractor(srv.URL, "k", 5).Extract(context.Background(), DefaultRequest(CBUAEEIBORURL, 0))
		require.NoError(t, err)

		assert.Nil(t, p.OneWeek)
		assert.Nil(t, p.OneMonth)
		assert.Nil(t, p.SixMonths)
		assert.Nil(t, p.PrevOvernight)
		require.NotNil(t, p.Overnight)
		assert.True(t, p.Overnight.Equal(decimal.RequireFromString("5.24")))
		require.NotNil(t, p.ThreeMonths)
		assert.True(t, p.ThreeMonths.Equal(decimal.RequireFromString("4.931")))
		require.NotNil(t, p.OneYear)
		assert.True(t, p.OneYear.Equal(decimal.RequireFromString("4.615")))
	})

	t.Run("missing api key makes no request", func(t *testing.T) {
		var calls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			calls.Add(1)
		}))
		defer srv.Close()

		_, err := NewFirecrawlExtractor(srv.URL, "", 5).Extract(context.Background(), DefaultRequest(CBUAEEIBORURL, 0))
		assert.ErrorIs(t, err, ErrConfiguration)
		assert.Zero(t, calls.Load())
	})

	t.Run("missing url", func(t *testing.T) {
		_, err := NewFirecrawlExtractor("http://127.0.0.1:1", "k", 1).Extract(context.Background(), DefaultRequest("", 0))
		assert.ErrorIs(t, err, ErrConfiguration)
	})

	failures := []struct {
		name   string
		status int
		body   string
	}{
		{"non-2xx status", http.StatusTooManyRequests, `{"success":false,"error":"rate limited"}`},
		{"success false", http.StatusOK, `{"success":false,"error":"blocked"}`},
		{"undecodable body", http.StatusOK, `<html>`},
		{"no latest_date", http.StatusOK, `{"success":true,"data":{"json":{"overnight":5.1}}}`},
		{"no json at all", http.StatusOK, `{"success":true,"data":{}}`},
	}
	for _, tc := range failures {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := NewFirecrawlExtractor(srv.URL, "k", 5).Extract(context.Background(), DefaultRequest(CBUAEEIBORURL, 0))
			assert.ErrorIs(t, err, ErrUpstream)
		})
	}

	t.Run("transport failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		url := srv.URL
		srv.Close()

		_, err := NewFirecrawlExtractor(url, "k", 1).Extract(context.Background(), DefaultRequest(CBUAEEIBORURL, 0))
		assert.ErrorIs(t, err, ErrUpstream)
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
}
