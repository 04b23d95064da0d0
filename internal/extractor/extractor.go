// Package extractor fetches structured EIBOR data from the rate source page.
package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrConfiguration is returned when the extractor is missing its API key or source URL.
	ErrConfiguration = errors.New("extractor configuration error")
	// ErrUpstream is returned when the extraction service fails or returns an unusable response.
	ErrUpstream = errors.New("extraction upstream error")
)

// Request describes one schema-guided extraction.
type Request struct {
	URL     string
	Schema  map[string]any
	Prompt  string
	WaitFor time.Duration
}

// Payload is the partial result of an extraction. A nil rate means the
// field was absent or null in the extracted object.
type Payload struct {
	LatestDate   string `json:"latest_date"`
	PreviousDate string `json:"previous_date,omitempty"`

	Overnight   *decimal.Decimal `json:"overnight"`
	OneWeek     *decimal.Decimal `json:"one_week"`
	OneMonth    *decimal.Decimal `json:"one_month"`
	ThreeMonths *decimal.Decimal `json:"three_months"`
	SixMonths   *decimal.Decimal `json:"six_months"`
	OneYear     *decimal.Decimal `json:"one_year"`

	PrevOvernight   *decimal.Decimal `json:"prev_overnight"`
	PrevOneWeek     *decimal.Decimal `json:"prev_one_week"`
	PrevOneMonth    *decimal.Decimal `json:"prev_one_month"`
	PrevThreeMonths *decimal.Decimal `json:"prev_three_months"`
	PrevSixMonths   *decimal.Decimal `json:"prev_six_months"`
	PrevOneYear     *decimal.Decimal `json:"prev_one_year"`
}

// UnmarshalJSON decodes a payload leniently: a rate that is blank, a
// placeholder such as "-" or "N/A", or otherwise not a number decodes to
// nil instead of failing the whole object.
func (p *Payload) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Payload{}
	for key, dst := range map[string]*string{"latest_date": &p.LatestDate, "previous_date": &p.PreviousDate} {
		if v, ok := raw[key]; ok {
			var s *string
			if err := json.Unmarshal(v, &s); err != nil {
				return err
			}
			if s != nil {
				*dst = *s
			}
		}
	}
	for key, dst := range p.rateFields() {
		*dst = parseRate(raw[key])
	}
	return nil
}

func (p *Payload) rateFields() map[string]**decimal.Decimal {
	return map[string]**decimal.Decimal{
		"overnight":         &p.Overnight,
		"one_week":          &p.OneWeek,
		"one_month":         &p.OneMonth,
		"three_months":      &p.ThreeMonths,
		"six_months":        &p.SixMonths,
		"one_year":          &p.OneYear,
		"prev_overnight":    &p.PrevOvernight,
		"prev_one_week":     &p.PrevOneWeek,
		"prev_one_month":    &p.PrevOneMonth,
		"prev_three_months": &p.PrevThreeMonths,
		"prev_six_months":   &p.PrevSixMonths,
		"prev_one_year":     &p.PrevOneYear,
	}
}

// parseRate accepts a JSON number or a numeric string, optionally suffixed with "%".
func parseRate(v json.RawMessage) *decimal.Decimal {
	v = bytes.TrimSpace(v)
	if len(v) == 0 || bytes.Equal(v, []byte("null")) {
		return nil
	}
	text := string(v)
	var s string
	if json.Unmarshal(v, &s) == nil {
		text = s
	}
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "%"))
	d, err := decimal.NewFromString(text)
	if err != nil {
		return nil
	}
	return &d
}

// Extractor defines an interface for pulling a Payload out of an external document.
type Extractor interface {
	Extract(ctx context.Context, req Request) (*Payload, error)
}
