package service

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"

	"eiborservice/internal/extractor"
	"eiborservice/internal/repository"
)

// DatePolicy decides what happens when the source date cannot be parsed.
type DatePolicy string

const (
	// DatePolicyFallback labels the cycle with the current UTC date.
	DatePolicyFallback DatePolicy = "fallback"
	// DatePolicyStrict fails the cycle with ErrExtraction.
	DatePolicyStrict DatePolicy = "strict"
)

// ParseDatePolicy accepts "fallback" or "strict"; empty means fallback.
func ParseDatePolicy(s string) (DatePolicy, error) {
	switch p := DatePolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "", DatePolicyFallback:
		return DatePolicyFallback, nil
	case DatePolicyStrict:
		return p, nil
	default:
		return "", fmt.Errorf("unknown date policy %q", s)
	}
}

// CBUAE publishes day-first dates such as "12 March 2025" or "12th Mar, 2025".
var dateLayouts = []string{
	"2 January 2006",
	"2 Jan 2006",
	"January 2 2006",
	"Jan 2 2006",
	"Monday 2 January 2006",
	"Mon 2 Jan 2006",
	repository.DateLayout,
	"02/01/2006",
	"2/1/2006",
	"02-01-2006",
	"2-Jan-2006",
	"02.01.2006",
}

var errEmptyDate = errors.New("empty date")

var ordinalSuffix = regexp.MustCompile(`(?i)\b(\d{1,2})(st|nd|rd|th)\b`)

// ParseRateDate parses a free-text source date into a UTC calendar date.
func ParseRateDate(raw string) (time.Time, error) {
	s := ordinalSuffix.ReplaceAllString(raw, "$1")
	s = strings.ReplaceAll(s, ",", " ")
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return time.Time{}, errEmptyDate
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return repository.DateOnly(t), nil
		}
	}

	t, err := dateparse.ParseIn(s, time.UTC, dateparse.PreferMonthFirst(false))
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognised date %q: %w", raw, err)
	}
	return repository.DateOnly(t), nil
}

// ResolveRateDate returns the date a cycle is stored under. The bool
// reports whether raw was parsed; false means now's UTC date was used.
func ResolveRateDate(raw string, now time.Time, policy DatePolicy) (time.Time, bool, error) {
	t, err := ParseRateDate(raw)
	if err == nil {
		return t, true, nil
	}
	if policy == DatePolicyStrict {
		return time.Time{}, false, fmt.Errorf("%w: latest_date: %w", ErrExtraction, err)
	}
	return repository.DateOnly(now.UTC()), false, nil
}

type tenorSlot struct {
	tenor    repository.Tenor
	rate     func(*extractor.Payload) *decimal.Decimal
	previous func(*extractor.Payload) *decimal.Decimal
}

var tenorSlots = []tenorSlot{
	{repository.TenorOvernight,
		func(p *extractor.Payload) *decimal.Decimal { return p.Overnight },
		func(p *extractor.Payload) *decimal.Decimal { return p.PrevOvernight }},
	{repository.Tenor1Week,
		func(p *extractor.Payload) *decimal.Decimal { return p.OneWeek },
		func(p *extractor.Payload) *decimal.Decimal { return p.PrevOneWeek }},
	{repository.Tenor1Month,
		func(p *extractor.Payload) *decimal.Decimal { return p.OneMonth },
		func(p *extractor.Payload) *decimal.Decimal { return p.PrevOneMonth }},
	{repository.Tenor3Month,
		func(p *extractor.Payload) *decimal.Decimal { return p.ThreeMonths },
		func(p *extractor.Payload) *decimal.Decimal { return p.PrevThreeMonths }},
	{repository.Tenor6Month,
		func(p *extractor.Payload) *decimal.Decimal { return p.SixMonths },
		func(p *extractor.Payload) *decimal.Decimal { return p.PrevSixMonths }},
	{repository.Tenor1Year,
		func(p *extractor.Payload) *decimal.Decimal { return p.OneYear },
		func(p *extractor.Payload) *decimal.Decimal { return p.PrevOneYear }},
}

// changeScale is the number of fractional digits kept for daily_change.
const changeScale = 6

// Normalize maps payload slots to observations dated rateDate, in
// maturity order. Tenors without a latest rate are left out.
func Normalize(p *extractor.Payload, rateDate time.Time) []repository.RateObservation {
	if p == nil {
		return nil
	}
	rows := make([]repository.RateObservation, 0, len(tenorSlots))
	for _, slot := range tenorSlots {
		rate := slot.rate(p)
		if rate == nil {
			continue
		}
		row := repository.RateObservation{
			RateDate:    rateDate,
			Tenor:       slot.tenor,
			Rate:        *rate,
			DailyChange: decimal.Zero,
		}
		if prev := slot.previous(p); prev != nil {
			row.PreviousRate = decimal.NewNullDecimal(*prev)
			row.DailyChange = rate.Sub(*prev).Round(changeScale)
		}
		rows = append(rows, row)
	}
	return rows
}
