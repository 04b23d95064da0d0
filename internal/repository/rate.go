package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Tenor is the maturity bucket of a published EIBOR rate.
type Tenor string

// Tenor values, shared by the ingestion and read sides.
const (
	TenorOvernight Tenor = "overnight"
	Tenor1Week     Tenor = "1_week"
	Tenor1Month    Tenor = "1_month"
	Tenor3Month    Tenor = "3_month"
	Tenor6Month    Tenor = "6_month"
	Tenor1Year     Tenor = "1_year"
)

// AllTenors lists every tenor in ascending maturity.
var AllTenors = []Tenor{
	TenorOvernight,
	Tenor1Week,
	Tenor1Month,
	Tenor3Month,
	Tenor6Month,
	Tenor1Year,
}

// ErrUnknownTenor is returned by ParseTenor for keys outside AllTenors.
var ErrUnknownTenor = errors.New("unknown tenor")

// labels as they appear in the CBUAE table header
var tenorLabels = map[string]Tenor{
	"o/n":      TenorOvernight,
	"1 week":   Tenor1Week,
	"1 month":  Tenor1Month,
	"3 months": Tenor3Month,
	"6 months": Tenor6Month,
	"1 year":   Tenor1Year,
}

// ParseTenor accepts a canonical tenor key such as "3_month".
func ParseTenor(s string) (Tenor, error) {
	t := Tenor(strings.TrimSpace(s))
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTenor, s)
	}
	return t, nil
}

// TenorFromLabel maps a source column label ("O/N", "3 Months") to its tenor.
func TenorFromLabel(label string) (Tenor, bool) {
	t, ok := tenorLabels[strings.ToLower(strings.Join(strings.Fields(label), " "))]
	return t, ok
}

// Valid reports whether t is one of AllTenors.
func (t Tenor) Valid() bool {
	return t.Index() >= 0
}

// Index is the position of t in AllTenors, or -1.
func (t Tenor) Index() int {
	for i, known := range AllTenors {
		if known == t {
			return i
		}
	}
	return -1
}

// RateObservation is one stored row: the rate of one tenor on one date.
type RateObservation struct {
	RateDate     time.Time
	Tenor        Tenor
	Rate         decimal.Decimal
	PreviousRate decimal.NullDecimal
	DailyChange  decimal.Decimal
	UpdatedAt    time.Time
}

// DateOnly truncates t to midnight UTC of its calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DateLayout is the ISO 8601 date-only layout used on the wire.
const DateLayout = "2006-01-02"
