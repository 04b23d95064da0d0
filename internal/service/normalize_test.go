package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eiborservice/internal/extractor"
	"eiborservice/internal/repository"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestParseRateDate(t *testing.T) {
	want := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	tests := []string{
		"12 March 2025",
		"12 Mar 2025",
		"12th March, 2025",
		"  12   March 2025 ",
		"March 12, 2025",
		"2025-03-12",
		"12/03/2025",
		"12-03-2025",
		"12-Mar-2025",
		"12.03.2025",
		"Wednesday, 12th March 2025",
		"Wed 12 Mar 2025",
	}
	for _, in := range tests {
		t.Run(in, func(t *testing.T) {
			got, err := ParseRateDate(in)
			require.NoError(t, err)
			assert.True(t, want.Equal(got), "got %s", got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	t.Run("day first when ambiguous", func(t *testing.T) {
		got, err := ParseRateDate("03/04/2025")
		require.NoError(t, err)
		assert.Equal(t, time.April, got.Month())
		assert.Equal(t, 3, got.Day())
	})

	for _, bad := range []string{"", "   ", "not a date", "latest"} {
		t.Run("invalid "+bad, func(t *testing.T) {
			_, err := ParseRateDate(bad)
			assert.Error(t, err)
		})
	}
}

func TestResolveRateDate(t *testing.T) {
	now := time.Date(2025, 3, 14, 23, 30, 0, 0, time.FixedZone("GST", 4*3600))

	t.Run("parsed", func(t *testing.T) {
		d, parsed, err := ResolveRateDate("12 March 2025", now, DatePolicyFallback)
		require.NoError(t, err)
		assert.True(t, parsed)
		assert.Equal(t, "2025-03-12", d.Format(repository.DateLayout))
	})

	t.Run("fallback uses utc date of now", func(t *testing.T) {
		d, parsed, err := ResolveRateDate("garbage", now, DatePolicyFallback)
		require.NoError(t, err)
		assert.False(t, parsed)
		assert.Equal(t, "2025-03-14", d.Format(repository.DateLayout))
	})

	t.Run("strict rejects", func(t *testing.T) {
		_, _, err := ResolveRateDate("garbage", now, DatePolicyStrict)
		assert.ErrorIs(t, err, ErrExtraction)
	})
}

func TestParseDatePolicy(t *testing.T) {
	p, err := ParseDatePolicy("")
	require.NoError(t, err)
	assert.Equal(t, DatePolicyFallback, p)

	p, err = ParseDatePolicy(" STRICT ")
	require.NoError(t, err)
	assert.Equal(t, DatePolicyStrict, p)

	_, err = ParseDatePolicy("lenient")
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	date := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)

	t.Run("change is rounded difference", func(t *testing.T) {
		rows := Normalize(&extractor.Payload{
			SixMonths:     dec("3.6764"),
			PrevSixMonths: dec("3.6734"),
		}, date)
		require.Len(t, rows, 1)
		assert.Equal(t, repository.Tenor6Month, rows[0].Tenor)
		assert.True(t, rows[0].DailyChange.Equal(decimal.RequireFromString("0.0030")))
		assert.Equal(t, "0.003", rows[0].DailyChange.String())
		assert.True(t, rows[0].PreviousRate.Valid)
	})

	t.Run("rounds to six places", func(t *testing.T) {
		rows := Normalize(&extractor.Payload{
			Overnight:     dec("5.12345678"),
			PrevOvernight: dec("5.1"),
		}, date)
		require.Len(t, rows, 1)
		assert.Equal(t, "0.023457", rows[0].DailyChange.String())
	})

	t.Run("no previous gives zero change", func(t *testing.T) {
		rows := Normalize(&extractor.Payload{OneMonth: dec("5.1")}, date)
		require.Len(t, rows, 1)
		assert.True(t, rows[0].DailyChange.IsZero())
		assert.False(t, rows[0].PreviousRate.Valid)
	})

	t.Run("missing tenor is excluded", func(t *testing.T) {
		rows := Normalize(&extractor.Payload{
			Overnight:   dec("5.24"),
			OneMonth:    dec("5.10"),
			ThreeMonths: dec("4.93"),
			OneYear:     dec("4.62"),
		}, date)
		require.Len(t, rows, 4)
		for _, r := range rows {
			assert.NotEqual(t, repository.Tenor6Month, r.Tenor)
			assert.NotEqual(t, repository.Tenor1Week, r.Tenor)
		}
	})

	t.Run("previous without latest is ignored", func(t *testing.T) {
		rows := Normalize(&extractor.Payload{PrevOneWeek: dec("5.0")}, date)
		assert.Empty(t, rows)
	})

	t.Run("maturity order", func(t *testing.T) {
		rows := Normalize(&extractor.Payload{
			OneYear:   dec("4.6"),
			Overnight: dec("5.2"),
			OneWeek:   dec("5.1"),
		}, date)
		require.Len(t, rows, 3)
		assert.Equal(t, []repository.Tenor{repository.TenorOvernight, repository.Tenor1Week, repository.Tenor1Year},
			[]repository.Tenor{rows[0].Tenor, rows[1].Tenor, rows[2].Tenor})
	})

	t.Run("placeholder rate excludes only its tenor", func(t *testing.T) {
		var p extractor.Payload
		require.NoError(t, json.Unmarshal([]byte(`{"latest_date":"12 March 2025","overnight":5.2,"one_week":"-","one_month":""}`), &p))
		rows := Normalize(&p, date)
		require.Len(t, rows, 1)
		assert.Equal(t, repository.TenorOvernight, rows[0].Tenor)
	})

	t.Run("nil payload", func(t *testing.T) {
		assert.Nil(t, Normalize(nil, date))
	})
}
