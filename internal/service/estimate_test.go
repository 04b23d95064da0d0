package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"eiborservice/internal/repository"
)

func TestEligibleAmount(t *testing.T) {
	tests := []struct {
		turnover string
		want     string
	}{
		{"5000000", "625000"},
		{"24000000", "3000000"},
		{"40000000", "3000000"},
		{"0", "0"},
		{"-10", "0"},
	}
	for _, tc := range tests {
		t.Run(tc.turnover, func(t *testing.T) {
			got := EligibleAmount(decimal.RequireFromString(tc.turnover))
			assert.True(t, got.Equal(decimal.RequireFromString(tc.want)), "got %s", got)
		})
	}
}

func TestMonthlyPayment(t *testing.T) {
	got := MonthlyPayment(decimal.NewFromInt(100000), decimal.NewFromInt(12), 12)
	assert.Equal(t, "8884.88", got.String())

	assert.True(t, MonthlyPayment(decimal.Zero, decimal.NewFromInt(5), 12).IsZero())
	assert.True(t, MonthlyPayment(decimal.NewFromInt(1000), decimal.Zero, 12).IsZero())
	assert.True(t, MonthlyPayment(decimal.NewFromInt(1000), decimal.NewFromInt(5), 0).IsZero())
}

func TestRatesService_Estimate(t *testing.T) {
	live := []repository.RateObservation{
		obs("2025-03-12", repository.Tenor3Month, "4.93"),
		obs("2025-03-12", repository.Tenor6Month, "4.77"),
	}

	t.Run("defaults from turnover with live rate", func(t *testing.T) {
		repo := new(mockRateRepo)
		repo.On("ListLatestPerTenor", mock.Anything).Return(live, nil).Once()

		est, err := NewRatesService(repo, nil, testLogger()).Estimate(context.Background(), EstimateRequest{
			Turnover: decimal.NewFromInt(5_000_000),
		})
		require.NoError(t, err)
		assert.Equal(t, repository.Tenor3Month, est.Tenor)
		assert.Equal(t, "625000", est.Principal.String())
		assert.Equal(t, "6.93", est.EffectiveRatePct.String())
		assert.Equal(t, 12, est.Months)
		assert.Equal(t, SourceLive, est.RateSource)
		assert.True(t, est.MonthlyPayment.IsPositive())
		assert.True(t, est.TotalRepayment.Equal(est.MonthlyPayment.Mul(decimal.NewFromInt(12))))
	})

	t.Run("explicit principal tenor and zero spread", func(t *testing.T) {
		repo := new(mockRateRepo)
		repo.On("ListLatestPerTenor", mock.Anything).Return(live, nil).Once()

		est, err := NewRatesService(repo, nil, testLogger()).Estimate(context.Background(), EstimateRequest{
			Principal: decimal.NewFromInt(100000),
			Tenor:     "6_month",
			SpreadPct: decimal.NewNullDecimal(decimal.Zero),
			Months:    24,
		})
		require.NoError(t, err)
		assert.Equal(t, "4.77", est.EffectiveRatePct.String())
		assert.Equal(t, 24, est.Months)
	})

	t.Run("tenor missing from live data uses fallback rate", func(t *testing.T) {
		repo := new(mockRateRepo)
		repo.On("ListLatestPerTenor", mock.Anything).Return(live[:1], nil).Once()

		est, err := NewRatesService(repo, nil, testLogger()).Estimate(context.Background(), EstimateRequest{
			Principal: decimal.NewFromInt(100000),
			Tenor:     "6_month",
		})
		require.NoError(t, err)
		assert.Equal(t, SourceFallback, est.RateSource)
		assert.Equal(t, "4.768", est.BaseRatePct.String())
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewRatesService(new(mockRateRepo), nil, testLogger())
		ctx := context.Background()

		_, err := svc.Estimate(ctx, EstimateRequest{Principal: decimal.NewFromInt(1), Tenor: "overnight"})
		assert.ErrorIs(t, err, ErrInvalidTenor)

		_, err = svc.Estimate(ctx, EstimateRequest{})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = svc.Estimate(ctx, EstimateRequest{Principal: decimal.NewFromInt(1), Months: MaxEstimateMonths + 1})
		assert.ErrorIs(t, err, ErrInvalidAmount)

		_, err = svc.Estimate(ctx, EstimateRequest{
			Principal: decimal.NewFromInt(1),
			SpreadPct: decimal.NewNullDecimal(decimal.NewFromInt(-1)),
		})
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}
