package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"eiborservice/internal/repository"
)

// Estimator limits and defaults, taken from the site's business-loan calculator.
const (
	DefaultEstimateMonths = 12
	MaxEstimateMonths     = 360
)

var (
	maxEligibleAmount = decimal.NewFromInt(3_000_000)
	turnoverMultiple  = decimal.NewFromInt(8)
	defaultSpreadPct  = decimal.NewFromInt(2)
	hundred           = decimal.NewFromInt(100)
	twelve            = decimal.NewFromInt(12)
)

// EstimateRequest holds the calculator inputs. When Principal is zero the
// principal is derived from Turnover.
type EstimateRequest struct {
	Turnover  decimal.Decimal
	Principal decimal.Decimal
	Tenor     string
	SpreadPct decimal.NullDecimal
	Months    int
}

// Estimate is a monthly repayment quote priced off the latest EIBOR fixing.
type Estimate struct {
	Principal        decimal.Decimal
	Tenor            repository.Tenor
	BaseRatePct      decimal.Decimal
	SpreadPct        decimal.Decimal
	EffectiveRatePct decimal.Decimal
	Months           int
	MonthlyPayment   decimal.Decimal
	TotalRepayment   decimal.Decimal
	RateDate         time.Time
	RateSource       string
}

// EligibleAmount is the loan a business with the given annual turnover
// may borrow: one eighth of turnover, capped at AED 3,000,000.
func EligibleAmount(turnover decimal.Decimal) decimal.Decimal {
	if !turnover.IsPositive() {
		return decimal.Zero
	}
	return decimal.Min(turnover.Div(turnoverMultiple), maxEligibleAmount)
}

// MonthlyPayment returns the level installment P·r·(1+r)^n / ((1+r)^n − 1)
// with r the monthly rate, rounded to 2 places. It is zero when any input
// is not positive.
func MonthlyPayment(principal, annualRatePct decimal.Decimal, months int) decimal.Decimal {
	if !principal.IsPositive() || !annualRatePct.IsPositive() || months <= 0 {
		return decimal.Zero
	}
	r := annualRatePct.Div(hundred).Div(twelve)
	growth := decimal.NewFromInt(1).Add(r).Pow(decimal.NewFromInt(int64(months)))
	return principal.Mul(r).Mul(growth).Div(growth.Sub(decimal.NewFromInt(1))).Round(2)
}

// Estimate prices a loan off the newest rate of the requested tenor,
// falling back to the default dataset when the store has none.
func (s *RatesService) Estimate(ctx context.Context, req EstimateRequest) (*Estimate, error) {
	tenor := repository.Tenor3Month
	if req.Tenor != "" {
		t, err := s.estimateTenors.Parse(req.Tenor)
		if err != nil {
			return nil, err
		}
		tenor = t
	}

	principal := req.Principal
	if principal.IsZero() {
		principal = EligibleAmount(req.Turnover)
	}
	if !principal.IsPositive() {
		return nil, fmt.Errorf("%w: principal or turnover must be positive", ErrInvalidAmount)
	}

	months := req.Months
	if months == 0 {
		months = DefaultEstimateMonths
	}
	if months < 1 || months > MaxEstimateMonths {
		return nil, fmt.Errorf("%w: months must be between 1 and %d", ErrInvalidAmount, MaxEstimateMonths)
	}

	spread := defaultSpreadPct
	if req.SpreadPct.Valid {
		spread = req.SpreadPct.Decimal
	}
	if spread.IsNegative() {
		return nil, fmt.Errorf("%w: spread must not be negative", ErrInvalidAmount)
	}

	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	base, ok := snap.rateFor(tenor)
	source := snap.Source
	if !ok {
		base, _ = FallbackSnapshot().rateFor(tenor)
		source = SourceFallback
	}

	effective := base.Rate.Add(spread)
	monthly := MonthlyPayment(principal, effective, months)

	return &Estimate{
		Principal:        principal.Round(2),
		Tenor:            tenor,
		BaseRatePct:      base.Rate,
		SpreadPct:        spread,
		EffectiveRatePct: effective,
		Months:           months,
		MonthlyPayment:   monthly,
		TotalRepayment:   monthly.Mul(decimal.NewFromInt(int64(months))),
		RateDate:         base.RateDate,
		RateSource:       source,
	}, nil
}
