package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"eiborservice/internal/repository"
)

// Read-side limits.
const (
	DefaultLatestLimit   = 6
	MaxLatestLimit       = 500
	DefaultHistoryMonths = 6
)

// RatesServiceInterface defines the read operations consumed by presentation clients.
type RatesServiceInterface interface {
	Latest(ctx context.Context, tenors []string, limit int) ([]repository.RateObservation, error)
	Snapshot(ctx context.Context) (*Snapshot, error)
	History(ctx context.Context, tenor string, from, to time.Time) ([]repository.RateObservation, error)
	Estimate(ctx context.Context, req EstimateRequest) (*Estimate, error)
}

// RatesService serves stored EIBOR rates.
type RatesService struct {
	repo           repository.RateRepository
	cache          *RatesCache
	validator      Validator
	estimateTenors Validator
	group          singleflight.Group
	log            *zap.SugaredLogger
	now            func() time.Time
}

// NewRatesService creates a new RatesService. cache may be nil.
func NewRatesService(repo repository.RateRepository, cache *RatesCache, logger *zap.SugaredLogger) *RatesService {
	return &RatesService{
		repo:           repo,
		cache:          cache,
		validator:      NewValidator(),
		estimateTenors: NewValidator(repository.Tenor3Month, repository.Tenor6Month),
		log:            logger,
		now:            time.Now,
	}
}

// Latest returns up to limit rows for the given tenors, newest date first.
// No tenors means all of them; a zero limit means DefaultLatestLimit.
func (s *RatesService) Latest(ctx context.Context, tenors []string, limit int) ([]repository.RateObservation, error) {
	parsed, err := parseTenors(s.validator, tenors)
	if err != nil {
		return nil, err
	}
	if limit == 0 {
		limit = DefaultLatestLimit
	}
	if limit < 0 || limit > MaxLatestLimit {
		return nil, fmt.Errorf("%w: must be between 1 and %d, got %d", ErrInvalidLimit, MaxLatestLimit, limit)
	}

	key := latestCacheKey(parsed, limit)
	return s.cachedRead(ctx, key, func(ctx context.Context) ([]repository.RateObservation, error) {
		return s.repo.ListLatest(ctx, parsed, limit)
	})
}

// Snapshot returns the newest row of every tenor, or the labeled fallback
// dataset when the store holds nothing.
func (s *RatesService) Snapshot(ctx context.Context) (*Snapshot, error) {
	rows, err := s.cachedRead(ctx, snapshotCacheKey(), s.repo.ListLatestPerTenor)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		s.log.Infow("Rate store is empty, serving fallback dataset", "version", FallbackVersion)
		return FallbackSnapshot(), nil
	}
	return &Snapshot{Source: SourceLive, Rates: rows}, nil
}

// History returns one tenor's rows with from <= rate_date <= to, oldest first.
// A zero to means today; a zero from means DefaultHistoryMonths before to.
func (s *RatesService) History(ctx context.Context, tenor string, from, to time.Time) ([]repository.RateObservation, error) {
	t, err := s.validator.Parse(tenor)
	if err != nil {
		return nil, err
	}
	from, to, err = s.historyWindow(from, to)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.ListRange(ctx, t, from, to)
	if err != nil {
		s.log.Errorw("DB error listing rate history", "tenor", t, "error", err)
		return nil, ErrInternal
	}
	return rows, nil
}

func (s *RatesService) historyWindow(from, to time.Time) (time.Time, time.Time, error) {
	if to.IsZero() {
		to = s.now().UTC()
	}
	to = repository.DateOnly(to)
	if from.IsZero() {
		from = to.AddDate(0, -DefaultHistoryMonths, 0)
	}
	from = repository.DateOnly(from)
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from %s is after to %s",
			ErrInvalidRange, from.Format(repository.DateLayout), to.Format(repository.DateLayout))
	}
	return from, to, nil
}

// cachedRead serves key from Redis, collapsing concurrent misses into one store query.
func (s *RatesService) cachedRead(ctx context.Context, key string,
	load func(context.Context) ([]repository.RateObservation, error)) ([]repository.RateObservation, error) {
	if rows, ok := s.cache.get(ctx, key); ok {
		return rows, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		rows, err := load(ctx)
		if err != nil {
			return nil, err
		}
		if len(rows) > 0 {
			s.cache.set(ctx, key, rows)
		}
		return rows, nil
	})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		s.log.Errorw("DB error reading rates", "key", key, "error", err)
		return nil, ErrInternal
	}
	rows, _ := v.([]repository.RateObservation)
	return rows, nil
}

var _ RatesServiceInterface = (*RatesService)(nil)
