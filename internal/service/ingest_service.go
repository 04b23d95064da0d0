// Package service implements EIBOR ingestion and the read side built on the rate store.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"eiborservice/internal/events"
	"eiborservice/internal/extractor"
	"eiborservice/internal/repository"
)

// TaskTypeIngestRates is the Asynq task type for ingestion jobs.
const TaskTypeIngestRates = "eibor:ingest"

// IngestServiceInterface runs one fetch, normalize and store cycle.
type IngestServiceInterface interface {
	Run(ctx context.Context) (*IngestResult, error)
}

// IngestEnqueuer schedules an ingestion cycle on the task queue.
type IngestEnqueuer interface {
	EnqueueIngest(ctx context.Context) (taskID string, err error)
}

// IngestResult is what a successful cycle wrote.
type IngestResult struct {
	Date       time.Time
	RatesCount int
	Rates      []repository.RateObservation
}

// IngestOptions configures the extraction request and date handling.
type IngestOptions struct {
	Request    extractor.Request
	DatePolicy DatePolicy
}

// IngestService fetches the EIBOR table and upserts it into the rate store.
type IngestService struct {
	extractor extractor.Extractor
	repo      repository.RateRepository
	cache     CacheInvalidator
	publisher events.Publisher
	log       *zap.SugaredLogger
	opts      IngestOptions
	now       func() time.Time
}

// NewIngestService creates a new IngestService. cache and publisher may be nil.
func NewIngestService(ext extractor.Extractor, repo repository.RateRepository, cache CacheInvalidator,
	publisher events.Publisher, logger *zap.SugaredLogger, opts IngestOptions) *IngestService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if opts.DatePolicy == "" {
		opts.DatePolicy = DatePolicyFallback
	}
	return &IngestService{
		extractor: ext,
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       logger,
		opts:      opts,
		now:       time.Now,
	}
}

// Run performs one ingestion cycle. Nothing is written unless every row commits.
func (s *IngestService) Run(ctx context.Context) (*IngestResult, error) {
	s.log.Infow("Fetching EIBOR rates", "url", s.opts.Request.URL)

	payload, err := s.extractor.Extract(ctx, s.opts.Request)
	if err != nil {
		if !errors.Is(err, ErrConfiguration) && !errors.Is(err, ErrUpstream) {
			err = fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		s.log.Errorw("Extraction failed", "error", err)
		return nil, err
	}
	if payload == nil {
		return nil, fmt.Errorf("%w: extractor returned no payload", ErrExtraction)
	}

	rateDate, parsed, err := ResolveRateDate(payload.LatestDate, s.now(), s.opts.DatePolicy)
	if err != nil {
		s.log.Errorw("Rejecting cycle with unparseable date", "latest_date", payload.LatestDate, "error", err)
		return nil, err
	}
	if !parsed {
		s.log.Warnw("Unparseable latest_date, using current UTC date",
			"latest_date", payload.LatestDate, "rate_date", rateDate.Format(repository.DateLayout))
	}

	rows := Normalize(payload, rateDate)
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no tenor carried a rate", ErrExtraction)
	}

	if err := s.repo.UpsertBatch(ctx, rows); err != nil {
		s.log.Errorw("Upsert failed", "rate_date", rateDate.Format(repository.DateLayout), "error", err)
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	s.log.Infow("Upserted EIBOR rates",
		"rate_date", rateDate.Format(repository.DateLayout), "rates_count", len(rows))

	s.afterCommit(ctx, rateDate, rows)

	return &IngestResult{
		Date:       rateDate,
		RatesCount: len(rows),
		Rates:      rows,
	}, nil
}

func (s *IngestService) afterCommit(ctx context.Context, rateDate time.Time, rows []repository.RateObservation) {
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx); err != nil {
			s.log.Warnw("Failed to invalidate rates cache", "error", err)
		}
	}
	event := events.NewRatesUpdatedEvent(rateDate, rows, s.now())
	if err := s.publisher.PublishRatesUpdated(ctx, event); err != nil {
		s.log.Warnw("Failed to publish rates updated event", "rate_date", event.RateDate, "error", err)
	}
}

var _ IngestServiceInterface = (*IngestService)(nil)
