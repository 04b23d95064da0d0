package api

import (
	"context"
	"time"

	"eiborservice/internal/repository"
	"eiborservice/internal/service"
)

// mockIngestService implements service.IngestServiceInterface for testing.
type mockIngestService struct {
	runFunc func(ctx context.Context) (*service.IngestResult, error)
}

func (m *mockIngestService) Run(ctx context.Context) (*service.IngestResult, error) {
	return m.runFunc(ctx)
}

// mockEnqueuer implements service.IngestEnqueuer for testing.
type mockEnqueuer struct {
	enqueueFunc func(ctx context.Context) (string, error)
}

func (m *mockEnqueuer) EnqueueIngest(ctx context.Context) (string, error) {
	return m.enqueueFunc(ctx)
}

// mockRatesService implements service.RatesServiceInterface for testing.
type mockRatesService struct {
	latestFunc   func(ctx context.Context, tenors []string, limit int) ([]repository.RateObservation, error)
	snapshotFunc func(ctx context.Context) (*service.Snapshot, error)
	historyFunc  func(ctx context.Context, tenor string, from, to time.Time) ([]repository.RateObservation, error)
	estimateFunc func(ctx context.Context, req service.EstimateRequest) (*service.Estimate, error)
}

func (m *mockRatesService) Latest(ctx context.Context, tenors []string, limit int) ([]repository.RateObservation, error) {
	return m.latestFunc(ctx, tenors, limit)
}

func (m *mockRatesService) Snapshot(ctx context.Context) (*service.Snapshot, error) {
	return m.snapshotFunc(ctx)
}

func (m *mockRatesService) History(ctx context.Context, tenor string, from, to time.Time) ([]repository.RateObservation, error) {
	return m.historyFunc(ctx, tenor, from, to)
}

func (m *mockRatesService) Estimate(ctx context.Context, req service.EstimateRequest) (*service.Estimate, error) {
	return m.estimateFunc(ctx, req)
}
