package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"eiborservice/internal/events"
	"eiborservice/internal/extractor"
	"eiborservice/internal/repository"
)

type mockExtractor struct {
	mock.Mock
}

func (m *mockExtractor) Extract(ctx context.Context, req extractor.Request) (*extractor.Payload, error) {
	args := m.Called(ctx, req)
	p, _ := args.Get(0).(*extractor.Payload)
	return p, args.Error(1)
}

type mockRateRepo struct {
	mock.Mock
}

func (m *mockRateRepo) UpsertBatch(ctx context.Context, rows []repository.RateObservation) error {
	return m.Called(ctx, rows).Error(0)
}

func (m *mockRateRepo) ListLatest(ctx context.Context, tenors []repository.Tenor, limit int) ([]repository.RateObservation, error) {
	args := m.Called(ctx, tenors, limit)
	rows, _ := args.Get(0).([]repository.RateObservation)
	return rows, args.Error(1)
}

func (m *mockRateRepo) ListLatestPerTenor(ctx context.Context) ([]repository.RateObservation, error) {
	args := m.Called(ctx)
	rows, _ := args.Get(0).([]repository.RateObservation)
	return rows, args.Error(1)
}

func (m *mockRateRepo) ListRange(ctx context.Context, tenor repository.Tenor, from, to time.Time) ([]repository.RateObservation, error) {
	args := m.Called(ctx, tenor, from, to)
	rows, _ := args.Get(0).([]repository.RateObservation)
	return rows, args.Error(1)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishRatesUpdated(ctx context.Context, event events.RatesUpdatedEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *mockPublisher) Close() error { return nil }

type mockInvalidator struct {
	mock.Mock
}

func (m *mockInvalidator) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
