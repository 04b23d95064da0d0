// Package worker runs EIBOR ingestion as asynq tasks, on demand and on a schedule.
package worker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"eiborservice/internal/repository"
	"eiborservice/internal/service"
)

// NewIngestHandler returns a function to handle ingestion tasks.
func NewIngestHandler(svc service.IngestServiceInterface, logger *zap.SugaredLogger) func(context.Context, *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		taskID, _ := asynq.GetTaskID(ctx)
		retry, _ := asynq.GetRetryCount(ctx)

		res, err := svc.Run(ctx)
		if err != nil {
			logger.Errorw("Ingestion task failed", "task_id", taskID, "retry", retry, "error", err)
			// a missing API key will not fix itself between attempts
			if errors.Is(err, service.ErrConfiguration) {
				return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
			}
			return err
		}

		logger.Infow("Ingestion task completed",
			"task_id", taskID,
			"rate_date", res.Date.Format(repository.DateLayout),
			"rates_count", res.RatesCount,
		)
		return nil
	}
}

// NewIngestTask builds an ingestion task. uniqueTTL > 0 keeps at most one
// such task pending within that window.
func NewIngestTask(maxRetry int, timeout, uniqueTTL time.Duration) *asynq.Task {
	opts := []asynq.Option{
		asynq.MaxRetry(maxRetry),
		asynq.Timeout(timeout),
	}
	if uniqueTTL > 0 {
		opts = append(opts, asynq.Unique(uniqueTTL))
	}
	return asynq.NewTask(service.TaskTypeIngestRates, nil, opts...)
}

// AsynqEnqueuer is responsible for enqueuing ingestion tasks with the configured retries and timeouts.
type AsynqEnqueuer struct {
	client    *asynq.Client
	maxRetry  int
	timeout   time.Duration
	uniqueTTL time.Duration
}

// NewAsynqEnqueuer creates a new AsynqEnqueuer with the given client, retry limit, task timeout and uniqueness window.
func NewAsynqEnqueuer(client *asynq.Client, maxRetry int, timeout, uniqueTTL time.Duration) *AsynqEnqueuer {
	return &AsynqEnqueuer{
		client:    client,
		maxRetry:  maxRetry,
		timeout:   timeout,
		uniqueTTL: uniqueTTL,
	}
}

// EnqueueIngest enqueues an ingestion task and returns its ID.
func (e *AsynqEnqueuer) EnqueueIngest(ctx context.Context) (string, error) {
	info, err := e.client.EnqueueContext(ctx, NewIngestTask(e.maxRetry, e.timeout, e.uniqueTTL))
	if err != nil {
		if errors.Is(err, asynq.ErrDuplicateTask) {
			return "", service.ErrAlreadyQueued
		}
		return "", fmt.Errorf("%w: %w", service.ErrInternalQueue, err)
	}
	return info.ID, nil
}

var _ service.IngestEnqueuer = (*AsynqEnqueuer)(nil)

// RegisterSchedule registers the periodic ingestion task on scheduler.
func RegisterSchedule(scheduler *asynq.Scheduler, cronspec string, maxRetry int, timeout, uniqueTTL time.Duration) (string, error) {
	entryID, err := scheduler.Register(cronspec, NewIngestTask(maxRetry, timeout, uniqueTTL))
	if err != nil {
		return "", fmt.Errorf("register ingestion schedule %q: %w", cronspec, err)
	}
	return entryID, nil
}
