package service

import (
	"errors"

	"eiborservice/internal/extractor"
)

// Ingestion failures. Every one is terminal for the cycle.
var (
	// ErrConfiguration indicates missing credentials or source configuration.
	ErrConfiguration = extractor.ErrConfiguration
	// ErrUpstream indicates the extraction service failed or returned unusable data.
	ErrUpstream = extractor.ErrUpstream
	// ErrExtraction indicates the payload parsed but carried nothing that can be stored.
	ErrExtraction = errors.New("extraction error")
	// ErrPersistence indicates the rate store rejected the batch.
	ErrPersistence = errors.New("persistence error")
)

// Read-side and request validation errors.
var (
	// ErrInvalidTenor indicates an unknown or unsupported tenor key.
	ErrInvalidTenor = errors.New("invalid tenor")
	// ErrInvalidLimit indicates a limit outside 1..MaxLatestLimit.
	ErrInvalidLimit = errors.New("invalid limit")
	// ErrInvalidRange indicates a history window whose start is after its end.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrInvalidAmount indicates a non-positive or missing estimate input.
	ErrInvalidAmount = errors.New("invalid amount")
)

// ErrInternal indicates an internal server error.
var ErrInternal = errors.New("internal error")

// ErrInternalQueue indicates an internal queue error.
var ErrInternalQueue = errors.New("internal queue error")

// ErrAlreadyQueued indicates an ingestion task is already pending.
var ErrAlreadyQueued = errors.New("ingestion already queued")
