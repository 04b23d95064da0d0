package api

import (
	"errors"
	"net/http"

	"eiborservice/internal/repository"
	"eiborservice/internal/service"
)

// HandleFetchRates godoc
// @Summary Run one ingestion cycle
// @Description Scrapes the CBUAE EIBOR table, normalizes the latest and previous rows, and upserts them keyed by (rate_date, tenor). Runs synchronously with no retries. No request body is required.
// @Tags ingestion
// @Produce json
// @Success 200 {object} FetchResponse "Rates stored"
// @Failure 500 {object} FailureResponse "Configuration or persistence error"
// @Failure 502 {object} FailureResponse "Extraction service failed or returned unusable data"
// @Router /eibor/fetch [post]
func HandleFetchRates(svc service.IngestServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := svc.Run(r.Context())
		if err != nil {
			writeJSON(w, fetchErrorStatus(err), NewFailureResponse(err))
			return
		}

		writeJSON(w, http.StatusOK, NewFetchResponse(res))
	}
}

// NewFetchResponse converts a successful ingestion result into its wire shape.
func NewFetchResponse(res *service.IngestResult) FetchResponse {
	return FetchResponse{
		Success:    true,
		Date:       res.Date.Format(repository.DateLayout),
		RatesCount: res.RatesCount,
		Rates:      toRateDTOs(res.Rates),
	}
}

// NewFailureResponse converts an ingestion error into its wire shape.
func NewFailureResponse(err error) FailureResponse {
	return FailureResponse{Success: false, Error: fetchErrorMessage(err)}
}

func fetchErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrUpstream), errors.Is(err, service.ErrExtraction):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func fetchErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrConfiguration),
		errors.Is(err, service.ErrUpstream),
		errors.Is(err, service.ErrExtraction),
		errors.Is(err, service.ErrPersistence):
		return err.Error()
	default:
		return "Internal error"
	}
}

// HandleEnqueueFetch godoc
// @Summary Queue an ingestion cycle
// @Description Enqueues an ingestion task on the worker queue and returns immediately. At most one ingestion task is pending at a time.
// @Tags ingestion
// @Produce json
// @Success 202 {object} EnqueueResponse "Task accepted"
// @Failure 409 {object} ErrorResponse "An ingestion task is already queued"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /eibor/fetch/async [post]
func HandleEnqueueFetch(enq service.IngestEnqueuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taskID, err := enq.EnqueueIngest(r.Context())
		if err != nil {
			switch {
			case errors.Is(err, service.ErrAlreadyQueued):
				writeJSON(w, http.StatusConflict, ErrorResponse{Error: err.Error()})
			default:
				writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
			}
			return
		}
		writeJSON(w, http.StatusAccepted, EnqueueResponse{TaskID: taskID})
	}
}
