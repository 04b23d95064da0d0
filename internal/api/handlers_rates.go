package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"eiborservice/internal/repository"
	"eiborservice/internal/service"
)

// HandleGetLatestRates godoc
// @Summary Latest rates for a tenor set
// @Description Returns the N most recent rows for the given tenors, newest date first. Omitting tenor selects all tenors.
// @Tags rates
// @Produce json
// @Param tenor query []string false "Tenor keys, repeated or comma separated" collectionFormat(multi) Enums(overnight,1_week,1_month,3_month,6_month,1_year)
// @Param limit query int false "Maximum rows (default 6, max 500)" minimum(1) maximum(500)
// @Success 200 {object} RatesResponse
// @Failure 400 {object} ErrorResponse "Invalid tenor or limit"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /eibor/rates/latest [get]
func HandleGetLatestRates(svc service.RatesServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "limit must be a positive integer"})
				return
			}
			limit = n
		}

		rows, err := svc.Latest(r.Context(), tenorParams(r), limit)
		if err != nil {
			writeReadError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, RatesResponse{Rates: toRateDTOs(rows)})
	}
}

// HandleGetSnapshot godoc
// @Summary Newest rate of every tenor
// @Description Returns the newest stored row per tenor. When the store is empty the versioned default dataset is returned with source=fallback.
// @Tags rates
// @Produce json
// @Success 200 {object} SnapshotResponse
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /eibor/rates/snapshot [get]
func HandleGetSnapshot(svc service.RatesServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, err := svc.Snapshot(r.Context())
		if err != nil {
			writeReadError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSnapshotResponse(snap))
	}
}

// HandleGetHistory godoc
// @Summary Rate history for one tenor
// @Description Returns rows for one tenor with from <= rate_date <= to, oldest first. Defaults to the last 6 months.
// @Tags rates
// @Produce json
// @Param tenor query string true "Tenor key" Enums(overnight,1_week,1_month,3_month,6_month,1_year)
// @Param from query string false "Start date (YYYY-MM-DD)" format(date)
// @Param to query string false "End date (YYYY-MM-DD)" format(date)
// @Success 200 {object} HistoryResponse
// @Failure 400 {object} ErrorResponse "Invalid tenor or date range"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /eibor/rates/history [get]
func HandleGetHistory(svc service.RatesServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, ok := parseHistoryQuery(w, r)
		if !ok {
			return
		}
		rows, err := svc.History(r.Context(), q.tenor, q.from, q.to)
		if err != nil {
			writeReadError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, HistoryResponse{
			Tenor: q.tenor,
			From:  formatDate(q.from),
			To:    formatDate(q.to),
			Rates: toRateDTOs(rows),
		})
	}
}

// HandleEstimate godoc
// @Summary Estimate a business loan repayment
// @Description Prices a level monthly installment off the newest EIBOR fixing plus a bank spread. Without a principal the eligible amount is turnover/8, capped at AED 3,000,000.
// @Tags calculator
// @Accept json
// @Produce json
// @Param request body EstimateRequest true "Loan inputs"
// @Success 200 {object} EstimateResponse
// @Failure 400 {object} ErrorResponse "Invalid input"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /eibor/estimate [post]
func HandleEstimate(svc service.RatesServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req EstimateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON"})
			return
		}
		est, err := svc.Estimate(r.Context(), req.toService())
		if err != nil {
			writeReadError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toEstimateResponse(est))
	}
}

func writeReadError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidTenor),
		errors.Is(err, service.ErrInvalidLimit),
		errors.Is(err, service.ErrInvalidRange),
		errors.Is(err, service.ErrInvalidAmount):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
	}
}

// tenorParams accepts ?tenor=a&tenor=b as well as ?tenor=a,b.
func tenorParams(r *http.Request) []string {
	var out []string
	for _, v := range r.URL.Query()["tenor"] {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

type historyQuery struct {
	tenor    string
	from, to time.Time
}

func parseHistoryQuery(w http.ResponseWriter, r *http.Request) (historyQuery, bool) {
	q := historyQuery{tenor: strings.TrimSpace(r.URL.Query().Get("tenor"))}
	if q.tenor == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "tenor query param is required"})
		return q, false
	}
	for _, p := range []struct {
		name string
		dst  *time.Time
	}{{"from", &q.from}, {"to", &q.to}} {
		raw := r.URL.Query().Get(p.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(repository.DateLayout, raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("%s must be a date in YYYY-MM-DD format", p.name)})
			return q, false
		}
		*p.dst = t
	}
	return q, true
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(repository.DateLayout)
}
