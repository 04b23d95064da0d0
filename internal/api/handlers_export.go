package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"eiborservice/internal/export"
	"eiborservice/internal/repository"
	"eiborservice/internal/service"
)

type renderFunc func(w io.Writer, tenor repository.Tenor, rows []repository.RateObservation) error

// HandleHistoryChart godoc
// @Summary Rate history chart
// @Description Renders one tenor's history as a PNG line chart. Same window rules as /eibor/rates/history.
// @Tags rates
// @Produce png
// @Param tenor query string true "Tenor key" Enums(overnight,1_week,1_month,3_month,6_month,1_year)
// @Param from query string false "Start date (YYYY-MM-DD)" format(date)
// @Param to query string false "End date (YYYY-MM-DD)" format(date)
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse "Invalid tenor or date range"
// @Failure 404 {object} ErrorResponse "Fewer than two observations in range"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /eibor/rates/history/chart.png [get]
func HandleHistoryChart(svc service.RatesServiceInterface, logger *zap.SugaredLogger) http.HandlerFunc {
	return historyFile(svc, logger, "image/png", "", export.RenderHistoryPNG)
}

// HandleHistoryExport godoc
// @Summary Rate history workbook
// @Description Exports one tenor's history as an XLSX workbook. Same window rules as /eibor/rates/history.
// @Tags rates
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param tenor query string true "Tenor key" Enums(overnight,1_week,1_month,3_month,6_month,1_year)
// @Param from query string false "Start date (YYYY-MM-DD)" format(date)
// @Param to query string false "End date (YYYY-MM-DD)" format(date)
// @Success 200 {file} binary
// @Failure 400 {object} ErrorResponse "Invalid tenor or date range"
// @Failure 404 {object} ErrorResponse "Fewer than two observations in range"
// @Failure 500 {object} ErrorResponse "Internal error"
// @Router /eibor/rates/history/export.xlsx [get]
func HandleHistoryExport(svc service.RatesServiceInterface, logger *zap.SugaredLogger) http.HandlerFunc {
	return historyFile(svc, logger,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", export.WriteHistoryXLSX)
}

// historyFile renders into a buffer so a render failure can still produce a JSON error.
func historyFile(svc service.RatesServiceInterface, logger *zap.SugaredLogger,
	contentType, attachmentExt string, render renderFunc) http.HandlerFunc {
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

		tenor := repository.Tenor(strings.ToLower(q.tenor))
		if len(rows) > 0 {
			tenor = rows[0].Tenor
		}

		var buf bytes.Buffer
		if err := render(&buf, tenor, rows); err != nil {
			if errors.Is(err, export.ErrNotEnoughData) {
				writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
				return
			}
			logger.Errorw("Failed to render rate history", "tenor", q.tenor, "content_type", contentType, "error", err)
			writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "Internal error"})
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		if attachmentExt != "" {
			w.Header().Set("Content-Disposition",
				fmt.Sprintf(`attachment; filename="eibor_%s.%s"`, tenor, attachmentExt))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = buf.WriteTo(w)
	}
}
