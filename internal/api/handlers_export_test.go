package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"eiborservice/internal/repository"
	"eiborservice/internal/service"
)

func TestHandleHistoryChart(t *testing.T) {
	t.Run("renders PNG", func(t *testing.T) {
		svc := &mockRatesService{
			historyFunc: func(ctx context.Context, tenor string, from, to time.Time) ([]repository.RateObservation, error) {
				return historyRows(repository.Tenor3Month, "4.90", "4.93", "4.91"), nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/eibor/rates/history/chart.png?tenor=3_month", nil)
		w := httptest.NewRecorder()

		HandleHistoryChart(svc, zap.NewNop().Sugar()).ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		if ct := w.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("Expected image/png, got %s", ct)
		}
		if !bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")) {
			t.Error("Expected PNG signature")
		}
	})

	t.Run("single point returns 404", func(t *testing.T) {
		svc := &mockRatesService{
			historyFunc: func(ctx context.Context, tenor string, from, to time.Time) ([]repository.RateObservation, error) {
				return historyRows(repository.Tenor3Month, "4.90"), nil
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/eibor/rates/history/chart.png?tenor=3_month", nil)
		w := httptest.NewRecorder()

		HandleHistoryChart(svc, zap.NewNop().Sugar()).ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected status 404, got %d", w.Code)
		}
	})

	t.Run("invalid tenor returns 400", func(t *testing.T) {
		svc := &mockRatesService{
			historyFunc: func(ctx context.Context, tenor string, from, to time.Time) ([]repository.RateObservation, error) {
				return nil, service.ErrInvalidTenor
			},
		}

		req := httptest.NewRequest(http.MethodGet, "/eibor/rates/history/chart.png?tenor=2_month", nil)
		w := httptest.NewRecorder()

		HandleHistoryChart(svc, zap.NewNop().Sugar()).ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected status 400, got %d", w.Code)
		}
	})
}

func TestHandleHistoryExport(t *testing.T) {
	svc := &mockRatesService{
		historyFunc: func(ctx context.Context, tenor string, from, to time.Time) ([]repository.RateObservation, error) {
			return historyRows(repository.Tenor6Month, "4.80", "4.82"), nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/eibor/rates/history/export.xlsx?tenor=6_month", nil)
	w := httptest.NewRecorder()

	HandleHistoryExport(svc, zap.NewNop().Sugar()).ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, `filename="eibor_6_month.xlsx"`) {
		t.Errorf("Unexpected Content-Disposition: %s", cd)
	}
	// XLSX is a zip container.
	if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
		t.Error("Expected zip signature")
	}
}
