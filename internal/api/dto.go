package api

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"eiborservice/internal/repository"
	"eiborservice/internal/service"
)

// RateDTO is one stored observation. Rates are serialized as JSON numbers.
type RateDTO struct {
	RateDate     string       `json:"rate_date" example:"2025-03-12"`
	Tenor        string       `json:"tenor" example:"3_month"`
	Rate         json.Number  `json:"rate" swaggertype:"number" example:"4.93"`
	PreviousRate *json.Number `json:"previous_rate" swaggertype:"number" example:"4.942"`
	DailyChange  json.Number  `json:"daily_change" swaggertype:"number" example:"-0.012"`
}

func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func toRateDTO(r repository.RateObservation) RateDTO {
	dto := RateDTO{
		RateDate:    r.RateDate.Format(repository.DateLayout),
		Tenor:       string(r.Tenor),
		Rate:        number(r.Rate),
		DailyChange: number(r.DailyChange),
	}
	if r.PreviousRate.Valid {
		prev := number(r.PreviousRate.Decimal)
		dto.PreviousRate = &prev
	}
	return dto
}

func toRateDTOs(rows []repository.RateObservation) []RateDTO {
	out := make([]RateDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, toRateDTO(r))
	}
	return out
}

// FetchResponse is returned by a successful ingestion run.
type FetchResponse struct {
	Success    bool      `json:"success" example:"true"`
	Date       string    `json:"date" example:"2025-03-12"`
	RatesCount int       `json:"rates_count" example:"5"`
	Rates      []RateDTO `json:"rates"`
}

// FailureResponse is returned when an ingestion run fails.
type FailureResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"extraction upstream error: firecrawl returned status 429"`
}

// EnqueueResponse represents the response for an accepted async ingestion
type EnqueueResponse struct {
	TaskID string `json:"task_id" example:"3f0f6a9e-8d1c-4b7a-9b0e-1c2d3e4f5a6b"`
}

// RatesResponse lists observations.
type RatesResponse struct {
	Rates []RateDTO `json:"rates"`
}

// PanelFixingDTO is one contributor bank's submission in the fallback dataset.
type PanelFixingDTO struct {
	Bank string      `json:"bank" example:"Emirates NBD"`
	Rate json.Number `json:"rate" swaggertype:"number" example:"4.932"`
}

// SnapshotResponse is the newest rate of every tenor.
type SnapshotResponse struct {
	Source       string           `json:"source" example:"live" enums:"live,fallback"`
	Version      string           `json:"version,omitempty" example:"2025-03-12"`
	Rates        []RateDTO        `json:"rates"`
	PanelFixings []PanelFixingDTO `json:"panel_fixings,omitempty"`
}

func toSnapshotResponse(s *service.Snapshot) SnapshotResponse {
	resp := SnapshotResponse{
		Source:  s.Source,
		Version: s.Version,
		Rates:   toRateDTOs(s.Rates),
	}
	for _, p := range s.PanelFixings {
		resp.PanelFixings = append(resp.PanelFixings, PanelFixingDTO{Bank: p.Bank, Rate: number(p.Rate)})
	}
	return resp
}

// HistoryResponse is the history of one tenor.
type HistoryResponse struct {
	Tenor string    `json:"tenor" example:"3_month"`
	From  string    `json:"from" example:"2025-01-01"`
	To    string    `json:"to" example:"2025-03-31"`
	Rates []RateDTO `json:"rates"`
}

// EstimateRequest represents the request body for a loan estimate.
// Either principal or turnover is required.
type EstimateRequest struct {
	Turnover  *decimal.Decimal `json:"turnover,omitempty" swaggertype:"number" example:"5000000"`
	Principal *decimal.Decimal `json:"principal,omitempty" swaggertype:"number" example:"625000"`
	Tenor     string           `json:"tenor,omitempty" example:"3_month" enums:"3_month,6_month"`
	SpreadPct *decimal.Decimal `json:"spread_pct,omitempty" swaggertype:"number" example:"2"`
	Months    int              `json:"months,omitempty" example:"12"`
}

func (r EstimateRequest) toService() service.EstimateRequest {
	req := service.EstimateRequest{Tenor: r.Tenor, Months: r.Months}
	if r.Turnover != nil {
		req.Turnover = *r.Turnover
	}
	if r.Principal != nil {
		req.Principal = *r.Principal
	}
	if r.SpreadPct != nil {
		req.SpreadPct = decimal.NewNullDecimal(*r.SpreadPct)
	}
	return req
}

// EstimateResponse is a monthly repayment quote.
type EstimateResponse struct {
	Principal        json.Number `json:"principal" swaggertype:"number" example:"625000"`
	Tenor            string      `json:"tenor" example:"3_month"`
	BaseRatePct      json.Number `json:"base_rate_pct" swaggertype:"number" example:"4.93"`
	SpreadPct        json.Number `json:"spread_pct" swaggertype:"number" example:"2"`
	EffectiveRatePct json.Number `json:"effective_rate_pct" swaggertype:"number" example:"6.93"`
	Months           int         `json:"months" example:"12"`
	MonthlyPayment   json.Number `json:"monthly_payment" swaggertype:"number" example:"54039.12"`
	TotalRepayment   json.Number `json:"total_repayment" swaggertype:"number" example:"648469.44"`
	RateDate         string      `json:"rate_date" example:"2025-03-12"`
	RateSource       string      `json:"rate_source" example:"live" enums:"live,fallback"`
}

func toEstimateResponse(e *service.Estimate) EstimateResponse {
	return EstimateResponse{
		Principal:        number(e.Principal),
		Tenor:            string(e.Tenor),
		BaseRatePct:      number(e.BaseRatePct),
		SpreadPct:        number(e.SpreadPct),
		EffectiveRatePct: number(e.EffectiveRatePct),
		Months:           e.Months,
		MonthlyPayment:   number(e.MonthlyPayment),
		TotalRepayment:   number(e.TotalRepayment),
		RateDate:         e.RateDate.Format(repository.DateLayout),
		RateSource:       e.RateSource,
	}
}
