// Package events publishes EIBOR rate-update notifications.
package events

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"eiborservice/internal/repository"
)

// EventTypeRatesUpdated is emitted after an ingestion cycle commits.
const EventTypeRatesUpdated = "EIBOR_RATES_UPDATED"

// RateRecord is one tenor entry of a RatesUpdatedEvent.
type RateRecord struct {
	Tenor        string              `json:"tenor"`
	Rate         decimal.Decimal     `json:"rate"`
	PreviousRate decimal.NullDecimal `json:"previous_rate"`
	DailyChange  decimal.Decimal     `json:"daily_change"`
}

// RatesUpdatedEvent describes the rows written by one ingestion cycle.
type RatesUpdatedEvent struct {
	EventType  string       `json:"event_type"`
	RateDate   string       `json:"rate_date"`
	RatesCount int          `json:"rates_count"`
	Rates      []RateRecord `json:"rates"`
	Timestamp  time.Time    `json:"timestamp"`
}

// NewRatesUpdatedEvent builds the event for rows stored under rateDate.
func NewRatesUpdatedEvent(rateDate time.Time, rows []repository.RateObservation, at time.Time) RatesUpdatedEvent {
	records := make([]RateRecord, 0, len(rows))
	for _, r := range rows {
		records = append(records, RateRecord{
			Tenor:        string(r.Tenor),
			Rate:         r.Rate,
			PreviousRate: r.PreviousRate,
			DailyChange:  r.DailyChange,
		})
	}
	return RatesUpdatedEvent{
		EventType:  EventTypeRatesUpdated,
		RateDate:   rateDate.Format(repository.DateLayout),
		RatesCount: len(records),
		Rates:      records,
		Timestamp:  at.UTC(),
	}
}

// Publisher sends rate-update events to downstream consumers.
type Publisher interface {
	PublishRatesUpdated(ctx context.Context, event RatesUpdatedEvent) error
	Close() error
}

// NopPublisher discards every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishRatesUpdated(context.Context, RatesUpdatedEvent) error { return nil }

func (NopPublisher) Close() error { return nil }

var _ Publisher = NopPublisher{}
