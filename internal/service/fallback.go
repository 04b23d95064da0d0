package service

import (
	"time"

	"github.com/shopspring/decimal"

	"eiborservice/internal/repository"
)

// Snapshot sources.
const (
	SourceLive     = "live"
	SourceFallback = "fallback"
)

// FallbackVersion identifies the published table the default dataset was copied from.
const FallbackVersion = "2025-03-12"

// PanelFixing is one contributor bank's 3 month submission.
type PanelFixing struct {
	Bank string
	Rate decimal.Decimal
}

// Snapshot is the newest rate of every tenor, either live or the labeled default dataset.
type Snapshot struct {
	Source       string
	Version      string
	Rates        []repository.RateObservation
	PanelFixings []PanelFixing
}

var fallbackRates = []struct {
	tenor  repository.Tenor
	rate   string
	change string
}{
	{repository.TenorOvernight, "5.2400", "0.0000"},
	{repository.Tenor1Month, "5.1250", "-0.0050"},
	{repository.Tenor3Month, "4.9310", "-0.0120"},
	{repository.Tenor6Month, "4.7680", "0.0030"},
	{repository.Tenor1Year, "4.6150", "-0.0080"},
}

var fallbackPanel = []struct {
	bank string
	rate string
}{
	{"Abu Dhabi Commercial Bank (ADCB)", "4.9300"},
	{"Emirates NBD", "4.9320"},
	{"HSBC", "4.9310"},
	{"Mashreq Bank", "4.9280"},
	{"First Abu Dhabi Bank (FAB)", "4.9330"},
	{"Dubai Islamic Bank (DIB)", "4.9290"},
	{"Abu Dhabi Islamic Bank (ADIB)", "4.9310"},
	{"Commercial Bank of Dubai (CBD)", "4.9320"},
	{"National Bank of Fujairah (NBF)", "4.9300"},
}

// FallbackSnapshot returns a fresh copy of the default dataset. It is
// never written to the rate store.
func FallbackSnapshot() *Snapshot {
	date, _ := time.Parse(repository.DateLayout, FallbackVersion)

	rates := make([]repository.RateObservation, 0, len(fallbackRates))
	for _, r := range fallbackRates {
		rate := decimal.RequireFromString(r.rate)
		change := decimal.RequireFromString(r.change)
		rates = append(rates, repository.RateObservation{
			RateDate:     date,
			Tenor:        r.tenor,
			Rate:         rate,
			PreviousRate: decimal.NewNullDecimal(rate.Sub(change)),
			DailyChange:  change,
		})
	}

	panel := make([]PanelFixing, 0, len(fallbackPanel))
	for _, p := range fallbackPanel {
		panel = append(panel, PanelFixing{Bank: p.bank, Rate: decimal.RequireFromString(p.rate)})
	}

	return &Snapshot{
		Source:       SourceFallback,
		Version:      FallbackVersion,
		Rates:        rates,
		PanelFixings: panel,
	}
}

func (s *Snapshot) rateFor(t repository.Tenor) (repository.RateObservation, bool) {
	for _, r := range s.Rates {
		if r.Tenor == t {
			return r, true
		}
	}
	return repository.RateObservation{}, false
}
