package repository

import (
	"slices"

	"FinSignal/internal/domain/models"
	domrepo "FinSignal/internal/domain/repository"
	"FinSignal/pkg/util"
)

// Dataset holds the market and narrative indices. It is built once and never
// mutated afterwards, so concurrent readers need no locking.
type Dataset struct {
	market     map[string][]models.MarketRecord
	narratives map[string]models.NarrativeRecord
	marketRows int
	report     LoadReport
}

// Stats summarises a Dataset.
type Stats struct {
	MarketTickers int `json:"market_tickers"`
	MarketRecords int `json:"market_records"`
	Narratives    int `json:"narratives"`
	Warnings      int `json:"load_warnings"`
}

// BuildDataset indexes records by normalized ticker. Market records keep their
// input order per ticker (last = most recent); for narratives the last
// occurrence of a ticker wins. Records with an empty ticker are dropped.
func BuildDataset(market []models.MarketRecord, narratives []models.NarrativeRecord) *Dataset {
	d := &Dataset{
		market:     make(map[string][]models.MarketRecord),
		narratives: make(map[string]models.NarrativeRecord, len(narratives)),
	}
	for _, rec := range market {
		t := util.NormalizeTicker(rec.Ticker)
		if t == "" {
			continue
		}
		rec.Ticker = t
		d.market[t] = append(d.market[t], rec)
		d.marketRows++
	}
	for _, n := range narratives {
		t := util.NormalizeTicker(n.Ticker)
		if t == "" {
			continue
		}
		n.Ticker = t
		d.narratives[t] = n
	}
	return d
}

// EmptyDataset returns a Dataset with no entries.
func EmptyDataset() *Dataset { return BuildDataset(nil, nil) }

func (d *Dataset) Narrative(ticker string) (models.NarrativeRecord, bool) {
	n, ok := d.narratives[ticker]
	return n, ok
}

// LatestMarket returns the last market record for ticker. An empty sequence
// reports false.
func (d *Dataset) LatestMarket(ticker string) (models.MarketRecord, bool) {
	rows := d.market[ticker]
	if len(rows) == 0 {
		return models.MarketRecord{}, false
	}
	return rows[len(rows)-1], true
}

// MarketHistory returns a copy of every market record for ticker in load order.
func (d *Dataset) MarketHistory(ticker string) []models.MarketRecord {
	return slices.Clone(d.market[ticker])
}

// HasMarket reports whether ticker has at least one market record.
func (d *Dataset) HasMarket(ticker string) bool { return len(d.market[ticker]) > 0 }

func (d *Dataset) Stats() Stats {
	return Stats{
		MarketTickers: len(d.market),
		MarketRecords: d.marketRows,
		Narratives:    len(d.narratives),
		Warnings:      len(d.report.Warnings),
	}
}

// Report returns the diagnostics collected while loading.
func (d *Dataset) Report() LoadReport { return d.report.clone() }

var _ domrepo.SignalStore = (*Dataset)(nil)
