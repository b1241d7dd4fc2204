package repository

import "FinSignal/internal/domain/models"

// SignalStore provides read-only access to the loaded indices.
// Tickers passed in must already be normalized.
type SignalStore interface {
	Narrative(ticker string) (models.NarrativeRecord, bool)
	LatestMarket(ticker string) (models.MarketRecord, bool)
}

type Metrics interface {
	RecordLoad(source string, records int)
	RecordLoadWarning(source string)
	RecordPrediction(regime string)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
