package usecase

import (
	"context"
	"fmt"
	"time"

	"FinSignal/internal/domain/models"
	domrepo "FinSignal/internal/domain/repository"
	domsvc "FinSignal/internal/domain/service"
	"FinSignal/pkg/util"
)

// PredictionService joins narrative and market data for a single ticker.
// The store must be fully loaded before the service is constructed.
type PredictionService struct {
	store   domrepo.SignalStore
	scorer  domsvc.Scorer
	metrics domrepo.Metrics
}

func NewPredictionService(store domrepo.SignalStore, scorer domsvc.Scorer) *PredictionService {
	return &PredictionService{store: store, scorer: scorer}
}

// SetMetrics injects a metrics recorder.
func (s *PredictionService) SetMetrics(m domrepo.Metrics) { s.metrics = m }

// GetPrediction returns models.ErrTickerUnknown when the ticker has no
// narrative, even if market rows exist for it.
func (s *PredictionService) GetPrediction(_ context.Context, ticker string) (models.Prediction, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.RecordLatency("predict", time.Since(start).Seconds())
		}
	}()

	ticker = util.NormalizeTicker(ticker)
	narrative, ok := s.store.Narrative(ticker)
	if !ok {
		if s.metrics != nil {
			s.metrics.RecordError("ticker_unknown")
		}
		return models.Prediction{}, fmt.Errorf("ticker %q: %w", ticker, models.ErrTickerUnknown)
	}

	var latest *models.MarketRecord
	if rec, ok := s.store.LatestMarket(ticker); ok {
		latest = &rec
	}
	score, regime := s.scorer.Score(latest)

	if s.metrics != nil {
		s.metrics.RecordPrediction(string(regime))
	}
	return models.Prediction{
		ReliabilityScore: score,
		Regime:           regime,
		NarrativeSummary: narrative.Transcript,
		IsConsistent:     narrative.AlignmentFlag,
	}, nil
}
