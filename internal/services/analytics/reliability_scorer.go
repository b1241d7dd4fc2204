package analytics

import (
	"FinSignal/internal/domain/models"
	domsvc "FinSignal/internal/domain/service"
)

const (
	baseScore    = 70.0
	noDataScore  = 50.0
	lowDebtBonus = 15.0
	growthBonus  = 10.0

	// debt_ratio strictly below lowDebtRatio earns the bonus, strictly above
	// volatileDebtRatio flags the ticker as volatile.
	lowDebtRatio      = 0.5
	volatileDebtRatio = 0.6

	minScore = 0.0
	maxScore = 100.0
)

// ReliabilityScorer derives a mock reliability score and regime from the
// latest market record of a ticker.
type ReliabilityScorer struct{}

func NewReliabilityScorer() *ReliabilityScorer { return &ReliabilityScorer{} }

// Score returns (50, NoData) when rec is nil.
func (s *ReliabilityScorer) Score(rec *models.MarketRecord) (float64, models.Regime) {
	if rec == nil {
		return noDataScore, models.RegimeNoData
	}

	score := baseScore
	if rec.DebtRatio < lowDebtRatio {
		score += lowDebtBonus
	}
	if rec.Label == 1 {
		score += growthBonus
	}

	return clamp(score, minScore, maxScore), regimeFor(rec)
}

func regimeFor(rec *models.MarketRecord) models.Regime {
	switch {
	case rec.DebtRatio > volatileDebtRatio:
		return models.RegimeVolatile
	case rec.Label == 1:
		return models.RegimeStableGrowth
	default:
		return models.RegimeStable
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var _ domsvc.Scorer = (*ReliabilityScorer)(nil)
