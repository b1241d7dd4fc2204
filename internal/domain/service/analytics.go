package service

import "FinSignal/internal/domain/models"

// Scorer maps the most recent market record of a ticker (nil when there is none)
// to a reliability score and a regime. Implementations must be pure.
type Scorer interface {
	Score(rec *models.MarketRecord) (float64, models.Regime)
}
