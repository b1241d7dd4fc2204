package analytics

import (
	"testing"

	"FinSignal/internal/domain/models"

	"github.com/stretchr/testify/assert"
)

func TestScoreWithoutMarketData(t *testing.T) {
	score, regime := NewReliabilityScorer().Score(nil)
	assert.Equal(t, 50.0, score)
	assert.Equal(t, models.RegimeNoData, regime)
}

func TestScore(t *testing.T) {
	cases := []struct {
		name      string
		debt      float64
		label     int
		wantScore float64
		wantReg   models.Regime
	}{
		{"low debt growth", 0.4, 1, 95, models.RegimeStableGrowth},
		{"high debt flat", 0.7, 0, 70, models.RegimeVolatile},
		{"high debt growth", 0.9, 1, 80, models.RegimeVolatile},
		{"mid debt flat", 0.55, 0, 70, models.RegimeStable},
		{"mid debt growth", 0.55, 1, 80, models.RegimeStableGrowth},
		{"low debt flat", 0.1, 0, 85, models.RegimeStable},
		{"debt exactly 0.5 gets no bonus", 0.5, 0, 70, models.RegimeStable},
		{"debt exactly 0.6 is not volatile", 0.6, 0, 70, models.RegimeStable},
		{"debt exactly 0.6 with growth", 0.6, 1, 80, models.RegimeStableGrowth},
		{"negative debt", -1, 1, 95, models.RegimeStableGrowth},
		{"label other than one", 0.4, 2, 85, models.RegimeStable},
	}

	s := NewReliabilityScorer()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, regime := s.Score(&models.MarketRecord{Ticker: "T", DebtRatio: tc.debt, Label: tc.label})
			assert.Equal(t, tc.wantScore, score)
			assert.Equal(t, tc.wantReg, regime)
		})
	}
}

func TestScoreStaysInRange(t *testing.T) {
	s := NewReliabilityScorer()
	for _, debt := range []float64{-1e9, -1, 0, 0.25, 0.4999, 0.5, 0.5001, 0.6, 0.6001, 1, 1e9} {
		for _, label := range []int{0, 1} {
			score, _ := s.Score(&models.MarketRecord{DebtRatio: debt, Label: label})
			assert.GreaterOrEqual(t, score, 0.0)
			assert.LessOrEqual(t, score, 100.0)
		}
	}
}

func TestScoreIsDeterministic(t *testing.T) {
	s := NewReliabilityScorer()
	rec := &models.MarketRecord{Ticker: "AAPL", DebtRatio: 0.42, Label: 1}
	firstScore, firstRegime := s.Score(rec)
	for i := 0; i < 100; i++ {
		score, regime := s.Score(rec)
		assert.Equal(t, firstScore, score)
		assert.Equal(t, firstRegime, regime)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, clamp(-5, 0, 100))
	assert.Equal(t, 100.0, clamp(105, 0, 100))
	assert.Equal(t, 42.0, clamp(42, 0, 100))
}
