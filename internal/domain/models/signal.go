package models

// Regime is the inferred market behaviour of a ticker.
type Regime string

const (
	RegimeStable       Regime = "Stable"
	RegimeStableGrowth Regime = "StableGrowth"
	RegimeVolatile     Regime = "Volatile"
	RegimeNoData       Regime = "NoData"
)

// MarketRecord is one market observation for a ticker.
// Columns other than ticker, debt_ratio and label are ignored.
type MarketRecord struct {
	Ticker    string
	DebtRatio float64
	Label     int // 0 or 1
}

// NarrativeRecord is the qualitative commentary attached to a ticker.
type NarrativeRecord struct {
	Ticker        string `json:"ticker"`
	Transcript    string `json:"transcript"`
	AlignmentFlag bool   `json:"alignment_flag"`
}

// Prediction is the answer to a single-ticker query.
type Prediction struct {
	ReliabilityScore float64 `json:"reliability_score"`
	Regime           Regime  `json:"regime"`
	NarrativeSummary string  `json:"narrative_summary"`
	IsConsistent     bool    `json:"is_consistent"`
}
