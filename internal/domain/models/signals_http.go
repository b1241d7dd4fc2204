package models

// Requests for prediction HTTP endpoints. Defined in domain for consistency and reuse.

type PredictionRequest struct {
	Ticker string `param:"ticker" json:"ticker" validate:"required"`
}
