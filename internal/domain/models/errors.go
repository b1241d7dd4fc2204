package models

import "errors"

var (
	// ErrTickerUnknown means the ticker has no narrative entry.
	ErrTickerUnknown = errors.New("ticker unknown")

	// ErrSourceUnavailable means a data source is missing or unreadable.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSourceMalformed means a data source could not be parsed.
	ErrSourceMalformed = errors.New("source malformed")
)
