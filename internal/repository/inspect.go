package repository

import (
	"errors"
	"fmt"
	"io"
	"os"

	"FinSignal/internal/domain/models"
	"FinSignal/pkg/util"
)

// MarketSourceInfo describes the shape of a market CSV without indexing it.
type MarketSourceInfo struct {
	Path    string
	Columns []string
	Tickers []string // unique, normalized, first-seen order
	Rows    int
	Missing []string // required columns absent from the header
}

// HasTicker reports whether ticker (any case) appears in the source.
func (i *MarketSourceInfo) HasTicker(ticker string) bool {
	want := util.NormalizeTicker(ticker)
	for _, t := range i.Tickers {
		if t == want {
			return true
		}
	}
	return false
}

// InspectMarketSource reads the header and ticker column of a market CSV.
// A header lacking required columns is reported through Missing, not as an error.
func InspectMarketSource(path string) (*MarketSourceInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, models.ErrSourceUnavailable, err)
	}
	defer f.Close()

	r, header, err := newCSVReader(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	info := &MarketSourceInfo{Path: path, Columns: header}
	tickerCol := -1
	for _, name := range []string{colTicker, colDebtRatio, colLabel} {
		idx, err := columnIndex(header, name)
		if err != nil {
			info.Missing = append(info.Missing, name)
			continue
		}
		if name == colTicker {
			tickerCol = idx[name]
		}
	}

	seen := make(map[string]struct{})
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return info, fmt.Errorf("read %s: %w: %w", path, models.ErrSourceMalformed, err)
		}
		info.Rows++
		if tickerCol < 0 || tickerCol >= len(row) {
			continue
		}
		t := util.NormalizeTicker(row[tickerCol])
		if t == "" {
			continue
		}
		if _, ok := seen[t]; !ok {
			seen[t] = struct{}{}
			info.Tickers = append(info.Tickers, t)
		}
	}
	return info, nil
}
