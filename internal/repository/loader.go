package repository

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"FinSignal/internal/domain/models"
	domrepo "FinSignal/internal/domain/repository"
	applogger "FinSignal/pkg/logger"
)

const (
	SourceMarket    = "market"
	SourceNarrative = "narrative"

	colTicker    = "ticker"
	colDebtRatio = "debt_ratio"
	colLabel     = "label"
)

// LoadReport collects the diagnostics of a load. Loading never fails; every
// problem lands here instead.
type LoadReport struct {
	Warnings          []error
	SkippedMarketRows int
	SkippedNarratives int
}

// Has reports whether any warning matches target.
func (r LoadReport) Has(target error) bool {
	for _, w := range r.Warnings {
		if errors.Is(w, target) {
			return true
		}
	}
	return false
}

// LoaderOption configures Loader.
type LoaderOption func(*Loader)

// Loader reads the market (CSV) and narrative (JSON list) sources.
type Loader struct {
	marketPath    string
	narrativePath string
	l             *applogger.Logger
	m             domrepo.Metrics
}

func NewLoader(marketPath, narrativePath string, opts ...LoaderOption) *Loader {
	ld := &Loader{
		marketPath:    marketPath,
		narrativePath: narrativePath,
		l:             applogger.Nop(),
	}
	for _, opt := range opts {
		opt(ld)
	}
	return ld
}

// WithLoaderLogger injects a structured logger.
func WithLoaderLogger(l *applogger.Logger) LoaderOption {
	return func(ld *Loader) {
		if l != nil {
			ld.l = l
		}
	}
}

// WithLoaderMetrics injects a metrics recorder.
func WithLoaderMetrics(m domrepo.Metrics) LoaderOption {
	return func(ld *Loader) { ld.m = m }
}

// Load reads both sources and builds the Dataset. A missing or malformed
// source yields an empty index for that source and a warning.
func (ld *Loader) Load() *Dataset {
	start := time.Now()
	var report LoadReport

	market, skipped, err := readMarket(ld.marketPath)
	report.SkippedMarketRows = len(skipped)
	if err != nil {
		market = nil
		report.Warnings = append(report.Warnings, err)
		ld.warn(SourceMarket, ld.marketPath, err)
	}
	for _, w := range skipped {
		report.Warnings = append(report.Warnings, w)
		ld.warn(SourceMarket, ld.marketPath, w)
	}

	narratives, skipped, err := readNarratives(ld.narrativePath)
	report.SkippedNarratives = len(skipped)
	if err != nil {
		narratives = nil
		report.Warnings = append(report.Warnings, err)
		ld.warn(SourceNarrative, ld.narrativePath, err)
	}
	for _, w := range skipped {
		report.Warnings = append(report.Warnings, w)
		ld.warn(SourceNarrative, ld.narrativePath, w)
	}

	ds := BuildDataset(market, narratives)
	ds.report = report

	st := ds.Stats()
	ld.l.Info("dataset loaded",
		applogger.String("market_path", ld.marketPath),
		applogger.String("narrative_path", ld.narrativePath),
		applogger.Int("market_tickers", st.MarketTickers),
		applogger.Int("market_records", st.MarketRecords),
		applogger.Int("narratives", st.Narratives),
		applogger.Int("warnings", st.Warnings),
		applogger.Duration("duration_ms", time.Since(start)),
	)
	if ld.m != nil {
		ld.m.RecordLoad(SourceMarket, st.MarketRecords)
		ld.m.RecordLoad(SourceNarrative, st.Narratives)
		ld.m.RecordLatency("load", time.Since(start).Seconds())
	}
	return ds
}

func (ld *Loader) warn(source, path string, err error) {
	ld.l.Warn("data source warning",
		applogger.String("source", source),
		applogger.String("path", path),
		applogger.Error(err),
	)
	if ld.m != nil {
		ld.m.RecordLoadWarning(source)
	}
}

func (r LoadReport) clone() LoadReport {
	r.Warnings = slices.Clone(r.Warnings)
	return r
}

// readMarket parses the market CSV. Bad rows are skipped and returned as
// warnings; a missing file or unusable header is a source-level error.
func readMarket(path string) ([]models.MarketRecord, []error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w: %w", path, models.ErrSourceUnavailable, err)
	}
	defer f.Close()

	r, header, err := newCSVReader(f)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}
	idx, err := columnIndex(header, colTicker, colDebtRatio, colLabel)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	var (
		out     []models.MarketRecord
		skipped []error
	)
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read %s: %w: %w", path, models.ErrSourceMalformed, err)
		}
		line, _ := r.FieldPos(0)
		rec, err := parseMarketRow(row, idx)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("%s line %d: %w", path, line, err))
			continue
		}
		out = append(out, rec)
	}
	return out, skipped, nil
}

func parseMarketRow(row []string, idx map[string]int) (models.MarketRecord, error) {
	var rec models.MarketRecord
	for _, i := range idx {
		if i >= len(row) {
			return rec, fmt.Errorf("short row: %d fields", len(row))
		}
	}

	rec.Ticker = strings.TrimSpace(row[idx[colTicker]])
	if rec.Ticker == "" {
		return rec, errors.New("empty ticker")
	}

	debt, err := strconv.ParseFloat(strings.TrimSpace(row[idx[colDebtRatio]]), 64)
	if err != nil || math.IsNaN(debt) || math.IsInf(debt, 0) {
		return rec, fmt.Errorf("invalid debt_ratio %q", row[idx[colDebtRatio]])
	}
	rec.DebtRatio = debt

	label, err := strconv.ParseFloat(strings.TrimSpace(row[idx[colLabel]]), 64)
	if err != nil || label != math.Trunc(label) || math.IsInf(label, 0) {
		return rec, fmt.Errorf("invalid label %q", row[idx[colLabel]])
	}
	rec.Label = int(label)
	return rec, nil
}

func newCSVReader(src io.Reader) (*csv.Reader, []string, error) {
	r := csv.NewReader(src)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("%w: missing header", models.ErrSourceMalformed)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", models.ErrSourceMalformed, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(header[i], "\ufeff"))
	}
	return r, header, nil
}

func columnIndex(header []string, required ...string) (map[string]int, error) {
	idx := make(map[string]int, len(required))
	for i, name := range header {
		if _, seen := idx[name]; !seen {
			idx[name] = i
		}
	}
	out := make(map[string]int, len(required))
	for _, name := range required {
		i, ok := idx[name]
		if !ok {
			return nil, fmt.Errorf("%w: missing column %q", models.ErrSourceMalformed, name)
		}
		out[name] = i
	}
	return out, nil
}

// readNarratives parses the narrative list. Elements are decoded one by one so
// a single bad element does not discard the rest.
func readNarratives(path string) ([]models.NarrativeRecord, []error, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read %s: %w: %w", path, models.ErrSourceUnavailable, err)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w: %w", path, models.ErrSourceMalformed, err)
	}

	var (
		out     = make([]models.NarrativeRecord, 0, len(raw))
		skipped []error
	)
	for i, item := range raw {
		var n models.NarrativeRecord
		if err := json.Unmarshal(item, &n); err != nil {
			skipped = append(skipped, fmt.Errorf("%s item %d: %w", path, i, err))
			continue
		}
		if strings.TrimSpace(n.Ticker) == "" {
			skipped = append(skipped, fmt.Errorf("%s item %d: empty ticker", path, i))
			continue
		}
		out = append(out, n)
	}
	return out, skipped, nil
}
