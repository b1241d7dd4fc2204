package repository

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"FinSignal/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingMetrics struct {
	mu       sync.Mutex
	loads    map[string]int
	warnings map[string]int
}

func newCountingMetrics() *countingMetrics {
	return &countingMetrics{loads: map[string]int{}, warnings: map[string]int{}}
}

func (m *countingMetrics) RecordLoad(source string, records int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads[source] = records
}

func (m *countingMetrics) RecordLoadWarning(source string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.warnings[source]++
}

func (m *countingMetrics) RecordPrediction(string)       {}
func (m *countingMetrics) RecordError(string)            {}
func (m *countingMetrics) RecordLatency(string, float64) {}

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const marketCSV = `date,ticker,price,debt_ratio,label
2024-01-01,AAPL,180.1,0.55,0
2024-01-02,aapl,181.3,0.40,1
2024-01-01,XYZ,12.0,0.70,0
2024-01-01,MSFT,400.0,0.30,1
`

const narrativesJSON = `[
  {"ticker": "AAPL", "transcript": "Old quarter", "alignment_flag": false},
  {"ticker": "XYZ", "transcript": "Turbulent", "alignment_flag": false},
  {"ticker": "aapl", "transcript": "Strong quarter", "alignment_flag": true},
  {"ticker": "NOMKT"}
]`

func TestLoadBuildsIndices(t *testing.T) {
	dir := t.TempDir()
	m := newCountingMetrics()
	ds := NewLoader(
		writeFile(t, dir, "market_data.csv", marketCSV),
		writeFile(t, dir, "narratives.json", narrativesJSON),
		WithLoaderMetrics(m),
	).Load()

	st := ds.Stats()
	assert.Equal(t, 3, st.MarketTickers)
	assert.Equal(t, 4, st.MarketRecords)
	assert.Equal(t, 3, st.Narratives)
	assert.Zero(t, st.Warnings)

	hist := ds.MarketHistory("AAPL")
	require.Len(t, hist, 2)
	assert.Equal(t, 0.55, hist[0].DebtRatio)
	assert.Equal(t, 0.40, hist[1].DebtRatio)

	last, ok := ds.LatestMarket("AAPL")
	require.True(t, ok)
	assert.Equal(t, models.MarketRecord{Ticker: "AAPL", DebtRatio: 0.40, Label: 1}, last)

	n, ok := ds.Narrative("AAPL")
	require.True(t, ok)
	assert.Equal(t, "Strong quarter", n.Transcript)
	assert.True(t, n.AlignmentFlag)

	n, ok = ds.Narrative("NOMKT")
	require.True(t, ok)
	assert.Empty(t, n.Transcript)
	assert.False(t, n.AlignmentFlag)
	assert.False(t, ds.HasMarket("NOMKT"))

	assert.Equal(t, 4, m.loads[SourceMarket])
	assert.Equal(t, 3, m.loads[SourceNarrative])
}

func TestLoadMissingSources(t *testing.T) {
	dir := t.TempDir()
	m := newCountingMetrics()
	ds := NewLoader(filepath.Join(dir, "absent.csv"), filepath.Join(dir, "absent.json"), WithLoaderMetrics(m)).Load()

	st := ds.Stats()
	assert.Zero(t, st.MarketRecords)
	assert.Zero(t, st.Narratives)
	assert.Equal(t, 2, st.Warnings)

	rep := ds.Report()
	assert.True(t, rep.Has(models.ErrSourceUnavailable))
	assert.False(t, rep.Has(models.ErrSourceMalformed))
	assert.Equal(t, 1, m.warnings[SourceMarket])
	assert.Equal(t, 1, m.warnings[SourceNarrative])
}

func TestLoadOneSourceMissing(t *testing.T) {
	dir := t.TempDir()
	ds := NewLoader(filepath.Join(dir, "absent.csv"), writeFile(t, dir, "n.json", narrativesJSON)).Load()

	assert.Zero(t, ds.Stats().MarketRecords)
	assert.Equal(t, 3, ds.Stats().Narratives)
	_, ok := ds.LatestMarket("AAPL")
	assert.False(t, ok)
}

func TestLoadMalformedSources(t *testing.T) {
	cases := map[string]struct {
		market    string
		narrative string
	}{
		"missing column":    {market: "ticker,label\nAAPL,1\n", narrative: "{}"},
		"empty market file": {market: "", narrative: `{"ticker": "AAPL"}`},
		"broken quoting":    {market: "ticker,debt_ratio,label\n\"AAPL,0.4,1\nX\"Y,1,1\n", narrative: "[1,2"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			ds := NewLoader(
				writeFile(t, dir, "m.csv", tc.market),
				writeFile(t, dir, "n.json", tc.narrative),
			).Load()

			assert.Zero(t, ds.Stats().MarketRecords)
			assert.Zero(t, ds.Stats().Narratives)
			assert.True(t, ds.Report().Has(models.ErrSourceMalformed))
		})
	}
}

func TestLoadSkipsBadRows(t *testing.T) {
	dir := t.TempDir()
	market := "ticker,debt_ratio,label\n" +
		"AAPL,0.4,1\n" +
		",0.3,1\n" +
		"MSFT,abc,1\n" +
		"MSFT,NaN,1\n" +
		"MSFT,0.2,0.5\n" +
		"GOOG\n" +
		"GOOG,0.8,1.0\n"
	narratives := `[{"ticker": "AAPL", "transcript": "ok"}, null, {"ticker": 5}, {"transcript": "no ticker"}, {"ticker": "GOOG", "alignment_flag": true}]`

	ds := NewLoader(writeFile(t, dir, "m.csv", market), writeFile(t, dir, "n.json", narratives)).Load()

	rep := ds.Report()
	assert.Equal(t, 5, rep.SkippedMarketRows)
	assert.Equal(t, 3, rep.SkippedNarratives)
	assert.Len(t, rep.Warnings, 8)

	assert.Equal(t, 2, ds.Stats().MarketRecords)
	goog, ok := ds.LatestMarket("GOOG")
	require.True(t, ok)
	assert.Equal(t, 1, goog.Label)
	assert.False(t, ds.HasMarket("MSFT"))

	assert.Equal(t, 2, ds.Stats().Narratives)
}

// A malformed trailing row is dropped, so the latest valid row before it is
// the one that gets scored.
func TestLoadMalformedLastRowFallsBackToPreviousRow(t *testing.T) {
	dir := t.TempDir()
	market := "ticker,debt_ratio,label\n" +
		"TSLA,0.3,1\n" +
		"TSLA,0.9,0\n" +
		"TSLA,,1\n" +
		"TSLA,0.1,\n" +
		"TSLA,NaN,NaN\n"

	ds := NewLoader(writeFile(t, dir, "m.csv", market), filepath.Join(dir, "none.json")).Load()

	assert.Equal(t, 3, ds.Report().SkippedMarketRows)
	assert.Len(t, ds.MarketHistory("TSLA"), 2)

	rec, ok := ds.LatestMarket("TSLA")
	require.True(t, ok)
	assert.Equal(t, models.MarketRecord{Ticker: "TSLA", DebtRatio: 0.9, Label: 0}, rec)
}

func TestLoadHeaderWithBOMAndSpaces(t *testing.T) {
	dir := t.TempDir()
	market := "\ufeffticker, debt_ratio, label\nAAPL, 0.4, 1\n"
	ds := NewLoader(writeFile(t, dir, "m.csv", market), filepath.Join(dir, "none.json")).Load()

	rec, ok := ds.LatestMarket("AAPL")
	require.True(t, ok)
	assert.Equal(t, 0.4, rec.DebtRatio)
}
