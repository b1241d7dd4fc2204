package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestSchemaCommand(t *testing.T) {
	dir := t.TempDir()
	market := writeFile(t, dir, "market.csv", "ticker,debt_ratio,label,close\nspy,0.3,1,500\nSPY,0.4,0,501\nTLT,0.7,0,90\n")
	narr := writeFile(t, dir, "narr.json", `[{"ticker":"spy","transcript":"growth","alignment_flag":true}]`)

	out, err := run(t, "schema",
		"--config", filepath.Join(dir, "absent.yaml"),
		"--market", market, "--narratives", narr, "--ticker", "Spy")
	require.NoError(t, err)

	assert.Contains(t, out, "columns:    ticker, debt_ratio, label, close")
	assert.Contains(t, out, "rows:       3 (indexed 3)")
	assert.Contains(t, out, "tickers:    2")
	assert.Contains(t, out, "narratives: 1")
	assert.Contains(t, out, "\nSPY\n")
	assert.Contains(t, out, "market rows:      2")
	assert.Contains(t, out, "has narrative:    true")
	assert.Contains(t, out, "latest:           debt_ratio=0.4 label=0")
	assert.NotContains(t, out, "missing:")
}

func TestSchemaCommandMissingColumns(t *testing.T) {
	dir := t.TempDir()
	market := writeFile(t, dir, "market.csv", "ticker,close\nSPY,500\n")

	out, err := run(t, "schema",
		"--config", filepath.Join(dir, "absent.yaml"),
		"--market", market, "--narratives", filepath.Join(dir, "none.json"))
	require.NoError(t, err)
	assert.Contains(t, out, "missing:    debt_ratio, label")
	assert.Contains(t, out, "rows:       1 (indexed 0)")
}

func TestSchemaCommandMissingMarket(t *testing.T) {
	dir := t.TempDir()
	_, err := run(t, "schema",
		"--config", filepath.Join(dir, "absent.yaml"),
		"--market", filepath.Join(dir, "nope.csv"))
	assert.Error(t, err)
}

func TestNewsCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		_, _ = w.Write([]byte(`[
			{"headline":"First","source":"A","datetime":0},
			{"headline":"Second","source":"B","datetime":0}
		]`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfgPath := writeFile(t, dir, "config.yaml", "environment: test\nfinnhub:\n  api_key: k\n  base_url: "+srv.URL+"\n")

	out, err := run(t, "news", "--config", cfgPath, "--ticker", "aapl", "--limit", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "AAPL: 2 headlines")
	assert.Contains(t, out, "- [1970-01-01 00:00:00] First (A)")
	assert.NotContains(t, out, "Second")
}

func TestNewsCommandRequiresTicker(t *testing.T) {
	_, err := run(t, "news")
	assert.ErrorContains(t, err, "--ticker")
}
