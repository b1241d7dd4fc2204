package finnhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/company-news", r.URL.Path)
		assert.Equal(t, "SPY", r.URL.Query().Get("symbol"))
		assert.Equal(t, "2024-10-03", r.URL.Query().Get("from"))
		assert.Equal(t, "2024-10-10", r.URL.Query().Get("to"))
		assert.Equal(t, "key", r.Header.Get("X-Finnhub-Token"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"headline":"Markets rally","source":"Wire","datetime":1728561010,"id":7}]`))
	}))
	defer srv.Close()

	c := New("key", srv.URL+"/", time.Second)
	c.now = func() time.Time { return time.Date(2024, 10, 10, 12, 0, 0, 0, time.UTC) }

	items, err := c.CompanyNews(context.Background(), "spy", 7)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Markets rally", items[0].Headline)
	assert.Equal(t, int64(7), items[0].ID)
}

func TestCompanyNewsErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "limit", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := New("key", srv.URL, time.Second).CompanyNews(context.Background(), "SPY", 1)
	assert.ErrorContains(t, err, "429")

	_, err = New("", srv.URL, time.Second).CompanyNews(context.Background(), "SPY", 1)
	assert.Error(t, err)
}
