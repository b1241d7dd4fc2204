package server

import (
	"context"
	"net/http"
	"testing"
	"time"

	"FinSignal/pkg/config"
	applogger "FinSignal/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingHandler struct{}

func (pingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
}

func TestAppRunContextStopsOnCancel(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Server.Port = 0
	cfg.Server.ShutdownTimeout = time.Second

	app := New(cfg, applogger.Nop(), pingHandler{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.RunContext(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}

func TestAppMetricsDisabled(t *testing.T) {
	cfg, err := config.Default()
	require.NoError(t, err)
	cfg.Metrics.Enabled = false

	app := New(cfg, applogger.Nop(), pingHandler{})
	for _, r := range app.Server().Echo().Routes() {
		assert.NotEqual(t, "/metrics", r.Path)
	}
}
