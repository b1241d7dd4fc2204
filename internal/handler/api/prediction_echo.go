package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"FinSignal/internal/domain/models"
	"FinSignal/internal/repository"
	"FinSignal/internal/service/metrics"
	"FinSignal/internal/service/ratelimit"
	"FinSignal/internal/usecase"
	xhttp "FinSignal/pkg/http"
	xlogger "FinSignal/pkg/logger"

	"github.com/labstack/echo/v4"
)

// PredictionEchoHandler serves single-ticker predictions over Echo.
type PredictionEchoHandler struct {
	logger *xlogger.Logger
	svc    *usecase.PredictionService
	ds     *repository.Dataset
	rl     *ratelimit.Limiter
}

func NewPredictionEchoHandler(logger *xlogger.Logger, svc *usecase.PredictionService, ds *repository.Dataset) *PredictionEchoHandler {
	metrics.Register()
	return &PredictionEchoHandler{logger: logger, svc: svc, ds: ds}
}

// SetRateLimiter enables per-client rate limiting on the prediction route.
func (h *PredictionEchoHandler) SetRateLimiter(rl *ratelimit.Limiter) { h.rl = rl }

func (h *PredictionEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/predict/:ticker", h.Predict, h.rateLimit("predict"))
	e.GET("/healthz", h.Health)
	e.GET("/readyz", h.Ready)
}

// Predict answers GET /predict/:ticker with the bare prediction object.
func (h *PredictionEchoHandler) Predict(c echo.Context) error {
	const endpoint = "predict"
	start := time.Now()
	defer func() { metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	// A ticker that fails binding or decoding is reported as unknown.
	req := &models.PredictionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return h.tickerNotFound(c, endpoint, req.Ticker, models.ErrTickerUnknown)
	}
	ticker, err := unescapeParam(c, req.Ticker)
	if err != nil {
		return h.tickerNotFound(c, endpoint, req.Ticker, fmt.Errorf("%w: %w", models.ErrTickerUnknown, err))
	}
	req.Ticker = ticker

	res, err := h.svc.GetPrediction(c.Request().Context(), req.Ticker)
	if err != nil {
		if errors.Is(err, models.ErrTickerUnknown) {
			return h.tickerNotFound(c, endpoint, req.Ticker, err)
		}
		metrics.EndpointErrors.WithLabelValues(endpoint, "internal").Inc()
		h.logger.Error("predict usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	h.logger.Debug("prediction served",
		xlogger.String("ticker", req.Ticker),
		xlogger.Float64("reliability_score", res.ReliabilityScore),
		xlogger.String("regime", string(res.Regime)),
		xlogger.Bool("is_consistent", res.IsConsistent),
	)
	return c.JSON(http.StatusOK, res)
}

func (h *PredictionEchoHandler) tickerNotFound(c echo.Context, endpoint, ticker string, err error) error {
	metrics.EndpointErrors.WithLabelValues(endpoint, "not_found").Inc()
	h.logger.Debug("predict ticker unknown", xlogger.String("ticker", ticker), xlogger.Error(err))
	return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("Ticker %s not found in narratives", ticker).
		WithParam("ticker", ticker).
		WithError(err))
}

// unescapeParam decodes a path parameter. Echo matches on the raw path when
// the request carries a non-canonical escaping (RawPath set) and on the
// decoded path otherwise, so only the former needs decoding.
func unescapeParam(c echo.Context, v string) (string, error) {
	if c.Request().URL.RawPath == "" {
		return v, nil
	}
	return url.PathUnescape(v)
}

// Health is a liveness probe.
func (h *PredictionEchoHandler) Health(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

// Ready reports dataset statistics. Routes are only registered once the
// dataset is loaded, so reaching this handler implies readiness.
func (h *PredictionEchoHandler) Ready(c echo.Context) error {
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"status":  "ready",
		"dataset": h.ds.Stats(),
	})
}

func (h *PredictionEchoHandler) rateLimit(endpoint string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if h.rl == nil || h.rl.Allow(c.RealIP()) {
				return next(c)
			}
			metrics.EndpointErrors.WithLabelValues(endpoint, "rate_limited").Inc()
			h.logger.Warn("rate limited",
				xlogger.String("endpoint", endpoint),
				xlogger.String("remote", c.RealIP()),
			)
			return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limited"))
		}
	}
}
