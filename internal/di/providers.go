package di

import (
	"fmt"

	"FinSignal/internal/domain/repository"
	domsvc "FinSignal/internal/domain/service"
	"FinSignal/internal/handler/api"
	internalrepo "FinSignal/internal/repository"
	"FinSignal/internal/service/ratelimit"
	"FinSignal/internal/services/analytics"
	"FinSignal/internal/usecase"
	"FinSignal/pkg/config"
	xhttp "FinSignal/pkg/http"
	applogger "FinSignal/pkg/logger"
	"FinSignal/pkg/metrics"
	"FinSignal/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	l, err := applogger.New(&applogger.Config{
		Level:  cfg.Logger.Level,
		Format: cfg.Logger.Format,
		Output: cfg.Logger.Output,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideDataset loads both sources synchronously. Nothing downstream is
// built until this returns, so requests never observe a partial dataset.
func ProvideDataset(cfg *config.Config, l *applogger.Logger, m repository.Metrics) *internalrepo.Dataset {
	return internalrepo.NewLoader(
		cfg.Data.MarketPath(),
		cfg.Data.NarrativePath(),
		internalrepo.WithLoaderLogger(l),
		internalrepo.WithLoaderMetrics(m),
	).Load()
}

// ProvideSignalStore exposes the dataset through the read-only store interface.
func ProvideSignalStore(ds *internalrepo.Dataset) repository.SignalStore {
	return ds
}

// ProvideScorer creates the reliability scorer.
func ProvideScorer() domsvc.Scorer {
	return analytics.NewReliabilityScorer()
}

// ProvidePredictionService creates the prediction use case.
func ProvidePredictionService(
	store repository.SignalStore,
	scorer domsvc.Scorer,
	m repository.Metrics,
) *usecase.PredictionService {
	svc := usecase.NewPredictionService(store, scorer)
	svc.SetMetrics(m)
	return svc
}

// ProvideHandler creates the HTTP handler, with rate limiting when enabled.
func ProvideHandler(
	cfg *config.Config,
	l *applogger.Logger,
	svc *usecase.PredictionService,
	ds *internalrepo.Dataset,
) xhttp.Handler {
	h := api.NewPredictionEchoHandler(l, svc, ds)
	if cfg.RateLimit.Enabled {
		h.SetRateLimiter(ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst,
			ratelimit.WithIdleTTL(cfg.RateLimit.IdleTTL)))
	}
	return h
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, l *applogger.Logger, h xhttp.Handler) *server.App {
	return server.New(cfg, l, h)
}
