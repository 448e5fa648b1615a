package bootstrap

import (
	"context"
	"fmt"

	"fxrates-watch/internal/application"
	"fxrates-watch/internal/config"
	"fxrates-watch/internal/domain"
	"fxrates-watch/internal/infrastructure/metrics"

	"go.uber.org/zap"
)

// App is everything a single run needs.
type App struct {
	Config  config.Config
	Runner  *application.Runner
	Metrics *metrics.Run
	Log     *zap.Logger
}

// InitApp wires the runner from configuration. The returned cleanup must be
// called once the run is over.
func InitApp(ctx context.Context, cfg config.Config) (*App, func(), error) {
	log := ProvideLogger()
	pair, err := domain.ParsePair(cfg.Pair)
	if err != nil {
		return nil, func() {}, fmt.Errorf("PAIR: %w", err)
	}

	client := ProvideHTTPClient(cfg, log)
	primary, reference, err := ProvideQuoteSources(cfg, client)
	if err != nil {
		return nil, func() {}, err
	}
	policy, err := ProvidePolicy(cfg)
	if err != nil {
		return nil, func() {}, err
	}
	guard, cleanup, err := ProvideRunGuard(ctx, cfg)
	if err != nil {
		return nil, func() {}, err
	}
	m := metrics.NewRun()

	runner := application.NewRunner(pair,
		ProvideHistory(cfg, log),
		application.NewFetcher(primary, reference, nil, log),
		application.WithNotifier(ProvideNotifier(cfg, client), cfg.WebhookURL),
		application.WithPolicy(policy),
		application.WithRunGuard(guard, guardKey(cfg, pair)),
		application.WithRecorder(m),
		application.WithMaxItems(cfg.HistoryMaxItems),
		application.WithLogger(log),
	)
	return &App{Config: cfg, Runner: runner, Metrics: m, Log: log}, cleanup, nil
}
