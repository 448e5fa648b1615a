package bootstrap

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"fxrates-watch/internal/application"
	"fxrates-watch/internal/config"
	"fxrates-watch/internal/domain"
	infraconfig "fxrates-watch/internal/infrastructure/config"
	"fxrates-watch/internal/infrastructure/history"
	"fxrates-watch/internal/infrastructure/httpx"
	"fxrates-watch/internal/infrastructure/logx"
	"fxrates-watch/internal/infrastructure/notify"
	"fxrates-watch/internal/infrastructure/provider"
	redisstore "fxrates-watch/internal/infrastructure/redis"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideHTTPClient(cfg config.Config, log *zap.Logger) *httpx.Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = infraconfig.DefaultRequestTimeout
	}
	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       30 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
	return &httpx.Client{
		HTTP:        &http.Client{Timeout: timeout, Transport: transport},
		Log:         log,
		UserAgent:   infraconfig.DefaultUserAgent,
		BackoffUnit: cfg.BackoffUnit,
	}
}

// ProvideQuoteSources returns the primary and reference sources. With
// PROVIDER=fake there is no reference source.
func ProvideQuoteSources(cfg config.Config, client *httpx.Client) (application.QuoteSource, application.QuoteSource, error) {
	switch cfg.Provider {
	case "fake":
		return provider.NewFake(decimal.RequireFromString("5.1234")), nil, nil
	case "", "live":
		primary := &provider.AwesomeAPI{
			BaseURL: cfg.SpotAPIBase,
			Retries: cfg.SpotRetries,
			Client:  client,
		}
		reference := &provider.PTAX{
			BaseURL:      cfg.PTAXAPIBase,
			Retries:      cfg.PTAXRetries,
			LookbackDays: cfg.PTAXLookbackDays,
			Client:       client,
		}
		return primary, reference, nil
	default:
		return nil, nil, fmt.Errorf("unsupported PROVIDER=%q", cfg.Provider)
	}
}

func ProvideHistory(cfg config.Config, log *zap.Logger) *history.FileStore {
	return history.NewFileStore(cfg.HistoryPath, log)
}

func ProvideNotifier(cfg config.Config, client *httpx.Client) *notify.Webhook {
	return &notify.Webhook{Client: client, Timeout: cfg.NotifyTimeout}
}

func ProvidePolicy(cfg config.Config) (application.NotifyPolicy, error) {
	switch strings.ToLower(cfg.NotifyPolicy) {
	case "", "always":
		return application.AlwaysNotify(), nil
	case "threshold":
		below, err := optionalDecimal("NOTIFY_BELOW", cfg.NotifyBelow)
		if err != nil {
			return nil, err
		}
		above, err := optionalDecimal("NOTIFY_ABOVE", cfg.NotifyAbove)
		if err != nil {
			return nil, err
		}
		return application.ThresholdNotify(below, above), nil
	default:
		return nil, fmt.Errorf("unsupported NOTIFY_POLICY=%q", cfg.NotifyPolicy)
	}
}

func optionalDecimal(name, v string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(v) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.NullDecimal{}, fmt.Errorf("%s: %w", name, err)
	}
	return decimal.NewNullDecimal(d), nil
}

// ProvideRunGuard returns the redis-backed guard when RUN_GUARD=redis, a no-op otherwise.
func ProvideRunGuard(ctx context.Context, cfg config.Config) (application.RunGuard, func(), error) {
	switch cfg.RunGuard {
	case "", "none":
		return application.NoopGuard{}, func() {}, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, func() {}, fmt.Errorf("redis ping: %w", err)
		}
		return redisstore.New(client, cfg.RunGuardTTL), func() { _ = client.Close() }, nil
	default:
		return nil, func() {}, fmt.Errorf("unsupported RUN_GUARD=%q", cfg.RunGuard)
	}
}

// guardKey scopes the reservation to the history file being written.
func guardKey(cfg config.Config, pair domain.Pair) string {
	return "fxwatch:run:" + pair.Compact() + ":" + cfg.HistoryPath
}
