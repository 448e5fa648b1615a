package application

import (
	"context"
	"errors"
	"fmt"

	"fxrates-watch/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// NotifyPolicy decides whether a captured entry is worth a message.
type NotifyPolicy func(e domain.Entry, prev decimal.NullDecimal) bool

func AlwaysNotify() NotifyPolicy {
	return func(domain.Entry, decimal.NullDecimal) bool { return domain.ShouldNotifyAlways() }
}

func ThresholdNotify(below, above decimal.NullDecimal) NotifyPolicy {
	return func(e domain.Entry, _ decimal.NullDecimal) bool {
		return domain.ShouldNotifyThreshold(e.Bid, below, above)
	}
}

// Result describes a completed run.
type Result struct {
	RunID      string
	Entry      domain.Entry
	Previous   decimal.NullDecimal
	Change     decimal.NullDecimal
	HistoryLen int
	Notified   bool
	// NotifyErr is set when the webhook failed; the history was already saved.
	NotifyErr error
}

type Runner struct {
	pair       domain.Pair
	history    HistoryStore
	fetcher    QuoteFetcher
	notifier   Notifier
	webhookURL string
	policy     NotifyPolicy
	guard      RunGuard
	guardKey   string
	recorder   Recorder
	maxItems   int
	clock      Clock
	log        *zap.Logger
}

type Option func(*Runner)

func WithNotifier(n Notifier, webhookURL string) Option {
	return func(r *Runner) { r.notifier, r.webhookURL = n, webhookURL }
}
func WithPolicy(p NotifyPolicy) Option { return func(r *Runner) { r.policy = p } }
func WithRunGuard(g RunGuard, key string) Option {
	return func(r *Runner) { r.guard, r.guardKey = g, key }
}
func WithRecorder(rec Recorder) Option { return func(r *Runner) { r.recorder = rec } }
func WithMaxItems(n int) Option        { return func(r *Runner) { r.maxItems = n } }
func WithClock(c Clock) Option         { return func(r *Runner) { r.clock = c } }
func WithLogger(l *zap.Logger) Option  { return func(r *Runner) { r.log = l } }

func NewRunner(pair domain.Pair, history HistoryStore, fetcher QuoteFetcher, opts ...Option) *Runner {
	r := &Runner{pair: pair, history: history, fetcher: fetcher}
	for _, opt := range opts {
		opt(r)
	}
	if r.policy == nil {
		r.policy = AlwaysNotify()
	}
	if r.guard == nil {
		r.guard = NoopGuard{}
	}
	if r.guardKey == "" {
		r.guardKey = "fxwatch:run:" + pair.Compact()
	}
	if r.recorder == nil {
		r.recorder = noopRecorder{}
	}
	if r.maxItems <= 0 {
		r.maxItems = domain.DefaultMaxItems
	}
	if r.clock == nil {
		r.clock = realClock{}
	}
	if r.log == nil {
		r.log = zap.NewNop()
	}
	return r
}

// Run captures one quote: load history, fetch, append, save, then notify.
// The history is persisted before the webhook is called, so a notification
// failure is reported in the Result and never returned as an error.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	start := r.clock.Now()
	res := Result{RunID: uuid.NewString()}
	log := r.log.With(zap.String("run_id", res.RunID), zap.String("pair", r.pair.String()))
	defer func() { r.recorder.RunFinished(r.clock.Now().Sub(start)) }()

	ok, err := r.guard.TryReserve(ctx, r.guardKey)
	if err != nil {
		return res, fmt.Errorf("run guard: %w", err)
	}
	if !ok {
		log.Warn("run_skipped_in_progress", zap.String("key", r.guardKey))
		return res, ErrRunInProgress
	}
	defer func() {
		if err := r.guard.Release(context.WithoutCancel(ctx), r.guardKey); err != nil {
			log.Warn("run_guard_release_failed", zap.Error(err))
		}
	}()

	history := r.history.Load(ctx)
	res.Previous = domain.LastBid(history)
	log.Debug("history_loaded", zap.Int("entries", len(history)))

	entry, err := r.fetcher.Fetch(ctx, r.pair)
	if err != nil {
		r.recorder.FetchFailed()
		log.Error("fetch_failed", zap.Error(err))
		return res, fmt.Errorf("fetch %s: %w", r.pair, err)
	}
	r.recorder.FetchSucceeded(entry.Source)
	res.Entry = entry
	res.Change = domain.PercentChange(entry.Bid, res.Previous)

	history = domain.AppendEntry(history, entry, r.maxItems)
	if err := r.history.Save(ctx, history); err != nil {
		log.Error("history_save_failed", zap.Error(err))
		return res, fmt.Errorf("save history: %w", err)
	}
	res.HistoryLen = len(history)
	bid, _ := entry.Bid.Float64()
	r.recorder.LastBid(r.pair, bid)
	log.Info("quote_saved",
		zap.String("bid", entry.Bid.String()),
		zap.String("source", entry.Source),
		zap.Time("timestamp", entry.Timestamp),
		zap.Int("history_len", res.HistoryLen),
	)

	r.notify(ctx, log, &res)
	return res, nil
}

func (r *Runner) notify(ctx context.Context, log *zap.Logger, res *Result) {
	switch {
	case r.notifier == nil || r.webhookURL == "":
		r.recorder.Notified("skipped")
		log.Info("notify_skipped", zap.String("reason", "webhook not configured"))
		return
	case !r.policy(res.Entry, res.Previous):
		r.recorder.Notified("skipped")
		log.Info("notify_skipped", zap.String("reason", "policy"))
		return
	}

	if err := r.notifier.Notify(ctx, r.webhookURL, FormatMessage(res.Entry, res.Previous)); err != nil {
		r.recorder.Notified("failed")
		log.Error("notify_failed", zap.Error(err))
		res.NotifyErr = err
		return
	}
	r.recorder.Notified("sent")
	res.Notified = true
	log.Info("notify_sent")
}

// IsBusy reports whether err came from a run that found the guard held.
func IsBusy(err error) bool { return errors.Is(err, ErrRunInProgress) }
