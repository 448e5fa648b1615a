package application

import (
	"context"
	"time"

	"fxrates-watch/internal/domain"
)

// HistoryStore persists the quote history. Load never fails: unreadable
// state is reported as an empty history.
type HistoryStore interface {
	Load(ctx context.Context) []domain.Entry
	Save(ctx context.Context, entries []domain.Entry) error
}

// QuoteSource is a single upstream. at is the capture time stamped on the entry.
type QuoteSource interface {
	Name() string
	Quote(ctx context.Context, pair domain.Pair, at time.Time) (domain.Entry, error)
}

type QuoteFetcher interface {
	Fetch(ctx context.Context, pair domain.Pair) (domain.Entry, error)
}

type Notifier interface {
	Notify(ctx context.Context, webhookURL, message string) error
}

// RunGuard keeps two runs from working on the same history at once.
type RunGuard interface {
	// TryReserve returns true if key was absent and is now reserved.
	TryReserve(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}

// Recorder receives run outcomes for metrics.
type Recorder interface {
	FetchSucceeded(source string)
	FetchFailed()
	Notified(result string)
	LastBid(pair domain.Pair, bid float64)
	RunFinished(d time.Duration)
}
