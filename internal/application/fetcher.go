package application

import (
	"context"
	"errors"
	"fmt"

	"fxrates-watch/internal/domain"

	"go.uber.org/zap"
)

// Fetcher tries the primary source and falls back to the reference source.
// Both see the same capture timestamp.
type Fetcher struct {
	primary   QuoteSource
	reference QuoteSource
	clock     Clock
	log       *zap.Logger
}

var _ QuoteFetcher = (*Fetcher)(nil)

func NewFetcher(primary, reference QuoteSource, clock Clock, log *zap.Logger) *Fetcher {
	if clock == nil {
		clock = realClock{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Fetcher{primary: primary, reference: reference, clock: clock, log: log}
}

func (f *Fetcher) Fetch(ctx context.Context, pair domain.Pair) (domain.Entry, error) {
	at := f.clock.Now().UTC()
	log := f.log.With(zap.String("pair", pair.String()))

	if f.primary == nil {
		return domain.Entry{}, errors.New("fetcher: no primary source")
	}
	entry, perr := f.primary.Quote(ctx, pair, at)
	if perr == nil {
		return entry, nil
	}
	log.Warn("fetch_primary_failed", zap.String("source", f.primary.Name()), zap.Error(perr))

	if f.reference == nil {
		return domain.Entry{}, fmt.Errorf("%w: %s: %w", ErrAllSourcesFailed, f.primary.Name(), perr)
	}
	entry, rerr := f.reference.Quote(ctx, pair, at)
	if rerr != nil {
		log.Error("fetch_reference_failed", zap.String("source", f.reference.Name()), zap.Error(rerr))
		return domain.Entry{}, fmt.Errorf("%w: %s: %w; %s: %w",
			ErrAllSourcesFailed, f.primary.Name(), perr, f.reference.Name(), rerr)
	}
	log.Info("fetch_fallback_used", zap.String("source", f.reference.Name()))
	return entry, nil
}
