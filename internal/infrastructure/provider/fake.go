package provider

import (
	"context"
	"time"

	"fxrates-watch/internal/application"
	"fxrates-watch/internal/domain"

	"github.com/shopspring/decimal"
)

// Ensure Fake implements application.QuoteSource.
var _ application.QuoteSource = (*Fake)(nil)

// Fake returns a fixed bid; used with PROVIDER=fake for offline runs.
type Fake struct {
	bid decimal.Decimal
}

func NewFake(bid decimal.Decimal) *Fake { return &Fake{bid: bid} }

func (f *Fake) Name() string { return domain.SourceFake }

func (f *Fake) Quote(_ context.Context, pair domain.Pair, at time.Time) (domain.Entry, error) {
	return domain.Entry{
		Pair:      pair,
		Bid:       f.bid,
		Timestamp: at,
		Source:    f.Name(),
	}, nil
}
