package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const DefaultSummaryWindow = 60

type Summary struct {
	Pair         Pair
	LastBid      decimal.Decimal
	LastAt       time.Time
	LastSource   string
	PreviousBid  decimal.NullDecimal
	PreviousAt   time.Time
	Change       decimal.NullDecimal
	Min          decimal.Decimal
	Max          decimal.Decimal
	Points       int
	TotalEntries int
}

// Summarize reports the latest reading, its change versus the one before and
// the range over the trailing window. Returns ErrNoData for an empty history.
func Summarize(history []Entry, window int) (Summary, error) {
	if len(history) == 0 {
		return Summary{}, ErrNoData
	}
	if window <= 0 {
		window = DefaultSummaryWindow
	}
	last := history[len(history)-1]
	s := Summary{
		Pair:         last.Pair,
		LastBid:      last.Bid,
		LastAt:       last.Timestamp,
		LastSource:   last.Source,
		TotalEntries: len(history),
	}
	if len(history) >= 2 {
		prev := history[len(history)-2]
		s.PreviousBid = decimal.NewNullDecimal(prev.Bid)
		s.PreviousAt = prev.Timestamp
		s.Change = PercentChange(last.Bid, s.PreviousBid)
	}

	tail := history
	if len(tail) > window {
		tail = tail[len(tail)-window:]
	}
	s.Points = len(tail)
	s.Min, s.Max = tail[0].Bid, tail[0].Bid
	for _, e := range tail[1:] {
		if e.Bid.LessThan(s.Min) {
			s.Min = e.Bid
		}
		if e.Bid.GreaterThan(s.Max) {
			s.Max = e.Bid
		}
	}
	return s, nil
}
