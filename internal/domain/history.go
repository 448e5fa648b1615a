package domain

import "github.com/shopspring/decimal"

// DefaultMaxItems keeps roughly two years of daily readings.
const DefaultMaxItems = 730

// AppendEntry appends e and drops the oldest entries beyond maxItems.
// A non-positive maxItems falls back to DefaultMaxItems.
func AppendEntry(history []Entry, e Entry, maxItems int) []Entry {
	if maxItems <= 0 {
		maxItems = DefaultMaxItems
	}
	history = append(history, e)
	if len(history) > maxItems {
		history = history[len(history)-maxItems:]
	}
	return history
}

// LastBid returns the most recent bid. A zero bid is what a record without
// the field decodes to, so it is reported as absent.
func LastBid(history []Entry) decimal.NullDecimal {
	if len(history) == 0 {
		return decimal.NullDecimal{}
	}
	bid := history[len(history)-1].Bid
	if bid.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(bid)
}
