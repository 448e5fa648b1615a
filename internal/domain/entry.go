package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SourcePrimarySpot       = "primary-spot"
	SourceOfficialReference = "official-reference"
	SourceFake              = "fake"
)

// Entry is one captured quote. Entries are append-only once written to history.
type Entry struct {
	Pair      Pair                `json:"pair"`
	Bid       decimal.Decimal     `json:"bid"`
	Ask       decimal.NullDecimal `json:"ask"`
	Timestamp time.Time           `json:"timestamp_iso"`
	Source    string              `json:"source"`
	Raw       map[string]any      `json:"raw,omitempty"`
}

func init() {
	// History files carry rates as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}
