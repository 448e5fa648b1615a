package application

import (
	"fmt"
	"strings"
	"time"

	"fxrates-watch/internal/domain"

	"github.com/shopspring/decimal"
)

// FormatMessage renders the webhook message for a freshly captured entry.
func FormatMessage(e domain.Entry, prev decimal.NullDecimal) string {
	chg := "N/A"
	if p := domain.PercentChange(e.Bid, prev); p.Valid {
		arrow := "➡️"
		switch p.Decimal.Sign() {
		case 1:
			arrow = "⬆️"
		case -1:
			arrow = "⬇️"
		}
		sign := ""
		if p.Decimal.Sign() >= 0 {
			sign = "+"
		}
		chg = fmt.Sprintf("%s %s%s%%", arrow, sign, p.Decimal.StringFixed(2))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "💵 **%s update**\n", e.Pair)
	fmt.Fprintf(&b, "- Bid: **%s %s**\n", e.Bid.StringFixed(4), e.Pair.Quote())
	if e.Ask.Valid {
		fmt.Fprintf(&b, "- Ask: %s %s\n", e.Ask.Decimal.StringFixed(4), e.Pair.Quote())
	}
	fmt.Fprintf(&b, "- Change vs last: **%s**\n", chg)
	fmt.Fprintf(&b, "- Timestamp (UTC): `%s`\n", e.Timestamp.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "- Source: %s", e.Source)
	return b.String()
}
