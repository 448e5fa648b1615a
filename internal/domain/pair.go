package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// Pair is a currency pair in "BASE/QUOTE" form, e.g. "USD/BRL".
type Pair string

var pairRe = regexp.MustCompile(`^[A-Z]{3}/[A-Z]{3}$`)

func NewPair(base, quote string) Pair {
	return Pair(strings.ToUpper(base) + "/" + strings.ToUpper(quote))
}

// ParsePair normalizes case and validates the format. Identical legs are rejected.
func ParsePair(s string) (Pair, error) {
	p := strings.ToUpper(strings.TrimSpace(s))
	if !pairRe.MatchString(p) || p[:3] == p[4:] {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPair, s)
	}
	return Pair(p), nil
}

func (p Pair) Base() string {
	base, _, _ := strings.Cut(string(p), "/")
	return base
}

func (p Pair) Quote() string {
	_, quote, _ := strings.Cut(string(p), "/")
	return quote
}

// Compact returns the pair without separator ("USDBRL").
func (p Pair) Compact() string { return p.Base() + p.Quote() }

func (p Pair) String() string { return string(p) }
