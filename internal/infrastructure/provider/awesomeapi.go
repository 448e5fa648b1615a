package provider

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"fxrates-watch/internal/application"
	"fxrates-watch/internal/domain"
	"fxrates-watch/internal/infrastructure/httpx"

	"github.com/shopspring/decimal"
)

const awesomeLastPath = "/json/last/"

// AwesomeAPI reads the spot rate from economia.awesomeapi.com.br.
type AwesomeAPI struct {
	BaseURL string
	Retries int
	Client  *httpx.Client
}

var _ application.QuoteSource = (*AwesomeAPI)(nil)

type awesomeQuote struct {
	Bid        string `json:"bid"`
	Ask        string `json:"ask"`
	High       string `json:"high"`
	Low        string `json:"low"`
	CreateDate string `json:"create_date"`
}

func (p *AwesomeAPI) Name() string { return domain.SourcePrimarySpot }

func (p *AwesomeAPI) Quote(ctx context.Context, pair domain.Pair, at time.Time) (domain.Entry, error) {
	if p.BaseURL == "" || p.Client == nil {
		return domain.Entry{}, errors.New("awesomeapi: missing configuration")
	}
	u, err := url.JoinPath(p.BaseURL, awesomeLastPath, pair.Base()+"-"+pair.Quote())
	if err != nil {
		return domain.Entry{}, fmt.Errorf("awesomeapi: invalid base url: %w", err)
	}

	var body map[string]awesomeQuote
	if err := p.Client.GetJSON(ctx, u, p.Retries, &body); err != nil {
		return domain.Entry{}, fmt.Errorf("awesomeapi: %w", err)
	}
	q, ok := body[pair.Compact()]
	if !ok || strings.TrimSpace(q.Bid) == "" {
		return domain.Entry{}, fmt.Errorf("awesomeapi: field %s not found in response", pair.Compact())
	}
	bid, err := decimal.NewFromString(q.Bid)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("awesomeapi: parse bid %q: %w", q.Bid, err)
	}
	if !bid.IsPositive() {
		return domain.Entry{}, fmt.Errorf("awesomeapi: non-positive bid %s", bid)
	}
	var ask decimal.NullDecimal
	if q.Ask != "" {
		if v, err := decimal.NewFromString(q.Ask); err == nil && v.IsPositive() {
			ask = decimal.NewNullDecimal(v)
		}
	}

	return domain.Entry{
		Pair:      pair,
		Bid:       bid,
		Ask:       ask,
		Timestamp: at,
		Source:    p.Name(),
		Raw: map[string]any{
			"create_date": q.CreateDate,
			"high":        q.High,
			"low":         q.Low,
		},
	}, nil
}
