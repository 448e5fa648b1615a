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
	infraconfig "fxrates-watch/internal/infrastructure/config"
	"fxrates-watch/internal/infrastructure/httpx"

	"github.com/shopspring/decimal"
)

const (
	ptaxDayResource    = "/CotacaoMoedaDia(moeda=@moeda,dataCotacao=@dataCotacao)"
	ptaxPeriodResource = "/CotacaoMoedaPeriodo(moeda=@moeda,dataInicial=@dataInicial,dataFinalCotacao=@dataFinalCotacao)"
	ptaxDateLayout     = "01-02-2006"
	ptaxQuoteCurrency  = "BRL"
)

// PTAX reads the Banco Central do Brasil reference rate through the Olinda
// OData service. Only pairs quoted in BRL are published there.
type PTAX struct {
	BaseURL      string
	Retries      int
	LookbackDays int
	Client       *httpx.Client
}

var _ application.QuoteSource = (*PTAX)(nil)

type ptaxRecord struct {
	CotacaoCompra   decimal.Decimal `json:"cotacaoCompra"`
	CotacaoVenda    decimal.Decimal `json:"cotacaoVenda"`
	DataHoraCotacao string          `json:"dataHoraCotacao"`
	TipoBoletim     string          `json:"tipoBoletim"`
}

type ptaxResp struct {
	Value []ptaxRecord `json:"value"`
}

func (p *PTAX) Name() string { return domain.SourceOfficialReference }

func (p *PTAX) Quote(ctx context.Context, pair domain.Pair, at time.Time) (domain.Entry, error) {
	if pair.Quote() != ptaxQuoteCurrency {
		return domain.Entry{}, fmt.Errorf("ptax: %w: %s (only %s quotes)", domain.ErrUnsupportedPair, pair, ptaxQuoteCurrency)
	}
	if p.BaseURL == "" || p.Client == nil {
		return domain.Entry{}, errors.New("ptax: missing configuration")
	}
	day := at.UTC()

	rec, err := p.query(ctx, p.dayURL(pair.Base(), day))
	if err != nil {
		return domain.Entry{}, err
	}
	if rec == nil {
		lookback := p.LookbackDays
		if lookback <= 0 {
			lookback = infraconfig.DefaultLookbackDays
		}
		from := day.AddDate(0, 0, -lookback)
		rec, err = p.query(ctx, p.periodURL(pair.Base(), from, day))
		if err != nil {
			return domain.Entry{}, err
		}
		if rec == nil {
			return domain.Entry{}, fmt.Errorf("ptax: no %s rate between %s and %s: %w",
				pair.Base(), from.Format(time.DateOnly), day.Format(time.DateOnly), domain.ErrNoData)
		}
	}

	return domain.Entry{
		Pair:      pair,
		Bid:       rec.CotacaoVenda,
		Timestamp: at,
		Source:    p.Name(),
		Raw: map[string]any{
			"cotacaoCompra":   rec.CotacaoCompra.String(),
			"dataHoraCotacao": rec.DataHoraCotacao,
			"tipoBoletim":     rec.TipoBoletim,
		},
	}, nil
}

// query returns the latest usable record, or nil when the window is empty.
func (p *PTAX) query(ctx context.Context, u string) (*ptaxRecord, error) {
	var body ptaxResp
	if err := p.Client.GetJSON(ctx, u, p.Retries, &body); err != nil {
		return nil, fmt.Errorf("ptax: %w", err)
	}
	var latest *ptaxRecord
	for i := range body.Value {
		r := &body.Value[i]
		if !r.CotacaoVenda.IsPositive() {
			continue
		}
		// dataHoraCotacao is "YYYY-MM-DD HH:MM:SS.fff" and sorts lexically.
		if latest == nil || r.DataHoraCotacao >= latest.DataHoraCotacao {
			latest = r
		}
	}
	return latest, nil
}

func (p *PTAX) dayURL(currency string, day time.Time) string {
	q := url.Values{}
	q.Set("@moeda", quoted(currency))
	q.Set("@dataCotacao", quoted(day.Format(ptaxDateLayout)))
	q.Set("$format", "json")
	return strings.TrimRight(p.BaseURL, "/") + ptaxDayResource + "?" + q.Encode()
}

func (p *PTAX) periodURL(currency string, from, to time.Time) string {
	q := url.Values{}
	q.Set("@moeda", quoted(currency))
	q.Set("@dataInicial", quoted(from.Format(ptaxDateLayout)))
	q.Set("@dataFinalCotacao", quoted(to.Format(ptaxDateLayout)))
	q.Set("$format", "json")
	return strings.TrimRight(p.BaseURL, "/") + ptaxPeriodResource + "?" + q.Encode()
}

func quoted(s string) string { return "'" + s + "'" }
