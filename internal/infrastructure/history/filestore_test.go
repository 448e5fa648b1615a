package history_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fxrates-watch/internal/domain"
	"fxrates-watch/internal/infrastructure/history"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func sample() []domain.Entry {
	return []domain.Entry{
		{
			Pair:      "USD/BRL",
			Bid:       decimal.RequireFromString("5.1234"),
			Ask:       decimal.NewNullDecimal(decimal.RequireFromString("5.1301")),
			Timestamp: time.Date(2025, 1, 2, 12, 0, 0, 123000000, time.UTC),
			Source:    domain.SourcePrimarySpot,
			Raw:       map[string]any{"create_date": "2025-01-02 09:00:00", "high": "5.20"},
		},
		{
			Pair:      "USD/BRL",
			Bid:       decimal.RequireFromString("5.0987"),
			Timestamp: time.Date(2025, 1, 3, 12, 0, 0, 0, time.UTC),
			Source:    domain.SourceOfficialReference,
			Raw:       map[string]any{"tipoBoletim": "Fechamento", "nota": "cotação"},
		},
	}
}

func requireSameHistory(t *testing.T, want, got []domain.Entry) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.Equal(t, want[i].Pair, got[i].Pair)
		require.True(t, want[i].Bid.Equal(got[i].Bid), "bid %d", i)
		require.Equal(t, want[i].Ask.Valid, got[i].Ask.Valid)
		if want[i].Ask.Valid {
			require.True(t, want[i].Ask.Decimal.Equal(got[i].Ask.Decimal))
		}
		require.True(t, want[i].Timestamp.Equal(got[i].Timestamp))
		require.Equal(t, want[i].Source, got[i].Source)
		require.Equal(t, want[i].Raw, got[i].Raw)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data", "usdbrl.json")
	s := history.NewFileStore(path, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sample()))
	requireSameHistory(t, sample(), s.Load(ctx))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(raw), `"bid": 5.1234`)
	require.Contains(t, string(raw), `"ask": null`)
	require.Contains(t, string(raw), "cotação")
	require.Contains(t, string(raw), `"timestamp_iso": "2025-01-02T12:00:00.123Z"`)

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	require.Empty(t, leftovers)
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "h.json")
	s := history.NewFileStore(path, nil)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sample()))
	require.NoError(t, s.Save(ctx, sample()[:1]))
	require.Len(t, s.Load(ctx), 1)
}

func TestLoad_EmptyCases(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"empty.json":      "",
		"blank.json":      "  \n\t ",
		"invalid.json":    "[{\"bid\": ",
		"wrongshape.json": `{"bid": 5}`,
		"null.json":       "null",
	}
	for name, content := range cases {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
		got := history.NewFileStore(p, nil).Load(context.Background())
		require.NotNil(t, got, name)
		require.Empty(t, got, name)
	}

	got := history.NewFileStore(filepath.Join(dir, "missing.json"), nil).Load(context.Background())
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestLoad_LegacyFile(t *testing.T) {
	legacy := `[
  {
    "pair": "USD/BRL",
    "bid": 5.4321,
    "ask": 5.4399,
    "timestamp_iso": "2025-01-02T12:00:00.123456+00:00",
    "source": "AwesomeAPI",
    "raw": {"create_date": "2025-01-02 09:00:00", "high": "5.45", "low": "5.40"}
  }
]`
	p := filepath.Join(t.TempDir(), "usdbrl.json")
	require.NoError(t, os.WriteFile(p, []byte(legacy), 0o644))

	got := history.NewFileStore(p, nil).Load(context.Background())
	require.Len(t, got, 1)
	require.True(t, got[0].Bid.Equal(decimal.RequireFromString("5.4321")))
	require.True(t, got[0].Ask.Valid)
	require.Equal(t, "AwesomeAPI", got[0].Source)
	require.True(t, strings.HasPrefix(got[0].Timestamp.UTC().Format(time.RFC3339), "2025-01-02T12:00:00"))
}
