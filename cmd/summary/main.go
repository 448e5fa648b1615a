package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"fxrates-watch/internal/config"
	"fxrates-watch/internal/domain"
	"fxrates-watch/internal/infrastructure/history"
	"fxrates-watch/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	log := logx.L()
	defer logx.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("load config", zap.Error(err))
	}
	logx.SetLevel(cfg.LogLevel)

	entries := history.NewFileStore(cfg.HistoryPath, log).Load(context.Background())
	s, err := domain.Summarize(entries, cfg.SummaryWindow)
	if errors.Is(err, domain.ErrNoData) {
		fmt.Println("No data yet.")
		return
	}
	if err != nil {
		log.Fatal("summarize", zap.Error(err))
	}

	fmt.Fprintf(os.Stdout, "%s last bid: %s (UTC %s, source %s)\n",
		s.Pair, s.LastBid.StringFixed(4), s.LastAt.UTC().Format(time.RFC3339), s.LastSource)
	if s.Change.Valid {
		sign := ""
		if s.Change.Decimal.Sign() >= 0 {
			sign = "+"
		}
		fmt.Printf("change vs previous: %s%s%% (previous UTC %s)\n",
			sign, s.Change.Decimal.StringFixed(2), s.PreviousAt.UTC().Format(time.RFC3339))
	} else {
		fmt.Println("change vs previous: N/A")
	}
	fmt.Printf("last %d points: min %s max %s (%d entries stored)\n",
		s.Points, s.Min.StringFixed(4), s.Max.StringFixed(4), s.TotalEntries)
}
