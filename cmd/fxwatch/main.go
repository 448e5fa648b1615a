package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"fxrates-watch/internal/bootstrap"
	"fxrates-watch/internal/config"
	"fxrates-watch/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	os.Exit(run())
}

func run() int {
	log := logx.L()
	defer logx.Sync()

	cfg, err := config.Load()
	if err != nil {
		log.Error("load config", zap.Error(err))
		return 1
	}
	logx.SetLevel(cfg.LogLevel)

	ctx := context.Background()
	app, cleanup, err := bootstrap.InitApp(ctx, cfg)
	if err != nil {
		log.Error("init app", zap.Error(err))
		return 1
	}
	defer cleanup()
	defer func() {
		if cfg.MetricsTextfile == "" {
			return
		}
		if err := app.Metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			log.Warn("write metrics textfile", zap.String("path", cfg.MetricsTextfile), zap.Error(err))
		}
	}()

	res, err := app.Runner.Run(ctx)
	if err != nil {
		log.Error("run failed", zap.Error(err))
		fmt.Fprintf(os.Stderr, "ERROR - %v\n", err)
		return 1
	}

	if cfg.WebhookURL == "" {
		fmt.Println("Webhook URL not configured; history updated without notification.")
	} else if res.NotifyErr != nil {
		fmt.Fprintf(os.Stderr, "WARN - notification failed: %v\n", res.NotifyErr)
	}
	fmt.Printf("OK - saved quote: %s at %s\n", res.Entry.Bid.String(), res.Entry.Timestamp.UTC().Format(time.RFC3339Nano))
	return 0
}
