package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	// Common
	Env      string `env:"ENV" env-default:"local"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`
	// History
	Pair            string `env:"PAIR" env-default:"USD/BRL"`
	HistoryPath     string `env:"HISTORY_PATH" env-default:"data/usdbrl.json"`
	HistoryMaxItems int    `env:"HISTORY_MAX_ITEMS" env-default:"730"`
	SummaryWindow   int    `env:"SUMMARY_WINDOW" env-default:"60"`
	// Provider
	Provider         string        `env:"PROVIDER" env-default:"live"`
	SpotAPIBase      string        `env:"SPOT_API_BASE" env-default:"https://economia.awesomeapi.com.br"`
	PTAXAPIBase      string        `env:"PTAX_API_BASE" env-default:"https://olinda.bcb.gov.br/olinda/servico/PTAX/versao/v1/odata"`
	SpotRetries      int           `env:"SPOT_RETRIES" env-default:"2"`
	PTAXRetries      int           `env:"PTAX_RETRIES" env-default:"4"`
	PTAXLookbackDays int           `env:"PTAX_LOOKBACK_DAYS" env-default:"7"`
	BackoffUnit      time.Duration `env:"BACKOFF_UNIT" env-default:"1s"`
	RequestTimeout   time.Duration `env:"REQUEST_TIMEOUT" env-default:"20s"`
	// Notification
	WebhookURL    string        `env:"WEBHOOK_URL,DISCORD_WEBHOOK_URL"`
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" env-default:"20s"`
	NotifyPolicy  string        `env:"NOTIFY_POLICY" env-default:"always"`
	NotifyBelow   string        `env:"NOTIFY_BELOW"`
	NotifyAbove   string        `env:"NOTIFY_ABOVE"`
	// Run guard (redis)
	RunGuard      string        `env:"RUN_GUARD" env-default:"none"`
	RedisAddr     string        `env:"REDIS_ADDR" env-default:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" env-default:"0"`
	RunGuardTTL   time.Duration `env:"RUN_GUARD_TTL" env-default:"10m"`
	// Metrics
	MetricsTextfile string `env:"METRICS_TEXTFILE"`
}

// Load reads environment variables and applies defaults.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: read env: %w", err)
	}
	return cfg, nil
}
