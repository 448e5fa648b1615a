package logx

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.Logger
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
)

func init() {
	zapCfg := zap.NewProductionConfig()
	zapCfg.Sampling = nil
	zapCfg.DisableStacktrace = true
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zapCfg.Level = level

	SetLevel(os.Getenv("LOG_LEVEL"))

	var err error
	logger, err = zapCfg.Build(zap.AddCaller())
	if err != nil {
		panic(err)
	}
}

// L returns the package-level logger instance.
func L() *zap.Logger {
	return logger
}

// SetLevel adjusts the level of the shared logger. Unknown or empty levels are ignored.
func SetLevel(lvl string) {
	if lvl == "" {
		return
	}
	_ = level.UnmarshalText([]byte(strings.ToLower(lvl)))
}

// Sync flushes buffered entries; errors from syncing stderr are ignored.
func Sync() { _ = logger.Sync() }
