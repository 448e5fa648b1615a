package application

import (
	"context"
	"time"

	"fxrates-watch/internal/domain"
)

// NoopGuard always reserves; used when no run guard backend is configured.
type NoopGuard struct{}

func (NoopGuard) TryReserve(context.Context, string) (bool, error) { return true, nil }
func (NoopGuard) Release(context.Context, string) error            { return nil }

type noopRecorder struct{}

func (noopRecorder) FetchSucceeded(string)        {}
func (noopRecorder) FetchFailed()                 {}
func (noopRecorder) Notified(string)              {}
func (noopRecorder) LastBid(domain.Pair, float64) {}
func (noopRecorder) RunFinished(time.Duration)    {}
