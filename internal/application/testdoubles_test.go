package application

import (
	"context"
	"errors"
	"time"

	"fxrates-watch/internal/domain"
)

var (
	errUpstream = errors.New("upstream error")
)

type fakeClock struct{ t time.Time }

func (f fakeClock) Now() time.Time { return f.t }

type memHistory struct {
	entries []domain.Entry
	saves   int
	err     error
}

func (m *memHistory) Load(context.Context) []domain.Entry {
	return append([]domain.Entry(nil), m.entries...)
}

func (m *memHistory) Save(_ context.Context, entries []domain.Entry) error {
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.entries = append([]domain.Entry(nil), entries...)
	return nil
}

type fakeSource struct {
	name  string
	entry domain.Entry
	err   error
	calls int
	seen  []time.Time
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Quote(_ context.Context, pair domain.Pair, at time.Time) (domain.Entry, error) {
	f.calls++
	f.seen = append(f.seen, at)
	if f.err != nil {
		return domain.Entry{}, f.err
	}
	e := f.entry
	e.Pair, e.Timestamp, e.Source = pair, at, f.name
	return e, nil
}

type fakeFetcher struct {
	entry domain.Entry
	err   error
}

func (f *fakeFetcher) Fetch(context.Context, domain.Pair) (domain.Entry, error) {
	if f.err != nil {
		return domain.Entry{}, f.err
	}
	return f.entry, nil
}

type fakeNotifier struct {
	url      string
	messages []string
	err      error
}

func (f *fakeNotifier) Notify(_ context.Context, url, msg string) error {
	f.url = url
	f.messages = append(f.messages, msg)
	return f.err
}

type fakeGuard struct {
	held     map[string]bool
	released []string
	err      error
}

func (f *fakeGuard) TryReserve(_ context.Context, key string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	if f.held == nil {
		f.held = map[string]bool{}
	}
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeGuard) Release(_ context.Context, key string) error {
	delete(f.held, key)
	f.released = append(f.released, key)
	return nil
}

type fakeRecorder struct {
	sources  []string
	failures int
	notified []string
	bids     []float64
	runs     int
}

func (f *fakeRecorder) FetchSucceeded(s string)          { f.sources = append(f.sources, s) }
func (f *fakeRecorder) FetchFailed()                     { f.failures++ }
func (f *fakeRecorder) Notified(r string)                { f.notified = append(f.notified, r) }
func (f *fakeRecorder) LastBid(_ domain.Pair, b float64) { f.bids = append(f.bids, b) }
func (f *fakeRecorder) RunFinished(time.Duration)        { f.runs++ }
