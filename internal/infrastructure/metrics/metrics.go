package metrics

import (
	"time"

	"fxrates-watch/internal/application"
	"fxrates-watch/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

var _ application.Recorder = (*Run)(nil)

// Run holds the metrics of a single invocation on a private registry, so the
// result can be dumped for the node_exporter textfile collector at exit.
type Run struct {
	Registry *prometheus.Registry

	FetchTotal         *prometheus.CounterVec
	FetchFailuresTotal prometheus.Counter
	NotifyTotal        *prometheus.CounterVec
	LastBidGauge       *prometheus.GaugeVec
	RunDuration        prometheus.Gauge
	LastSuccess        prometheus.Gauge
}

func NewRun() *Run {
	reg := prometheus.NewRegistry()
	m := &Run{
		Registry: reg,
		FetchTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxwatch_fetch_total",
			Help: "Quotes captured, by source that answered.",
		}, []string{"source"}),
		FetchFailuresTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fxwatch_fetch_failures_total",
			Help: "Runs where every quote source failed.",
		}),
		NotifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fxwatch_notify_total",
			Help: "Webhook notifications by result (sent, failed, skipped).",
		}, []string{"result"}),
		LastBidGauge: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "fxwatch_last_bid",
			Help: "Bid of the last saved quote.",
		}, []string{"pair"}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fxwatch_run_duration_seconds",
			Help: "Wall time of the last run.",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fxwatch_last_success_timestamp_seconds",
			Help: "Unix time of the last run that saved a quote.",
		}),
	}
	reg.MustRegister(m.FetchTotal, m.FetchFailuresTotal, m.NotifyTotal, m.LastBidGauge, m.RunDuration, m.LastSuccess)
	return m
}

func (m *Run) FetchSucceeded(source string) { m.FetchTotal.WithLabelValues(source).Inc() }

func (m *Run) FetchFailed() { m.FetchFailuresTotal.Inc() }

func (m *Run) Notified(result string) { m.NotifyTotal.WithLabelValues(result).Inc() }

func (m *Run) LastBid(pair domain.Pair, bid float64) {
	m.LastBidGauge.WithLabelValues(pair.String()).Set(bid)
	m.LastSuccess.SetToCurrentTime()
}

func (m *Run) RunFinished(d time.Duration) { m.RunDuration.Set(d.Seconds()) }

// WriteTextfile writes the registry atomically in text exposition format.
func (m *Run) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.Registry)
}
