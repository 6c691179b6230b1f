// Package metrics exposes Prometheus instruments for the alarm monitor.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/oshokin/hackatime-alarm/internal/domain/alarm"
)

const namespace = "hackatime_alarm"

// Fetch results recorded by ObserveFetch.
const (
	FetchOK           = "ok"
	FetchAuthError    = "auth_error"
	FetchNetworkError = "network_error"
)

// Alarm states reported by the alarm collector.
const (
	StateDisabled  = "disabled"
	StatePending   = "pending"
	StateTriggered = "triggered"
)

// Metrics owns a private registry and the monitor instruments.
// A nil *Metrics records nothing.
type Metrics struct {
	// registry holds every collector served by Handler.
	registry *prometheus.Registry
	// fetches counts time source requests by result.
	fetches *prometheus.CounterVec
	// fired counts fired alarms by kind.
	fired *prometheus.CounterVec
	// elapsed is today's coding time from the latest reading.
	elapsed prometheus.Gauge
	// lastFetch is the unix time of the latest successful reading.
	lastFetch prometheus.Gauge
}

// New creates the instruments and registers them with runtime collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetches_total",
			Help:      "Coding time requests grouped by result.",
		}, []string{"result"}),
		fired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alarms_fired_total",
			Help:      "Fired alarms grouped by kind.",
		}, []string{"kind"}),
		elapsed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "elapsed_seconds",
			Help:      "Coding time reported by the latest reading.",
		}),
		lastFetch: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_fetch_timestamp_seconds",
			Help:      "Unix time of the latest successful reading.",
		}),
	}

	for _, result := range []string{FetchOK, FetchAuthError, FetchNetworkError} {
		m.fetches.WithLabelValues(result)
	}

	for _, kind := range []alarm.Kind{alarm.KindManual, alarm.KindInterval} {
		m.fired.WithLabelValues(string(kind))
	}

	m.registry.MustRegister(
		m.fetches,
		m.fired,
		m.elapsed,
		m.lastFetch,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// Registry returns the registry backing Handler.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveFetch counts one time source request.
func (m *Metrics) ObserveFetch(result string) {
	if m == nil {
		return
	}

	m.fetches.WithLabelValues(result).Inc()
}

// ObserveReading records the latest successful reading.
func (m *Metrics) ObserveReading(r alarm.Reading) {
	if m == nil {
		return
	}

	m.elapsed.Set(r.TotalSeconds)

	if !r.FetchedAt.IsZero() {
		m.lastFetch.Set(float64(r.FetchedAt.Unix()))
	}
}

// ObserveFiring counts one fired alarm.
func (m *Metrics) ObserveFiring(kind alarm.Kind) {
	if m == nil {
		return
	}

	m.fired.WithLabelValues(string(kind)).Inc()
}

// WatchAlarms registers a collector reporting alarm counts by kind and state.
func (m *Metrics) WatchAlarms(source AlarmSource) error {
	if m == nil {
		return nil
	}

	return m.registry.Register(NewAlarmCollector(source))
}
