package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/oshokin/hackatime-alarm/internal/domain/alarm"
)

// AlarmSource returns the current collection and the day it is judged against.
type AlarmSource func() (alarm.Collection, alarm.Date)

var alarmsDesc = prometheus.NewDesc(
	prometheus.BuildFQName(namespace, "", "alarms"),
	"Configured alarms grouped by kind and state.",
	[]string{"kind", "state"},
	nil,
)

// AlarmCollector reads alarm counts at scrape time.
type AlarmCollector struct {
	source AlarmSource
}

// NewAlarmCollector creates a collector over source.
func NewAlarmCollector(source AlarmSource) *AlarmCollector {
	return &AlarmCollector{source: source}
}

// Describe implements prometheus.Collector.
func (c *AlarmCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- alarmsDesc
}

// Collect implements prometheus.Collector.
func (c *AlarmCollector) Collect(ch chan<- prometheus.Metric) {
	alarms, today := c.source()

	counts := make(map[alarm.Kind]map[string]float64, 2)
	for _, kind := range []alarm.Kind{alarm.KindManual, alarm.KindInterval} {
		counts[kind] = map[string]float64{
			StateDisabled:  0,
			StatePending:   0,
			StateTriggered: 0,
		}
	}

	for i := range alarms {
		a := &alarms[i]

		byState, ok := counts[a.Kind]
		if !ok {
			continue
		}

		switch {
		case !a.Enabled:
			byState[StateDisabled]++
		case a.TriggeredOn(today):
			byState[StateTriggered]++
		default:
			byState[StatePending]++
		}
	}

	for kind, byState := range counts {
		for state, n := range byState {
			ch <- prometheus.MustNewConstMetric(alarmsDesc, prometheus.GaugeValue, n, string(kind), state)
		}
	}
}
