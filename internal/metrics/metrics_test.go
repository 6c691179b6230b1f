package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/oshokin/hackatime-alarm/internal/domain/alarm"
)

// TestMetrics_Observe verifies counters and gauges move with observations.
func TestMetrics_Observe(t *testing.T) {
	t.Parallel()

	m := New()

	m.ObserveFetch(FetchOK)
	m.ObserveFetch(FetchOK)
	m.ObserveFetch(FetchNetworkError)
	m.ObserveFiring(alarm.KindInterval)

	fetchedAt := time.Unix(1_700_000_000, 0)
	m.ObserveReading(alarm.Reading{TotalSeconds: 3720, FetchedAt: fetchedAt})

	require.InDelta(t, 2, testutil.ToFloat64(m.fetches.WithLabelValues(FetchOK)), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.fetches.WithLabelValues(FetchNetworkError)), 0)
	require.InDelta(t, 0, testutil.ToFloat64(m.fetches.WithLabelValues(FetchAuthError)), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.fired.WithLabelValues(string(alarm.KindInterval))), 0)
	require.InDelta(t, 3720, testutil.ToFloat64(m.elapsed), 0)
	require.InDelta(t, 1_700_000_000, testutil.ToFloat64(m.lastFetch), 0)
}

// TestMetrics_Nil ensures a nil receiver records nothing and does not panic.
func TestMetrics_Nil(t *testing.T) {
	t.Parallel()

	var m *Metrics

	m.ObserveFetch(FetchOK)
	m.ObserveFiring(alarm.KindManual)
	m.ObserveReading(alarm.Reading{})
	require.NoError(t, m.WatchAlarms(nil))
}

// TestAlarmCollector groups alarms by kind and state for the given day.
func TestAlarmCollector(t *testing.T) {
	t.Parallel()

	c, manual, err := alarm.Collection(nil).Add("Daily goal", 8, 0)
	require.NoError(t, err)

	c, _, err = c.GenerateInterval(1, 0, 3)
	require.NoError(t, err)

	c, _ = alarm.Evaluate(c, 1, 30, "2024-05-01")

	c, _, err = c.Toggle(manual.ID)
	require.NoError(t, err)

	collector := NewAlarmCollector(func() (alarm.Collection, alarm.Date) {
		return c, "2024-05-01"
	})

	expected := `
# HELP hackatime_alarm_alarms Configured alarms grouped by kind and state.
# TYPE hackatime_alarm_alarms gauge
hackatime_alarm_alarms{kind="interval",state="disabled"} 0
hackatime_alarm_alarms{kind="interval",state="pending"} 2
hackatime_alarm_alarms{kind="interval",state="triggered"} 1
hackatime_alarm_alarms{kind="manual",state="disabled"} 1
hackatime_alarm_alarms{kind="manual",state="pending"} 0
hackatime_alarm_alarms{kind="manual",state="triggered"} 0
`

	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(expected)))
}

// TestMetrics_Handler serves registered series in the exposition format.
func TestMetrics_Handler(t *testing.T) {
	t.Parallel()

	m := New()
	require.NoError(t, m.WatchAlarms(func() (alarm.Collection, alarm.Date) {
		return nil, ""
	}))

	m.ObserveFetch(FetchAuthError)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `hackatime_alarm_fetches_total{result="auth_error"} 1`)
	require.Contains(t, rec.Body.String(), `hackatime_alarm_alarms{kind="manual",state="pending"} 0`)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}
