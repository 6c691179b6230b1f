package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pquerna/ffjson/ffjson"
	"github.com/stretchr/testify/require"

	domain "github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/metrics"
	"github.com/oshokin/hackatime-alarm/internal/service/alarms"
)

// newTestRouter wires a router over an in-memory alarm service with one alarm.
func newTestRouter(t *testing.T) (*Router, domain.Alarm) {
	t.Helper()

	ctx := context.Background()

	svc, err := alarms.New(ctx, nil)
	require.NoError(t, err)

	a, err := svc.Add(ctx, "Daily goal", 4, 0)
	require.NoError(t, err)

	reading := domain.NewReading(3600, "1 hr")

	r := NewRouter(ctx, svc, func(ctx context.Context) alarms.Status {
		return alarms.Status{Today: "2024-05-01", Reading: &reading, Alarms: svc.List(ctx)}
	}, metrics.New().Handler())

	return r, a
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

// TestRouter_Routes checks every route returns the expected status and payload.
func TestRouter_Routes(t *testing.T) {
	t.Parallel()

	r, a := newTestRouter(t)

	rec := get(t, r, PathHealth)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = get(t, r, PathAlarms)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var list []domain.Alarm
	require.NoError(t, ffjson.Unmarshal(rec.Body.Bytes(), &list))
	require.Equal(t, []domain.Alarm{a}, list)

	rec = get(t, r, "/api/v1/alarms/"+a.ID)
	require.Equal(t, http.StatusOK, rec.Code)

	var single domain.Alarm
	require.NoError(t, ffjson.Unmarshal(rec.Body.Bytes(), &single))
	require.Equal(t, a, single)

	rec = get(t, r, "/api/v1/alarms/missing")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "missing")

	rec = get(t, r, PathStatus)
	require.Equal(t, http.StatusOK, rec.Code)

	var st alarms.Status
	require.NoError(t, ffjson.Unmarshal(rec.Body.Bytes(), &st))
	require.Equal(t, domain.Date("2024-05-01"), st.Today)
	require.Equal(t, 1, st.Reading.Hours)
	require.Len(t, st.Alarms, 1)

	rec = get(t, r, PathMetrics)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "hackatime_alarm_fetches_total")

	rec = get(t, r, "/nowhere")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"not found"}`, rec.Body.String())
}

// TestRouter_MethodNotAllowed rejects writes on the read-only surface.
func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	r, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, PathAlarms, nil))
	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

// TestRouter_EmptyList renders an empty array rather than null.
func TestRouter_EmptyList(t *testing.T) {
	t.Parallel()

	svc, err := alarms.New(context.Background(), nil)
	require.NoError(t, err)

	r := NewRouter(context.Background(), svc, nil, nil)

	rec := get(t, r, PathAlarms)
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	rec = get(t, r, PathMetrics)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
