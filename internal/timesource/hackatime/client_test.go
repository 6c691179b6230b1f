package hackatime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// newTestServer serves the status bar endpoint with the given status and body.
func newTestServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/hackatime/v1"+todayPath {
			http.NotFound(w, r)
			return
		}

		if r.Header.Get("Authorization") != "Bearer good-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))

	t.Cleanup(server.Close)

	return server
}

// TestFetchElapsedTime decodes the grand total and decomposes it into hours and minutes.
func TestFetchElapsedTime(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, http.StatusOK, `{"data":{"grand_total":{"total_seconds":29100.5,"text":"8 hrs 5 mins"}}}`)
	fetchedAt := time.Date(2024, time.January, 1, 18, 0, 0, 0, time.UTC)

	c := New(
		context.Background(),
		server.URL+"/api/hackatime/v1/",
		time.Second,
		WithClock(func() time.Time { return fetchedAt }),
	)

	reading, err := c.FetchElapsedTime(context.Background(), "good-key")
	require.NoError(t, err)
	require.Equal(t, 8, reading.Hours)
	require.Equal(t, 5, reading.Minutes)
	require.InDelta(t, 29100.5, reading.TotalSeconds, 0.001)
	require.Equal(t, "8 hrs 5 mins", reading.Label)
	require.Equal(t, fetchedAt, reading.FetchedAt)
}

// TestFetchElapsedTime_Errors maps credential and transport failures to ErrAuth and ErrNetwork.
func TestFetchElapsedTime_Errors(t *testing.T) {
	t.Parallel()

	ok := newTestServer(t, http.StatusOK, `{"data":{"grand_total":{"total_seconds":60,"text":"1 min"}}}`)
	broken := newTestServer(t, http.StatusBadGateway, `{}`)
	garbage := newTestServer(t, http.StatusOK, `{"data":`)

	ctx := context.Background()

	// Empty credential never reaches the network.
	_, err := New(ctx, ok.URL+"/api/hackatime/v1", time.Second).FetchElapsedTime(ctx, " ")
	require.ErrorIs(t, err, ErrAuth)

	// Rejected credential.
	_, err = New(ctx, ok.URL+"/api/hackatime/v1", time.Second).FetchElapsedTime(ctx, "bad-key")
	require.ErrorIs(t, err, ErrAuth)

	// Upstream failure.
	_, err = New(ctx, broken.URL+"/api/hackatime/v1", time.Second).FetchElapsedTime(ctx, "good-key")
	require.ErrorIs(t, err, ErrNetwork)

	// Undecodable body.
	_, err = New(ctx, garbage.URL+"/api/hackatime/v1", time.Second).FetchElapsedTime(ctx, "good-key")
	require.ErrorIs(t, err, ErrNetwork)

	// Unreachable host.
	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()

	_, err = New(ctx, closed.URL, 200*time.Millisecond).FetchElapsedTime(ctx, "good-key")
	require.ErrorIs(t, err, ErrNetwork)
}
