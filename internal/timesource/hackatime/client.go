// Package hackatime fetches today's coding time from the Hackatime API.
package hackatime

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/logger"
)

// todayPath is the status bar endpoint relative to the API base URL.
const todayPath = "/users/current/statusbar/today"

var (
	// ErrAuth is returned when the credential is missing or rejected.
	ErrAuth = errors.New("hackatime authentication failed")
	// ErrNetwork is returned when the API cannot be reached or answers unexpectedly.
	ErrNetwork = errors.New("hackatime request failed")
)

// statusBarResponse mirrors the part of the status bar payload we consume.
type statusBarResponse struct {
	Data struct {
		GrandTotal struct {
			TotalSeconds float64 `json:"total_seconds"`
			Text         string  `json:"text"`
		} `json:"grand_total"`
	} `json:"data"`
}

// Client reads elapsed coding time from Hackatime.
type Client struct {
	// http is the configured resty client.
	http *resty.Client
	// now stamps readings.
	now func() time.Time
}

// Option configures the client.
type Option func(*Client)

// WithClock sets the function used to stamp readings.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		if now != nil {
			c.now = now
		}
	}
}

// New creates a client for the API at baseURL.
func New(ctx context.Context, baseURL string, timeout time.Duration, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetLogger(logger.FromContext(ctx))

	c := &Client{
		http: httpClient,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// FetchElapsedTime returns today's coding time for the given API key.
func (c *Client) FetchElapsedTime(ctx context.Context, credential string) (alarm.Reading, error) {
	if strings.TrimSpace(credential) == "" {
		return alarm.Reading{}, fmt.Errorf("%w: api key is not set", ErrAuth)
	}

	var payload statusBarResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(credential).
		SetResult(&payload).
		Get(todayPath)
	if err != nil {
		return alarm.Reading{}, fmt.Errorf("%w: %w", ErrNetwork, err)
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return alarm.Reading{}, fmt.Errorf("%w: status %d", ErrAuth, code)
	case resp.IsError() || code < http.StatusOK || code >= http.StatusMultipleChoices:
		return alarm.Reading{}, fmt.Errorf("%w: status %d", ErrNetwork, code)
	}

	reading := alarm.NewReading(payload.Data.GrandTotal.TotalSeconds, payload.Data.GrandTotal.Text)
	reading.FetchedAt = c.now()

	logger.DebugKV(ctx, "Fetched coding time", "elapsed", reading.Elapsed(), "label", reading.Label)

	return reading, nil
}
