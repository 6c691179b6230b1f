package alarm

import (
	"math"
	"time"
)

//go:generate ffjson -nodecoder reading.go

const (
	secondsPerHour   = 3600
	secondsPerMinute = 60
)

// Reading is a snapshot of today's elapsed coding time.
type Reading struct {
	// TotalSeconds is the raw elapsed time reported by the source.
	TotalSeconds float64 `json:"total_seconds"`
	// Hours is the whole hours of TotalSeconds.
	Hours int `json:"hours"`
	// Minutes is the whole minutes left after Hours.
	Minutes int `json:"minutes"`
	// Label is the human readable text supplied by the source.
	Label string `json:"label"`
	// FetchedAt is when the reading was taken.
	FetchedAt time.Time `json:"fetched_at"`
}

// NewReading decomposes totalSeconds into whole hours and remaining minutes.
// Negative or NaN totals are treated as zero.
func NewReading(totalSeconds float64, label string) Reading {
	if totalSeconds < 0 || math.IsNaN(totalSeconds) {
		totalSeconds = 0
	}

	whole := int64(math.Floor(totalSeconds))

	return Reading{
		TotalSeconds: totalSeconds,
		Hours:        int(whole / secondsPerHour),
		Minutes:      int((whole % secondsPerHour) / secondsPerMinute),
		Label:        label,
	}
}

// Elapsed renders the reading as "Xh Ym".
func (r *Reading) Elapsed() string {
	return FormatDuration(r.Hours, r.Minutes)
}
