package alarm

import (
	"fmt"
	"time"
)

//go:generate ffjson -nodecoder alarm.go

// Kind tells how an alarm was created.
type Kind string

const (
	// KindManual marks alarms created one by one.
	KindManual Kind = "manual"
	// KindInterval marks alarms generated as a batch by GenerateInterval.
	KindInterval Kind = "interval"
)

const (
	// MaxHours is the largest allowed target hour.
	MaxHours = 23
	// MaxMinutes is the largest allowed target minute.
	MaxMinutes = 59
	// MaxIntervalCount is the largest number of alarms one interval batch can hold.
	MaxIntervalCount = 50

	// dateLayout is the calendar day format used for Date values.
	dateLayout = time.DateOnly
)

// Date is a calendar day formatted as YYYY-MM-DD.
// The zero value means "no date".
type Date string

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(dateLayout))
}

// IsZero reports whether the date is absent.
func (d Date) IsZero() bool {
	return d == ""
}

// String implements fmt.Stringer.
func (d Date) String() string {
	return string(d)
}

// Alarm is a named threshold of daily coding time.
type Alarm struct {
	// ID is the opaque identifier assigned at creation.
	ID string `json:"id"`
	// Name is the display label.
	Name string `json:"name"`
	// TargetHours is the hour part of the threshold (0-23).
	TargetHours int `json:"target_hours"`
	// TargetMinutes is the minute part of the threshold (0-59).
	TargetMinutes int `json:"target_minutes"`
	// Enabled alarms take part in evaluation.
	Enabled bool `json:"enabled"`
	// HasTriggered is true once the alarm fired on LastTriggeredDate.
	HasTriggered bool `json:"has_triggered"`
	// LastTriggeredDate is the day the alarm last fired.
	LastTriggeredDate Date `json:"last_triggered_date,omitempty"`
	// Kind tells whether the alarm was added manually or generated.
	Kind Kind `json:"kind"`
}

// Target renders the threshold as "Xh Ym".
func (a *Alarm) Target() string {
	return FormatDuration(a.TargetHours, a.TargetMinutes)
}

// TriggeredOn reports whether the alarm already fired on the given day.
func (a *Alarm) TriggeredOn(day Date) bool {
	return a.HasTriggered && a.LastTriggeredDate == day
}

// clearTrigger drops the trigger state.
func (a *Alarm) clearTrigger() {
	a.HasTriggered = false
	a.LastTriggeredDate = ""
}

// reached reports whether the elapsed time meets or passes the target.
func (a *Alarm) reached(hours, minutes int) bool {
	if hours != a.TargetHours {
		return hours > a.TargetHours
	}

	return minutes >= a.TargetMinutes
}

// FormatDuration renders hours and minutes as "Xh Ym".
func FormatDuration(hours, minutes int) string {
	return fmt.Sprintf("%dh %dm", hours, minutes)
}
