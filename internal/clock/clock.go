// Package clock supplies the calendar day used for trigger rollover.
package clock

import (
	"time"

	"github.com/oshokin/hackatime-alarm/internal/domain/alarm"
)

// Clock tells the current time and calendar day.
// Implementations must use one day boundary for every evaluation pass.
type Clock interface {
	Now() time.Time
	Today() alarm.Date
}

// System is the wall clock in a fixed location.
type System struct {
	// loc defines the day boundary.
	loc *time.Location
}

// NewSystem returns a wall clock for the given location, or the local zone when nil.
func NewSystem(loc *time.Location) *System {
	if loc == nil {
		loc = time.Local
	}

	return &System{loc: loc}
}

// Now returns the current time in the clock location.
func (s *System) Now() time.Time {
	return time.Now().In(s.loc)
}

// Today returns the current calendar day in the clock location.
func (s *System) Today() alarm.Date {
	return alarm.DateOf(s.Now())
}

// Fixed always reports the same instant. It is meant for tests and replays.
type Fixed struct {
	// At is the reported instant.
	At time.Time
}

// Now returns At.
func (f Fixed) Now() time.Time {
	return f.At
}

// Today returns the calendar day of At.
func (f Fixed) Today() alarm.Date {
	return alarm.DateOf(f.At)
}
