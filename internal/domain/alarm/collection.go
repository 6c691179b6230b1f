package alarm

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// intervalNameFormat names generated interval alarms.
const intervalNameFormat = "Commit %d"

// Collection is an ordered set of alarms.
// Operations return a new Collection and leave the receiver untouched.
type Collection []Alarm

// Clone returns a copy that shares no backing array with c.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}

	cloned := make(Collection, len(c))
	copy(cloned, c)

	return cloned
}

// Find returns the alarm with the given id.
func (c Collection) Find(id string) (Alarm, bool) {
	idx := c.indexOf(id)
	if idx < 0 {
		return Alarm{}, false
	}

	return c[idx], true
}

// Count returns the number of alarms of the given kind.
func (c Collection) Count(kind Kind) int {
	var n int

	for i := range c {
		if c[i].Kind == kind {
			n++
		}
	}

	return n
}

// Add appends a new enabled manual alarm.
func (c Collection) Add(name string, hours, minutes int) (Collection, Alarm, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return c, Alarm{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	if err := validateTarget(hours, minutes); err != nil {
		return c, Alarm{}, err
	}

	created := newAlarm(name, hours, minutes, KindManual)

	result := make(Collection, 0, len(c)+1)
	result = append(result, c...)
	result = append(result, created)

	return result, created, nil
}

// GenerateInterval replaces all interval alarms with count alarms spaced by
// the given step. Alarm i targets step*i. A 0h 0m step is rejected with a
// ValidationError, and nothing changes when any target would exceed MaxHours.
func (c Collection) GenerateInterval(stepHours, stepMinutes, count int) (Collection, []Alarm, error) {
	if stepHours < 0 || stepHours > MaxHours {
		return c, nil, newRangeError("step hours", MaxHours)
	}

	if stepMinutes < 0 || stepMinutes > MaxMinutes {
		return c, nil, newRangeError("step minutes", MaxMinutes)
	}

	if stepHours == 0 && stepMinutes == 0 {
		return c, nil, &ValidationError{Field: "step", Reason: "must be longer than 0h 0m"}
	}

	if count < 1 || count > MaxIntervalCount {
		return c, nil, &ValidationError{
			Field:  "count",
			Reason: fmt.Sprintf("must be between 1 and %d", MaxIntervalCount),
		}
	}

	var (
		step      = stepHours*60 + stepMinutes
		generated = make([]Alarm, 0, count)
	)

	for i := 1; i <= count; i++ {
		total := step * i
		hours, minutes := total/60, total%60

		if hours > MaxHours {
			return c, nil, &ValidationError{
				Field:  "target",
				Index:  i,
				Reason: fmt.Sprintf("%s exceeds %d hours", FormatDuration(hours, minutes), MaxHours),
			}
		}

		generated = append(generated, newAlarm(fmt.Sprintf(intervalNameFormat, i), hours, minutes, KindInterval))
	}

	result := c.ClearInterval()
	result = append(result, generated...)

	created := make([]Alarm, len(generated))
	copy(created, generated)

	return result, created, nil
}

// ClearInterval removes every interval alarm.
func (c Collection) ClearInterval() Collection {
	result := make(Collection, 0, len(c))

	for i := range c {
		if c[i].Kind != KindInterval {
			result = append(result, c[i])
		}
	}

	return result
}

// Toggle flips the Enabled flag of an alarm.
func (c Collection) Toggle(id string) (Collection, Alarm, error) {
	return c.update(id, func(a *Alarm) {
		a.Enabled = !a.Enabled
	})
}

// ResetTrigger clears the trigger state of an alarm whatever its date.
func (c Collection) ResetTrigger(id string) (Collection, Alarm, error) {
	return c.update(id, (*Alarm).clearTrigger)
}

// Remove deletes an alarm.
func (c Collection) Remove(id string) (Collection, error) {
	idx := c.indexOf(id)
	if idx < 0 {
		return c, &NotFoundError{ID: id}
	}

	result := make(Collection, 0, len(c)-1)
	result = append(result, c[:idx]...)
	result = append(result, c[idx+1:]...)

	return result, nil
}

// update copies the collection and applies fn to the alarm with the given id.
func (c Collection) update(id string, fn func(*Alarm)) (Collection, Alarm, error) {
	idx := c.indexOf(id)
	if idx < 0 {
		return c, Alarm{}, &NotFoundError{ID: id}
	}

	result := c.Clone()
	fn(&result[idx])

	return result, result[idx], nil
}

func (c Collection) indexOf(id string) int {
	for i := range c {
		if c[i].ID == id {
			return i
		}
	}

	return -1
}

func newAlarm(name string, hours, minutes int, kind Kind) Alarm {
	return Alarm{
		ID:            uuid.NewString(),
		Name:          name,
		TargetHours:   hours,
		TargetMinutes: minutes,
		Enabled:       true,
		Kind:          kind,
	}
}

func validateTarget(hours, minutes int) error {
	if hours < 0 || hours > MaxHours {
		return newRangeError("hours", MaxHours)
	}

	if minutes < 0 || minutes > MaxMinutes {
		return newRangeError("minutes", MaxMinutes)
	}

	return nil
}
