package alarm

import "fmt"

// Firing is an alarm that fired during an evaluation pass,
// together with the reading that made it fire.
type Firing struct {
	// Alarm is the alarm as it was before the pass marked it triggered.
	Alarm Alarm
	// Hours is the elapsed hours of the triggering reading.
	Hours int
	// Minutes is the elapsed minutes of the triggering reading.
	Minutes int
}

// Title returns the notification title for the firing.
func (f *Firing) Title() string {
	return "Coding alarm: " + f.Alarm.Name
}

// Message returns the notification body for the firing.
func (f *Firing) Message() string {
	return fmt.Sprintf(
		"You've coded for %s today and reached %q (%s).",
		FormatDuration(f.Hours, f.Minutes),
		f.Alarm.Name,
		f.Alarm.Target(),
	)
}

// Evaluate applies the firing rule to every alarm for the elapsed time
// hours:minutes observed on today. It returns all alarms, changed or not,
// and the alarms that fired in this pass. Each alarm fires at most once per day:
// trigger state from another day is cleared before the check, and an alarm
// already triggered today is skipped.
func Evaluate(alarms Collection, hours, minutes int, today Date) (Collection, []Firing) {
	var (
		updated = alarms.Clone()
		fired   []Firing
	)

	for i := range updated {
		a := &updated[i]

		if !a.Enabled {
			continue
		}

		if a.LastTriggeredDate != today {
			a.clearTrigger()
		}

		if a.HasTriggered || !a.reached(hours, minutes) {
			continue
		}

		fired = append(fired, Firing{
			Alarm:   *a,
			Hours:   hours,
			Minutes: minutes,
		})

		a.HasTriggered = true
		a.LastTriggeredDate = today
	}

	return updated, fired
}
