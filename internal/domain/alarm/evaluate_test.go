package alarm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// eightHourGoal returns a collection with one enabled, untriggered 8h 0m alarm.
func eightHourGoal(t *testing.T) Collection {
	t.Helper()

	c, _, err := Collection(nil).Add("Eight hours", 8, 0)
	require.NoError(t, err)

	return c
}

// TestEvaluate_FiresOnTarget checks that an alarm fires when the reading reaches its target.
func TestEvaluate_FiresOnTarget(t *testing.T) {
	t.Parallel()

	alarms := eightHourGoal(t)

	updated, fired := Evaluate(alarms, 8, 0, "2024-01-01")
	require.Len(t, fired, 1)
	require.Equal(t, alarms[0], fired[0].Alarm)
	require.Equal(t, 8, fired[0].Hours)
	require.Zero(t, fired[0].Minutes)

	require.True(t, updated[0].HasTriggered)
	require.Equal(t, Date("2024-01-01"), updated[0].LastTriggeredDate)

	// Input is untouched.
	require.False(t, alarms[0].HasTriggered)
}

// TestEvaluate_NoRefireSameDay ensures an alarm triggered today does not fire again.
func TestEvaluate_NoRefireSameDay(t *testing.T) {
	t.Parallel()

	alarms, _ := Evaluate(eightHourGoal(t), 8, 0, "2024-01-01")

	updated, fired := Evaluate(alarms, 9, 0, "2024-01-01")
	require.Empty(t, fired)
	require.True(t, updated[0].HasTriggered)
	require.Equal(t, Date("2024-01-01"), updated[0].LastTriggeredDate)
}

// TestEvaluate_Idempotent verifies that two identical passes fire each alarm at most once.
func TestEvaluate_Idempotent(t *testing.T) {
	t.Parallel()

	alarms, _, err := eightHourGoal(t).Add("One hour", 1, 0)
	require.NoError(t, err)

	first, fired := Evaluate(alarms, 10, 0, "2024-01-01")
	require.Len(t, fired, 2)

	second, fired := Evaluate(first, 10, 0, "2024-01-01")
	require.Empty(t, fired)
	require.Equal(t, first, second)
}

// TestEvaluate_DayRollover checks that stale trigger state is cleared before the firing check.
func TestEvaluate_DayRollover(t *testing.T) {
	t.Parallel()

	alarms, _ := Evaluate(eightHourGoal(t), 8, 0, "2024-01-01")

	// Below target on the next day: cleared and not fired.
	updated, fired := Evaluate(alarms, 0, 0, "2024-01-02")
	require.Empty(t, fired)
	require.False(t, updated[0].HasTriggered)
	require.True(t, updated[0].LastTriggeredDate.IsZero())

	// Above target on the next day: fires again.
	updated, fired = Evaluate(alarms, 8, 30, "2024-01-02")
	require.Len(t, fired, 1)
	require.Equal(t, Date("2024-01-02"), updated[0].LastTriggeredDate)
}

// TestEvaluate_Monotonic verifies that firing depends only on whether the reading reached the target.
func TestEvaluate_Monotonic(t *testing.T) {
	t.Parallel()

	c, _, err := Collection(nil).Add("Ninety", 1, 30)
	require.NoError(t, err)

	readings := []struct {
		hours, minutes int
		fires          bool
	}{
		{hours: 0, minutes: 59, fires: false},
		{hours: 1, minutes: 29, fires: false},
		{hours: 1, minutes: 30, fires: true},
		{hours: 1, minutes: 45, fires: false},
		{hours: 5, minutes: 0, fires: false},
	}

	for _, r := range readings {
		var fired []Firing

		c, fired = Evaluate(c, r.hours, r.minutes, "2024-03-10")
		require.Equal(t, r.fires, len(fired) == 1, "reading %dh %dm", r.hours, r.minutes)
	}

	// Hours past the target fire even with fewer minutes.
	c, _, err = Collection(nil).Add("Ninety", 1, 30)
	require.NoError(t, err)

	_, fired := Evaluate(c, 2, 0, "2024-03-10")
	require.Len(t, fired, 1)
}

// TestEvaluate_DisabledPassThrough ensures disabled alarms are neither fired nor rolled over.
func TestEvaluate_DisabledPassThrough(t *testing.T) {
	t.Parallel()

	alarms, _ := Evaluate(eightHourGoal(t), 8, 0, "2024-01-01")

	alarms, _, err := alarms.Toggle(alarms[0].ID)
	require.NoError(t, err)

	updated, fired := Evaluate(alarms, 12, 0, "2024-01-05")
	require.Empty(t, fired)
	require.Equal(t, alarms, updated)
	require.True(t, updated[0].HasTriggered)
}

// TestFiring_Message checks the notification text composed for a firing.
func TestFiring_Message(t *testing.T) {
	t.Parallel()

	_, fired := Evaluate(eightHourGoal(t), 8, 5, "2024-01-01")
	require.Len(t, fired, 1)

	require.Equal(t, "Coding alarm: Eight hours", fired[0].Title())
	require.Equal(t, `You've coded for 8h 5m today and reached "Eight hours" (8h 0m).`, fired[0].Message())
}

// TestNewReading verifies decomposition of total seconds.
func TestNewReading(t *testing.T) {
	t.Parallel()

	r := NewReading(3*3600+25*60+59.9, "3 hrs 25 mins")
	require.Equal(t, 3, r.Hours)
	require.Equal(t, 25, r.Minutes)
	require.Equal(t, "3 hrs 25 mins", r.Label)
	require.Equal(t, "3h 25m", r.Elapsed())

	r = NewReading(-10, "")
	require.Zero(t, r.Hours)
	require.Zero(t, r.Minutes)
	require.Zero(t, r.TotalSeconds)
}

// TestDateOf checks calendar day formatting.
func TestDateOf(t *testing.T) {
	t.Parallel()

	ts := time.Date(2024, time.February, 29, 23, 59, 0, 0, time.UTC)
	require.Equal(t, Date("2024-02-29"), DateOf(ts))
	require.True(t, Date("").IsZero())
}
