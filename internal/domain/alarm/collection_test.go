package alarm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestCollection_Add verifies that valid alarms are appended as enabled manual alarms.
func TestCollection_Add(t *testing.T) {
	t.Parallel()

	var empty Collection

	got, created, err := empty.Add("  Daily goal ", 8, 30)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Empty(t, empty)

	require.NotEmpty(t, created.ID)
	require.Equal(t, "Daily goal", created.Name)
	require.Equal(t, 8, created.TargetHours)
	require.Equal(t, 30, created.TargetMinutes)
	require.True(t, created.Enabled)
	require.False(t, created.HasTriggered)
	require.True(t, created.LastTriggeredDate.IsZero())
	require.Equal(t, KindManual, created.Kind)
	require.Equal(t, created, got[0])

	got, second, err := got.Add("Second", 0, 0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotEqual(t, created.ID, second.ID)
}

// TestCollection_Add_Validation checks that out-of-range values and empty names are rejected without mutation.
func TestCollection_Add_Validation(t *testing.T) {
	t.Parallel()

	base, _, err := Collection(nil).Add("Existing", 1, 0)
	require.NoError(t, err)

	cases := []struct {
		name    string
		label   string
		hours   int
		minutes int
		field   string
	}{
		{name: "empty name", label: "   ", hours: 1, minutes: 0, field: "name"},
		{name: "negative hours", label: "x", hours: -1, minutes: 0, field: "hours"},
		{name: "hours too large", label: "x", hours: 24, minutes: 0, field: "hours"},
		{name: "negative minutes", label: "x", hours: 0, minutes: -1, field: "minutes"},
		{name: "minutes too large", label: "x", hours: 0, minutes: 60, field: "minutes"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, _, err := base.Add(tc.label, tc.hours, tc.minutes)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tc.field, validationErr.Field)
			require.Equal(t, base, got)
			require.Len(t, base, 1)
		})
	}

	// Range bounds are inclusive.
	_, created, err := base.Add("Edge", MaxHours, MaxMinutes)
	require.NoError(t, err)
	require.Equal(t, "23h 59m", created.Target())
}

// TestCollection_GenerateInterval verifies batch generation and replacement of interval alarms.
func TestCollection_GenerateInterval(t *testing.T) {
	t.Parallel()

	got, created, err := Collection(nil).GenerateInterval(1, 0, 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Len(t, created, 3)

	for i, a := range got {
		require.Equal(t, KindInterval, a.Kind)
		require.True(t, a.Enabled)
		require.False(t, a.HasTriggered)
		require.Equal(t, i+1, a.TargetHours)
		require.Zero(t, a.TargetMinutes)
	}

	require.Equal(t, "Commit 1", got[0].Name)
	require.Equal(t, "Commit 2", got[1].Name)
	require.Equal(t, "Commit 3", got[2].Name)

	// A second batch replaces the first one and keeps manual alarms.
	got, _, err = got.Add("Manual", 5, 0)
	require.NoError(t, err)

	got, _, err = got.GenerateInterval(0, 45, 2)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, 1, got.Count(KindManual))
	require.Equal(t, 2, got.Count(KindInterval))

	second, ok := got.Find(got[2].ID)
	require.True(t, ok)
	require.Equal(t, "Commit 2", second.Name)
	require.Equal(t, 1, second.TargetHours)
	require.Equal(t, 30, second.TargetMinutes)
}

// TestCollection_GenerateInterval_Overflow ensures a batch with a target past 23 hours creates nothing.
func TestCollection_GenerateInterval_Overflow(t *testing.T) {
	t.Parallel()

	base, _, err := Collection(nil).GenerateInterval(2, 0, 2)
	require.NoError(t, err)

	got, created, err := base.GenerateInterval(10, 0, 3)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, 3, validationErr.Index)
	require.Contains(t, err.Error(), "commit 3")
	require.Nil(t, created)
	require.Equal(t, base, got)

	// 23h 59m is still allowed.
	_, created, err = Collection(nil).GenerateInterval(11, 59, 2)
	require.NoError(t, err)
	require.Equal(t, "23h 58m", created[1].Target())
}

// TestCollection_GenerateInterval_Validation checks parameter range validation.
func TestCollection_GenerateInterval_Validation(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name                string
		hours, minutes, cnt int
		field               string
	}{
		{name: "hours too large", hours: 24, minutes: 0, cnt: 1, field: "step hours"},
		{name: "negative minutes", hours: 1, minutes: -5, cnt: 1, field: "step minutes"},
		{name: "zero step", hours: 0, minutes: 0, cnt: 1, field: "step"},
		{name: "zero count", hours: 1, minutes: 0, cnt: 0, field: "count"},
		{name: "count too large", hours: 0, minutes: 1, cnt: MaxIntervalCount + 1, field: "count"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := Collection(nil).GenerateInterval(tc.hours, tc.minutes, tc.cnt)

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			require.Equal(t, tc.field, validationErr.Field)
			require.Zero(t, validationErr.Index)
		})
	}
}

// TestCollection_GenerateInterval_ZeroStep verifies a 0h 0m step leaves existing interval alarms untouched.
func TestCollection_GenerateInterval_ZeroStep(t *testing.T) {
	t.Parallel()

	c, before, err := Collection(nil).GenerateInterval(2, 0, 3)
	require.NoError(t, err)

	got, created, err := c.GenerateInterval(0, 0, 3)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "step", validationErr.Field)
	require.Contains(t, validationErr.Error(), "0h 0m")
	require.Nil(t, created)
	require.Equal(t, c, got)
	require.Equal(t, len(before), got.Count(KindInterval))
}

// TestCollection_ClearInterval verifies that only interval alarms are removed.
func TestCollection_ClearInterval(t *testing.T) {
	t.Parallel()

	c, _, err := Collection(nil).GenerateInterval(1, 0, 4)
	require.NoError(t, err)

	c, manual, err := c.Add("Keep me", 2, 0)
	require.NoError(t, err)

	cleared := c.ClearInterval()
	require.Len(t, cleared, 1)
	require.Equal(t, manual, cleared[0])
	require.Len(t, c, 5)
}

// TestCollection_ToggleRemoveReset covers the id-based operations and their NotFound behavior.
func TestCollection_ToggleRemoveReset(t *testing.T) {
	t.Parallel()

	c, a, err := Collection(nil).Add("Goal", 1, 0)
	require.NoError(t, err)

	toggled, updated, err := c.Toggle(a.ID)
	require.NoError(t, err)
	require.False(t, updated.Enabled)
	require.False(t, toggled[0].Enabled)
	require.True(t, c[0].Enabled)

	triggered, _ := Evaluate(c, 2, 0, "2024-01-01")
	require.True(t, triggered[0].HasTriggered)

	reset, updated, err := triggered.ResetTrigger(a.ID)
	require.NoError(t, err)
	require.False(t, updated.HasTriggered)
	require.True(t, updated.LastTriggeredDate.IsZero())
	require.Equal(t, updated, reset[0])
	require.True(t, triggered[0].HasTriggered)

	removed, err := c.Remove(a.ID)
	require.NoError(t, err)
	require.Empty(t, removed)
	require.Len(t, c, 1)

	var notFound *NotFoundError

	_, _, err = c.Toggle("missing")
	require.ErrorAs(t, err, &notFound)
	require.Equal(t, "missing", notFound.ID)

	_, err = c.Remove("missing")
	require.True(t, errors.As(err, &notFound))

	_, _, err = c.ResetTrigger("missing")
	require.ErrorAs(t, err, &notFound)
}
