package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/hackatime-alarm/internal/domain/alarm"
)

// TestSystem_UsesLocation verifies that the day boundary follows the configured location.
func TestSystem_UsesLocation(t *testing.T) {
	t.Parallel()

	c := NewSystem(time.UTC)
	require.Equal(t, time.UTC, c.Now().Location())
	require.Equal(t, alarm.DateOf(time.Now().UTC()), c.Today())

	require.Equal(t, time.Local, NewSystem(nil).Now().Location())
}

// TestFixed checks the fixed clock used by tests.
func TestFixed(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*3600)
	c := Fixed{At: time.Date(2024, time.January, 1, 23, 30, 0, 0, time.UTC).In(tokyo)}

	require.Equal(t, alarm.Date("2024-01-02"), c.Today())
}
