package alarm

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/pquerna/ffjson/ffjson"
	fflib "github.com/pquerna/ffjson/fflib/v1"
	"github.com/stretchr/testify/require"
)

// bufferMarshaler is the encoder ffjson.Marshal prefers over reflection.
type bufferMarshaler interface {
	MarshalJSONBuf(buf fflib.EncodingBuffer) error
}

// TestAlarm_MarshalJSON checks the generated encoder against the reflection encoding of the same fields.
func TestAlarm_MarshalJSON(t *testing.T) {
	t.Parallel()

	type plainAlarm Alarm

	require.Implements(t, (*bufferMarshaler)(nil), new(Alarm))

	tests := []struct {
		name  string
		alarm Alarm
		want  string
	}{
		{
			name: "pending manual alarm",
			alarm: Alarm{
				ID: "a1", Name: "Daily goal", TargetHours: 6, TargetMinutes: 15,
				Enabled: true, Kind: KindManual,
			},
			want: `{"id":"a1","name":"Daily goal","target_hours":6,"target_minutes":15,` +
				`"enabled":true,"has_triggered":false,"kind":"manual"}`,
		},
		{
			name: "triggered interval alarm",
			alarm: Alarm{
				ID: "a2", Name: "Interval 2h 0m", TargetHours: 2,
				Enabled: true, HasTriggered: true, LastTriggeredDate: "2024-05-01", Kind: KindInterval,
			},
			want: `{"id":"a2","name":"Interval 2h 0m","target_hours":2,"target_minutes":0,` +
				`"enabled":true,"has_triggered":true,"last_triggered_date":"2024-05-01","kind":"interval"}`,
		},
		{
			name:  "escaped name",
			alarm: Alarm{ID: "a3", Name: "\"quoted\" <tag>\n", Kind: KindManual},
			want: `{"id":"a3","name":"\"quoted\" <tag>\n","target_hours":0,"target_minutes":0,` +
				`"enabled":false,"has_triggered":false,"kind":"manual"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ffjson.Marshal(&tt.alarm)
			require.NoError(t, err)
			require.JSONEq(t, tt.want, string(got))

			plain := plainAlarm(tt.alarm)

			reflected, err := json.Marshal(&plain)
			require.NoError(t, err)
			require.JSONEq(t, string(reflected), string(got))

			var decoded Alarm
			require.NoError(t, ffjson.Unmarshal(got, &decoded))
			require.Equal(t, tt.alarm, decoded)
		})
	}
}

// TestCollection_MarshalJSON verifies slices of alarms use the generated encoder per element.
func TestCollection_MarshalJSON(t *testing.T) {
	t.Parallel()

	c, _, err := Collection(nil).GenerateInterval(1, 30, 2)
	require.NoError(t, err)

	got, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded Collection
	require.NoError(t, json.Unmarshal(got, &decoded))
	require.Equal(t, c, decoded)

	var nilAlarm *Alarm

	data, err := nilAlarm.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, "null", string(data))
}

// TestReading_MarshalJSON checks the generated encoder for readings.
func TestReading_MarshalJSON(t *testing.T) {
	t.Parallel()

	type plainReading Reading

	require.Implements(t, (*bufferMarshaler)(nil), new(Reading))

	r := NewReading(7265.5, "2 hrs 1 min")
	r.FetchedAt = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	got, err := ffjson.Marshal(&r)
	require.NoError(t, err)
	require.JSONEq(t,
		`{"total_seconds":7265.5,"hours":2,"minutes":1,"label":"2 hrs 1 min","fetched_at":"2024-05-01T10:00:00Z"}`,
		string(got))

	plain := plainReading(r)

	reflected, err := json.Marshal(&plain)
	require.NoError(t, err)
	require.JSONEq(t, string(reflected), string(got))

	var decoded Reading
	require.NoError(t, ffjson.Unmarshal(got, &decoded))
	require.Equal(t, r, decoded)
}
