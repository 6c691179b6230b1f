package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pquerna/ffjson/ffjson"

	domain "github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/service/alarms"
)

// Alarm states shown by the CLI.
const (
	stateDisabled  = "disabled"
	statePending   = "pending"
	stateTriggered = "triggered"
)

// writeJSON prints v as one JSON document.
func writeJSON(w io.Writer, v any) error {
	data, err := ffjson.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}

	defer ffjson.Pool(data)

	if _, err = w.Write(data); err != nil {
		return err
	}

	_, err = io.WriteString(w, "\n")

	return err
}

// alarmState describes an alarm relative to today.
func alarmState(a *domain.Alarm, today domain.Date) string {
	switch {
	case !a.Enabled:
		return stateDisabled
	case a.TriggeredOn(today):
		return stateTriggered
	default:
		return statePending
	}
}

// printAlarms renders alarms as an aligned table.
func printAlarms(w io.Writer, list []domain.Alarm, today domain.Date) error {
	if len(list) == 0 {
		_, err := fmt.Fprintln(w, "No alarms.")

		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(tw, "ID\tNAME\tTARGET\tKIND\tSTATE")

	for i := range list {
		a := &list[i]

		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.Name, a.Target(), a.Kind, alarmState(a, today))
	}

	return tw.Flush()
}

// printStatus renders the latest reading followed by the alarms.
func printStatus(w io.Writer, st *alarms.Status) error {
	if st.Reading != nil {
		_, _ = fmt.Fprintf(w, "Today (%s): %s", st.Today, st.Reading.Elapsed())

		if st.Reading.Label != "" {
			_, _ = fmt.Fprintf(w, " [%s]", st.Reading.Label)
		}

		_, _ = fmt.Fprintln(w)
	} else {
		_, _ = fmt.Fprintf(w, "Today (%s): no reading yet\n", st.Today)
	}

	return printAlarms(w, st.Alarms, st.Today)
}

// printResult prints v as JSON with --json, otherwise calls human.
func printResult(w io.Writer, v any, human func(io.Writer) error) error {
	if jsonOutput {
		return writeJSON(w, v)
	}

	return human(w)
}
