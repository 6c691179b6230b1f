package alarm

import (
	domain "github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/service/alarms"
)

//go:generate ffjson -nodecoder messages.go

// AlarmIDRequest addresses a single alarm.
type AlarmIDRequest struct {
	// ID is the alarm identifier.
	ID string `json:"id"`
}

// AddAlarmRequest creates a manual alarm.
type AddAlarmRequest struct {
	// Name is the display label.
	Name string `json:"name"`
	// TargetHours is the hour part of the threshold.
	TargetHours int `json:"target_hours"`
	// TargetMinutes is the minute part of the threshold.
	TargetMinutes int `json:"target_minutes"`
}

// GenerateIntervalRequest replaces the interval alarms.
type GenerateIntervalRequest struct {
	// StepHours is the hour part of the spacing.
	StepHours int `json:"step_hours"`
	// StepMinutes is the minute part of the spacing.
	StepMinutes int `json:"step_minutes"`
	// Count is the number of alarms to create.
	Count int `json:"count"`
}

// SetCredentialRequest stores a Hackatime API key.
type SetCredentialRequest struct {
	// APIKey is the new key.
	APIKey string `json:"api_key"`
}

// AlarmResponse carries one alarm.
type AlarmResponse struct {
	// Alarm is the affected alarm.
	Alarm domain.Alarm `json:"alarm"`
}

// AlarmsResponse carries a list of alarms.
type AlarmsResponse struct {
	// Alarms in collection order.
	Alarms []domain.Alarm `json:"alarms"`
}

// ClearIntervalResponse reports how many interval alarms were removed.
type ClearIntervalResponse struct {
	// Removed is the number of deleted alarms.
	Removed int `json:"removed"`
}

// StatusResponse is the daemon status.
type StatusResponse struct {
	alarms.Status
}
