package notify

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/logger"
)

// Notification is the message sent when an alarm fires.
type Notification struct {
	// AlarmID identifies the alarm that fired.
	AlarmID string
	// AlarmName is the alarm display label.
	AlarmName string
	// Title is the short headline.
	Title string
	// Message is the body text.
	Message string
}

// FromFiring builds the notification for a fired alarm.
func FromFiring(f *alarm.Firing) Notification {
	return Notification{
		AlarmID:   f.Alarm.ID,
		AlarmName: f.Alarm.Name,
		Title:     f.Title(),
		Message:   f.Message(),
	}
}

// Notifier delivers notifications. Delivery is best effort.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, n Notification) error

// Notify calls f.
func (f NotifierFunc) Notify(ctx context.Context, n Notification) error {
	return f(ctx, n)
}

// Log writes notifications to the context logger.
type Log struct{}

// Notify implements Notifier.
func (Log) Notify(ctx context.Context, n Notification) error {
	logger.InfoKV(ctx, n.Title, "alarm_id", n.AlarmID, "message", n.Message)

	return nil
}

// Multi delivers every notification to all of its members.
type Multi []Notifier

// Notify implements Notifier. Member failures are logged and joined.
func (m Multi) Notify(ctx context.Context, n Notification) error {
	var errs []error

	for _, member := range m {
		if member == nil {
			continue
		}

		if err := member.Notify(ctx, n); err != nil {
			logger.WarnKV(ctx, "Notification channel failed", "alarm_id", n.AlarmID, "error", err)

			errs = append(errs, fmt.Errorf("%T: %w", member, err))
		}
	}

	return errors.Join(errs...)
}
