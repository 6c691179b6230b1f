package notify

import (
	"context"
	"fmt"

	"github.com/godbus/dbus/v5"
)

const (
	notifyDestination = "org.freedesktop.Notifications"
	notifyPath        = "/org/freedesktop/Notifications"
	notifyMethod      = "org.freedesktop.Notifications.Notify"

	// urgencyCritical keeps the notification on screen until dismissed.
	urgencyCritical byte = 2
	// expireDefault lets the notification server pick the timeout.
	expireDefault int32 = -1
)

// Desktop posts notifications to the freedesktop notification server.
type Desktop struct {
	// conn is the session bus connection owned by the notifier, if any.
	conn *dbus.Conn
	// obj is the notification server object.
	obj dbus.BusObject
	// appName is reported as the sending application.
	appName string
}

// NewDesktop connects to the session bus.
func NewDesktop(appName string) (*Desktop, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("connect to session bus: %w", err)
	}

	d := newDesktop(conn.Object(notifyDestination, notifyPath), appName)
	d.conn = conn

	return d, nil
}

// newDesktop wraps an already resolved notification server object.
func newDesktop(obj dbus.BusObject, appName string) *Desktop {
	return &Desktop{
		obj:     obj,
		appName: appName,
	}
}

// Notify implements Notifier.
func (d *Desktop) Notify(ctx context.Context, n Notification) error {
	call := d.obj.CallWithContext(
		ctx,
		notifyMethod,
		0,
		d.appName,
		uint32(0),
		"",
		n.Title,
		n.Message,
		[]string{},
		map[string]dbus.Variant{
			"urgency": dbus.MakeVariant(urgencyCritical),
		},
		expireDefault,
	)
	if call.Err != nil {
		return fmt.Errorf("post desktop notification: %w", call.Err)
	}

	return nil
}

// Close releases the session bus connection.
func (d *Desktop) Close() error {
	if d == nil || d.conn == nil {
		return nil
	}

	return d.conn.Close()
}
