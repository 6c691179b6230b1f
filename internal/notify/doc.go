// Package notify delivers fired-alarm notifications.
//
// Every channel implements Notifier: Log writes a structured record, Desktop
// posts a freedesktop notification over the D-Bus session bus and Sound loops
// an audible cue. Multi fans one notification out to several channels; a
// failing channel never prevents the others from being notified.
package notify
