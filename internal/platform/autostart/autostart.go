// Package autostart registers the daemon to start on user login.
package autostart

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/emersion/go-autostart"

	"github.com/oshokin/hackatime-alarm/internal/logger"
)

// Entry is a login item.
type Entry interface {
	IsEnabled() bool
	Enable() error
	Disable() error
}

// Manager toggles the login item of the daemon.
type Manager struct {
	// entry is the platform login item.
	entry Entry
}

// New describes a login item that runs the current executable with args.
func New(name, displayName string, args ...string) (*Manager, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}

	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}

	return newManager(&autostart.App{
		Name:        name,
		DisplayName: displayName,
		Exec:        append([]string{execPath}, args...),
	}), nil
}

func newManager(entry Entry) *Manager {
	return &Manager{entry: entry}
}

// Enabled reports whether the login item is installed.
func (m *Manager) Enabled() bool {
	return m.entry.IsEnabled()
}

// Enable installs the login item unless it already exists.
func (m *Manager) Enable(ctx context.Context) error {
	if m.entry.IsEnabled() {
		logger.Info(ctx, "Autostart already enabled")

		return nil
	}

	if err := m.entry.Enable(); err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}

	logger.Info(ctx, "Autostart enabled")

	return nil
}

// Disable removes the login item if it exists.
func (m *Manager) Disable(ctx context.Context) error {
	if !m.entry.IsEnabled() {
		logger.Info(ctx, "Autostart already disabled")

		return nil
	}

	if err := m.entry.Disable(); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}

	logger.Info(ctx, "Autostart disabled")

	return nil
}
