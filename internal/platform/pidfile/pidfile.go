// Package pidfile records the running foreground daemon so that other
// processes (the background host, offline CLI commands) can stay out of its way.
package pidfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/hackatime-alarm/internal/config"
)

// ErrRunning is returned when another live process owns the PID file.
var ErrRunning = errors.New("another instance is running")

// Read returns the PID stored at path.
func Read(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read pid file: %w", err)
	}

	pid, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, fmt.Errorf("parse pid file %s: %w", path, err)
	}

	return pid, nil
}

// Alive reports whether the PID file at path names a running process with
// the same executable as the caller. Missing or unreadable files are not alive.
func Alive(path string) (int, bool) {
	pid, err := Read(path)
	if err != nil || pid <= 0 {
		return 0, false
	}

	process, err := ps.FindProcess(pid)
	if err != nil || process == nil {
		return pid, false
	}

	self, err := ps.FindProcess(os.Getpid())
	if err != nil || self == nil {
		return pid, true
	}

	return pid, process.Executable() == self.Executable()
}

// Write stores the current PID at path. It fails with ErrRunning when
// another live instance already owns the file; stale files are replaced.
func Write(path string) error {
	if pid, alive := Alive(path); alive && pid != os.Getpid() {
		return fmt.Errorf("%w: pid %d", ErrRunning, pid)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create pid file directory: %w", err)
	}

	data := []byte(strconv.Itoa(os.Getpid()) + "\n")
	if err := os.WriteFile(path, data, config.DefaultFilePermissions); err != nil {
		return fmt.Errorf("write pid file: %w", err)
	}

	return nil
}

// Remove deletes the PID file if it still belongs to the current process.
func Remove(path string) error {
	pid, err := Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}

		return err
	}

	if pid != os.Getpid() {
		return nil
	}

	if err = os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove pid file: %w", err)
	}

	return nil
}
