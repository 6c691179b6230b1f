package alarms

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/hackatime-alarm/internal/config"
	"github.com/oshokin/hackatime-alarm/internal/domain/alarm"
)

// Repository defines persistence operations for the alarm snapshot.
type Repository interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, snapshot *Snapshot) error
	Close() error
}

// Snapshot is everything a monitoring pass needs from storage.
type Snapshot struct {
	// Credential is the Hackatime API key.
	Credential string `json:"credential"`
	// Alarms is the alarm collection.
	Alarms alarm.Collection `json:"alarms"`
}

// Clone returns a copy that shares no alarm storage with s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}

	return &Snapshot{
		Credential: s.Credential,
		Alarms:     s.Alarms.Clone(),
	}
}

var (
	// ErrNotFound is returned when no snapshot has been saved yet.
	ErrNotFound = errors.New("state not found")
	// errUnknownDriver is returned by New for unsupported drivers.
	errUnknownDriver = errors.New("unknown storage driver")
)

// New opens the repository selected by driver.
func New(driver, path string) (Repository, error) {
	switch driver {
	case config.DriverFile, "":
		return NewFileRepository(path), nil
	case config.DriverSQLite:
		repo, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}

		return repo, nil
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownDriver, driver)
	}
}
