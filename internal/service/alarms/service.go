package alarms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/logger"
	repo "github.com/oshokin/hackatime-alarm/internal/repository/alarms"
)

//go:generate ffjson -nodecoder service.go

// errEmptyCredential is returned when SetCredential receives a blank key.
var errEmptyCredential = errors.New("api key must not be empty")

// Status is the view shown by status surfaces.
type Status struct {
	// Today is the calendar day alarms are judged against.
	Today alarm.Date `json:"today"`
	// Reading is the latest coding time reading, if any.
	Reading *alarm.Reading `json:"reading,omitempty"`
	// Alarms is the current collection.
	Alarms alarm.Collection `json:"alarms"`
}

// Service guards the alarm snapshot and keeps storage in sync with it.
type Service struct {
	// repo persists the snapshot. Nil keeps everything in memory.
	repo repo.Repository
	// credentialOverride takes precedence over the stored credential when set.
	credentialOverride string

	// mu protects snapshot and unsaved.
	mu sync.RWMutex
	// snapshot is the authoritative credential and alarm collection.
	snapshot *repo.Snapshot
	// unsaved is set while an evaluation result is missing from storage.
	unsaved bool
}

// Option configures the service.
type Option func(*Service)

// WithCredentialOverride makes key win over the stored credential.
func WithCredentialOverride(key string) Option {
	return func(s *Service) {
		s.credentialOverride = strings.TrimSpace(key)
	}
}

// New creates a service and loads the stored snapshot.
// A repository that was never written yields an empty snapshot.
func New(ctx context.Context, repository repo.Repository, opts ...Option) (*Service, error) {
	s := &Service{
		repo:     repository,
		snapshot: new(repo.Snapshot),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.Reload(ctx); err != nil {
		return nil, err
	}

	return s, nil
}

// Reload replaces the in-memory snapshot with the stored one.
// An unsaved evaluation result is saved first; while storage still refuses
// it, the in-memory snapshot is kept.
func (s *Service) Reload(ctx context.Context) error {
	if s.repo == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.unsaved {
		if err := s.save(ctx, s.snapshot); err != nil {
			logger.WarnKV(ctx, "Keeping unsaved alarms instead of reloading", "error", err)

			return nil
		}

		s.unsaved = false

		logger.Info(ctx, "Pending evaluation result persisted")
	}

	loaded, err := s.repo.Load(ctx)

	switch {
	case err == nil:
	case errors.Is(err, repo.ErrNotFound):
		loaded = new(repo.Snapshot)
	default:
		return fmt.Errorf("load alarms: %w", err)
	}

	s.snapshot = loaded

	logger.DebugKV(ctx, "Alarm snapshot loaded", "alarms", len(loaded.Alarms))

	return nil
}

// Unsaved reports whether the last evaluation result is missing from storage.
func (s *Service) Unsaved() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.unsaved
}

// List returns a copy of the collection.
func (s *Service) List(context.Context) alarm.Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot.Alarms.Clone()
}

// Get returns one alarm.
func (s *Service) Get(_ context.Context, id string) (alarm.Alarm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.snapshot.Alarms.Find(id)
	if !ok {
		return alarm.Alarm{}, &alarm.NotFoundError{ID: id}
	}

	return a, nil
}

// Add creates a manual alarm.
func (s *Service) Add(ctx context.Context, name string, hours, minutes int) (alarm.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, created, err := s.snapshot.Alarms.Add(name, hours, minutes)
	if err != nil {
		return alarm.Alarm{}, err
	}

	if err = s.commitLocked(ctx, next); err != nil {
		return alarm.Alarm{}, err
	}

	logger.InfoKV(ctx, "Alarm added", "id", created.ID, "name", created.Name, "target", created.Target())

	return created, nil
}

// GenerateInterval replaces the interval alarms with a new batch.
func (s *Service) GenerateInterval(ctx context.Context, stepHours, stepMinutes, count int) ([]alarm.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, created, err := s.snapshot.Alarms.GenerateInterval(stepHours, stepMinutes, count)
	if err != nil {
		return nil, err
	}

	if err = s.commitLocked(ctx, next); err != nil {
		return nil, err
	}

	logger.InfoKV(ctx, "Interval alarms generated",
		"step", alarm.FormatDuration(stepHours, stepMinutes),
		"count", len(created))

	return created, nil
}

// ClearInterval removes every interval alarm and reports how many were removed.
func (s *Service) ClearInterval(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot.Alarms.ClearInterval()
	removed := len(s.snapshot.Alarms) - len(next)

	if err := s.commitLocked(ctx, next); err != nil {
		return 0, err
	}

	logger.InfoKV(ctx, "Interval alarms cleared", "removed", removed)

	return removed, nil
}

// Toggle flips an alarm between enabled and disabled.
func (s *Service) Toggle(ctx context.Context, id string) (alarm.Alarm, error) {
	return s.update(ctx, "Alarm toggled", id, alarm.Collection.Toggle)
}

// ResetTrigger clears the trigger state of an alarm.
func (s *Service) ResetTrigger(ctx context.Context, id string) (alarm.Alarm, error) {
	return s.update(ctx, "Alarm trigger reset", id, alarm.Collection.ResetTrigger)
}

// Remove deletes an alarm.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.snapshot.Alarms.Remove(id)
	if err != nil {
		return err
	}

	if err = s.commitLocked(ctx, next); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Alarm removed", "id", id)

	return nil
}

// Credential returns the API key used for time source requests.
func (s *Service) Credential(context.Context) string {
	if s.credentialOverride != "" {
		return s.credentialOverride
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshot.Credential
}

// SetCredential stores a new API key.
func (s *Service) SetCredential(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errEmptyCredential
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.snapshot.Clone()
	next.Credential = key

	if err := s.save(ctx, next); err != nil {
		return err
	}

	s.snapshot = next
	s.unsaved = false

	logger.Info(ctx, "API key updated")

	return nil
}

// Evaluate runs one evaluation pass and returns the alarms that fired.
// The new trigger state is kept even when it cannot be persisted; the next
// successful save or Reload writes it out.
func (s *Service) Evaluate(ctx context.Context, reading alarm.Reading, today alarm.Date) []alarm.Firing {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, fired := alarm.Evaluate(s.snapshot.Alarms, reading.Hours, reading.Minutes, today)

	updated := &repo.Snapshot{
		Credential: s.snapshot.Credential,
		Alarms:     next,
	}

	err := s.save(ctx, updated)
	if err != nil {
		logger.ErrorKV(ctx, "Failed to persist evaluation result", "error", err)
	}

	s.snapshot = updated
	s.unsaved = err != nil

	return fired
}

// update applies a single-alarm mutation.
func (s *Service) update(
	ctx context.Context,
	message, id string,
	fn func(alarm.Collection, string) (alarm.Collection, alarm.Alarm, error),
) (alarm.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, changed, err := fn(s.snapshot.Alarms, id)
	if err != nil {
		return alarm.Alarm{}, err
	}

	if err = s.commitLocked(ctx, next); err != nil {
		return alarm.Alarm{}, err
	}

	logger.InfoKV(ctx, message, "id", changed.ID, "enabled", changed.Enabled, "has_triggered", changed.HasTriggered)

	return changed, nil
}

// commitLocked persists next and makes it current. The caller holds mu.
func (s *Service) commitLocked(ctx context.Context, next alarm.Collection) error {
	updated := &repo.Snapshot{
		Credential: s.snapshot.Credential,
		Alarms:     next,
	}

	if err := s.save(ctx, updated); err != nil {
		return err
	}

	s.snapshot = updated
	s.unsaved = false

	return nil
}

func (s *Service) save(ctx context.Context, snapshot *repo.Snapshot) error {
	if s.repo == nil {
		return nil
	}

	if err := s.repo.Save(ctx, snapshot); err != nil {
		return fmt.Errorf("persist alarms: %w", err)
	}

	return nil
}
