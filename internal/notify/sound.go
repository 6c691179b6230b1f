package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/oshokin/hackatime-alarm/internal/logger"
)

// pollInterval is how often the loop checks whether the current cue finished.
const pollInterval = 10 * time.Millisecond

var (
	// errFormatMismatch is returned when a cue does not match the open audio device format.
	errFormatMismatch = errors.New("audio format differs from the open audio device")

	// The audio device can be opened once per process.
	audioOnce   sync.Once
	audioCtx    *oto.Context
	audioFormat Format
	audioErr    error
)

// playback is a single run of a cue.
type playback interface {
	IsPlaying() bool
	Pause()
	Close() error
}

// startFunc starts playing pcm from the beginning.
type startFunc func(pcm []byte) (playback, error)

// Sound loops an audible cue until stopped or until its duration elapses.
type Sound struct {
	// pcm is the cue payload.
	pcm []byte
	// duration caps how long one notification keeps sounding.
	duration time.Duration
	// start opens a new playback of pcm.
	start startFunc

	// mu guards stop and done.
	mu sync.Mutex
	// stop ends the running loop; nil when idle.
	stop chan struct{}
	// done is closed when the running loop exits.
	done chan struct{}
}

// NewSound loads the WAV file at path, or synthesises a beep when path is empty.
func NewSound(path string, duration time.Duration) (*Sound, error) {
	format, pcm := Beep()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read sound file: %w", err)
		}

		format, pcm, err = ParseWAV(data)
		if err != nil {
			return nil, fmt.Errorf("parse sound file %s: %w", path, err)
		}
	}

	return newSound(pcm, duration, func(pcm []byte) (playback, error) {
		return playOnDevice(format, pcm)
	}), nil
}

func newSound(pcm []byte, duration time.Duration, start startFunc) *Sound {
	return &Sound{
		pcm:      pcm,
		duration: duration,
		start:    start,
	}
}

// Notify implements Notifier. It starts the cue and returns without waiting for it.
// A cue that is already sounding is replaced.
func (s *Sound) Notify(ctx context.Context, n Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()

	first, err := s.start(s.pcm)
	if err != nil {
		return fmt.Errorf("start sound: %w", err)
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go s.loop(context.WithoutCancel(ctx), first, s.stop, s.done)

	logger.DebugKV(ctx, "Sound cue started", "alarm_id", n.AlarmID, "duration", s.duration)

	return nil
}

// Stop silences the running cue and waits for its loop to exit.
func (s *Sound) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopLocked()
}

// Close implements io.Closer.
func (s *Sound) Close() error {
	s.Stop()

	return nil
}

func (s *Sound) stopLocked() {
	if s.stop == nil {
		return
	}

	close(s.stop)
	<-s.done

	s.stop, s.done = nil, nil
}

func (s *Sound) loop(ctx context.Context, current playback, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	deadline := time.NewTimer(s.duration)
	defer deadline.Stop()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			current.Pause()
			closePlayback(ctx, current)

			return
		case <-deadline.C:
			current.Pause()
			closePlayback(ctx, current)
			logger.Debug(ctx, "Sound cue finished")

			return
		case <-ticker.C:
			if current.IsPlaying() {
				continue
			}

			closePlayback(ctx, current)

			next, err := s.start(s.pcm)
			if err != nil {
				logger.WarnKV(ctx, "Failed to restart sound cue", "error", err)

				return
			}

			current = next
		}
	}
}

func closePlayback(ctx context.Context, p playback) {
	if err := p.Close(); err != nil {
		logger.WarnKV(ctx, "Failed to close audio player", "error", err)
	}
}

// playOnDevice opens the audio device on first use and plays pcm on it.
func playOnDevice(format Format, pcm []byte) (playback, error) {
	audioOnce.Do(func() {
		ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   format.SampleRate,
			ChannelCount: format.Channels,
			Format:       oto.FormatSignedInt16LE,
		})
		if err != nil {
			audioErr = fmt.Errorf("open audio device: %w", err)
			return
		}

		<-ready

		audioCtx = ctx
		audioFormat = format
	})

	if audioErr != nil {
		return nil, audioErr
	}

	if format != audioFormat {
		return nil, errFormatMismatch
	}

	player := audioCtx.NewPlayer(bytes.NewReader(pcm))
	player.Play()

	return player, nil
}
