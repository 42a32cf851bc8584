// Package session holds the recording state shared between the command
// surface and the global input listener.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Status enumerates the two recording states.
type Status int

const (
	// StatusIdle is the initial state; clicks are discarded.
	StatusIdle Status = iota
	// StatusRecording means clicks are forwarded to the emitter.
	StatusRecording
)

// String returns the textual state for diagnostics and JSON payloads.
func (s Status) String() string {
	switch s {
	case StatusRecording:
		return "recording"
	default:
		return "idle"
	}
}

// Snapshot is a consistent copy of the session state.
// StartedAt and ID are set iff Status is StatusRecording.
type Snapshot struct {
	ID        string
	Status    Status
	StartedAt time.Time
}

// Recording reports whether the snapshot was taken while recording.
func (s Snapshot) Recording() bool {
	return s.Status == StatusRecording
}

// Summary describes a session that has just been stopped.
type Summary struct {
	ID        string
	StartedAt time.Time
	StoppedAt time.Time
}

// Duration reports how long the session was recording.
func (s Summary) Duration() time.Duration {
	return s.StoppedAt.Sub(s.StartedAt)
}

// Options configures a Session.
type Options struct {
	Clock func() time.Time
	NewID func() string
}

// Session is a mutex-guarded two-state machine. The zero value is not usable;
// construct with New.
type Session struct {
	mu        sync.Mutex
	status    Status
	id        string
	startedAt time.Time

	clock func() time.Time
	newID func() string
}

// New constructs an idle session.
func New(opts Options) *Session {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = uuid.NewString
	}
	return &Session{clock: clock, newID: newID}
}

// Start transitions Idle to Recording. It fails with ErrAlreadyRecording and
// leaves the state untouched when a session is already active.
func (s *Session) Start() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusRecording {
		return s.snapshotLocked(), ErrAlreadyRecording
	}
	s.status = StatusRecording
	s.startedAt = s.clock()
	s.id = s.newID()
	return s.snapshotLocked(), nil
}

// Stop transitions Recording to Idle and returns a summary of the finished
// session. It fails with ErrNotRecording when idle.
func (s *Session) Stop() (Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRecording {
		return Summary{}, ErrNotRecording
	}
	summary := Summary{
		ID:        s.id,
		StartedAt: s.startedAt,
		StoppedAt: s.clock(),
	}
	s.status = StatusIdle
	s.startedAt = time.Time{}
	s.id = ""
	return summary, nil
}

// Snapshot returns the current state as a single consistent value.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Recording is the hot-path check used by the input listener.
func (s *Session) Recording() bool {
	s.mu.Lock()
	recording := s.status == StatusRecording
	s.mu.Unlock()
	return recording
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{ID: s.id, Status: s.status, StartedAt: s.startedAt}
}
